package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Grammar_AddRule_and_Rule(t *testing.T) {
	g := NewGrammar()
	g.AddRule("S", Production{"NP", "VP"})
	g.AddRule("S", Production{"VP"})

	assert := assert.New(t)
	r := g.Rule("S")
	assert.Equal("S", r.NonTerminal)
	if assert.Len(r.Productions, 2) {
		assert.True(r.Productions[0].Equal(Production{"NP", "VP"}))
		assert.True(r.Productions[1].Equal(Production{"VP"}))
	}
}

func Test_Grammar_IsTerminal(t *testing.T) {
	g := NewGrammar()
	g.AddRule("S", Production{"NP", "VP"})

	assert := assert.New(t)
	assert.True(g.IsNonTerminal("S"))
	assert.True(g.IsTerminal("NP"))
	assert.True(g.IsTerminal("VP"))
}

func Test_Grammar_StartSymbol_defaultsToS(t *testing.T) {
	g := NewGrammar()
	assert.Equal(t, "S", g.StartSymbol())

	g.Start = "SENT"
	assert.Equal(t, "SENT", g.StartSymbol())
}

func Test_Grammar_Validate_missingStart(t *testing.T) {
	g := NewGrammar()
	g.AddRule("NP", Production{"john"})

	err := g.Validate()
	assert.Error(t, err)
}
