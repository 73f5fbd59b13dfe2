package parse

import (
	"strings"
	"testing"

	"github.com/dekarrin/lfgo/internal/ictiobus/grammar"
	"github.com/dekarrin/lfgo/internal/ictiobus/lex"
	"github.com/dekarrin/lfgo/internal/ictiobus/types"
	"github.com/stretchr/testify/assert"
)

// literalMatch treats every terminal symbol as the literal lowercased word
// it must match; good enough to exercise the parser without a lexicon.
func literalMatch(symbol string, tok types.Token) bool {
	return strings.ToLower(tok.Lexeme()) == symbol
}

func toks(s string) []types.Token {
	return lex.Tokenize(s)
}

func Test_Parse_unambiguousSentence(t *testing.T) {
	g := grammar.NewGrammar()
	g.Start = "S"
	g.AddRule("S", grammar.Production{"NP", "VP"})
	g.AddRule("NP", grammar.Production{"john"})
	g.AddRule("VP", grammar.Production{"sleeps"})

	trees, err := Parse(g, toks("john sleeps"), literalMatch)

	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	if assert.Len(trees, 1) {
		tree := trees[0]
		assert.Equal("S", tree.Value)
		if assert.Len(tree.Children, 2) {
			assert.Equal("NP", tree.Children[0].Value)
			assert.Equal("VP", tree.Children[1].Value)
		}
	}
}

func Test_Parse_ambiguousGrammar_returnsAllTrees(t *testing.T) {
	g := grammar.NewGrammar()
	g.Start = "S"
	g.AddRule("S", grammar.Production{"A"})
	g.AddRule("S", grammar.Production{"B"})
	g.AddRule("A", grammar.Production{"x", "y"})
	g.AddRule("B", grammar.Production{"x", "y"})

	trees, err := Parse(g, toks("x y"), literalMatch)

	assert := assert.New(t)
	if !assert.NoError(err) {
		return
	}
	assert.Len(trees, 2)

	var sawA, sawB bool
	for _, tr := range trees {
		if assert.Len(tr.Children, 1) {
			switch tr.Children[0].Value {
			case "A":
				sawA = true
			case "B":
				sawB = true
			}
		}
	}
	assert.True(sawA)
	assert.True(sawB)
}

func Test_Parse_noDerivation_returnsNoParseError(t *testing.T) {
	g := grammar.NewGrammar()
	g.Start = "S"
	g.AddRule("S", grammar.Production{"NP", "VP"})
	g.AddRule("NP", grammar.Production{"john"})
	g.AddRule("VP", grammar.Production{"sleeps"})

	_, err := Parse(g, toks("john runs"), literalMatch)

	assert := assert.New(t)
	if assert.Error(err) {
		var npe *NoParseError
		assert.ErrorAs(err, &npe)
	}
}

func Test_Parse_epsilonProduction(t *testing.T) {
	g := grammar.NewGrammar()
	g.Start = "S"
	g.AddRule("S", grammar.Production{"A", "end"})
	g.AddRule("A", grammar.Production{"start"})
	g.AddRule("A", grammar.Production{})

	withOpt, err := Parse(g, toks("start end"), literalMatch)
	assert := assert.New(t)
	if assert.NoError(err) && assert.Len(withOpt, 1) {
		assert.False(withOpt[0].Children[0].Empty)
	}

	withoutOpt, err := Parse(g, toks("end"), literalMatch)
	if assert.NoError(err) && assert.Len(withoutOpt, 1) {
		assert.True(withoutOpt[0].Children[0].Empty)
	}
}

func Test_Parse_emptyInput_startEpsilon(t *testing.T) {
	g := grammar.NewGrammar()
	g.Start = "S"
	g.AddRule("S", grammar.Production{})

	trees, err := Parse(g, nil, literalMatch)

	assert := assert.New(t)
	if assert.NoError(err) && assert.Len(trees, 1) {
		assert.True(trees[0].Empty)
	}
}
