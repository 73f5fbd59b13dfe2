package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Tokenize_splitsOnWhitespace(t *testing.T) {
	toks := Tokenize("john sleeps")

	assert := assert.New(t)
	if assert.Len(toks, 2) {
		assert.Equal("john", toks[0].Lexeme())
		assert.Equal("sleeps", toks[1].Lexeme())
	}
}

func Test_Tokenize_splitsTrailingPunctuation(t *testing.T) {
	toks := Tokenize("john sleeps.")

	assert := assert.New(t)
	if assert.Len(toks, 3) {
		assert.Equal("john", toks[0].Lexeme())
		assert.Equal("sleeps", toks[1].Lexeme())
		assert.Equal(".", toks[2].Lexeme())
	}
}

func Test_Tokenize_keepsHyphensAndApostrophes(t *testing.T) {
	toks := Tokenize("mary-jane's cat")

	assert := assert.New(t)
	if assert.Len(toks, 2) {
		assert.Equal("mary-jane's", toks[0].Lexeme())
		assert.Equal("cat", toks[1].Lexeme())
	}
}

func Test_Fold_caseInsensitive(t *testing.T) {
	assert.Equal(t, Fold("John"), Fold("john"))
}
