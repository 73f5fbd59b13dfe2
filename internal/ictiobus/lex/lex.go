// Package lex splits natural-language input into a stream of surface tokens.
// It is the tokenizer external collaborator described by the LFG core: it
// knows nothing about grammars, schemas, or F-structures, only how to turn
// a line of text into Tokens that the core's lexicon can look up.
package lex

import (
	"strings"
	"unicode"

	"github.com/dekarrin/lfgo/internal/ictiobus/types"
	"golang.org/x/text/cases"
)

// implementation of types.TokenClass for lex package use only.
type tokenClass struct {
	id    string
	human string
}

func (tc tokenClass) ID() string     { return tc.id }
func (tc tokenClass) Human() string  { return tc.human }
func (tc tokenClass) Equal(o any) bool {
	other, ok := o.(types.TokenClass)
	if !ok {
		otherPtr, ok := o.(*types.TokenClass)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}
	return other.ID() == tc.ID()
}

// Word is the TokenClass assigned to every surface token produced by Tokenize.
// The LFG driver's lexicon is responsible for further classifying a Word by
// CFG symbol; the tokenizer itself is agnostic to the grammar.
var Word types.TokenClass = tokenClass{id: "word", human: "word"}

// implementation of types.Token for lex package use only.
type token struct {
	lexeme  string
	linePos int
	lineNum int
	line    string
}

func (t token) Class() types.TokenClass { return Word }
func (t token) Lexeme() string          { return t.lexeme }
func (t token) LinePos() int            { return t.linePos }
func (t token) Line() int               { return t.lineNum }
func (t token) FullLine() string        { return t.line }
func (t token) String() string {
	return t.lexeme + " (" + Word.Human() + ")"
}

var foldCase = cases.Fold(cases.Compact)

// Fold applies Unicode case-folding to s, so that e.g. "John" and "john"
// resolve to the same lexical entry. Tokenize itself does not fold; the
// lexicon loaders (internal/lfgfile, internal/lexdb) fold both their stored
// lexemes and each token's lexeme with Fold before matching. Grounded on the teacher's
// regex-action lexer, which matched patterns directly against raw bytes; this
// folds first so lexicon lookups are case-insensitive without the lexicon
// author needing to enumerate every casing.
func Fold(s string) string {
	return foldCase.String(s)
}

// Tokenize splits input on whitespace, producing one Token per surface word.
// Leading and trailing punctuation directly attached to a word (quotes,
// sentence-final periods, commas) is split off into its own token so that a
// lexicon entry for "." or "," can match independently of the word it
// follows. Tokenize never fails: malformed input simply yields tokens that
// no lexical category will match, and the CFG parser reports "no parse".
func Tokenize(input string) []types.Token {
	var toks []types.Token
	lineNum := 1

	for _, line := range strings.Split(input, "\n") {
		pos := 1
		for _, field := range strings.Fields(line) {
			for _, piece := range splitPunctuation(field) {
				toks = append(toks, token{
					lexeme:  piece,
					linePos: pos,
					lineNum: lineNum,
					line:    line,
				})
				pos += len([]rune(piece))
			}
			pos++ // whitespace
		}
		lineNum++
	}

	return toks
}

// splitPunctuation peels leading/trailing ASCII punctuation runs off of a
// whitespace-delimited field, so "dog." becomes ["dog", "."] and "\"john\""
// becomes ["\"", "john", "\""].
func splitPunctuation(field string) []string {
	runes := []rune(field)
	start, end := 0, len(runes)

	for start < end && isPunct(runes[start]) {
		start++
	}
	for end > start && isPunct(runes[end-1]) {
		end--
	}

	var pieces []string
	for _, r := range runes[:start] {
		pieces = append(pieces, string(r))
	}
	if start < end {
		pieces = append(pieces, string(runes[start:end]))
	}
	for _, r := range runes[end:] {
		pieces = append(pieces, string(r))
	}
	if len(pieces) == 0 {
		pieces = append(pieces, field)
	}
	return pieces
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) && r != '-' && r != '\''
}
