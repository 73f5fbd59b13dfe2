// Package parse is the CFG parser collaborator the LFG core depends on. It
// asks nothing of the grammar beyond its productions and nothing of the
// caller beyond a way to tell whether a terminal symbol matches a token; the
// lexicon, the schemas, the F-structures are all someone else's problem.
//
// Parsing uses the Earley algorithm rather than any of the deterministic
// table-driven strategies (LL(1), SLR, CLR, LALR) a parser-generator
// collaborator might otherwise reach for, because spec.md requires
// Parse to return every parse tree for an ambiguous sentence, not the one a
// deterministic table happens to prefer. The chart (predict/scan/complete
// over a list of columns) and the backward state walk used to extract trees
// out of the chart are grounded in shape on the lone Earley implementation
// found among the broader reference pool; the surrounding types (Grammar,
// Token, ParseTree) and error conventions are this toolkit's own.
package parse

import (
	"fmt"
	"strings"

	"github.com/dekarrin/lfgo/internal/ictiobus/grammar"
	"github.com/dekarrin/lfgo/internal/ictiobus/types"
)

// gammaHead is the synthetic start symbol added above the grammar's own
// start symbol, so that "did we parse the whole input" is just "is there a
// completed gammaHead state spanning column 0 to the last column".
const gammaHead = "Γ'"

// TerminalMatcher reports whether tok may be consumed as an instance of the
// CFG terminal symbol. The LFG driver supplies one backed by its lexicon;
// Parse itself has no notion of what a token's surface form means.
type TerminalMatcher func(symbol string, tok types.Token) bool

// NoParseError is returned by Parse when no derivation of the grammar's
// start symbol spans the entire token stream.
type NoParseError struct {
	Tokens []types.Token
}

func (e *NoParseError) Error() string {
	lexemes := make([]string, len(e.Tokens))
	for i, t := range e.Tokens {
		lexemes[i] = t.Lexeme()
	}
	return fmt.Sprintf("no parse for input: %s", strings.Join(lexemes, " "))
}

// state is an Earley item: a dotted production, the column it started in,
// and (once added to a column) the column it currently resides in.
type state struct {
	head  string
	prod  grammar.Production
	dot   int
	start int
	end   int
}

func (st *state) completed() bool {
	return st.dot >= len(st.prod)
}

// nextSymbol returns the symbol immediately after the dot. Only valid when
// !st.completed().
func (st *state) nextSymbol() string {
	return st.prod[st.dot]
}

func (st *state) key() string {
	return fmt.Sprintf("%s|%s|%d|%d", st.head, st.prod.String(), st.dot, st.start)
}

// column is one position in the Earley chart: every state that is known to
// be reachable by the time that many tokens have been consumed.
type column struct {
	index  int
	states []*state
	seen   map[string]*state
}

func newColumn(index int) *column {
	return &column{index: index, seen: map[string]*state{}}
}

// insert adds st to the column if no equal state already exists, returning
// whichever state instance now represents it (the existing one, if there
// was a duplicate).
func (c *column) insert(st *state) *state {
	k := st.key()
	if existing, ok := c.seen[k]; ok {
		return existing
	}
	st.end = c.index
	c.seen[k] = st
	c.states = append(c.states, st)
	return st
}

// Parse runs the Earley algorithm over toks against g, using match to decide
// whether a terminal symbol accepts a given token. It returns every parse
// tree rooted at g.StartSymbol() that spans the entire token stream. An
// empty toks slice is valid and parses successfully against a grammar whose
// start symbol has an epsilon production.
func Parse(g *grammar.Grammar, toks []types.Token, match TerminalMatcher) ([]*types.ParseTree, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	cols := make([]*column, len(toks)+1)
	for i := range cols {
		cols[i] = newColumn(i)
	}

	start := cols[0].insert(&state{
		head:  gammaHead,
		prod:  grammar.Production{g.StartSymbol()},
		dot:   0,
		start: 0,
	})
	_ = start

	for i, col := range cols {
		for j := 0; j < len(col.states); j++ {
			st := col.states[j]
			if st.completed() {
				complete(g, cols, col, st)
				continue
			}
			sym := st.nextSymbol()
			if g.IsNonTerminal(sym) {
				predict(g, col, sym)
			} else if i < len(toks) {
				scan(cols[i+1], st, sym, toks[i], match)
			}
		}
	}

	last := cols[len(cols)-1]
	var final *state
	for _, st := range last.states {
		if st.head == gammaHead && st.start == 0 && st.completed() {
			final = st
			break
		}
	}
	if final == nil {
		return nil, &NoParseError{Tokens: toks}
	}

	var trees []*types.ParseTree
	for _, wrapper := range buildStateTrees(g, cols, toks, match, final) {
		if len(wrapper.Children) == 1 {
			trees = append(trees, wrapper.Children[0])
		}
	}
	return trees, nil
}

func predict(g *grammar.Grammar, col *column, sym string) {
	for _, prod := range g.Rule(sym).Productions {
		col.insert(&state{head: sym, prod: prod, dot: 0, start: col.index})
	}
}

func scan(next *column, st *state, sym string, tok types.Token, match TerminalMatcher) {
	if !match(sym, tok) {
		return
	}
	next.insert(&state{head: st.head, prod: st.prod, dot: st.dot + 1, start: st.start})
}

func complete(g *grammar.Grammar, cols []*column, col *column, st *state) {
	origin := cols[st.start]
	for _, ost := range origin.states {
		if ost.completed() {
			continue
		}
		if ost.nextSymbol() != st.head {
			continue
		}
		col.insert(&state{head: ost.head, prod: ost.prod, dot: ost.dot + 1, start: ost.start})
	}
}

// buildStateTrees returns one *types.ParseTree per distinct way st's
// production could have been derived, each carrying st.head as its Value
// and one child per symbol in st.prod (none, for an epsilon production).
func buildStateTrees(g *grammar.Grammar, cols []*column, toks []types.Token, match TerminalMatcher, st *state) []*types.ParseTree {
	var trees []*types.ParseTree
	for _, seq := range matchSequences(g, cols, toks, match, st, len(st.prod)-1, st.end) {
		trees = append(trees, &types.ParseTree{
			Value:    st.head,
			Empty:    len(st.prod) == 0,
			Children: seq,
		})
	}
	return trees
}

// matchSequences returns every possible sequence of child trees for
// st.prod[0:symIdx+1] such that the sequence ends exactly at column endCol
// and (when symIdx is the first symbol) begins at st.start.
func matchSequences(g *grammar.Grammar, cols []*column, toks []types.Token, match TerminalMatcher, st *state, symIdx, endCol int) [][]*types.ParseTree {
	if symIdx < 0 {
		return [][]*types.ParseTree{{}}
	}

	sym := st.prod[symIdx]
	constrainStart := symIdx == 0

	var results [][]*types.ParseTree

	if g.IsTerminal(sym) {
		tokIdx := endCol - 1
		if tokIdx < 0 || tokIdx >= len(toks) {
			return nil
		}
		if constrainStart && st.start != tokIdx {
			return nil
		}
		tok := toks[tokIdx]
		if !match(sym, tok) {
			return nil
		}
		leaf := &types.ParseTree{Terminal: true, Value: sym, Source: tok}
		for _, prefix := range matchSequences(g, cols, toks, match, st, symIdx-1, tokIdx) {
			results = append(results, appendTree(prefix, leaf))
		}
		return results
	}

	for _, cst := range cols[endCol].states {
		if cst == st {
			// states are added to a column in the order they're derived, so
			// st can never depend on a state inserted after it
			break
		}
		if !cst.completed() || cst.head != sym {
			continue
		}
		if constrainStart && cst.start != st.start {
			continue
		}
		childTrees := buildStateTrees(g, cols, toks, match, cst)
		for _, prefix := range matchSequences(g, cols, toks, match, st, symIdx-1, cst.start) {
			for _, childTree := range childTrees {
				results = append(results, appendTree(prefix, childTree))
			}
		}
	}
	return results
}

func appendTree(prefix []*types.ParseTree, t *types.ParseTree) []*types.ParseTree {
	out := make([]*types.ParseTree, len(prefix)+1)
	copy(out, prefix)
	out[len(prefix)] = t
	return out
}
