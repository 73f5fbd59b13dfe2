package lfg

import (
	"github.com/dekarrin/lfgo/internal/ictiobus/grammar"
	"github.com/dekarrin/lfgo/internal/ictiobus/types"
)

// Grammar is the core's view of "a set of LFG productions, a set of
// lexical categories, and an optional start symbol" (spec.md §6). It is
// the input to the LFG driver and the thing internal/lfgfile's TOML loader
// builds from configuration.
type Grammar struct {
	order       []string
	productions map[string][]LFGProduction
	categories  map[string][]LexicalCategory
	start       string
}

// NewGrammar returns an empty Grammar.
func NewGrammar() *Grammar {
	return &Grammar{
		productions: map[string][]LFGProduction{},
		categories:  map[string][]LexicalCategory{},
	}
}

// SetStart sets the grammar's start symbol.
func (g *Grammar) SetStart(sym string) { g.start = sym }

// StartSymbol returns the configured start symbol, defaulting to "S".
func (g *Grammar) StartSymbol() string {
	if g.start == "" {
		return "S"
	}
	return g.start
}

// AddProduction registers p as one of the LFG productions for its parent
// symbol.
func (g *Grammar) AddProduction(p LFGProduction) {
	if _, ok := g.productions[p.Parent]; !ok {
		g.order = append(g.order, p.Parent)
	}
	g.productions[p.Parent] = append(g.productions[p.Parent], p)
}

// AddLexicalCategory registers c as one of the lexical categories claiming
// symbol c.Symbol.
func (g *Grammar) AddLexicalCategory(c LexicalCategory) {
	g.categories[c.Symbol] = append(g.categories[c.Symbol], c)
}

// IsNonTerminal reports whether sym has at least one LFG production
// defined for it, i.e. the CFG parser must expand it rather than match it
// directly against a token.
func (g *Grammar) IsNonTerminal(sym string) bool {
	_, ok := g.productions[sym]
	return ok
}

// CategoriesFor returns every lexical category claiming symbol.
func (g *Grammar) CategoriesFor(symbol string) []LexicalCategory {
	return g.categories[symbol]
}

// SpecsFor returns every alternative schema list ("specification set",
// spec.md §2) contributed by an LFG production whose parent is parent and
// whose CFG projection matches symbols exactly, in the order productions
// were added (spec.md §4.2: "Look up all LFG productions whose CFG
// projection equals P").
func (g *Grammar) SpecsFor(parent string, symbols []string) [][]Specification {
	var out [][]Specification
	for _, p := range g.productions[parent] {
		if sameSymbols(p.symbols(), symbols) {
			out = append(out, p.schemas())
		}
	}
	return out
}

func sameSymbols(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Compile projects every LFG production onto its bare CFG production,
// building the grammar the parser collaborator consumes. Grounded on
// spec.md §4.5: "project each LFG production to a CFG production ... to
// obtain the specification sets; build a CFG from those projections plus
// the lexical categories' CFG-level symbols".
func (g *Grammar) Compile() *grammar.Grammar {
	cfg := grammar.NewGrammar()
	cfg.Start = g.start
	for _, parent := range g.order {
		for _, p := range g.productions[parent] {
			cfg.AddRule(parent, grammar.Production(p.symbols()))
		}
	}
	return cfg
}

// TerminalMatcher returns the parse.TerminalMatcher backed by this
// grammar's lexical categories: a terminal symbol matches a token whenever
// some category registered under that symbol classifies the token at all.
func (g *Grammar) TerminalMatcher() func(symbol string, tok types.Token) bool {
	return func(symbol string, tok types.Token) bool {
		for _, cat := range g.categories[symbol] {
			if len(cat.Classify(tok)) > 0 {
				return true
			}
		}
		return false
	}
}
