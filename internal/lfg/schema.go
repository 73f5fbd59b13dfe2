package lfg

import "github.com/dekarrin/lfgo/internal/ictiobus/types"

// Specification is a single annotation schema: an equation over relative
// identifiers, attached to one child slot of one production (spec.md §3).
type Specification = Equation[RelKind]

// ChildSpec pairs a CFG symbol (terminal or non-terminal) with the schema
// its occurrence inherits from the production it is a slot of.
type ChildSpec struct {
	Symbol string
	Schema Specification
}

// LFGProduction is a CFG production paired with one equation schema per RHS
// symbol: "(parent symbol, ordered list of (child symbol, annotation
// schema))" (spec.md §6).
type LFGProduction struct {
	Parent   string
	Children []ChildSpec
}

// symbols returns the CFG projection of p: the bare ordered symbol list
// with schemas stripped, suitable for use as a grammar.Production.
func (p LFGProduction) symbols() []string {
	syms := make([]string, len(p.Children))
	for i, c := range p.Children {
		syms[i] = c.Symbol
	}
	return syms
}

// schemas returns the ordered schema list of p, one per child slot.
func (p LFGProduction) schemas() []Specification {
	specs := make([]Specification, len(p.Children))
	for i, c := range p.Children {
		specs[i] = c.Schema
	}
	return specs
}

// LexicalCategory is "a symbol, token → set-of-schemas": a named class of
// terminal-dominating parse-tree leaf, whose own schema (not the schema
// assigned to it by any mother production) is supplied by looking up the
// surface token. A single category may yield more than one schema for a
// token (conjoined or offered as alternatives by the grammar author); it
// always yields at least one schema for any token it claims to classify.
type LexicalCategory struct {
	Symbol string

	// Classify returns the set of schemas this category assigns to tok, or
	// nil if tok does not belong to this category at all.
	Classify func(tok types.Token) []Specification
}
