package lfg

import "github.com/dekarrin/lfgo/internal/ictiobus/types"

// AnnotatedChild pairs an already-annotated child subtree with the schema
// its mother's production assigns to that slot.
type AnnotatedChild struct {
	Node   *AnnotatedNode
	Schema Specification
}

// AnnotatedNode is a parse-tree node decorated with the equation schemas
// its children inherit from its production, or (for a terminal leaf) the
// schema the lexicon assigns to it directly (spec.md §3, "Annotated AST").
type AnnotatedNode struct {
	Symbol   string
	Terminal bool
	Empty    bool
	Hole     bool

	// Token and Schema are only meaningful when Terminal is true: Token is
	// the surface token this leaf dominates, and Schema is the lexical
	// entry's own schema for it (not a schema assigned by a mother).
	Token  types.Token
	Schema Specification

	// Children is only meaningful when the node is an ordinary internal
	// (non-terminal, non-empty, non-hole) node.
	Children []AnnotatedChild
}

// Iterator enumerates a (possibly large) set of AnnotatedNode alternatives
// one at a time. Next returns (nil, false) once exhausted.
type Iterator interface {
	Next() (*AnnotatedNode, bool)
}

// sliceIterator adapts a pre-built slice to Iterator, for the leaf cases
// (terminal, empty, hole) where no combinatorial explosion is possible.
type sliceIterator struct {
	items []*AnnotatedNode
	pos   int
}

func (it *sliceIterator) Next() (*AnnotatedNode, bool) {
	if it.pos >= len(it.items) {
		return nil, false
	}
	n := it.items[it.pos]
	it.pos++
	return n, true
}

// Drain exhausts it, returning every alternative it produced. Annotate uses
// it to collect each child's alternatives, and the LFG driver uses it to
// collect every annotated version of a parse tree before solving them.
func Drain(it Iterator) []*AnnotatedNode {
	var out []*AnnotatedNode
	for {
		n, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, n)
	}
}

// productIterator lazily walks the Cartesian product of one production's
// alternative schema lists against its children's alternative annotated
// subtrees, via a mixed-radix odometer over the per-factor alternative
// slices, rather than materializing every combination up front (spec.md §9,
// second open question: a lazy sequence over the product is acceptable,
// "provided the externally observable set is identical").
type productIterator struct {
	symbol    string
	specLists [][]Specification
	childAlts [][]*AnnotatedNode

	dims []int
	idx  []int
	done bool
}

func newProductIterator(symbol string, specLists [][]Specification, childAlts [][]*AnnotatedNode) *productIterator {
	dims := make([]int, 1+len(childAlts))
	dims[0] = len(specLists)
	for i, alts := range childAlts {
		dims[1+i] = len(alts)
	}
	done := false
	for _, d := range dims {
		if d == 0 {
			done = true
			break
		}
	}
	return &productIterator{
		symbol:    symbol,
		specLists: specLists,
		childAlts: childAlts,
		dims:      dims,
		idx:       make([]int, len(dims)),
		done:      done,
	}
}

func (it *productIterator) Next() (*AnnotatedNode, bool) {
	if it.done {
		return nil, false
	}

	specList := it.specLists[it.idx[0]]
	children := make([]AnnotatedChild, len(it.childAlts))
	for i, alts := range it.childAlts {
		children[i] = AnnotatedChild{Node: alts[it.idx[1+i]], Schema: specList[i]}
	}
	node := &AnnotatedNode{Symbol: it.symbol, Children: children}

	carry := true
	for d := len(it.dims) - 1; d >= 0 && carry; d-- {
		it.idx[d]++
		if it.idx[d] == it.dims[d] {
			it.idx[d] = 0
		} else {
			carry = false
		}
	}
	if carry {
		it.done = true
	}

	return node, true
}

// Annotate builds the set of annotated versions of tree, as an Iterator,
// per spec.md §4.2. A terminal node is annotated once per schema any
// lexical category claiming its symbol assigns to its token; a nonterminal
// node is annotated once per (choice of LFG production matching its CFG
// projection) × (choice of annotated alternative for each child); empty and
// hole nodes pass through with no schema and no children.
func Annotate(g *Grammar, tree *types.ParseTree) Iterator {
	if tree.Empty {
		return &sliceIterator{items: []*AnnotatedNode{{Symbol: tree.Value, Empty: true}}}
	}
	if tree.Hole {
		return &sliceIterator{items: []*AnnotatedNode{{Symbol: tree.Value, Hole: true}}}
	}
	if tree.Terminal {
		var items []*AnnotatedNode
		for _, cat := range g.CategoriesFor(tree.Value) {
			for _, schema := range cat.Classify(tree.Source) {
				items = append(items, &AnnotatedNode{
					Symbol:   tree.Value,
					Terminal: true,
					Token:    tree.Source,
					Schema:   schema,
				})
			}
		}
		return &sliceIterator{items: items}
	}

	childSymbols := make([]string, len(tree.Children))
	childAlts := make([][]*AnnotatedNode, len(tree.Children))
	for i, child := range tree.Children {
		childSymbols[i] = child.Value
		childAlts[i] = Drain(Annotate(g, child))
	}

	specLists := g.SpecsFor(tree.Value, childSymbols)
	return newProductIterator(tree.Value, specLists, childAlts)
}
