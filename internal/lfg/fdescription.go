package lfg

// FDescription is a conjunction of ground equations over a single run's
// absolute identifiers, together with the identifier of the node the whole
// tree was rooted at (spec.md §4.3).
type FDescription struct {
	Equations []Equation[AbsID]
	Root      AbsID
}

// BuildFDescription walks root, minting one fresh AbsID per node visited via
// gen and grounding every child schema against (ID(mother), ID(child)).
//
// A terminal leaf carries its own schema (from the lexicon, not from a
// mother's production) — spec.md §3 describes it as carrying "(token,
// specification)" directly rather than inheriting one. Since a leaf has no
// child to ground against, its own schema is grounded reflexively, with
// both UP and DOWN bound to the leaf's own id; this is the only choice
// under which S2's lexical entry for "NP → john" (binding ↑.PRED and
// ↑.NUM with no corresponding ↓) lands its attributes on NP's own
// f-structure rather than nowhere.
func BuildFDescription(gen *IDGenerator, root *AnnotatedNode) FDescription {
	var eqs []Equation[AbsID]
	rootID := buildNode(gen, root, &eqs)
	return FDescription{Equations: eqs, Root: rootID}
}

func buildNode(gen *IDGenerator, node *AnnotatedNode, eqs *[]Equation[AbsID]) AbsID {
	id := gen.Generate()

	switch {
	case node.Empty, node.Hole:
		return id
	case node.Terminal:
		*eqs = append(*eqs, ground(id, id, node.Schema))
		return id
	}

	for _, c := range node.Children {
		childID := buildNode(gen, c.Node, eqs)
		*eqs = append(*eqs, ground(id, childID, c.Schema))
	}
	return id
}
