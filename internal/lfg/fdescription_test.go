package lfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test_BuildFDescription_terminalGroundsReflexively exercises the documented
// open-question decision in fdescription.go: a terminal leaf's own schema is
// grounded with both UP and DOWN bound to the leaf's own id.
func Test_BuildFDescription_terminalGroundsReflexively(t *testing.T) {
	up := BareID[RelKind](UP)
	leaf := &AnnotatedNode{
		Symbol:   "ProperNoun",
		Terminal: true,
		Schema:   Assign(AttrOf(up, "PRED"), AtomExpr[RelKind](Form("john"))),
	}

	desc := BuildFDescription(NewIDGenerator(), leaf)
	if assert.Len(t, desc.Equations, 1) {
		eq := desc.Equations[0]
		assert.True(t, eq.IsAssignment())
		// both the attribute's base and the (implicit) DOWN side ground to
		// the leaf's own freshly-minted id, which is also FDescription.Root.
		assert.Equal(t, desc.Root, eq.LHS().Base().ID())
	}
}

func Test_BuildFDescription_childrenGroundAgainstMotherAndSelf(t *testing.T) {
	up, down := BareID[RelKind](UP), BareID[RelKind](DOWN)

	npLeaf := &AnnotatedNode{
		Symbol:   "NP",
		Terminal: true,
		Schema:   Assign(AttrOf(up, "PRED"), AtomExpr[RelKind](Form("john"))),
	}
	vpLeaf := &AnnotatedNode{
		Symbol:   "VP",
		Terminal: true,
		Schema:   Assign(AttrOf(up, "PRED"), AtomExpr[RelKind](Form("runs"))),
	}
	root := &AnnotatedNode{
		Symbol: "S",
		Children: []AnnotatedChild{
			{Node: npLeaf, Schema: Assign(AttrOf(up, "SUBJ"), down)},
			{Node: vpLeaf, Schema: Equals(true, up, down)},
		},
	}

	desc := BuildFDescription(NewIDGenerator(), root)
	// 1 equation per leaf's own schema + 1 grounded equation per child slot.
	assert.Len(t, desc.Equations, 4)

	// the grounded equation for the SUBJ slot should have its LHS base equal
	// to the root id and its RHS equal to some other (the NP's) id.
	var sawSubjEq bool
	for _, eq := range desc.Equations {
		if eq.IsAssignment() && eq.LHS().IsAttr() && eq.LHS().Attr() == "SUBJ" {
			sawSubjEq = true
			assert.Equal(t, desc.Root, eq.LHS().Base().ID())
			assert.NotEqual(t, desc.Root, eq.RHS().ID())
		}
	}
	assert.True(t, sawSubjEq, "expected a grounded SUBJ equation among %v", desc.Equations)
}

func Test_BuildFDescription_emptyAndHoleMintIdButNoEquations(t *testing.T) {
	empty := &AnnotatedNode{Symbol: "NP", Empty: true}
	desc := BuildFDescription(NewIDGenerator(), empty)
	assert.Empty(t, desc.Equations)
	assert.NotEqual(t, NilAbsID, desc.Root)

	hole := &AnnotatedNode{Symbol: "ADV", Hole: true}
	desc = BuildFDescription(NewIDGenerator(), hole)
	assert.Empty(t, desc.Equations)
	assert.NotEqual(t, NilAbsID, desc.Root)
}
