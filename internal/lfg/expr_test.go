package lfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Atom_Equal(t *testing.T) {
	assert.True(t, Symbol("SG").Equal(Symbol("SG")))
	assert.False(t, Symbol("SG").Equal(Symbol("PL")))
	assert.True(t, Bool(true).Equal(Bool(true)))
	assert.False(t, Bool(true).Equal(Bool(false)))
	assert.True(t, Form("kiss", "SUBJ", "OBJ").Equal(Form("kiss", "SUBJ", "OBJ")))
	assert.False(t, Form("kiss", "SUBJ", "OBJ").Equal(Form("kiss", "SUBJ")))
	assert.False(t, Symbol("x").Equal(Bool(true)))
}

func Test_Atom_accessors(t *testing.T) {
	a := Symbol("SG")
	assert.True(t, a.IsSymbol())
	assert.False(t, a.IsBool())
	assert.False(t, a.IsForm())
	assert.Equal(t, "SG", a.AsSymbol())

	b := Bool(false)
	assert.True(t, b.IsBool())
	assert.Equal(t, false, b.AsBool())

	f := Form("kiss", "SUBJ", "OBJ")
	assert.True(t, f.IsForm())
	assert.Equal(t, SemanticForm{Pred: "kiss", Roles: []string{"SUBJ", "OBJ"}}, f.AsForm())
}

func Test_SemanticForm_String(t *testing.T) {
	f := Form("kiss", "SUBJ", "OBJ")
	assert.Equal(t, "kiss〈SUBJ, OBJ〉", f.AsForm().String())
}

func Test_Expression_BareID(t *testing.T) {
	e := BareID(UP)
	assert.True(t, e.IsBareID())
	assert.False(t, e.IsAttr())
	assert.False(t, e.IsAtom())
	assert.Equal(t, UP, e.ID())
}

func Test_Expression_AttrOf(t *testing.T) {
	e := AttrOf(AttrOf(BareID(UP), "SUBJ"), "NUM")
	assert.True(t, e.IsAttr())
	assert.Equal(t, "NUM", e.Attr())
	assert.True(t, e.Base().IsAttr())
	assert.Equal(t, "SUBJ", e.Base().Attr())
	assert.True(t, e.Base().Base().IsBareID())
	assert.Equal(t, "↑.SUBJ.NUM", e.String())
}

func Test_Expression_AtomExpr(t *testing.T) {
	e := AtomExpr[RelKind](Symbol("SG"))
	assert.True(t, e.IsAtom())
	assert.Equal(t, "SG", e.AtomValue().AsSymbol())
	assert.Equal(t, "SG", e.String())
}
