package lfg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ValidateSchema_rejectsBareAtomAssignLHS(t *testing.T) {
	bad := Assign(AtomExpr[RelKind](Symbol("SG")), BareID[RelKind](DOWN))
	err := ValidateSchema("NP", bad)

	var gramErr *GrammarError
	if assert.Error(t, err) && assert.True(t, errors.As(err, &gramErr)) {
		assert.Equal(t, "NP", gramErr.Parent)
	}
}

func Test_ValidateSchema_rejectsBareAtomContainLHS(t *testing.T) {
	bad := Contain(AtomExpr[RelKind](Symbol("SG")), BareID[RelKind](UP))
	assert.Error(t, ValidateSchema("NP", bad))
}

func Test_ValidateSchema_acceptsWellFormedSchemas(t *testing.T) {
	up, down := BareID[RelKind](UP), BareID[RelKind](DOWN)

	good := []Specification{
		Assign(AttrOf(up, "SUBJ"), down),
		Contain(down, AttrOf(up, "ADJUNCTS")),
		Equals(true, AttrOf(up, "NUM"), AtomExpr[RelKind](Symbol("SG"))),
		Exists(true, AttrOf(up, "OBJ")),
		Conjunction(Assign(AttrOf(up, "SUBJ"), down), Equals(true, up, down)),
	}
	for _, s := range good {
		assert.NoError(t, ValidateSchema("S", s))
	}
}

func Test_ValidateSchema_recursesThroughCompoundEquations(t *testing.T) {
	bad := Assign(AtomExpr[RelKind](Symbol("SG")), BareID[RelKind](DOWN))
	good := Equals(true, BareID[RelKind](UP), BareID[RelKind](DOWN))

	assert.Error(t, ValidateSchema("S", Disjunction(good, bad)))
	assert.Error(t, ValidateSchema("S", Conjunction(bad, good)))
}

func Test_ValidateGrammar_findsMalformedProduction(t *testing.T) {
	g := NewGrammar()
	bad := Assign(AtomExpr[RelKind](Symbol("SG")), BareID[RelKind](DOWN))
	g.AddProduction(LFGProduction{
		Parent:   "NP",
		Children: []ChildSpec{{Symbol: "john", Schema: bad}},
	})

	err := ValidateGrammar(g)
	assert.Error(t, err)
}

func Test_ValidateGrammar_passesWellFormedGrammar(t *testing.T) {
	g := sentenceGrammar()
	assert.NoError(t, ValidateGrammar(g))
}
