package lfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_branch_find_unifiedIDsShareRepresentative(t *testing.T) {
	gen := NewIDGenerator()
	b := newBranch(gen)
	x, y, z := gen.Generate(), gen.Generate(), gen.Generate()

	assert.NoError(t, b.unify(x, y))
	assert.NoError(t, b.unify(y, z))

	assert.Equal(t, b.find(x), b.find(y))
	assert.Equal(t, b.find(y), b.find(z))
}

func Test_branch_unify_atomsMustMatch(t *testing.T) {
	gen := NewIDGenerator()
	b := newBranch(gen)
	x, y := gen.Generate(), gen.Generate()

	assert.NoError(t, b.assignAtom(x, Symbol("SG")))
	assert.NoError(t, b.assignAtom(y, Symbol("SG")))
	assert.NoError(t, b.unify(x, y))

	z := gen.Generate()
	assert.NoError(t, b.assignAtom(z, Symbol("PL")))
	assert.Error(t, b.unify(x, z))
}

func Test_branch_resolveLazy_createsFeatureChain(t *testing.T) {
	gen := NewIDGenerator()
	b := newBranch(gen)
	root := gen.Generate()

	subjID, err := b.resolveLazy(AttrOf(BareID(root), "SUBJ"))
	assert.NoError(t, err)
	assert.NotEqual(t, NilAbsID, subjID)

	// resolving the same path again returns the same identifier.
	again, err := b.resolveLazy(AttrOf(BareID(root), "SUBJ"))
	assert.NoError(t, err)
	assert.Equal(t, subjID, again)
}

func Test_branch_resolveReadOnly_failsWithoutExtending(t *testing.T) {
	gen := NewIDGenerator()
	b := newBranch(gen)
	root := gen.Generate()

	_, ok := b.resolveReadOnly(AttrOf(BareID(root), "SUBJ"))
	assert.False(t, ok)

	// the read-only resolution must not have created the feature.
	v := b.valueOf(root)
	assert.Equal(t, valUnset, v.kind)
}

func Test_branch_addToSet_unionsAcrossCalls(t *testing.T) {
	gen := NewIDGenerator()
	b := newBranch(gen)
	root := gen.Generate()
	elem1, elem2 := gen.Generate(), gen.Generate()

	assert.NoError(t, b.addToSet(BareID(elem1), AttrOf(BareID(root), "ADJUNCTS")))
	assert.NoError(t, b.addToSet(BareID(elem2), AttrOf(BareID(root), "ADJUNCTS")))

	containerID, ok := b.resolveReadOnly(AttrOf(BareID(root), "ADJUNCTS"))
	assert.True(t, ok)
	v := b.valueOf(containerID)
	assert.Equal(t, valSet, v.kind)
	assert.Len(t, v.set, 2)
}

func Test_branch_mergeValues_featureUnification(t *testing.T) {
	gen := NewIDGenerator()
	b := newBranch(gen)
	x, y := gen.Generate(), gen.Generate()

	xSubj, err := b.resolveLazy(AttrOf(BareID(x), "SUBJ"))
	assert.NoError(t, err)
	assert.NoError(t, b.assignAtom(xSubj, Symbol("SG")))

	ySubj, err := b.resolveLazy(AttrOf(BareID(y), "SUBJ"))
	assert.NoError(t, err)
	assert.NoError(t, b.assignAtom(ySubj, Symbol("SG")))

	assert.NoError(t, b.unify(x, y))

	merged, ok := b.resolveReadOnly(AttrOf(BareID(x), "SUBJ"))
	assert.True(t, ok)
	v := b.valueOf(merged)
	assert.Equal(t, valAtom, v.kind)
	assert.True(t, v.atom.Equal(Symbol("SG")))
}
