package lfg

import (
	"fmt"

	"github.com/dekarrin/lfgo/internal/util"
)

// valueKind distinguishes the four shapes an f-structure class's value may
// take (spec.md §3): unset, atom, feature map, or set of identifiers.
type valueKind int

const (
	valUnset valueKind = iota
	valAtom
	valFeatures
	valSet
)

// value is what one equivalence class currently holds. Only the field
// matching kind is meaningful.
type value struct {
	kind     valueKind
	atom     Atom
	features map[string]AbsID
	set      util.KeySet[AbsID]
}

// branch is one solver branch's mutable state: a disjoint-set union over
// AbsID plus a value per equivalence class. It is never shared across
// branches (spec.md §5): each disjunction alternative gets its own fresh
// branch. The disjoint-set itself is a small hand-rolled implementation —
// no union-find appears anywhere in the example pack (checked
// internal/util, the rest of internal/ictiobus, and the other reference
// repos' own unification code), and at this size reaching for a dependency
// would be the non-idiomatic choice.
type branch struct {
	gen    *IDGenerator
	parent map[AbsID]AbsID
	values map[AbsID]*value
}

func newBranch(gen *IDGenerator) *branch {
	return &branch{gen: gen, parent: map[AbsID]AbsID{}, values: map[AbsID]*value{}}
}

// find returns the representative of id's equivalence class, path
// compressing along the way. Path compression is safe here because values
// only ever grow (spec.md §9): a class's value is never invalidated by
// later discovering its representative changed.
func (b *branch) find(id AbsID) AbsID {
	p, ok := b.parent[id]
	if !ok {
		b.parent[id] = id
		return id
	}
	if p == id {
		return id
	}
	root := b.find(p)
	b.parent[id] = root
	return root
}

// valueOf returns (creating if necessary) the value held by id's class.
func (b *branch) valueOf(id AbsID) *value {
	r := b.find(id)
	v, ok := b.values[r]
	if !ok {
		v = &value{kind: valUnset}
		b.values[r] = v
	}
	return v
}

// unify merges x's and y's equivalence classes, merging their values
// (recursively unifying any attribute present on both) and failing if the
// two values have incompatible shapes (spec.md §3, invariants a and b).
func (b *branch) unify(x, y AbsID) error {
	rx, ry := b.find(x), b.find(y)
	if rx == ry {
		return nil
	}
	merged, err := b.mergeValues(b.valueOf(rx), b.valueOf(ry))
	if err != nil {
		return err
	}
	b.parent[ry] = rx
	b.values[rx] = merged
	delete(b.values, ry)
	return nil
}

func (b *branch) mergeValues(x, y *value) (*value, error) {
	if x.kind == valUnset {
		return y, nil
	}
	if y.kind == valUnset {
		return x, nil
	}
	switch {
	case x.kind == valAtom && y.kind == valAtom:
		if !x.atom.Equal(y.atom) {
			return nil, fmt.Errorf("unification clash: incompatible atoms %s and %s", x.atom, y.atom)
		}
		return x, nil
	case x.kind == valAtom || y.kind == valAtom:
		return nil, fmt.Errorf("unification clash: atom merged with structured value")
	case x.kind == valSet && y.kind == valSet:
		for elem := range y.set {
			x.set.Add(elem)
		}
		return x, nil
	case x.kind == valSet || y.kind == valSet:
		return nil, fmt.Errorf("unification clash: set merged with feature map")
	case x.kind == valFeatures && y.kind == valFeatures:
		for attr, target := range y.features {
			if existing, ok := x.features[attr]; ok {
				if err := b.unify(existing, target); err != nil {
					return nil, err
				}
			} else {
				x.features[attr] = target
			}
		}
		return x, nil
	}
	return nil, fmt.Errorf("unification clash: incompatible value shapes")
}

// resolveLazy resolves e to an identifier, extending the feature chain with
// fresh identifiers wherever an attribute access crosses an unbound
// attribute (spec.md §4.4, "Lazy feature creation"). It is only valid to
// call during the defining-equation fixed point; e must not be a bare atom.
func (b *branch) resolveLazy(e Expression[AbsID]) (AbsID, error) {
	switch {
	case e.IsBareID():
		return e.ID(), nil
	case e.IsAttr():
		baseID, err := b.resolveLazy(e.Base())
		if err != nil {
			return NilAbsID, err
		}
		v := b.valueOf(baseID)
		switch v.kind {
		case valUnset:
			v.kind = valFeatures
			v.features = map[string]AbsID{}
		case valFeatures:
			// already a feature map; fall through
		default:
			return NilAbsID, fmt.Errorf("cannot access attribute %q: value is not a feature map", e.Attr())
		}
		target, ok := v.features[e.Attr()]
		if !ok {
			target = b.gen.Generate()
			v.features[e.Attr()] = target
		}
		return target, nil
	default:
		return NilAbsID, fmt.Errorf("cannot resolve a bare atom to an identifier")
	}
}

// resolveReadOnly resolves e to an identifier without mutating the branch,
// failing (ok=false) the moment it would need to extend the feature chain
// (spec.md §4.4: "the same dereference must be read-only" during
// constraint checking, so that a negative constraint never has a
// side-effect).
func (b *branch) resolveReadOnly(e Expression[AbsID]) (AbsID, bool) {
	switch {
	case e.IsBareID():
		return e.ID(), true
	case e.IsAttr():
		baseID, ok := b.resolveReadOnly(e.Base())
		if !ok {
			return NilAbsID, false
		}
		v := b.valueOf(baseID)
		if v.kind != valFeatures {
			return NilAbsID, false
		}
		target, ok := v.features[e.Attr()]
		return target, ok
	default:
		return NilAbsID, false
	}
}

// assignAtom binds atom as id's value, failing on a conflicting existing
// atom or a non-atomic existing value.
func (b *branch) assignAtom(id AbsID, atom Atom) error {
	v := b.valueOf(id)
	switch v.kind {
	case valUnset:
		v.kind = valAtom
		v.atom = atom
		return nil
	case valAtom:
		if !v.atom.Equal(atom) {
			return fmt.Errorf("unification clash: %s already bound to %s, cannot assign %s", id, v.atom, atom)
		}
		return nil
	default:
		return fmt.Errorf("unification clash: %s already a structured value, cannot assign atom %s", id, atom)
	}
}

// addToSet resolves container lazily, ensures it is (or becomes) a set, and
// adds elem's resolved identifier to it.
func (b *branch) addToSet(elemExpr, containerExpr Expression[AbsID]) error {
	elemID, err := b.resolveLazy(elemExpr)
	if err != nil {
		return err
	}
	containerID, err := b.resolveLazy(containerExpr)
	if err != nil {
		return err
	}
	v := b.valueOf(containerID)
	switch v.kind {
	case valUnset:
		v.kind = valSet
		v.set = util.NewKeySet[AbsID]()
	case valSet:
		// already a set
	default:
		return fmt.Errorf("unification clash: %s is not a set", containerID)
	}
	v.set.Add(elemID)
	return nil
}
