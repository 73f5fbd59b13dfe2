package lfg

import (
	"fmt"
	"sort"
	"strings"
)

// governableAttrs are the grammatical-function attribute names subject to
// coherence/completeness checking against a semantic form's role list.
// Attributes outside this set (TENSE, NUM, ADJUNCTS, ...) are never
// governed, matching conventional LFG practice of distinguishing governable
// grammatical functions from adjuncts and other non-governed information;
// spec.md §4.4 describes the requirement but, consistent with its own
// simplifications elsewhere, does not enumerate which attributes count as
// governable, so this fixed list is this implementation's choice (recorded
// in DESIGN.md).
var governableAttrs = map[string]bool{
	"SUBJ": true, "OBJ": true, "OBJ2": true,
	"COMP": true, "XCOMP": true, "OBL": true,
}

// Solve computes every minimal F-structure satisfying desc (spec.md §4.4),
// deduplicated by structural equality of their canonical form (spec.md §6:
// "duplicates ... are collapsed").
func Solve(desc FDescription) []*FValue {
	branches := expand(desc.Equations)

	var results []*FValue
	seen := map[string]bool{}
	for _, flat := range branches {
		fv, ok := solveBranch(flat, desc.Root)
		if !ok {
			continue
		}
		key := fv.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, fv)
	}
	return results
}

// expand performs disjunction expansion (spec.md §4.4, phase 1): a
// description containing Disjunction(a, b) fans out into two branches, one
// per disjunct; Conjunction(a, b) simply flattens into both conjuncts
// landing in every branch that already exists. The result is a set of
// disjunction-free, flat equation lists, one per branch.
func expand(eqs []Equation[AbsID]) [][]Equation[AbsID] {
	branches := [][]Equation[AbsID]{{}}
	for _, eq := range eqs {
		branches = expandOne(branches, eq)
	}
	return branches
}

func expandOne(branches [][]Equation[AbsID], eq Equation[AbsID]) [][]Equation[AbsID] {
	switch {
	case eq.IsConjunction():
		branches = expandOne(branches, eq.Left())
		branches = expandOne(branches, eq.Right())
		return branches
	case eq.IsDisjunction():
		left := expandOne(cloneBranches(branches), eq.Left())
		right := expandOne(cloneBranches(branches), eq.Right())
		out := make([][]Equation[AbsID], 0, len(left)+len(right))
		out = append(out, left...)
		out = append(out, right...)
		return out
	default:
		for i := range branches {
			branches[i] = append(branches[i], eq)
		}
		return branches
	}
}

func cloneBranches(branches [][]Equation[AbsID]) [][]Equation[AbsID] {
	out := make([][]Equation[AbsID], len(branches))
	for i, b := range branches {
		c := make([]Equation[AbsID], len(b))
		copy(c, b)
		out[i] = c
	}
	return out
}

// solveBranch runs the defining-equation fixed point and then constraint
// checking over one disjunction-free equation list, in its own branch
// state (spec.md §4.4, phases 2-4).
func solveBranch(flat []Equation[AbsID], root AbsID) (*FValue, bool) {
	b := newBranch(NewIDGenerator())

	var defining, constraints []Equation[AbsID]
	for _, eq := range flat {
		if eq.IsAssignment() || eq.IsContainment() {
			defining = append(defining, eq)
		} else {
			constraints = append(constraints, eq)
		}
	}

	// Processing each defining equation is confluent (spec.md §4.4, §9):
	// every step only merges or binds, monotonically. A second pass is
	// cheap insurance and a no-op once the first pass has reached the
	// fixed point.
	for pass := 0; pass < 2; pass++ {
		for _, eq := range defining {
			var err error
			if eq.IsAssignment() {
				err = processAssign(b, eq)
			} else {
				err = b.addToSet(eq.LHS(), eq.RHS())
			}
			if err != nil {
				return nil, false
			}
		}
	}

	for _, eq := range constraints {
		if !checkConstraint(b, eq) {
			return nil, false
		}
	}

	if err := checkGovernance(b); err != nil {
		return nil, false
	}

	return canonicalize(b, root, map[AbsID]*FValue{}), true
}

// processAssign implements the three Assign rows of spec.md §4.4's table:
// resolving the LHS lazily already performs lazy feature creation, so the
// three cases collapse into "resolve the target, then bind or union the
// right-hand side into it".
func processAssign(b *branch, eq Equation[AbsID]) error {
	targetID, err := b.resolveLazy(eq.LHS())
	if err != nil {
		return err
	}
	rhs := eq.RHS()
	if rhs.IsAtom() {
		return b.assignAtom(targetID, rhs.AtomValue())
	}
	rhsID, err := b.resolveLazy(rhs)
	if err != nil {
		return err
	}
	return b.unify(targetID, rhsID)
}

// checkConstraint evaluates one constraint equation with a read-only
// resolver (spec.md §4.4, phase 3): it never mutates b.
func checkConstraint(b *branch, eq Equation[AbsID]) bool {
	switch {
	case eq.IsEquals():
		return equalsHolds(b, eq.LHS(), eq.RHS()) == eq.Polarity()
	case eq.IsContains():
		return containsHolds(b, eq.LHS(), eq.RHS()) == eq.Polarity()
	case eq.IsExists():
		_, ok := b.resolveReadOnly(eq.LHS())
		return ok == eq.Polarity()
	}
	return false
}

func equalsHolds(b *branch, l, r Expression[AbsID]) bool {
	if l.IsAtom() && r.IsAtom() {
		return l.AtomValue().Equal(r.AtomValue())
	}
	if l.IsAtom() != r.IsAtom() {
		atomSide, idSide := l, r
		if r.IsAtom() {
			atomSide, idSide = r, l
		}
		id, ok := b.resolveReadOnly(idSide)
		if !ok {
			return false
		}
		v := b.valueOf(id)
		return v.kind == valAtom && v.atom.Equal(atomSide.AtomValue())
	}

	lid, lok := b.resolveReadOnly(l)
	rid, rok := b.resolveReadOnly(r)
	if !lok || !rok {
		return false
	}
	if b.find(lid) == b.find(rid) {
		return true
	}
	lv, rv := b.valueOf(lid), b.valueOf(rid)
	return lv.kind == valAtom && rv.kind == valAtom && lv.atom.Equal(rv.atom)
}

func containsHolds(b *branch, e, c Expression[AbsID]) bool {
	cid, ok := b.resolveReadOnly(c)
	if !ok {
		return false
	}
	v := b.valueOf(cid)
	if v.kind != valSet {
		return false
	}
	eid, ok := b.resolveReadOnly(e)
	if !ok {
		return false
	}
	rep := b.find(eid)
	for elem := range v.set {
		if b.find(elem) == rep {
			return true
		}
	}
	return false
}

// checkGovernance implements spec.md §4.4, phase 4: every semantic form
// bound under a PRED attribute requires each of its roles to be a sister
// attribute (completeness) and forbids any other governable attribute from
// appearing alongside it (coherence).
func checkGovernance(b *branch) error {
	for _, v := range b.values {
		if v.kind != valFeatures {
			continue
		}
		predID, ok := v.features["PRED"]
		if !ok {
			continue
		}
		pv := b.valueOf(predID)
		if pv.kind != valAtom || !pv.atom.IsForm() {
			continue
		}
		form := pv.atom.AsForm()

		roles := map[string]bool{}
		for _, r := range form.Roles {
			roles[r] = true
		}
		for _, r := range form.Roles {
			if _, ok := v.features[r]; !ok {
				return fmt.Errorf("completeness failure: %s requires attribute %q", form, r)
			}
		}
		for attr := range v.features {
			if attr == "PRED" || roles[attr] {
				continue
			}
			if governableAttrs[attr] {
				return fmt.Errorf("coherence failure: %s does not govern attribute %q", form, attr)
			}
		}
	}
	return nil
}

// FValueKind distinguishes the four shapes a canonicalized F-structure
// value may take, mirroring valueKind but over the immutable public result
// type.
type FValueKind int

const (
	FValUnset FValueKind = iota
	FValAtom
	FValFeatures
	FValSet
)

// FValue is an immutable, canonicalized node of a solved F-structure: every
// identifier has been replaced by its disjoint-set class representative,
// so structurally-identical results compare equal via String().
type FValue struct {
	Kind     FValueKind
	Atom     Atom
	Features map[string]*FValue
	Set      []*FValue
}

// canonicalize walks id's class and every class reachable from it, building
// an immutable FValue tree. memo breaks cycles introduced by reentrant
// sharing (the same class reachable via two attribute paths) by returning
// the same *FValue pointer for a representative visited more than once.
func canonicalize(b *branch, id AbsID, memo map[AbsID]*FValue) *FValue {
	rep := b.find(id)
	if existing, ok := memo[rep]; ok {
		return existing
	}
	fv := &FValue{}
	memo[rep] = fv

	v := b.valueOf(rep)
	switch v.kind {
	case valUnset:
		fv.Kind = FValUnset
	case valAtom:
		fv.Kind = FValAtom
		fv.Atom = v.atom
	case valFeatures:
		fv.Kind = FValFeatures
		fv.Features = make(map[string]*FValue, len(v.features))
		for attr, target := range v.features {
			fv.Features[attr] = canonicalize(b, target, memo)
		}
	case valSet:
		fv.Kind = FValSet
		for elem := range v.set {
			fv.Set = append(fv.Set, canonicalize(b, elem, memo))
		}
	}
	return fv
}

func (v *FValue) String() string {
	return v.stringWith(map[*FValue]bool{})
}

func (v *FValue) stringWith(visiting map[*FValue]bool) string {
	if visiting[v] {
		return "<cycle>"
	}
	visiting[v] = true
	defer delete(visiting, v)

	switch v.Kind {
	case FValUnset:
		return "⊥"
	case FValAtom:
		return v.Atom.String()
	case FValFeatures:
		keys := make([]string, 0, len(v.Features))
		for k := range v.Features {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var sb strings.Builder
		sb.WriteString("{")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s: %s", k, v.Features[k].stringWith(visiting))
		}
		sb.WriteString("}")
		return sb.String()
	case FValSet:
		items := make([]string, len(v.Set))
		for i, e := range v.Set {
			items[i] = e.stringWith(visiting)
		}
		sort.Strings(items)
		return "{" + strings.Join(items, ", ") + "}"
	}
	return "?"
}

// Equal reports whether v and o are structurally identical, i.e. whether
// they'd be collapsed as duplicates by Solve.
func (v *FValue) Equal(o *FValue) bool {
	return v.String() == o.String()
}
