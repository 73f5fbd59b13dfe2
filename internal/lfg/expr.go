package lfg

import (
	"fmt"
	"strings"
)

// SemanticForm is a predicate name paired with the ordered list of role
// names it governs, e.g. kiss⟨SUBJ, OBJ⟩. Semantic forms are unifiable only
// by identity: two forms are equal only if predicate and every role name
// match exactly.
type SemanticForm struct {
	Pred  string
	Roles []string
}

// Equal reports whether f and o name the same predicate over the same
// ordered roles.
func (f SemanticForm) Equal(o SemanticForm) bool {
	if f.Pred != o.Pred || len(f.Roles) != len(o.Roles) {
		return false
	}
	for i := range f.Roles {
		if f.Roles[i] != o.Roles[i] {
			return false
		}
	}
	return true
}

func (f SemanticForm) String() string {
	return fmt.Sprintf("%s〈%s〉", f.Pred, strings.Join(f.Roles, ", "))
}

// atomKind distinguishes the three shapes an Atom may take.
type atomKind int

const (
	atomSymbol atomKind = iota
	atomBool
	atomForm
)

// Atom is a leaf value in the expression algebra: a symbol string, a
// boolean, or a semantic form. Atoms never contain an identifier.
type Atom struct {
	kind   atomKind
	symbol string
	bval   bool
	form   SemanticForm
}

// Symbol returns an atom holding the bare symbol s (e.g. SG, PAST).
func Symbol(s string) Atom { return Atom{kind: atomSymbol, symbol: s} }

// Bool returns an atom holding the boolean b.
func Bool(b bool) Atom { return Atom{kind: atomBool, bval: b} }

// Form returns an atom holding a semantic form.
func Form(pred string, roles ...string) Atom {
	return Atom{kind: atomForm, form: SemanticForm{Pred: pred, Roles: roles}}
}

// IsSymbol, IsBool and IsForm report which of the three shapes the atom
// holds, and the accessors return the held value; callers must check the
// shape before using the corresponding accessor.
func (a Atom) IsSymbol() bool         { return a.kind == atomSymbol }
func (a Atom) IsBool() bool           { return a.kind == atomBool }
func (a Atom) IsForm() bool           { return a.kind == atomForm }
func (a Atom) AsSymbol() string       { return a.symbol }
func (a Atom) AsBool() bool           { return a.bval }
func (a Atom) AsForm() SemanticForm   { return a.form }

// Equal reports whether a and o hold the same kind of value and that value
// compares equal.
func (a Atom) Equal(o Atom) bool {
	if a.kind != o.kind {
		return false
	}
	switch a.kind {
	case atomSymbol:
		return a.symbol == o.symbol
	case atomBool:
		return a.bval == o.bval
	case atomForm:
		return a.form.Equal(o.form)
	}
	return false
}

func (a Atom) String() string {
	switch a.kind {
	case atomSymbol:
		return a.symbol
	case atomBool:
		if a.bval {
			return "true"
		}
		return "false"
	case atomForm:
		return a.form.String()
	}
	return "<atom>"
}

// exprKind distinguishes the three shapes an Expression may take.
type exprKind int

const (
	exprBareID exprKind = iota
	exprAttr
	exprAtom
)

// Expression is a value over identifier kind ID: a bare identifier, an
// attribute access chained off another expression, or an atom. Schemas are
// Expression[RelKind]; ground equations are Expression[AbsID].
//
// Grounded on the tagged-union node shape of internal/tunascript/ast.go
// (one struct, a kind tag, and only the fields that kind uses) rather than
// an interface-per-variant hierarchy, since the algebra needs to pattern
// match exhaustively and recurse structurally, not dispatch polymorphically.
type Expression[ID comparable] struct {
	kind exprKind
	id   ID
	base *Expression[ID]
	attr string
	atom Atom
}

// BareID returns the expression consisting of the identifier alone.
func BareID[ID comparable](id ID) Expression[ID] {
	return Expression[ID]{kind: exprBareID, id: id}
}

// AttrOf returns the expression base.attr.
func AttrOf[ID comparable](base Expression[ID], attr string) Expression[ID] {
	b := base
	return Expression[ID]{kind: exprAttr, base: &b, attr: attr}
}

// AtomExpr returns the expression consisting of the atom alone.
func AtomExpr[ID comparable](a Atom) Expression[ID] {
	return Expression[ID]{kind: exprAtom, atom: a}
}

func (e Expression[ID]) IsBareID() bool { return e.kind == exprBareID }
func (e Expression[ID]) IsAttr() bool   { return e.kind == exprAttr }
func (e Expression[ID]) IsAtom() bool   { return e.kind == exprAtom }

// ID returns the bare identifier. Only valid when IsBareID().
func (e Expression[ID]) ID() ID { return e.id }

// Base and Attr return the parts of an attribute access. Only valid when
// IsAttr().
func (e Expression[ID]) Base() Expression[ID] { return *e.base }
func (e Expression[ID]) Attr() string         { return e.attr }

// AtomValue returns the held atom. Only valid when IsAtom().
func (e Expression[ID]) AtomValue() Atom { return e.atom }

func (e Expression[ID]) String() string {
	switch e.kind {
	case exprBareID:
		return fmt.Sprintf("%v", e.id)
	case exprAttr:
		return fmt.Sprintf("%s.%s", e.base.String(), e.attr)
	case exprAtom:
		return e.atom.String()
	}
	return "<expr>"
}
