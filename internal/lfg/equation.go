package lfg

import "fmt"

// eqKind distinguishes the compound, defining, and constraint variants of
// Equation.
type eqKind int

const (
	eqDisjunction eqKind = iota
	eqConjunction
	eqAssignment
	eqContainment
	eqEquals
	eqContains
	eqExists
)

// Equation is a three-level algebra over identifier kind ID: compound
// (Disjunction/Conjunction of equations), defining (Assignment/
// Containment), and constraint (Equals/Contains/Exists, each carrying a
// polarity). Schemas are Equation[RelKind]; ground f-descriptions are
// conjunctions of Equation[AbsID].
//
// Grounded on internal/ictiobus/grammar/item.go's pattern-dispatch style
// (a type-switch-heavy Equal/Copy over a small closed set of shapes) rather
// than one interface type per variant: the solver needs to exhaustively
// branch on eqKind the same way item.go branches on item core kind.
type Equation[ID comparable] struct {
	kind eqKind

	// compound operands
	left  *Equation[ID]
	right *Equation[ID]

	// defining / constraint operands
	lhs Expression[ID]
	rhs Expression[ID]

	// constraint polarity; meaningless for compound/defining kinds
	polarity bool
}

// Disjunction returns the equation a ∨ b.
func Disjunction[ID comparable](a, b Equation[ID]) Equation[ID] {
	return Equation[ID]{kind: eqDisjunction, left: &a, right: &b}
}

// Conjunction returns the equation a ∧ b.
func Conjunction[ID comparable](a, b Equation[ID]) Equation[ID] {
	return Equation[ID]{kind: eqConjunction, left: &a, right: &b}
}

// Assign returns the defining equation "the value of lhs is rhs".
func Assign[ID comparable](lhs, rhs Expression[ID]) Equation[ID] {
	return Equation[ID]{kind: eqAssignment, lhs: lhs, rhs: rhs}
}

// Contain returns the defining equation "elem is a member of container".
func Contain[ID comparable](elem, container Expression[ID]) Equation[ID] {
	return Equation[ID]{kind: eqContainment, lhs: elem, rhs: container}
}

// Equals returns the constraint equation l = r (or l ≠ r if pos is false).
func Equals[ID comparable](pos bool, l, r Expression[ID]) Equation[ID] {
	return Equation[ID]{kind: eqEquals, lhs: l, rhs: r, polarity: pos}
}

// Contains returns the constraint equation e ∈ c (or e ∉ c if pos is
// false).
func Contains[ID comparable](pos bool, e, c Expression[ID]) Equation[ID] {
	return Equation[ID]{kind: eqContains, lhs: e, rhs: c, polarity: pos}
}

// Exists returns the constraint equation requiring e to resolve (or to fail
// to resolve, if pos is false).
func Exists[ID comparable](pos bool, e Expression[ID]) Equation[ID] {
	return Equation[ID]{kind: eqExists, lhs: e, polarity: pos}
}

func (eq Equation[ID]) IsDisjunction() bool { return eq.kind == eqDisjunction }
func (eq Equation[ID]) IsConjunction() bool { return eq.kind == eqConjunction }
func (eq Equation[ID]) IsAssignment() bool  { return eq.kind == eqAssignment }
func (eq Equation[ID]) IsContainment() bool { return eq.kind == eqContainment }
func (eq Equation[ID]) IsEquals() bool      { return eq.kind == eqEquals }
func (eq Equation[ID]) IsContains() bool    { return eq.kind == eqContains }
func (eq Equation[ID]) IsExists() bool      { return eq.kind == eqExists }

func (eq Equation[ID]) Left() Equation[ID]  { return *eq.left }
func (eq Equation[ID]) Right() Equation[ID] { return *eq.right }
func (eq Equation[ID]) LHS() Expression[ID] { return eq.lhs }
func (eq Equation[ID]) RHS() Expression[ID] { return eq.rhs }
func (eq Equation[ID]) Polarity() bool      { return eq.polarity }

// negate returns an equation obeying spec.md §4.1: negating a defining
// equation yields a constraint (you never "un-assign"; you require the
// value differs), negating a constraint flips its polarity, and negating a
// compound equation distributes via De Morgan.
func negate[ID comparable](eq Equation[ID]) Equation[ID] {
	switch eq.kind {
	case eqAssignment:
		return Equals(false, eq.lhs, eq.rhs)
	case eqContainment:
		return Contains(false, eq.lhs, eq.rhs)
	case eqEquals:
		return Equals(!eq.polarity, eq.lhs, eq.rhs)
	case eqContains:
		return Contains(!eq.polarity, eq.lhs, eq.rhs)
	case eqExists:
		return Exists(!eq.polarity, eq.lhs)
	case eqDisjunction:
		return Conjunction(negate(eq.Left()), negate(eq.Right()))
	case eqConjunction:
		return Disjunction(negate(eq.Left()), negate(eq.Right()))
	}
	panic(fmt.Sprintf("lfg: negate: unhandled equation kind %d", eq.kind))
}

// Negate is the exported form of negate, usable on a schema prior to
// grounding.
func Negate(eq Specification) Specification { return negate(eq) }

// groundExpr substitutes UP with up and DOWN with down throughout e,
// recursing into attribute-access bases. Atoms are copied unchanged.
func groundExpr(e Expression[RelKind], up, down AbsID) Expression[AbsID] {
	switch {
	case e.IsBareID():
		if e.ID() == UP {
			return BareID(up)
		}
		return BareID(down)
	case e.IsAttr():
		return AttrOf(groundExpr(e.Base(), up, down), e.Attr())
	default:
		return AtomExpr[AbsID](e.AtomValue())
	}
}

// ground substitutes UP with up and DOWN with down throughout eq, recursing
// into sub-equations and sub-expressions. It is defined for every schema:
// grounding is a total homomorphism (spec.md §4.1, testable property 2).
func ground(up, down AbsID, eq Specification) Equation[AbsID] {
	switch eq.kind {
	case eqDisjunction:
		return Disjunction(ground(up, down, eq.Left()), ground(up, down, eq.Right()))
	case eqConjunction:
		return Conjunction(ground(up, down, eq.Left()), ground(up, down, eq.Right()))
	case eqAssignment:
		return Assign(groundExpr(eq.lhs, up, down), groundExpr(eq.rhs, up, down))
	case eqContainment:
		return Contain(groundExpr(eq.lhs, up, down), groundExpr(eq.rhs, up, down))
	case eqEquals:
		return Equals(eq.polarity, groundExpr(eq.lhs, up, down), groundExpr(eq.rhs, up, down))
	case eqContains:
		return Contains(eq.polarity, groundExpr(eq.lhs, up, down), groundExpr(eq.rhs, up, down))
	case eqExists:
		return Exists(eq.polarity, groundExpr(eq.lhs, up, down))
	}
	panic(fmt.Sprintf("lfg: ground: unhandled equation kind %d", eq.kind))
}

// Ground is the exported form of ground.
func Ground(up, down AbsID, schema Specification) Equation[AbsID] {
	return ground(up, down, schema)
}

func (eq Equation[ID]) String() string {
	switch eq.kind {
	case eqDisjunction:
		return fmt.Sprintf("(%s) ∨ (%s)", eq.Left(), eq.Right())
	case eqConjunction:
		return fmt.Sprintf("(%s) ∧ (%s)", eq.Left(), eq.Right())
	case eqAssignment:
		return fmt.Sprintf("%s = %s", eq.lhs, eq.rhs)
	case eqContainment:
		return fmt.Sprintf("%s ∈ %s", eq.lhs, eq.rhs)
	case eqEquals:
		if eq.polarity {
			return fmt.Sprintf("%s = %s", eq.lhs, eq.rhs)
		}
		return fmt.Sprintf("%s ≠ %s", eq.lhs, eq.rhs)
	case eqContains:
		if eq.polarity {
			return fmt.Sprintf("%s ∈ %s", eq.lhs, eq.rhs)
		}
		return fmt.Sprintf("%s ∉ %s", eq.lhs, eq.rhs)
	case eqExists:
		if eq.polarity {
			return fmt.Sprintf("∃%s", eq.lhs)
		}
		return fmt.Sprintf("¬∃%s", eq.lhs)
	}
	return "<equation>"
}
