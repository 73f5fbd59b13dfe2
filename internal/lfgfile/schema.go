// Package lfgfile is the grammar-combinator layer: it loads a Grammar from
// a TOML file, the format a grammar author actually writes by hand. It
// knows nothing the core doesn't already expose through internal/lfg's
// exported constructors; it is a thin, declarative front end over them.
package lfgfile

import (
	"fmt"

	"github.com/dekarrin/lfgo/internal/lfg"
)

// schema string notation (ASCII stand-ins for the algebra's own glyphs,
// since a TOML value is a plain string):
//
//	^                 the "up" relative id
//	_                 the "down" relative id
//	EXPR.ATTR         attribute access
//	IDENT             a bare symbol atom, e.g. SG or PAST
//	true / false      boolean atoms
//	PRED(ROLE, ROLE)  a semantic form atom
//	EXPR = EXPR       assignment
//	EXPR : EXPR       containment (elem : container)
//	EXPR == EXPR      positive equality constraint
//	EXPR != EXPR      negative equality constraint
//	EXPR <: EXPR      positive set-membership constraint
//	EXPR !<: EXPR     negative set-membership constraint
//	EXPR?             positive existence constraint
//	EXPR!?            negative existence constraint
//	EQ && EQ          conjunction
//	EQ || EQ          disjunction (binds looser than &&)
//
// Multiple schema strings attached to the same child slot are themselves
// conjoined, so "&&" is rarely needed within a single string.
type schemaParser struct {
	toks []schemaTok
	pos  int
}

type schemaTokKind int

const (
	tokUp schemaTokKind = iota
	tokDown
	tokDot
	tokLParen
	tokRParen
	tokComma
	tokAssign
	tokContain
	tokEq
	tokNeq
	tokSubset
	tokNotSubset
	tokQuestion
	tokBangQuestion
	tokAnd
	tokOr
	tokIdent
	tokEOF
)

type schemaTok struct {
	kind schemaTokKind
	text string
}

// parseSchema parses s into a lfg.Specification. It is used both by the
// grammar loader (for production child schemas) and the lexicon loader
// (for per-token lexical schemas).
func parseSchema(s string) (lfg.Specification, error) {
	toks, err := tokenizeSchema(s)
	if err != nil {
		return lfg.Specification{}, fmt.Errorf("lfgfile: %q: %w", s, err)
	}
	p := &schemaParser{toks: toks}
	eq, err := p.parseDisjunction()
	if err != nil {
		return lfg.Specification{}, fmt.Errorf("lfgfile: %q: %w", s, err)
	}
	if p.peek().kind != tokEOF {
		return lfg.Specification{}, fmt.Errorf("lfgfile: %q: unexpected trailing %q", s, p.peek().text)
	}
	return eq, nil
}

func tokenizeSchema(s string) ([]schemaTok, error) {
	var toks []schemaTok
	r := []rune(s)
	i := 0
	for i < len(r) {
		c := r[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '^':
			toks = append(toks, schemaTok{tokUp, "^"})
			i++
		case c == '_':
			toks = append(toks, schemaTok{tokDown, "_"})
			i++
		case c == '.':
			toks = append(toks, schemaTok{tokDot, "."})
			i++
		case c == '(':
			toks = append(toks, schemaTok{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, schemaTok{tokRParen, ")"})
			i++
		case c == ',':
			toks = append(toks, schemaTok{tokComma, ","})
			i++
		case c == '=':
			if i+1 < len(r) && r[i+1] == '=' {
				toks = append(toks, schemaTok{tokEq, "=="})
				i += 2
			} else {
				toks = append(toks, schemaTok{tokAssign, "="})
				i++
			}
		case c == ':':
			toks = append(toks, schemaTok{tokContain, ":"})
			i++
		case c == '!':
			switch {
			case i+1 < len(r) && r[i+1] == '=':
				toks = append(toks, schemaTok{tokNeq, "!="})
				i += 2
			case i+2 < len(r) && r[i+1] == '<' && r[i+2] == ':':
				toks = append(toks, schemaTok{tokNotSubset, "!<:"})
				i += 3
			case i+1 < len(r) && r[i+1] == '?':
				toks = append(toks, schemaTok{tokBangQuestion, "!?"})
				i += 2
			default:
				return nil, fmt.Errorf("unexpected '!' at position %d", i)
			}
		case c == '<' && i+1 < len(r) && r[i+1] == ':':
			toks = append(toks, schemaTok{tokSubset, "<:"})
			i += 2
		case c == '?':
			toks = append(toks, schemaTok{tokQuestion, "?"})
			i++
		case c == '&' && i+1 < len(r) && r[i+1] == '&':
			toks = append(toks, schemaTok{tokAnd, "&&"})
			i += 2
		case c == '|' && i+1 < len(r) && r[i+1] == '|':
			toks = append(toks, schemaTok{tokOr, "||"})
			i += 2
		case isIdentStart(c):
			j := i + 1
			for j < len(r) && isIdentPart(r[j]) {
				j++
			}
			toks = append(toks, schemaTok{tokIdent, string(r[i:j])})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
		}
	}
	toks = append(toks, schemaTok{tokEOF, ""})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9')
}

func (p *schemaParser) peek() schemaTok { return p.toks[p.pos] }
func (p *schemaParser) next() schemaTok {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *schemaParser) parseDisjunction() (lfg.Specification, error) {
	left, err := p.parseConjunction()
	if err != nil {
		return lfg.Specification{}, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseConjunction()
		if err != nil {
			return lfg.Specification{}, err
		}
		left = lfg.Disjunction(left, right)
	}
	return left, nil
}

func (p *schemaParser) parseConjunction() (lfg.Specification, error) {
	left, err := p.parseEquation()
	if err != nil {
		return lfg.Specification{}, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseEquation()
		if err != nil {
			return lfg.Specification{}, err
		}
		left = lfg.Conjunction(left, right)
	}
	return left, nil
}

func (p *schemaParser) parseEquation() (lfg.Specification, error) {
	left, err := p.parseExpr()
	if err != nil {
		return lfg.Specification{}, err
	}

	switch p.peek().kind {
	case tokQuestion:
		p.next()
		return lfg.Exists(true, left), nil
	case tokBangQuestion:
		p.next()
		return lfg.Exists(false, left), nil
	case tokAssign:
		p.next()
		right, err := p.parseExpr()
		if err != nil {
			return lfg.Specification{}, err
		}
		return lfg.Assign(left, right), nil
	case tokContain:
		p.next()
		right, err := p.parseExpr()
		if err != nil {
			return lfg.Specification{}, err
		}
		return lfg.Contain(left, right), nil
	case tokEq:
		p.next()
		right, err := p.parseExpr()
		if err != nil {
			return lfg.Specification{}, err
		}
		return lfg.Equals(true, left, right), nil
	case tokNeq:
		p.next()
		right, err := p.parseExpr()
		if err != nil {
			return lfg.Specification{}, err
		}
		return lfg.Equals(false, left, right), nil
	case tokSubset:
		p.next()
		right, err := p.parseExpr()
		if err != nil {
			return lfg.Specification{}, err
		}
		return lfg.Contains(true, left, right), nil
	case tokNotSubset:
		p.next()
		right, err := p.parseExpr()
		if err != nil {
			return lfg.Specification{}, err
		}
		return lfg.Contains(false, left, right), nil
	}
	return lfg.Specification{}, fmt.Errorf("expected an operator after %q, found %q", left, p.peek().text)
}

func (p *schemaParser) parseExpr() (lfg.Expression[lfg.RelKind], error) {
	base, err := p.parsePrimary()
	if err != nil {
		return lfg.Expression[lfg.RelKind]{}, err
	}
	for p.peek().kind == tokDot {
		p.next()
		attr := p.next()
		if attr.kind != tokIdent {
			return lfg.Expression[lfg.RelKind]{}, fmt.Errorf("expected attribute name after '.', found %q", attr.text)
		}
		base = lfg.AttrOf(base, attr.text)
	}
	return base, nil
}

func (p *schemaParser) parsePrimary() (lfg.Expression[lfg.RelKind], error) {
	t := p.next()
	switch t.kind {
	case tokUp:
		return lfg.BareID[lfg.RelKind](lfg.UP), nil
	case tokDown:
		return lfg.BareID[lfg.RelKind](lfg.DOWN), nil
	case tokIdent:
		if t.text == "true" {
			return lfg.AtomExpr[lfg.RelKind](lfg.Bool(true)), nil
		}
		if t.text == "false" {
			return lfg.AtomExpr[lfg.RelKind](lfg.Bool(false)), nil
		}
		if p.peek().kind == tokLParen {
			p.next()
			var roles []string
			if p.peek().kind != tokRParen {
				for {
					role := p.next()
					if role.kind != tokIdent {
						return lfg.Expression[lfg.RelKind]{}, fmt.Errorf("expected role name, found %q", role.text)
					}
					roles = append(roles, role.text)
					if p.peek().kind != tokComma {
						break
					}
					p.next()
				}
			}
			if p.peek().kind != tokRParen {
				return lfg.Expression[lfg.RelKind]{}, fmt.Errorf("expected ')' to close semantic form, found %q", p.peek().text)
			}
			p.next()
			return lfg.AtomExpr[lfg.RelKind](lfg.Form(t.text, roles...)), nil
		}
		return lfg.AtomExpr[lfg.RelKind](lfg.Symbol(t.text)), nil
	}
	return lfg.Expression[lfg.RelKind]{}, fmt.Errorf("expected an expression, found %q", t.text)
}

// joinSchemas conjoins zero or more schema strings into a single
// Specification, as spec.md's "a child slot's schema is the conjunction of
// every schema its production lists for it" requires.
func joinSchemas(strs []string) (lfg.Specification, error) {
	if len(strs) == 0 {
		return lfg.Specification{}, fmt.Errorf("lfgfile: a schema list must contain at least one schema")
	}
	eq, err := parseSchema(strs[0])
	if err != nil {
		return lfg.Specification{}, err
	}
	for _, s := range strs[1:] {
		next, err := parseSchema(s)
		if err != nil {
			return lfg.Specification{}, err
		}
		eq = lfg.Conjunction(eq, next)
	}
	return eq, nil
}
