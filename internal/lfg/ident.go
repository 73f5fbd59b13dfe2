package lfg

import "github.com/google/uuid"

// RelKind is a relative identifier used in a schema before it has been
// grounded against a parse-tree node. Schemas only ever reference the
// mother (UP) or the node itself (DOWN); there is no third relative
// identifier.
type RelKind int

const (
	// UP refers to the f-structure of the mother node.
	UP RelKind = iota
	// DOWN refers to the f-structure of the node the schema is attached to.
	DOWN
)

func (r RelKind) String() string {
	switch r {
	case UP:
		return "↑"
	case DOWN:
		return "↓"
	default:
		return "?"
	}
}

// AbsID is an absolute, globally-unique functional identifier minted once
// per node visited during f-description construction. It is opaque to
// everything downstream of the builder; the solver only ever compares two
// AbsIDs for equality or unions their classes.
type AbsID uuid.UUID

// NilAbsID is the zero value; it never names a real node and is used as a
// "no id" sentinel by functions that resolve an expression and may fail to
// produce one.
var NilAbsID AbsID

func (id AbsID) String() string {
	return uuid.UUID(id).String()
}

// IDGenerator mints a fresh AbsID per call. Grounded on
// internal/ictiobus/translation.IDGenerator's role in the teacher's SDD
// walk: one opaque id per tree node, allocated on demand and never reused.
type IDGenerator struct {
	next func() AbsID
}

// NewIDGenerator returns a generator backed by random UUIDs.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{next: func() AbsID {
		return AbsID(uuid.New())
	}}
}

// Generate returns a fresh, previously-unused AbsID.
func (g *IDGenerator) Generate() AbsID {
	return g.next()
}
