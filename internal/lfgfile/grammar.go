package lfgfile

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/lfgo/internal/ictiobus/lex"
	"github.com/dekarrin/lfgo/internal/ictiobus/types"
	"github.com/dekarrin/lfgo/internal/lfg"
)

// fileInfo is the common header every LFGO grammar file carries, grounded
// on the teacher's tqw.FileInfo auto-detection header.
type fileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// topLevel is the full structure of one LFGO grammar TOML file.
type topLevel struct {
	Format string        `toml:"format"`
	Type   string        `toml:"type"`
	Start  string        `toml:"start"`
	Rule   []ruleDef     `toml:"rule"`
	Word   []categoryDef `toml:"word"`
}

// ruleDef is one [[rule]] table: a parent symbol and one or more expansions,
// each an ordered child-symbol list paired with the schema(s) that slot
// carries.
type ruleDef struct {
	Parent    string       `toml:"parent"`
	Expansion []expansion  `toml:"expansion"`
}

type expansion struct {
	Children []childDef `toml:"child"`
}

type childDef struct {
	Symbol  string   `toml:"symbol"`
	Schemas []string `toml:"schema"`
}

// categoryDef is one [[word]] table: a CFG terminal symbol (e.g. "N", "V")
// and the literal surface forms that belong to it, each with its own
// schema(s).
type categoryDef struct {
	Symbol string     `toml:"symbol"`
	Entry  []entryDef `toml:"entry"`
}

type entryDef struct {
	Lexeme  []string `toml:"lexeme"`
	Schemas []string `toml:"schema"`
}

// LoadFile reads and compiles the LFGO grammar TOML file at path into an
// *lfg.Grammar, validating it per spec.md §7 before returning it. Grounded
// on tqw.LoadWorldDataFile's read-then-unmarshal-then-validate shape.
func LoadFile(path string) (*lfg.Grammar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lfgfile: %w", err)
	}
	return Load(data)
}

// Load parses data as an LFGO grammar TOML document.
func Load(data []byte) (*lfg.Grammar, error) {
	var top topLevel
	if _, err := toml.Decode(string(data), &top); err != nil {
		return nil, fmt.Errorf("lfgfile: decode: %w", err)
	}
	if top.Type != "" && top.Type != "GRAMMAR" {
		return nil, fmt.Errorf("lfgfile: unsupported file type %q (expected GRAMMAR)", top.Type)
	}

	g := lfg.NewGrammar()
	if top.Start != "" {
		g.SetStart(top.Start)
	}

	for _, r := range top.Rule {
		for _, exp := range r.Expansion {
			children := make([]lfg.ChildSpec, len(exp.Children))
			for i, c := range exp.Children {
				schema, err := joinSchemas(c.Schemas)
				if err != nil {
					return nil, fmt.Errorf("lfgfile: rule %q: child %q: %w", r.Parent, c.Symbol, err)
				}
				children[i] = lfg.ChildSpec{Symbol: c.Symbol, Schema: schema}
			}
			g.AddProduction(lfg.LFGProduction{Parent: r.Parent, Children: children})
		}
	}

	for _, w := range top.Word {
		cat, err := buildCategory(w)
		if err != nil {
			return nil, err
		}
		g.AddLexicalCategory(cat)
	}

	if err := lfg.ValidateGrammar(g); err != nil {
		return nil, err
	}
	return g, nil
}

// buildCategory compiles one [[word]] table into an lfg.LexicalCategory
// whose Classify closure matches a token's case-folded lexeme against the
// category's literal entries.
func buildCategory(w categoryDef) (lfg.LexicalCategory, error) {
	bySurface := map[string][]lfg.Specification{}
	for _, e := range w.Entry {
		schema, err := joinSchemas(e.Schemas)
		if err != nil {
			return lfg.LexicalCategory{}, fmt.Errorf("lfgfile: word %q: %w", w.Symbol, err)
		}
		for _, lexeme := range e.Lexeme {
			key := lex.Fold(lexeme)
			bySurface[key] = append(bySurface[key], schema)
		}
	}

	return lfg.LexicalCategory{
		Symbol: w.Symbol,
		Classify: func(tok types.Token) []lfg.Specification {
			return bySurface[lex.Fold(tok.Lexeme())]
		},
	}, nil
}
