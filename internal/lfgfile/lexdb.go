package lfgfile

import (
	"context"
	"fmt"

	"github.com/dekarrin/lfgo/internal/ictiobus/lex"
	"github.com/dekarrin/lfgo/internal/ictiobus/types"
	"github.com/dekarrin/lfgo/internal/lexdb"
	"github.com/dekarrin/lfgo/internal/lfg"
)

// CategoriesFromStore builds one lfg.LexicalCategory per distinct category
// name stored in db, letting a lexicon grow at runtime (via lexdb.Store.Put)
// without touching the grammar's TOML file. Grounded on the same
// Classify-by-case-folded-lexeme shape buildCategory uses for the static
// TOML lexicon.
func CategoriesFromStore(ctx context.Context, db *lexdb.Store) ([]lfg.LexicalCategory, error) {
	entries, err := db.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("lfgfile: %w", err)
	}

	bySurface := map[string]map[string][]lfg.Specification{}
	var order []string
	for _, e := range entries {
		schema, err := joinSchemas(e.Schemas)
		if err != nil {
			return nil, fmt.Errorf("lfgfile: store entry %s/%s: %w", e.Category, e.Lexeme, err)
		}
		if _, ok := bySurface[e.Category]; !ok {
			bySurface[e.Category] = map[string][]lfg.Specification{}
			order = append(order, e.Category)
		}
		folded := lex.Fold(e.Lexeme)
		bySurface[e.Category][folded] = append(bySurface[e.Category][folded], schema)
	}

	cats := make([]lfg.LexicalCategory, 0, len(order))
	for _, name := range order {
		entries := bySurface[name]
		cats = append(cats, lfg.LexicalCategory{
			Symbol: name,
			Classify: func(tok types.Token) []lfg.Specification {
				return entries[lex.Fold(tok.Lexeme())]
			},
		})
	}
	return cats, nil
}
