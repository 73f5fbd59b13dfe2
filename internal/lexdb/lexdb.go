// Package lexdb is a sqlite-backed store for lexicon entries: persistent,
// queryable storage for the (category, lexeme) -> schema-string mappings
// that internal/lfgfile otherwise only knows how to read out of a static
// TOML file. Grounded on server/dao/sqlite's store/init/wrapDBError shape.
package lexdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dekarrin/lfgo/internal/ictiobus/lex"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by lookups that find no matching row.
var ErrNotFound = errors.New("lexdb: not found")

// Entry is one stored lexicon row: a surface lexeme belonging to a CFG
// terminal category, carrying one or more schema strings in the notation
// internal/lfgfile's schema parser accepts.
type Entry struct {
	Category string
	Lexeme   string
	Schemas  []string
}

// Store is a sqlite-backed lexicon. It is safe for concurrent use by
// multiple goroutines, per database/sql's own guarantee.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at file and
// ensures its schema exists.
func Open(file string) (*Store, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS lexicon (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT NOT NULL,
		lexeme TEXT NOT NULL,
		schema TEXT NOT NULL,
		UNIQUE(category, lexeme, schema)
	);`
	if _, err := s.db.Exec(stmt); err != nil {
		return wrapDBError(err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores one schema string for (category, lexeme), case-folded the
// same way internal/ictiobus/lex folds surface tokens before lookup, so a
// later LookupToken-style query matches regardless of casing.
func (s *Store) Put(ctx context.Context, category, lexeme, schema string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO lexicon (category, lexeme, schema) VALUES (?, ?, ?)`,
		category, lex.Fold(lexeme), schema)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// Lookup returns every schema string stored for (category, lexeme),
// case-folded before matching. Returns ErrNotFound if the category claims
// no entry for that lexeme at all.
func (s *Store) Lookup(ctx context.Context, category, lexeme string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT schema FROM lexicon WHERE category = ? AND lexeme = ?`,
		category, lex.Fold(lexeme))
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var schema string
		if err := rows.Scan(&schema); err != nil {
			return nil, wrapDBError(err)
		}
		schemas = append(schemas, schema)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}
	if len(schemas) == 0 {
		return nil, ErrNotFound
	}
	return schemas, nil
}

// Categories returns every distinct category with at least one entry
// stored, in no particular order.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM lexicon`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var cat string
		if err := rows.Scan(&cat); err != nil {
			return nil, wrapDBError(err)
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

// All returns every stored entry, grouped by (category, lexeme).
func (s *Store) All(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, lexeme, schema FROM lexicon ORDER BY category, lexeme`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	byKey := map[[2]string]*Entry{}
	var order [][2]string
	for rows.Next() {
		var cat, lexeme, schema string
		if err := rows.Scan(&cat, &lexeme, &schema); err != nil {
			return nil, wrapDBError(err)
		}
		key := [2]string{cat, lexeme}
		e, ok := byKey[key]
		if !ok {
			e = &Entry{Category: cat, Lexeme: lexeme}
			byKey[key] = e
			order = append(order, key)
		}
		e.Schemas = append(e.Schemas, schema)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError(err)
	}

	out := make([]Entry, len(order))
	for i, key := range order {
		out[i] = *byKey[key]
	}
	return out, nil
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("lexdb: %w", err)
}
