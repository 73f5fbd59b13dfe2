package lexdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Open_createsSchemaOnFreshDatabase(t *testing.T) {
	db, err := Open(":memory:")
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	cats, err := db.Categories(context.Background())
	if assert.NoError(t, err) {
		assert.Empty(t, cats)
	}
}

func Test_Put_andLookup_roundTrip(t *testing.T) {
	db, err := Open(":memory:")
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	ctx := context.Background()
	assert.NoError(t, db.Put(ctx, "NP", "John", "^.PRED = john()"))

	schemas, err := db.Lookup(ctx, "NP", "john")
	if assert.NoError(t, err) {
		assert.Equal(t, []string{"^.PRED = john()"}, schemas)
	}
}

func Test_Lookup_caseFoldsLexeme(t *testing.T) {
	db, err := Open(":memory:")
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	ctx := context.Background()
	assert.NoError(t, db.Put(ctx, "NP", "JOHN", "^.PRED = john()"))

	_, err = db.Lookup(ctx, "NP", "john")
	assert.NoError(t, err)
}

func Test_Lookup_missingEntryIsErrNotFound(t *testing.T) {
	db, err := Open(":memory:")
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	_, err = db.Lookup(context.Background(), "NP", "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Put_ignoresExactDuplicate(t *testing.T) {
	db, err := Open(":memory:")
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	ctx := context.Background()
	assert.NoError(t, db.Put(ctx, "NP", "john", "^.PRED = john()"))
	assert.NoError(t, db.Put(ctx, "NP", "john", "^.PRED = john()"))

	schemas, err := db.Lookup(ctx, "NP", "john")
	if assert.NoError(t, err) {
		assert.Len(t, schemas, 1)
	}
}

func Test_Put_allowsMultipleSchemasPerEntry(t *testing.T) {
	db, err := Open(":memory:")
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	ctx := context.Background()
	assert.NoError(t, db.Put(ctx, "NP", "john", "^.PRED = john()"))
	assert.NoError(t, db.Put(ctx, "NP", "john", "^.NUM = SG"))

	schemas, err := db.Lookup(ctx, "NP", "john")
	if assert.NoError(t, err) {
		assert.Len(t, schemas, 2)
	}
}

func Test_Categories_returnsDistinctNames(t *testing.T) {
	db, err := Open(":memory:")
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	ctx := context.Background()
	assert.NoError(t, db.Put(ctx, "NP", "john", "^.PRED = john()"))
	assert.NoError(t, db.Put(ctx, "NP", "mary", "^.PRED = mary()"))
	assert.NoError(t, db.Put(ctx, "VP", "sleeps", "^.PRED = sleeps(SUBJ)"))

	cats, err := db.Categories(ctx)
	if assert.NoError(t, err) {
		assert.ElementsMatch(t, []string{"NP", "VP"}, cats)
	}
}

func Test_All_groupsSchemasByCategoryAndLexeme(t *testing.T) {
	db, err := Open(":memory:")
	if !assert.NoError(t, err) {
		return
	}
	defer db.Close()

	ctx := context.Background()
	assert.NoError(t, db.Put(ctx, "NP", "john", "^.PRED = john()"))
	assert.NoError(t, db.Put(ctx, "NP", "john", "^.NUM = SG"))
	assert.NoError(t, db.Put(ctx, "VP", "sleeps", "^.PRED = sleeps(SUBJ)"))

	entries, err := db.All(ctx)
	if !assert.NoError(t, err) {
		return
	}
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "NP", entries[0].Category)
		assert.Equal(t, "john", entries[0].Lexeme)
		assert.Len(t, entries[0].Schemas, 2)
	}
}
