package lfgcache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Open_missingFileYieldsEmptyCache(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "nonexistent.cache"))
	if !assert.NoError(t, err) {
		return
	}
	_, ok := f.Lookup("john sleeps")
	assert.False(t, ok)
}

func Test_Put_thenLookup_roundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lfg.cache")
	f, err := Open(path)
	if !assert.NoError(t, err) {
		return
	}

	results := []string{"[PRED 'sleeps<SUBJ>' SUBJ [PRED 'john']]"}
	assert.NoError(t, f.Put("john sleeps", results))

	got, ok := f.Lookup("john sleeps")
	if assert.True(t, ok) {
		assert.Equal(t, results, got)
	}
}

func Test_Put_replacesExistingEntryForSameSentence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lfg.cache")
	f, err := Open(path)
	if !assert.NoError(t, err) {
		return
	}

	assert.NoError(t, f.Put("john sleeps", []string{"old"}))
	assert.NoError(t, f.Put("john sleeps", []string{"new"}))

	got, ok := f.Lookup("john sleeps")
	if assert.True(t, ok) {
		assert.Equal(t, []string{"new"}, got)
	}
}

func Test_Put_persistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lfg.cache")
	f, err := Open(path)
	if !assert.NoError(t, err) {
		return
	}
	assert.NoError(t, f.Put("john sleeps", []string{"result-1"}))

	reopened, err := Open(path)
	if !assert.NoError(t, err) {
		return
	}
	got, ok := reopened.Lookup("john sleeps")
	if assert.True(t, ok) {
		assert.Equal(t, []string{"result-1"}, got)
	}
}

func Test_Lookup_unknownSentenceMisses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lfg.cache")
	f, err := Open(path)
	if !assert.NoError(t, err) {
		return
	}
	assert.NoError(t, f.Put("john sleeps", []string{"result-1"}))

	_, ok := f.Lookup("mary sleeps")
	assert.False(t, ok)
}
