// Package lfgcache persists solved F-structure result sets to disk, keyed
// by the sentence that produced them, so a driver can skip re-running the
// CFG parse/annotate/solve pipeline over input it has already seen.
// Grounded on server/dao/sqlite/sessions.go's rezi.EncBinary/DecBinary use
// for binary (de)serialization of a plain result struct.
package lfgcache

import (
	"fmt"
	"os"

	"github.com/dekarrin/rezi"
)

// Entry is one cached result: the sentence parsed and the canonical string
// form of every F-structure Solve produced for it (FValue.String(), the
// same representation the solver itself uses for duplicate-collapsing).
// Only plain exported fields are stored; a cached entry is never used to
// reconstruct a live *lfg.FValue, only to answer "have we seen this
// sentence, and if so what did it resolve to".
type Entry struct {
	Sentence string
	Results  []string
}

// File is an on-disk cache: one rezi-encoded slice of Entry values.
type File struct {
	path    string
	entries []Entry
}

// Open loads the cache at path, or returns an empty cache if the file does
// not exist yet.
func Open(path string) (*File, error) {
	f := &File{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("lfgcache: %w", err)
	}
	if len(data) == 0 {
		return f, nil
	}

	if _, err := rezi.DecBinary(data, &f.entries); err != nil {
		return nil, fmt.Errorf("lfgcache: decode %s: %w", path, err)
	}
	return f, nil
}

// Lookup returns the cached results for sentence, if any.
func (f *File) Lookup(sentence string) ([]string, bool) {
	for _, e := range f.entries {
		if e.Sentence == sentence {
			return e.Results, true
		}
	}
	return nil, false
}

// Put records results for sentence, replacing any existing entry for the
// same sentence, and persists the cache to disk.
func (f *File) Put(sentence string, results []string) error {
	for i, e := range f.entries {
		if e.Sentence == sentence {
			f.entries[i].Results = results
			return f.flush()
		}
	}
	f.entries = append(f.entries, Entry{Sentence: sentence, Results: results})
	return f.flush()
}

func (f *File) flush() error {
	data := rezi.EncBinary(f.entries)
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("lfgcache: write %s: %w", f.path, err)
	}
	return nil
}
