package util

import "testing"

func Test_KeySet_AddAndRange(t *testing.T) {
	s := NewKeySet[string]()
	s.Add("a")
	s.Add("b")

	if len(s) != 2 {
		t.Fatalf("expected 2 members, got %d", len(s))
	}
	if !s["a"] || !s["b"] {
		t.Fatalf("expected both a and b present, got %v", s)
	}
}

func Test_NewKeySet_seedsFromGivenMaps(t *testing.T) {
	s := NewKeySet(map[string]bool{"x": true, "y": true})

	if len(s) != 2 {
		t.Fatalf("expected 2 members, got %d", len(s))
	}
}
