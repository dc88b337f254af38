package storage

import (
	"strings"
	"testing"
)

func TestNewID(t *testing.T) {
	id := newID(prefixWorkspace)

	if !strings.HasPrefix(id, "wrk_") {
		t.Errorf("id %q missing wrk_ prefix", id)
	}
	if strings.Contains(id, "-") {
		t.Errorf("id %q should not contain dashes", id)
	}
	if len(id) != len("wrk_")+32 {
		t.Errorf("id %q has unexpected length %d", id, len(id))
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := newID(prefixRequest)
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestSortKeyFor(t *testing.T) {
	// Most recently touched sorts first: later stamps give smaller keys.
	if sortKeyFor(200) >= sortKeyFor(100) {
		t.Errorf("sortKeyFor(200) = %v should sort before sortKeyFor(100) = %v",
			sortKeyFor(200), sortKeyFor(100))
	}
}
