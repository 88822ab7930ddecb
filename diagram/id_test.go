package diagram

import "testing"

func TestUniqueIDSequence(t *testing.T) {
	u := NewUniqueID()
	for i, want := range []string{"n0", "n1", "n2"} {
		if got := u.Next(NodeIDPrefix); got != want {
			t.Errorf("Next #%d = %q, want %q", i, got, want)
		}
	}
	// Prefixes count independently.
	if got := u.Next(EdgeIDPrefix); got != "e0" {
		t.Errorf("first edge id = %q, want e0", got)
	}
}

func TestObserveAdvancesHighWaterMark(t *testing.T) {
	u := NewUniqueID()
	u.Observe("n7")
	if got := u.Next(NodeIDPrefix); got != "n8" {
		t.Errorf("Next after Observe(n7) = %q, want n8", got)
	}
	// Observing below the mark never rewinds.
	u.Observe("n3")
	if got := u.Next(NodeIDPrefix); got != "n9" {
		t.Errorf("Next after Observe(n3) = %q, want n9", got)
	}
	// Edge counter untouched.
	if got := u.Next(EdgeIDPrefix); got != "e0" {
		t.Errorf("edge counter moved: %q", got)
	}
}

func TestObserveIgnoresMalformedIDs(t *testing.T) {
	u := NewUniqueID()
	for _, id := range []string{"", "n", "17", "n-2", "nx", "n1x"} {
		u.Observe(id)
	}
	if got := u.Next(NodeIDPrefix); got != "n0" {
		t.Errorf("Next after malformed observes = %q, want n0", got)
	}
}
