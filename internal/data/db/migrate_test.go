package db

import "testing"

func TestLedgerVersionsStrictlyIncreasing(t *testing.T) {
	entries := Ledger()
	if len(entries) == 0 {
		t.Fatalf("ledger must not be empty")
	}
	prev := 0
	for _, m := range entries {
		if m.Version <= prev {
			t.Fatalf("ledger versions must strictly increase: %d after %d", m.Version, prev)
		}
		if m.Name == "" {
			t.Fatalf("migration %d has no name", m.Version)
		}
		if m.Run == nil {
			t.Fatalf("migration %d (%s) has no run func", m.Version, m.Name)
		}
		prev = m.Version
	}
}
