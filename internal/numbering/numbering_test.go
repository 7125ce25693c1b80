package numbering

import (
	"testing"
	"time"
)

func TestNext_EmptyCorpus(t *testing.T) {
	ref := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	got := Next("PR", nil, ref)
	if got != "001/PR/VIII/2025" {
		t.Errorf("Expected 001/PR/VIII/2025, got %s", got)
	}
}

func TestNext_SequentialNoGaps(t *testing.T) {
	ref := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	var existing []string
	for i := 1; i <= 12; i++ {
		existing = append(existing, Next("PR", existing, ref))
	}

	if existing[11] != "012/PR/VIII/2025" {
		t.Errorf("Expected 012/PR/VIII/2025 after 12 calls, got %s", existing[11])
	}

	// No duplicates
	seen := make(map[string]bool)
	for _, doc := range existing {
		if seen[doc] {
			t.Errorf("Duplicate document number generated: %s", doc)
		}
		seen[doc] = true
	}
}

func TestNext_PeriodScoping(t *testing.T) {
	august := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	september := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	existing := []string{
		"001/PR/VIII/2025",
		"002/PR/VIII/2025",
		"005/PR/VII/2025",  // other month, ignored
		"009/LN/VIII/2025", // other prefix, ignored
	}

	if got := Next("PR", existing, august); got != "003/PR/VIII/2025" {
		t.Errorf("Expected 003/PR/VIII/2025, got %s", got)
	}

	// New period restarts the sequence
	if got := Next("PR", existing, september); got != "001/PR/IX/2025" {
		t.Errorf("Expected 001/PR/IX/2025, got %s", got)
	}
}

func TestNext_IgnoresMalformed(t *testing.T) {
	ref := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)
	existing := []string{"garbage", "x/y", "abc/PR/VIII/2025", "004/PR/VIII/2025"}

	if got := Next("PR", existing, ref); got != "005/PR/VIII/2025" {
		t.Errorf("Expected 005/PR/VIII/2025, got %s", got)
	}
}

func TestNextRequestID(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty", nil, "REQ-001"},
		{"sequential", []string{"REQ-001", "REQ-002"}, "REQ-003"},
		{"gap_after_deletion", []string{"REQ-001", "REQ-007"}, "REQ-008"},
		{"ignores_foreign_ids", []string{"LOAN-009", "REQ-002"}, "REQ-003"},
		{"rolls_past_padding", []string{"REQ-999"}, "REQ-1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextRequestID(tt.existing); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestNextAssetTag(t *testing.T) {
	if got := NextAssetTag(nil); got != "AST-0001" {
		t.Errorf("Expected AST-0001, got %s", got)
	}
	if got := NextAssetTag([]string{"AST-0001", "AST-0042"}); got != "AST-0043" {
		t.Errorf("Expected AST-0043, got %s", got)
	}
}

func TestRomanMonth(t *testing.T) {
	if RomanMonth(time.January) != "I" || RomanMonth(time.December) != "XII" {
		t.Error("Roman month mapping broken at boundaries")
	}
}
