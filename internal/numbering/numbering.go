// Package numbering generates human-facing document numbers scoped to a
// month+year period, and sequential request identifiers. Both are pure
// functions over the existing corpus so results are deterministic and
// collision-free under sequential calls.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var romanMonths = [...]string{
	"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII",
}

// RomanMonth returns the Roman numeral for a month (1-12)
func RomanMonth(m time.Month) string {
	return romanMonths[int(m)-1]
}

// Next produces the next document number for the given prefix in the
// period of ref, e.g. "007/PR/VIII/2025". Existing numbers outside the
// prefix or period are ignored.
func Next(prefix string, existing []string, ref time.Time) string {
	month := RomanMonth(ref.Month())
	year := strconv.Itoa(ref.Year())

	max := 0
	for _, doc := range existing {
		parts := strings.Split(doc, "/")
		if len(parts) != 4 {
			continue
		}
		if parts[1] != prefix || parts[2] != month || parts[3] != year {
			continue
		}
		seq, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}

	return fmt.Sprintf("%03d/%s/%s/%s", max+1, prefix, month, year)
}

// NextRequestID produces the next sequential request id, "REQ-001" style.
// The numeric suffix is derived from the max existing suffix + 1 and is
// never reused even after deletion.
func NextRequestID(existing []string) string {
	return nextSequentialID("REQ", existing)
}

// NextLoanID produces the next sequential loan request id, "LOAN-001" style
func NextLoanID(existing []string) string {
	return nextSequentialID("LOAN", existing)
}

func nextSequentialID(prefix string, existing []string) string {
	max := 0
	for _, id := range existing {
		rest, ok := strings.CutPrefix(id, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, max+1)
}

// NextAssetTag produces the next asset tag, "AST-0001" style
func NextAssetTag(existing []string) string {
	max := 0
	for _, tag := range existing {
		rest, ok := strings.CutPrefix(tag, "AST-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("AST-%04d", max+1)
}
