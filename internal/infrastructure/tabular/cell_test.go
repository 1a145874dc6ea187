package tabular

import (
	"testing"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

func TestParseCell(t *testing.T) {
	cases := map[string]domain.CellKind{
		"":       domain.CellNull,
		"N/A":    domain.CellNull,
		"None":   domain.CellNull,
		"nan":    domain.CellNull,
		"TRUE":   domain.CellBool,
		"false":  domain.CellBool,
		" 12.5 ": domain.CellNumber,
		"-3e2":   domain.CellNumber,
		"inf":    domain.CellText,
		"yes":    domain.CellText,
		"1,000":  domain.CellText,
		" NA":    domain.CellText,
		" true":  domain.CellText,
	}
	for raw, want := range cases {
		if got := ParseCell(raw).Kind; got != want {
			t.Fatalf("ParseCell(%q) kind = %v, want %v", raw, got, want)
		}
	}
}
