// Package tabular parses accounting exports into domain tables.
package tabular

import (
	"math"
	"strconv"
	"strings"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

// Markers read as missing values, matching common spreadsheet exports.
var nullMarkers = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

var boolSpellings = map[string]bool{
	"true": true, "True": true, "TRUE": true,
	"false": false, "False": false, "FALSE": false,
}

// ParseCell types one raw text cell. Null markers and bool spellings match
// exactly; numbers may carry surrounding spaces.
func ParseCell(raw string) domain.Cell {
	if _, ok := nullMarkers[raw]; ok {
		return domain.NullCell()
	}
	if b, ok := boolSpellings[raw]; ok {
		return domain.BoolCell(b)
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return domain.NumberCell(n)
	}
	return domain.TextCell(raw)
}

// columnIndex keeps columns in first-seen order.
type columnIndex struct {
	names []string
	pos   map[string]int
}

func newColumnIndex() *columnIndex {
	return &columnIndex{pos: make(map[string]int)}
}

func (c *columnIndex) add(name string) int {
	if i, ok := c.pos[name]; ok {
		return i
	}
	c.pos[name] = len(c.names)
	c.names = append(c.names, name)
	return len(c.names) - 1
}

// uniqueHeader renames repeated header names to name.1, name.2 and so on.
func uniqueHeader(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, name := range header {
		candidate := name
		for {
			n, dup := seen[candidate]
			if !dup {
				break
			}
			seen[candidate] = n + 1
			candidate = name + "." + strconv.Itoa(n+1)
		}
		seen[candidate] = 0
		out[i] = candidate
	}
	return out
}
