package domain

type CellKind int

const (
	CellNull CellKind = iota
	CellNumber
	CellBool
	CellText
)

type Cell struct {
	Kind   CellKind
	Number float64
	Bool   bool
	Text   string
}

func NullCell() Cell { return Cell{Kind: CellNull} }
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }
func BoolCell(v bool) Cell { return Cell{Kind: CellBool, Bool: v} }
func TextCell(v string) Cell { return Cell{Kind: CellText, Text: v} }

// Table is a parsed tabular export. Every row has len(Columns) cells.
// NullColumnsNumeric marks formats where a column holding only nulls is a
// float column (CSV, XLSX) rather than an untyped one (JSON).
type Table struct {
	Columns            []string
	Rows               [][]Cell
	NullColumnsNumeric bool
}

type TallySummary struct {
	Totals   map[string]float64 `json:"totals"`
	RowCount int                `json:"row_count"`
}
