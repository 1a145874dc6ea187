package tabular

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

func TestXLSXParserReadsFirstSheet(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]any{
		{"ledger", "debit", "credit"},
		{"Sales", 1200, nil},
		{"Purchases", 300.5, 50},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName() error = %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow() error = %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	table, err := NewXLSXParser().Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(table.Columns) != 3 || table.Columns[1] != "debit" {
		t.Fatalf("unexpected columns %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[1][1].Kind != domain.CellNumber || table.Rows[1][1].Number != 300.5 {
		t.Fatalf("unexpected cell %+v", table.Rows[1][1])
	}
	if table.Rows[0][2].Kind != domain.CellNull {
		t.Fatalf("expected empty credit to be null, got %+v", table.Rows[0][2])
	}
}

func TestXLSXParserRejectsGarbage(t *testing.T) {
	if _, err := NewXLSXParser().Parse([]byte("not a workbook")); err == nil {
		t.Fatalf("expected error")
	}
}
