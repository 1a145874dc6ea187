package tabular

import (
	"errors"
	"testing"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

func TestCSVParserTypesCells(t *testing.T) {
	table, err := NewCSVParser().Parse([]byte("amount,party,paid,note\n100.5,ACME,true,\n200,Globex,False,NA\n,Initech,,x\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(table.Columns) != 4 || table.Columns[0] != "amount" {
		t.Fatalf("unexpected columns %v", table.Columns)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	first := table.Rows[0]
	if first[0].Kind != domain.CellNumber || first[0].Number != 100.5 {
		t.Fatalf("expected number cell, got %+v", first[0])
	}
	if first[1].Kind != domain.CellText || first[2].Kind != domain.CellBool || !first[2].Bool {
		t.Fatalf("unexpected typing %+v", first)
	}
	if first[3].Kind != domain.CellNull || table.Rows[1][3].Kind != domain.CellNull {
		t.Fatalf("expected empty and NA cells to be null")
	}
	if table.Rows[2][0].Kind != domain.CellNull {
		t.Fatalf("expected empty amount to be null")
	}
}

func TestCSVParserPadsShortRowsAndRejectsLongRows(t *testing.T) {
	table, err := NewCSVParser().Parse([]byte("a,b\n1\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(table.Rows[0]) != 2 || table.Rows[0][1].Kind != domain.CellNull {
		t.Fatalf("expected padded row, got %+v", table.Rows[0])
	}

	if _, err := NewCSVParser().Parse([]byte("a,b\n1,2,3\n")); err == nil {
		t.Fatalf("expected error for row with extra fields")
	}
}

func TestCSVParserEmptyInput(t *testing.T) {
	_, err := NewCSVParser().Parse(nil)
	if !errors.Is(err, ErrNoColumns) {
		t.Fatalf("expected ErrNoColumns, got %v", err)
	}
}

func TestCSVParserRenamesDuplicateHeaders(t *testing.T) {
	table, err := NewCSVParser().Parse([]byte("\xef\xbb\xbfa,a,a\n1,2,3\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []string{"a", "a.1", "a.2"}
	for i, name := range want {
		if table.Columns[i] != name {
			t.Fatalf("expected columns %v, got %v", want, table.Columns)
		}
	}
}

func TestCSVParserKeepsHeaderSpacingAndMarksNullColumnsNumeric(t *testing.T) {
	table, err := NewCSVParser().Parse([]byte(" amount,b\n1,\n2,\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if table.Columns[0] != " amount" {
		t.Fatalf("expected header kept as written, got %q", table.Columns[0])
	}
	if !table.NullColumnsNumeric {
		t.Fatalf("expected csv tables to read null-only columns as numeric")
	}
	for _, row := range table.Rows {
		if row[1].Kind != domain.CellNull {
			t.Fatalf("expected null cell, got %+v", row[1])
		}
	}
}
