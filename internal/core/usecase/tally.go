package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
	"github.com/kirillkom/ca-suite-backend/internal/core/ports"
)

// Tabular formats recognised by file extension. Anything else is read as CSV.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

type TallyImportUseCase struct {
	parsers map[string]ports.TableParser
}

func NewTallyImportUseCase(parsers map[string]ports.TableParser) *TallyImportUseCase {
	registered := make(map[string]ports.TableParser, len(parsers))
	for format, parser := range parsers {
		if parser != nil {
			registered[strings.ToLower(format)] = parser
		}
	}
	return &TallyImportUseCase{parsers: registered}
}

func (uc *TallyImportUseCase) Import(_ context.Context, filename string, content []byte) (*domain.TallySummary, error) {
	format := FormatFromFilename(filename)
	parser, ok := uc.parsers[format]
	if !ok {
		return nil, domain.WrapError(domain.ErrConfiguration, "import tally",
			fmt.Errorf("no %s parser is installed on the server", format))
	}

	table, err := parser.Parse(content)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "import tally",
			fmt.Errorf("Invalid file format: %w", err))
	}
	return SummarizeTable(table), nil
}

func FormatFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return FormatJSON
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// SummarizeTable sums every numeric column. A column is numeric when its
// non-null cells are all numbers, or all bools with no nulls among them. A
// column with only nulls counts as numeric (total 0) when the table's format
// reads such columns as floats.
func SummarizeTable(table domain.Table) *domain.TallySummary {
	summary := &domain.TallySummary{
		Totals:   make(map[string]float64),
		RowCount: len(table.Rows),
	}

	for col, name := range table.Columns {
		var (
			total                 float64
			numbers, bools, nulls int
			hasText               bool
		)
		for _, row := range table.Rows {
			if col >= len(row) {
				nulls++
				continue
			}
			cell := row[col]
			switch cell.Kind {
			case domain.CellNumber:
				numbers++
				total += cell.Number
			case domain.CellBool:
				bools++
				if cell.Bool {
					total++
				}
			case domain.CellText:
				hasText = true
			default:
				nulls++
			}
		}

		switch {
		case hasText:
			continue
		case numbers > 0 && bools > 0:
			continue
		case bools > 0 && nulls > 0:
			continue
		case numbers+bools == 0 && (nulls == 0 || !table.NullColumnsNumeric):
			continue
		}
		summary.Totals[name] = total
	}
	return summary
}
