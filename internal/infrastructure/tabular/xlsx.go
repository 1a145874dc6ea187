package tabular

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

// XLSXParser reads the first worksheet of a workbook. Its first row is the
// header; cell values are typed from their displayed text.
type XLSXParser struct{}

func NewXLSXParser() *XLSXParser {
	return &XLSXParser{}
}

func (p *XLSXParser) Parse(content []byte) (domain.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return domain.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, ErrNoColumns
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return domain.Table{}, ErrNoColumns
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		header[i] = name
	}

	table := domain.Table{Columns: uniqueHeader(header), NullColumnsNumeric: true}
	for _, record := range rows[1:] {
		if blankRow(record) {
			continue
		}
		row := make([]domain.Cell, len(header))
		for i := range row {
			if i < len(record) {
				row[i] = ParseCell(record[i])
			} else {
				row[i] = domain.NullCell()
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func blankRow(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
