package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

var ErrNoColumns = errors.New("no columns to parse from file")

// CSVParser reads a header row followed by data rows.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(content []byte) (domain.Table, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return domain.Table{}, ErrNoColumns
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("read csv header: %w", err)
	}
	table := domain.Table{Columns: uniqueHeader(header), NullColumnsNumeric: true}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("read csv row: %w", err)
		}
		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return domain.Table{}, fmt.Errorf("error tokenizing data: expected %d fields in line %d, saw %d",
				len(header), line, len(record))
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
