package tabular

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

// JSONParser accepts an array of objects or one object. Nested objects are
// flattened into dotted column names.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(content []byte) (domain.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return domain.Table{}, fmt.Errorf("decode json: %w", err)
	}

	columns := newColumnIndex()
	var records []map[int]domain.Cell

	switch tok {
	case json.Delim('['):
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return domain.Table{}, fmt.Errorf("decode json: %w", err)
			}
			if tok != json.Delim('{') {
				return domain.Table{}, fmt.Errorf("expected array of objects, found %v", tok)
			}
			record := make(map[int]domain.Cell)
			if err := flattenObject(dec, "", columns, record); err != nil {
				return domain.Table{}, err
			}
			records = append(records, record)
		}
		if _, err := dec.Token(); err != nil {
			return domain.Table{}, fmt.Errorf("decode json: %w", err)
		}
	case json.Delim('{'):
		record := make(map[int]domain.Cell)
		if err := flattenObject(dec, "", columns, record); err != nil {
			return domain.Table{}, err
		}
		records = append(records, record)
	default:
		return domain.Table{}, errors.New("expected a JSON object or an array of objects")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Table{}, errors.New("decode json: unexpected data after top-level value")
	}

	table := domain.Table{Columns: columns.names}
	for _, record := range records {
		row := make([]domain.Cell, len(columns.names))
		for i := range row {
			if cell, ok := record[i]; ok {
				row[i] = cell
			} else {
				row[i] = domain.NullCell()
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// flattenObject consumes an object whose opening brace was already read.
func flattenObject(dec *json.Decoder, prefix string, columns *columnIndex, record map[int]domain.Cell) error {
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		key, _ := keyTok.(string)
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
		switch v := tok.(type) {
		case json.Delim:
			if v == '{' {
				if err := flattenObject(dec, name, columns, record); err != nil {
					return err
				}
				continue
			}
			// Arrays stay opaque text cells.
			raw, err := skipArray(dec)
			if err != nil {
				return err
			}
			record[columns.add(name)] = domain.TextCell(raw)
		case nil:
			record[columns.add(name)] = domain.NullCell()
		case bool:
			record[columns.add(name)] = domain.BoolCell(v)
		case json.Number:
			n, err := v.Float64()
			if err != nil {
				return fmt.Errorf("decode json number %q: %w", v, err)
			}
			record[columns.add(name)] = domain.NumberCell(n)
		case string:
			record[columns.add(name)] = domain.TextCell(v)
		}
	}
	_, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

func skipArray(dec *json.Decoder) (string, error) {
	depth := 1
	var buf bytes.Buffer
	buf.WriteByte('[')
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("decode json: %w", err)
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '[', '{':
				depth++
			case ']', '}':
				depth--
			}
		}
		fmt.Fprint(&buf, tok)
	}
	return buf.String(), nil
}
