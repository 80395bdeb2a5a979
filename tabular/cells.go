package tabular

import (
	"fmt"
	"strings"
	"time"
)

type columnContext struct {
	column Column
	loc    *time.Location
}

func newColumnContexts(schema Schema) ([]columnContext, error) {
	if len(schema.Columns) == 0 {
		return nil, NewError(KindValidation, "schema has no columns", nil)
	}

	cols := make([]columnContext, len(schema.Columns))
	for i, col := range schema.Columns {
		if strings.TrimSpace(col.Name) == "" {
			return nil, NewError(KindValidation, fmt.Sprintf("column %d has no name", i+1), nil)
		}
		switch col.Kind {
		case KindTimestamp, KindCivil, KindText, "":
		default:
			return nil, NewError(KindValidation, fmt.Sprintf("column %q has unknown kind %q", col.Name, col.Kind), nil)
		}
		loc, err := LoadZone(col.Zone)
		if err != nil {
			return nil, err
		}
		cols[i] = columnContext{column: col, loc: loc}
	}
	return cols, nil
}

// TextCellCodec formats and parses cells under the delimited-text policy:
// timestamp cells collapse to UTC offset strings on write, zone-less civil
// cells are interpreted in the configured assume-zone on read. The CSV
// writer and reader are built on it, and zone-less text stores such as the
// SQLite adapter share it so all text boundaries behave identically.
type TextCellCodec struct {
	cols   []columnContext
	assume string
}

// NewTextCellCodec builds a codec for schema. assumeZone names the zone in
// which zone-less civil fields are interpreted when parsing; empty selects
// DefaultAssumeZone.
func NewTextCellCodec(schema Schema, assumeZone string) (*TextCellCodec, error) {
	cols, err := newColumnContexts(schema)
	if err != nil {
		return nil, err
	}
	if assumeZone == "" {
		assumeZone = DefaultAssumeZone
	}
	if _, err := LoadZone(assumeZone); err != nil {
		return nil, err
	}
	return &TextCellCodec{cols: cols, assume: assumeZone}, nil
}

// Columns returns the schema columns the codec was built for.
func (c *TextCellCodec) Columns() []Column {
	out := make([]Column, len(c.cols))
	for i, col := range c.cols {
		out[i] = col.column
	}
	return out
}

// Format renders the cell at the given 1-based coordinates.
//
// Timestamp cells are rendered as UTC offset strings regardless of the
// column's display zone: the zone tag is not preserved by text output.
// Civil cells are rendered as the column-zone wall-clock reading with no
// indicator, which keeps the local fields but loses the zone entirely.
func (c *TextCellCodec) Format(row, col int, value any) (string, error) {
	if value == nil {
		return "", nil
	}

	cc := c.cols[col-1]
	switch cc.column.Kind {
	case KindTimestamp:
		t, ok := coerceTime(value)
		if !ok {
			return "", NewCellError(KindTypeMismatch,
				fmt.Sprintf("column %q expects a timestamp, got %T", cc.column.Name, value), row, col, nil)
		}
		return t.UTC().Format(offsetLayout), nil
	case KindCivil:
		if s, ok := value.(string); ok {
			return s, nil
		}
		t, ok := coerceTime(value)
		if !ok {
			return "", NewCellError(KindTypeMismatch,
				fmt.Sprintf("column %q expects a time or civil string, got %T", cc.column.Name, value), row, col, nil)
		}
		return t.In(cc.loc).Format(civilLayout), nil
	default:
		return stringify(value), nil
	}
}

// Parse interprets the cell at the given 1-based coordinates.
//
// Timestamp cells with a zone indicator parse directly to the instant they
// denote. Cells without one carry no zone attribution, so their fields are
// reinterpreted in the assume-zone; when the original data was authored
// elsewhere this yields a different instant, repairable with ForceZone.
func (c *TextCellCodec) Parse(row, col int, raw string) (any, error) {
	cc := c.cols[col-1]
	switch cc.column.Kind {
	case KindTimestamp, KindCivil:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		if cc.column.Kind == KindTimestamp {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				return t, nil
			}
		}
		civil, ok := parseCivilString(raw)
		if !ok {
			return nil, NewCellError(KindParse,
				fmt.Sprintf("invalid timestamp %q for column %q", raw, cc.column.Name), row, col, nil)
		}
		forced, err := ForceZone(civil, c.assume)
		if err != nil {
			return nil, pinCell(err, row, col)
		}
		return forced, nil
	default:
		return raw, nil
	}
}

// parseCivilString parses zone-less wall-clock text. The fields come back
// tagged UTC purely as a carrier; callers reinterpret them with ForceZone.
func parseCivilString(raw string) (time.Time, bool) {
	layouts := []string{
		civilLayout,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

func coerceTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	default:
		return time.Time{}, false
	}
}
