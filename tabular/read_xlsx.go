package tabular

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXReader parses a workbook back into a table.
//
// Timestamp cells come back as raw day serials, which carry no zone at all.
// The decoded wall-clock fields are reinterpreted in ReadOptions.AssumeZone
// (DefaultAssumeZone when unset), so the recovered instant matches the
// original only when the workbook was written with that same display zone.
type XLSXReader struct{}

// Read parses XLSX bytes under the given schema.
func (XLSXReader) Read(ctx context.Context, r io.Reader, schema Schema, opts ReadOptions) (Table, error) {
	cols, err := newColumnContexts(schema)
	if err != nil {
		return Table{}, err
	}
	assume := opts.AssumeZone
	if assume == "" {
		assume = DefaultAssumeZone
	}
	if _, err := LoadZone(assume); err != nil {
		return Table{}, err
	}

	file, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, NewError(KindParse, "open workbook", err)
	}
	defer func() {
		_ = file.Close()
	}()

	sheetName := opts.XLSX.SheetName
	if sheetName == "" {
		sheetName = file.GetSheetName(0)
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, NewError(KindParse, fmt.Sprintf("read sheet %q", sheetName), err)
	}
	if len(rows) == 0 {
		return Table{}, NewError(KindParse, "missing header row", nil)
	}

	table := Table{Schema: schema}
	for i, record := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}

		rowIdx := i + 1
		row := make(Row, len(cols))
		for j := range cols {
			// GetRows trims trailing empty cells.
			raw := ""
			if j < len(record) {
				raw = record[j]
			}
			value, err := parseXLSXCell(cols[j], raw, assume, rowIdx, j+1)
			if err != nil {
				return Table{}, err
			}
			row[j] = value
		}
		table.Rows = append(table.Rows, row)
	}
	loggerOrNop(opts.Logger).Debugf("xlsx read complete sheet=%s rows=%d assume_zone=%s", sheetName, len(table.Rows), assume)
	return table, nil
}

func parseXLSXCell(col columnContext, raw, assume string, row, colIdx int) (any, error) {
	switch col.column.Kind {
	case KindTimestamp, KindCivil:
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil, nil
		}
		// Civil columns may hold pre-rendered text rather than serials.
		civil, ok := parseCivilString(raw)
		if serial, serr := strconv.ParseFloat(raw, 64); serr == nil {
			civil, ok = FromSerial(serial), true
		}
		if !ok {
			return nil, NewCellError(KindParse,
				fmt.Sprintf("invalid date serial %q for column %q", raw, col.column.Name), row, colIdx, nil)
		}
		forced, err := ForceZone(civil, assume)
		if err != nil {
			return nil, pinCell(err, row, colIdx)
		}
		return forced, nil
	default:
		return raw, nil
	}
}
