package tabular

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	excelMaxRows     = 1048576
	defaultSheetName = "Sheet1"
	defaultDateTime  = "yyyy-mm-dd hh:mm:ss"
)

// XLSXWriter renders a workbook.
//
// Each timestamp cell is stored as a day serial computed from the
// wall-clock reading in the column's display zone, plus a date number
// format. The container carries no zone metadata at all: where text output
// drops the zone by converting to UTC, the workbook drops it by baking in
// the local reading with no conversion record.
type XLSXWriter struct{}

// Write serializes the table into an XLSX workbook.
func (XLSXWriter) Write(ctx context.Context, table Table, w io.Writer, opts WriteOptions) (WriteStats, error) {
	cols, err := newColumnContexts(table.Schema)
	if err != nil {
		return WriteStats{}, err
	}

	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	sheetName := opts.XLSX.SheetName
	if sheetName == "" {
		sheetName = defaultSheetName
	}
	defaultSheet := file.GetSheetName(0)
	if defaultSheet != sheetName {
		file.SetSheetName(defaultSheet, sheetName)
	}

	stream, err := file.NewStreamWriter(sheetName)
	if err != nil {
		return WriteStats{}, err
	}

	headerID, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return WriteStats{}, err
	}
	dateTimeFormat := defaultDateTime
	dateTimeID, err := file.NewStyle(&excelize.Style{CustomNumFmt: &dateTimeFormat})
	if err != nil {
		return WriteStats{}, err
	}

	headers := make([]interface{}, len(table.Schema.Columns))
	for i, label := range headerLabels(table.Schema) {
		headers[i] = excelize.Cell{StyleID: headerID, Value: label}
	}
	if err := stream.SetRow("A1", headers); err != nil {
		return WriteStats{}, err
	}

	maxRows := opts.XLSX.MaxRows
	if maxRows <= 0 || maxRows > excelMaxRows-1 {
		maxRows = excelMaxRows - 1
	}

	stats := WriteStats{}
	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if len(row) != len(cols) {
			return stats, NewCellError(KindValidation, "row length does not match schema", i+1, 0, nil)
		}

		stats.Rows++
		if stats.Rows > int64(maxRows) {
			return stats, NewError(KindValidation, "max rows exceeded", nil)
		}

		cells := make([]interface{}, len(row))
		for j, value := range row {
			cell, err := buildXLSXCell(cols[j], value, dateTimeID, i+1, j+1)
			if err != nil {
				return stats, err
			}
			cells[j] = cell
		}
		if err := stream.SetRow(fmt.Sprintf("A%d", i+2), cells); err != nil {
			return stats, err
		}
	}

	if err := stream.Flush(); err != nil {
		return stats, err
	}

	cw := &countingWriter{w: w}
	if _, err := file.WriteTo(cw); err != nil {
		return stats, err
	}
	stats.Bytes = cw.count
	loggerOrNop(opts.Logger).Debugf("xlsx write complete sheet=%s rows=%d bytes=%d", sheetName, stats.Rows, stats.Bytes)
	return stats, nil
}

func buildXLSXCell(col columnContext, value any, dateStyle int, row, colIdx int) (excelize.Cell, error) {
	if value == nil {
		return excelize.Cell{Value: ""}, nil
	}

	switch col.column.Kind {
	case KindTimestamp:
		t, ok := coerceTime(value)
		if !ok {
			return excelize.Cell{}, NewCellError(KindTypeMismatch,
				fmt.Sprintf("column %q expects a timestamp, got %T", col.column.Name, value), row, colIdx, nil)
		}
		return excelize.Cell{StyleID: dateStyle, Value: ToSerial(t.In(col.loc))}, nil
	case KindCivil:
		if s, ok := value.(string); ok {
			return excelize.Cell{Value: s}, nil
		}
		t, ok := coerceTime(value)
		if !ok {
			return excelize.Cell{}, NewCellError(KindTypeMismatch,
				fmt.Sprintf("column %q expects a time or civil string, got %T", col.column.Name, value), row, colIdx, nil)
		}
		return excelize.Cell{StyleID: dateStyle, Value: ToSerial(t.In(col.loc))}, nil
	default:
		return excelize.Cell{Value: stringify(value)}, nil
	}
}
