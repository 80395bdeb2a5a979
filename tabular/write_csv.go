package tabular

import (
	"context"
	"encoding/csv"
	"io"
)

// CSVWriter renders delimited-text output. The header row is always
// written.
//
// Every timestamp cell collapses to a UTC offset string: two columns
// holding the same instants under different display zones produce identical
// text. Callers who need the local reading in the file must declare the
// column KindCivil, at the cost of losing the zone indicator entirely.
type CSVWriter struct{}

// Write serializes the table as CSV.
func (CSVWriter) Write(ctx context.Context, table Table, w io.Writer, opts WriteOptions) (WriteStats, error) {
	codec, err := NewTextCellCodec(table.Schema, "")
	if err != nil {
		return WriteStats{}, err
	}

	cw := &countingWriter{w: w}
	writer := csv.NewWriter(cw)
	if opts.CSV.Delimiter != 0 {
		writer.Comma = opts.CSV.Delimiter
	}

	if err := writer.Write(headerLabels(table.Schema)); err != nil {
		return WriteStats{}, err
	}

	stats := WriteStats{}
	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if len(row) != len(table.Schema.Columns) {
			return stats, NewCellError(KindValidation, "row length does not match schema", i+1, 0, nil)
		}

		record := make([]string, len(row))
		for j, value := range row {
			formatted, err := codec.Format(i+1, j+1, value)
			if err != nil {
				return stats, err
			}
			record[j] = formatted
		}
		if err := writer.Write(record); err != nil {
			return stats, err
		}
		stats.Rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return stats, err
	}

	stats.Bytes = cw.count
	loggerOrNop(opts.Logger).Debugf("csv write complete rows=%d bytes=%d", stats.Rows, stats.Bytes)
	return stats, nil
}
