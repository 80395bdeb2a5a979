package tabular

import (
	"context"
	"encoding/csv"
	"io"
)

// CSVReader parses delimited-text output back into a table.
//
// Cells with a zone indicator recover their instant exactly. Zone-less
// civil cells are reinterpreted in ReadOptions.AssumeZone; with no policy
// supplied the named DefaultAssumeZone applies, which silently yields the
// wrong instant for data authored in another zone.
type CSVReader struct{}

// Read parses CSV bytes under the given schema.
func (CSVReader) Read(ctx context.Context, r io.Reader, schema Schema, opts ReadOptions) (Table, error) {
	codec, err := NewTextCellCodec(schema, opts.AssumeZone)
	if err != nil {
		return Table{}, err
	}

	reader := csv.NewReader(r)
	if opts.CSV.Delimiter != 0 {
		reader.Comma = opts.CSV.Delimiter
	}
	reader.FieldsPerRecord = len(schema.Columns)

	// Column alignment is positional; the header is required but its labels
	// do not override the schema.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return Table{}, NewError(KindParse, "missing header row", nil)
		}
		return Table{}, NewError(KindParse, "malformed header row", err)
	}

	table := Table{Schema: schema}
	for rowIdx := 1; ; rowIdx++ {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, NewCellError(KindParse, "malformed record", rowIdx, 0, err)
		}

		row := make(Row, len(record))
		for j, raw := range record {
			value, err := codec.Parse(rowIdx, j+1, raw)
			if err != nil {
				return Table{}, err
			}
			row[j] = value
		}
		table.Rows = append(table.Rows, row)
	}
	loggerOrNop(opts.Logger).Debugf("csv read complete rows=%d assume_zone=%s", len(table.Rows), codec.assume)
	return table, nil
}
