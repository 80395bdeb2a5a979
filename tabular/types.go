package tabular

import (
	"context"
	"io"
)

// Format is the serialization target format.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// ColumnKind declares how a column's cells are typed and serialized.
type ColumnKind string

const (
	// KindTimestamp columns hold absolute instants (time.Time values).
	// Text output renders them as UTC offset strings; container output
	// encodes the wall-clock reading in the column's display zone.
	KindTimestamp ColumnKind = "timestamp"
	// KindCivil columns hold local wall-clock readings with no zone
	// indicator. Cells may be time.Time values, rendered in the column
	// zone, or pre-rendered civil strings passed through untouched.
	KindCivil ColumnKind = "civil"
	// KindText columns carry plain text.
	KindText ColumnKind = "text"
)

// Column defines a column in a table schema. The kind is declared by the
// caller, never inferred from cell content.
type Column struct {
	Name  string
	Label string
	Kind  ColumnKind
	// Zone is the IANA display zone used when rendering wall-clock fields.
	// Empty means UTC.
	Zone string
}

// Schema defines the columns for a table.
type Schema struct {
	Columns []Column
}

// Row is a column-aligned record.
type Row []any

// Table is a fully materialized set of rows with an explicit schema.
// Writers and readers never share state; reading produces a fresh Table.
type Table struct {
	Schema Schema
	Rows   []Row
}

// WriteStats capture writer output.
type WriteStats struct {
	Rows  int64
	Bytes int64
}

// CSVOptions configures delimited-text serialization.
type CSVOptions struct {
	// Delimiter defaults to a comma when zero.
	Delimiter rune
}

// XLSXOptions configures workbook serialization.
type XLSXOptions struct {
	SheetName string
	MaxRows   int
}

// SQLiteOptions configures the SQLite adapter.
type SQLiteOptions struct {
	TableName string
}

// WriteOptions configures writer behavior.
type WriteOptions struct {
	CSV    CSVOptions
	XLSX   XLSXOptions
	SQLite SQLiteOptions
	Logger Logger
}

// DefaultAssumeZone is the zone applied to zone-less civil fields when
// ReadOptions.AssumeZone is empty. Reading civil data authored in another
// zone under this default silently produces a different instant; callers
// with non-UTC data must pass AssumeZone explicitly.
const DefaultAssumeZone = "UTC"

// ReadOptions configures reader behavior.
type ReadOptions struct {
	// AssumeZone names the zone in which zone-less civil fields are
	// interpreted. Empty selects DefaultAssumeZone.
	AssumeZone string
	CSV        CSVOptions
	XLSX       XLSXOptions
	SQLite     SQLiteOptions
	Logger     Logger
}

// Writer serializes a table to a destination format.
type Writer interface {
	Write(ctx context.Context, table Table, w io.Writer, opts WriteOptions) (WriteStats, error)
}

// Reader parses a serialized table back into memory. The schema describes
// the expected columns; cell interpretation follows the column kinds.
type Reader interface {
	Read(ctx context.Context, r io.Reader, schema Schema, opts ReadOptions) (Table, error)
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger is a no-op logger.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
