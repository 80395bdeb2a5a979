// Package tabularsqlite provides a SQLite round-trip adapter for go-tabular.
//
// SQLite has no timestamp type: timestamp and civil columns land in TEXT
// columns using the same delimited-text policy as the CSV writer, so the
// database file demonstrates the same zone-attribution loss as the text
// formats. Register the adapter explicitly:
//
//	_ = writers.Register(tabular.FormatSQLite, tabularsqlite.Writer{})
//	_ = readers.Register(tabular.FormatSQLite, tabularsqlite.Reader{})
//
// Table names are configurable per call (write_options.sqlite.table_name).
// When omitted, the default table name is "data".
package tabularsqlite
