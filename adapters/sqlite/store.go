package tabularsqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goliatone/go-tabular/tabular"
	_ "modernc.org/sqlite"
)

const defaultTableName = "data"

// Writer persists a table into a SQLite database file and streams the file
// bytes to the destination.
type Writer struct {
	TableName string
}

// Write serializes the table into a SQLite database.
func (wr Writer) Write(ctx context.Context, table tabular.Table, w io.Writer, opts tabular.WriteOptions) (tabular.WriteStats, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	codec, err := tabular.NewTextCellCodec(table.Schema, "")
	if err != nil {
		return tabular.WriteStats{}, err
	}

	tableName := strings.TrimSpace(opts.SQLite.TableName)
	if tableName == "" {
		tableName = strings.TrimSpace(wr.TableName)
	}
	tableName = sanitizeIdentifier(tableName, defaultTableName)
	spec := buildTableSpec(table.Schema, tableName)

	path, cleanup, err := tempDatabase()
	if err != nil {
		return tabular.WriteStats{}, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return tabular.WriteStats{}, tabular.NewError(tabular.KindInternal, "sqlite open failed", err)
	}

	stats, err := insertRows(ctx, db, spec, table, codec)
	if err != nil {
		_ = db.Close()
		return stats, err
	}
	if err := db.Close(); err != nil {
		return stats, tabular.NewError(tabular.KindInternal, "sqlite close failed", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return stats, tabular.NewError(tabular.KindInternal, "sqlite temp file open failed", err)
	}
	defer func() {
		_ = file.Close()
	}()

	written, err := io.Copy(w, file)
	stats.Bytes = written
	if err != nil {
		return stats, err
	}
	return stats, nil
}

// Reader loads a SQLite database produced by Writer back into a table.
// TEXT timestamp cells are interpreted under the same assume-zone policy as
// the CSV reader.
type Reader struct {
	TableName string
}

// Read copies the database bytes to a temp file, opens it, and scans the
// rows back in insertion order.
func (rd Reader) Read(ctx context.Context, r io.Reader, schema tabular.Schema, opts tabular.ReadOptions) (tabular.Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	codec, err := tabular.NewTextCellCodec(schema, opts.AssumeZone)
	if err != nil {
		return tabular.Table{}, err
	}

	tableName := strings.TrimSpace(opts.SQLite.TableName)
	if tableName == "" {
		tableName = strings.TrimSpace(rd.TableName)
	}
	tableName = sanitizeIdentifier(tableName, defaultTableName)
	spec := buildTableSpec(schema, tableName)

	path, cleanup, err := tempDatabase()
	if err != nil {
		return tabular.Table{}, err
	}
	defer cleanup()

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return tabular.Table{}, tabular.NewError(tabular.KindInternal, "sqlite temp file open failed", err)
	}
	if _, err := io.Copy(file, r); err != nil {
		_ = file.Close()
		return tabular.Table{}, tabular.NewError(tabular.KindParse, "copy database bytes", err)
	}
	if err := file.Close(); err != nil {
		return tabular.Table{}, tabular.NewError(tabular.KindInternal, "sqlite temp file close failed", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return tabular.Table{}, tabular.NewError(tabular.KindInternal, "sqlite open failed", err)
	}
	defer func() {
		_ = db.Close()
	}()

	rows, err := db.QueryContext(ctx, spec.selectSQL)
	if err != nil {
		return tabular.Table{}, tabular.NewError(tabular.KindParse, fmt.Sprintf("query table %q", spec.tableName), err)
	}
	defer func() {
		_ = rows.Close()
	}()

	table := tabular.Table{Schema: schema}
	for rowIdx := 1; rows.Next(); rowIdx++ {
		if err := ctx.Err(); err != nil {
			return tabular.Table{}, err
		}

		raw := make([]sql.NullString, len(schema.Columns))
		dest := make([]any, len(raw))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return tabular.Table{}, tabular.NewCellError(tabular.KindParse, "scan record", rowIdx, 0, err)
		}

		row := make(tabular.Row, len(raw))
		for j, cell := range raw {
			if !cell.Valid {
				continue
			}
			value, err := codec.Parse(rowIdx, j+1, cell.String)
			if err != nil {
				return tabular.Table{}, err
			}
			row[j] = value
		}
		table.Rows = append(table.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return tabular.Table{}, tabular.NewError(tabular.KindParse, "read rows", err)
	}
	return table, nil
}

type tableSpec struct {
	tableName string
	createSQL string
	insertSQL string
	selectSQL string
}

func buildTableSpec(schema tabular.Schema, tableName string) tableSpec {
	columnDefs := make([]string, len(schema.Columns))
	columnNames := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		name := strings.TrimSpace(col.Label)
		if name == "" {
			name = col.Name
		}
		// Every kind serializes to text; zone attribution is lost either
		// way, exactly like the delimited-text format.
		columnDefs[i] = fmt.Sprintf("%s TEXT", quoteIdentifier(name))
		columnNames[i] = quoteIdentifier(name)
	}

	quoted := quoteIdentifier(tableName)
	names := strings.Join(columnNames, ", ")
	return tableSpec{
		tableName: tableName,
		createSQL: fmt.Sprintf("CREATE TABLE %s (%s)", quoted, strings.Join(columnDefs, ", ")),
		insertSQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoted, names, strings.Join(placeholders(len(columnNames)), ", ")),
		selectSQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", names, quoted),
	}
}

func insertRows(ctx context.Context, db *sql.DB, spec tableSpec, table tabular.Table, codec *tabular.TextCellCodec) (tabular.WriteStats, error) {
	stats := tabular.WriteStats{}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return stats, tabular.NewError(tabular.KindInternal, "sqlite begin transaction failed", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, spec.createSQL); err != nil {
		return stats, tabular.NewError(tabular.KindInternal, "sqlite create table failed", err)
	}

	stmt, err := tx.PrepareContext(ctx, spec.insertSQL)
	if err != nil {
		return stats, tabular.NewError(tabular.KindInternal, "sqlite prepare insert failed", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if len(row) != len(table.Schema.Columns) {
			return stats, tabular.NewCellError(tabular.KindValidation, "row length does not match schema", i+1, 0, nil)
		}

		values := make([]any, len(row))
		for j, value := range row {
			if value == nil {
				continue
			}
			formatted, err := codec.Format(i+1, j+1, value)
			if err != nil {
				return stats, err
			}
			values[j] = formatted
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return stats, tabular.NewError(tabular.KindInternal, "sqlite insert failed", err)
		}
		stats.Rows++
	}

	if err := tx.Commit(); err != nil {
		return stats, tabular.NewError(tabular.KindInternal, "sqlite commit failed", err)
	}
	return stats, nil
}

func tempDatabase() (string, func(), error) {
	tempFile, err := os.CreateTemp("", "go-tabular-*.sqlite")
	if err != nil {
		return "", nil, tabular.NewError(tabular.KindInternal, "sqlite temp file create failed", err)
	}
	path := tempFile.Name()
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, tabular.NewError(tabular.KindInternal, "sqlite temp file close failed", err)
	}
	return path, func() { _ = os.Remove(path) }, nil
}

func placeholders(count int) []string {
	out := make([]string, count)
	for i := range out {
		out[i] = "?"
	}
	return out
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func sanitizeIdentifier(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	sanitized := strings.Trim(b.String(), "_")
	if sanitized == "" {
		return fallback
	}
	if sanitized[0] >= '0' && sanitized[0] <= '9' {
		sanitized = "t_" + sanitized
	}
	return sanitized
}
