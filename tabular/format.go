package tabular

import "strings"

// NormalizeFormat coerces format values into known aliases with defaults
// applied.
func NormalizeFormat(format Format) Format {
	normalized := strings.ToLower(strings.TrimSpace(string(format)))
	switch normalized {
	case "", string(FormatCSV):
		return FormatCSV
	case "excel", "xls", string(FormatXLSX):
		return FormatXLSX
	case "sqlite3", "db", string(FormatSQLite):
		return FormatSQLite
	default:
		return Format(normalized)
	}
}

// ContentTypeFor returns the MIME type for a format.
func ContentTypeFor(format Format) string {
	switch NormalizeFormat(format) {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatSQLite:
		return "application/vnd.sqlite3"
	default:
		return "text/csv"
	}
}
