package tabular

import "testing"

func TestNormalizeFormat(t *testing.T) {
	cases := []struct {
		in   Format
		want Format
	}{
		{"", FormatCSV},
		{"csv", FormatCSV},
		{"excel", FormatXLSX},
		{"xls", FormatXLSX},
		{"XLSX", FormatXLSX},
		{"sqlite3", FormatSQLite},
		{"db", FormatSQLite},
		{"parquet", Format("parquet")},
	}
	for _, tc := range cases {
		if got := NormalizeFormat(tc.in); got != tc.want {
			t.Fatalf("NormalizeFormat(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestContentTypeFor(t *testing.T) {
	if got := ContentTypeFor(FormatCSV); got != "text/csv" {
		t.Fatalf("unexpected csv content type %q", got)
	}
	if got := ContentTypeFor("excel"); got != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected xlsx content type %q", got)
	}
	if got := ContentTypeFor(FormatSQLite); got != "application/vnd.sqlite3" {
		t.Fatalf("unexpected sqlite content type %q", got)
	}
}

func TestDefaultRegistries(t *testing.T) {
	writers := DefaultWriters()
	if _, ok := writers.Resolve("excel"); !ok {
		t.Fatalf("expected xlsx writer under excel alias")
	}
	if _, ok := writers.Resolve(FormatSQLite); ok {
		t.Fatalf("sqlite writer must be registered by the adapter")
	}

	readers := DefaultReaders()
	if _, ok := readers.Resolve(FormatCSV); !ok {
		t.Fatalf("expected csv reader")
	}
}

func TestRegistryRejectsNil(t *testing.T) {
	if err := NewWriterRegistry().Register(FormatCSV, nil); err == nil {
		t.Fatalf("expected validation error")
	}
	if err := NewReaderRegistry().Register(FormatCSV, nil); err == nil {
		t.Fatalf("expected validation error")
	}
}
