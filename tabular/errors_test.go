package tabular

import (
	"strings"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		category errorslib.Category
		code     string
	}{
		{NewError(KindInvalidZone, "unknown zone", nil), errorslib.CategoryValidation, "invalid_zone"},
		{NewError(KindTypeMismatch, "bad cell", nil), errorslib.CategoryValidation, "type_mismatch"},
		{NewError(KindParse, "bad text", nil), errorslib.CategoryValidation, "parse"},
		{NewError(KindAmbiguousTime, "dst fold", nil), errorslib.CategoryValidation, "ambiguous_time"},
		{NewError(KindInternal, "boom", nil), errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("expected category %s, got %s", tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("expected text code %s, got %s", tc.code, mapped.TextCode)
		}
	}
}

func TestCellErrorCarriesCoordinates(t *testing.T) {
	err := NewCellError(KindParse, "invalid timestamp", 3, 2, nil)
	if !strings.Contains(err.Error(), "row 3, col 2") {
		t.Fatalf("expected coordinates in message, got %q", err.Error())
	}
}

func TestPinCellDoesNotOverwrite(t *testing.T) {
	pinned := pinCell(NewCellError(KindParse, "x", 1, 1, nil), 9, 9)
	terr, ok := pinned.(*TableError)
	if !ok || terr.Row != 1 || terr.Col != 1 {
		t.Fatalf("expected original coordinates, got %v", pinned)
	}

	fresh := pinCell(NewError(KindAmbiguousTime, "y", nil), 4, 5)
	terr, ok = fresh.(*TableError)
	if !ok || terr.Row != 4 || terr.Col != 5 {
		t.Fatalf("expected pinned coordinates, got %v", fresh)
	}
}
