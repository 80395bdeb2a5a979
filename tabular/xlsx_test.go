package tabular

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

func TestXLSXWriter_EncodesLocalSerial(t *testing.T) {
	buf := &bytes.Buffer{}
	table := Table{
		Schema: Schema{Columns: []Column{
			{Name: "created_at", Label: "Created At", Kind: KindTimestamp, Zone: "America/Chicago"},
		}},
		Rows: []Row{
			{time.Date(2018, time.December, 30, 0, 0, 0, 0, time.UTC)},
		},
	}

	stats, err := XLSXWriter{}.Write(context.Background(), table, buf, WriteOptions{})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if stats.Rows != 1 || stats.Bytes == 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	file, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	rows, err := file.GetRows(file.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "Created At" {
		t.Fatalf("unexpected sheet contents %v", rows)
	}

	serial, err := strconv.ParseFloat(rows[1][0], 64)
	if err != nil {
		t.Fatalf("expected numeric serial, got %q", rows[1][0])
	}
	// The cell records the Chicago wall-clock reading 2018-12-29 18:00,
	// not the UTC reading of the instant.
	if serial != 43463.75 {
		t.Fatalf("expected serial 43463.75, got %v", serial)
	}
}

func TestXLSXContainerZoneLoss(t *testing.T) {
	original := time.Date(2018, time.December, 30, 0, 0, 0, 0, time.UTC)
	schema := Schema{Columns: []Column{
		{Name: "created_at", Kind: KindTimestamp, Zone: "America/Chicago"},
	}}
	table := Table{Schema: schema, Rows: []Row{{original}}}

	buf := &bytes.Buffer{}
	if _, err := (XLSXWriter{}).Write(context.Background(), table, buf, WriteOptions{}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Reading under the default UTC policy recovers the civil fields but a
	// different instant: the zone attribution was dropped at write time.
	got, err := XLSXReader{}.Read(context.Background(), bytes.NewReader(buf.Bytes()), schema, ReadOptions{})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	readBack := got.Rows[0][0].(time.Time)

	wantCivil := time.Date(2018, time.December, 29, 18, 0, 0, 0, time.UTC)
	if !readBack.Equal(wantCivil) {
		t.Fatalf("expected civil fields read as UTC (%s), got %s", wantCivil, readBack)
	}
	if readBack.Equal(original) {
		t.Fatalf("expected a different instant than the original")
	}

	// Reattributing the civil fields to the zone they were written in
	// restores the original instant.
	repaired, err := ForceZone(readBack, "America/Chicago")
	if err != nil {
		t.Fatalf("force zone: %v", err)
	}
	if !repaired.Equal(original) {
		t.Fatalf("expected repaired instant %s, got %s", original, repaired)
	}
}

func TestXLSXReader_AssumeZoneRecoversInstant(t *testing.T) {
	original := time.Date(2018, time.December, 30, 0, 0, 0, 0, time.UTC)
	schema := Schema{Columns: []Column{
		{Name: "created_at", Kind: KindTimestamp, Zone: "America/Chicago"},
	}}
	table := Table{Schema: schema, Rows: []Row{{original}}}

	buf := &bytes.Buffer{}
	if _, err := (XLSXWriter{}).Write(context.Background(), table, buf, WriteOptions{}); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := XLSXReader{}.Read(context.Background(), bytes.NewReader(buf.Bytes()), schema, ReadOptions{
		AssumeZone: "America/Chicago",
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if readBack := got.Rows[0][0].(time.Time); !readBack.Equal(original) {
		t.Fatalf("expected %s, got %s", original, readBack)
	}
}

func TestXLSXWriter_SheetNameAndText(t *testing.T) {
	buf := &bytes.Buffer{}
	table := Table{
		Schema: Schema{Columns: []Column{{Name: "name", Kind: KindText}}},
		Rows:   []Row{{"alice"}},
	}

	if _, err := (XLSXWriter{}).Write(context.Background(), table, buf, WriteOptions{
		XLSX: XLSXOptions{SheetName: "Data"},
	}); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := XLSXReader{}.Read(context.Background(), bytes.NewReader(buf.Bytes()), table.Schema, ReadOptions{
		XLSX: XLSXOptions{SheetName: "Data"},
	})
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Rows[0][0] != "alice" {
		t.Fatalf("expected text cell, got %v", got.Rows[0][0])
	}
}

func TestXLSXWriter_TypeMismatch(t *testing.T) {
	table := Table{
		Schema: Schema{Columns: []Column{{Name: "created_at", Kind: KindTimestamp}}},
		Rows:   []Row{{42}},
	}

	_, err := XLSXWriter{}.Write(context.Background(), table, &bytes.Buffer{}, WriteOptions{})
	if err == nil {
		t.Fatalf("expected type mismatch error")
	}
	if kind := KindFromError(err); kind != KindTypeMismatch {
		t.Fatalf("expected type_mismatch, got %s", kind)
	}
}

func TestXLSXWriter_MaxRows(t *testing.T) {
	table := Table{
		Schema: Schema{Columns: []Column{{Name: "name", Kind: KindText}}},
		Rows:   []Row{{"a"}, {"b"}},
	}

	_, err := XLSXWriter{}.Write(context.Background(), table, &bytes.Buffer{}, WriteOptions{
		XLSX: XLSXOptions{MaxRows: 1},
	})
	if err == nil {
		t.Fatalf("expected max rows error")
	}
	if kind := KindFromError(err); kind != KindValidation {
		t.Fatalf("expected validation, got %s", kind)
	}
}
