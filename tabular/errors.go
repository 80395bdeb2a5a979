package tabular

import (
	"context"
	"errors"
	"fmt"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines table serialization error kinds.
type ErrorKind string

const (
	KindInvalidZone   ErrorKind = "invalid_zone"
	KindTypeMismatch  ErrorKind = "type_mismatch"
	KindParse         ErrorKind = "parse"
	KindAmbiguousTime ErrorKind = "ambiguous_time"
	KindValidation    ErrorKind = "validation"
	KindInternal      ErrorKind = "internal"
)

// TableError wraps errors with a kind and, when cell-scoped, coordinates.
type TableError struct {
	Kind ErrorKind
	Msg  string
	// Row and Col are 1-based data coordinates; zero means the error is not
	// pinned to a cell. The header row is not counted.
	Row int
	Col int
	Err error
}

func (e *TableError) Error() string {
	msg := e.Msg
	if e.Row > 0 || e.Col > 0 {
		msg = fmt.Sprintf("%s (row %d, col %d)", msg, e.Row, e.Col)
	}
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// NewError creates a new table error.
func NewError(kind ErrorKind, msg string, err error) *TableError {
	return &TableError{Kind: kind, Msg: msg, Err: err}
}

// NewCellError creates a table error pinned to a cell.
func NewCellError(kind ErrorKind, msg string, row, col int, err error) *TableError {
	return &TableError{Kind: kind, Msg: msg, Row: row, Col: col, Err: err}
}

// pinCell attaches cell coordinates to errors raised below the cell level,
// such as zone ambiguity surfacing out of ForceZone.
func pinCell(err error, row, col int) error {
	var terr *TableError
	if errors.As(err, &terr) && terr.Row == 0 && terr.Col == 0 {
		return &TableError{Kind: terr.Kind, Msg: terr.Msg, Row: row, Col: col, Err: terr.Err}
	}
	return err
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindInternal
	msg := err.Error()

	var terr *TableError
	if errors.As(err, &terr) {
		kind = terr.Kind
		msg = terr.Error()
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode("canceled")
	}

	switch kind {
	case KindInvalidZone, KindTypeMismatch, KindParse, KindAmbiguousTime, KindValidation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode(string(kind))
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode("internal")
	}
}

// KindFromError maps an error to its table error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var terr *TableError
	if errors.As(err, &terr) {
		return terr.Kind
	}

	return KindInternal
}
