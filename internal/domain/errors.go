package domain

import (
	"errors"
	"fmt"
)

var ErrNotFound = errors.New("not found")

// Kind tags an ingestion error with the granularity it is contained at.
type Kind string

const (
	KindInvalidPath   Kind = "invalid_path"   // fatal, returned by Ingest
	KindFileIO        Kind = "file_io"        // file or subtree skipped
	KindMalformedFile Kind = "malformed_file" // file contributes nothing
	KindInvalidRating Kind = "invalid_rating" // record skipped
	KindInvalidRecord Kind = "invalid_record" // record skipped
)

// Error is the single error type of the ingestion pipeline. Index is the
// position of the offending record inside its file, or -1.
type Error struct {
	Kind  Kind
	Path  string
	Index int
	Err   error
}

// Sentinels for errors.Is; they match any *Error of the same kind.
var (
	ErrInvalidPath   = &Error{Kind: KindInvalidPath, Index: -1}
	ErrFileIO        = &Error{Kind: KindFileIO, Index: -1}
	ErrMalformedFile = &Error{Kind: KindMalformedFile, Index: -1}
	ErrInvalidRating = &Error{Kind: KindInvalidRating, Index: -1}
	ErrInvalidRecord = &Error{Kind: KindInvalidRecord, Index: -1}
)

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Index >= 0 {
		msg += fmt.Sprintf(" [record %d]", e.Index)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "unknown".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return "unknown"
}

// PathErr builds a file- or path-scoped error.
func PathErr(kind Kind, path string, err error) *Error {
	return &Error{Kind: kind, Path: path, Index: -1, Err: err}
}

// RecordErr builds an error for the record at index i of a file.
func RecordErr(kind Kind, i int, err error) *Error {
	return &Error{Kind: kind, Index: i, Err: err}
}
