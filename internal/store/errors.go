package store

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyExists is returned by Create when a snapshot with the derived name exists
	ErrAlreadyExists = errors.New("snapshot already exists")

	// ErrNotFound is returned when a named snapshot does not exist
	ErrNotFound = errors.New("snapshot not found")
)

// Copy directions reported in FileIOError.Op
const (
	OpCreate  = "create"
	OpRestore = "restore"
)

// FileIOError reports which FileSet member failed to copy, and in which direction
type FileIOError struct {
	Op   string
	File string
	Src  string
	Dst  string
	Err  error
}

func (e *FileIOError) Error() string {
	return fmt.Sprintf("%s: failed to copy %s from %s to %s: %v", e.Op, e.File, e.Src, e.Dst, e.Err)
}

func (e *FileIOError) Unwrap() error {
	return e.Err
}
