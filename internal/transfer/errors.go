package transfer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFile      = errors.New("invalid file")
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
	ErrShortRead        = errors.New("file shrank during transfer")
)

// TransferError wraps a failure with the operation and file it occurred
// in, so CLI output can say which transfer broke and why.
type TransferError struct {
	Op   string
	File string
	Err  error
}

func (e *TransferError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.File, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}

func NewError(op string, err error) *TransferError {
	return &TransferError{Op: op, Err: err}
}

func NewFileError(op, file string, err error) *TransferError {
	return &TransferError{Op: op, File: file, Err: err}
}
