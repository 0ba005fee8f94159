package bmp

import "errors"

// ErrUnsupportedFileType is returned when the source does not start with "BM".
var ErrUnsupportedFileType = errors.New("bmp: type of this file is unsupported")

// ReadError reports a failed read or seek on the source.
// Op is the decoding stage: "header", "seek" or "pixels".
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return "bmp: failed to read " + e.Op + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }
