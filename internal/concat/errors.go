package concat

import (
	"errors"
	"fmt"
)

const (
	outputOpenErrorFormat  = "open output %s: %v"
	outputWriteErrorFormat = "write output %s: %v"
	// fileReadErrorFormat is also the diagnostic line logged for every skipped file.
	fileReadErrorFormat = "Error reading %s: %v"
)

var (
	// ErrInvalidEncoding marks input files whose content is not valid UTF-8.
	ErrInvalidEncoding = errors.New("content is not valid UTF-8")
	// ErrInvalidOptions marks options rejected before the output is opened.
	ErrInvalidOptions = errors.New("invalid options")
)

// OutputOpenError reports that the destination could not be created or truncated.
// It aborts the run before any traversal.
type OutputOpenError struct {
	Path string
	Err  error
}

func (openError *OutputOpenError) Error() string {
	return fmt.Sprintf(outputOpenErrorFormat, openError.Path, openError.Err)
}

func (openError *OutputOpenError) Unwrap() error {
	return openError.Err
}

// OutputWriteError reports a failed write, flush, or close of the destination. It aborts the run.
type OutputWriteError struct {
	Path string
	Err  error
}

func (writeError *OutputWriteError) Error() string {
	return fmt.Sprintf(outputWriteErrorFormat, writeError.Path, writeError.Err)
}

func (writeError *OutputWriteError) Unwrap() error {
	return writeError.Err
}

// FileReadError reports a matched input that could not be read or decoded.
// The file is skipped and the run continues.
type FileReadError struct {
	Path string
	Err  error
}

func (readError *FileReadError) Error() string {
	return fmt.Sprintf(fileReadErrorFormat, readError.Path, readError.Err)
}

func (readError *FileReadError) Unwrap() error {
	return readError.Err
}
