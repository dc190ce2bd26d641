// Package output frames concatenated file content and formats run summaries.
package output

import (
	"fmt"
	"io"
)

const (
	// FragmentHeaderFormat is the single header line written before every fragment.
	FragmentHeaderFormat = "// Content of: %s\n"
	// FragmentSeparator follows every fragment, the last one included.
	FragmentSeparator = "\n\n"
)

// FragmentWriter writes path-annotated fragments to an underlying writer.
type FragmentWriter struct {
	destination  io.Writer
	fragments    int
	contentBytes int64
}

// NewFragmentWriter wraps destination.
func NewFragmentWriter(destination io.Writer) *FragmentWriter {
	return &FragmentWriter{destination: destination}
}

// WriteFragment writes the header for path, content verbatim, and the separator.
func (writer *FragmentWriter) WriteFragment(path string, content []byte) error {
	if _, headerError := fmt.Fprintf(writer.destination, FragmentHeaderFormat, path); headerError != nil {
		return headerError
	}
	if _, contentError := writer.destination.Write(content); contentError != nil {
		return contentError
	}
	if _, separatorError := io.WriteString(writer.destination, FragmentSeparator); separatorError != nil {
		return separatorError
	}
	writer.fragments++
	writer.contentBytes += int64(len(content))
	return nil
}

// Fragments reports how many fragments were written.
func (writer *FragmentWriter) Fragments() int {
	return writer.fragments
}

// ContentBytes reports the total size of fragment contents, excluding headers and separators.
func (writer *FragmentWriter) ContentBytes() int64 {
	return writer.contentBytes
}
