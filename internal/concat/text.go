package concat

import (
	"fmt"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

const detectedMimeTypeFormat = "%w (detected %s)"

// readTextFile returns the content of filePath when it is valid UTF-8.
func readTextFile(fileSystem billy.Filesystem, filePath string) ([]byte, error) {
	content, readError := util.ReadFile(fileSystem, filePath)
	if readError != nil {
		return nil, &FileReadError{Path: filePath, Err: readError}
	}
	if !utf8.Valid(content) {
		detected := mimetype.Detect(content)
		return nil, &FileReadError{Path: filePath, Err: fmt.Errorf(detectedMimeTypeFormat, ErrInvalidEncoding, detected.String())}
	}
	return content, nil
}
