package tokenizer

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

const nilCounterMessage = "nil tokenizer counter"

// CountResult captures the outcome of counting a file or byte slice.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes estimates tokens for data. Data that is not valid UTF-8 text is reported as
// not counted rather than as an error.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New(nilCounterMessage)
	}
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return CountResult{Counted: false}, nil
	}
	tokens, err := counter.CountString(string(data))
	if err != nil {
		return CountResult{}, err
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}

// CountFile reads path from fileSystem and estimates its token count.
func CountFile(counter Counter, fileSystem billy.Filesystem, path string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New(nilCounterMessage)
	}
	data, readErr := util.ReadFile(fileSystem, path)
	if readErr != nil {
		return CountResult{}, readErr
	}
	return CountBytes(counter, data)
}
