// Package clipboard copies the concatenated output to the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Service implements Copier using github.com/atotto/clipboard.
type Service struct{}

// NewService constructs a clipboard Service.
func NewService() *Service {
	return &Service{}
}

// Copy replaces the clipboard content with text.
func (service *Service) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Unsupported reports whether the host has no clipboard utility available.
func (service *Service) Unsupported() bool {
	return clipboard.Unsupported
}

var _ Copier = (*Service)(nil)
