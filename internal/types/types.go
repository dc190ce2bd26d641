// Package types defines the cross-package defaults and data structures used by the concat CLI.
package types

const (
	// DefaultRootDirectory is the directory traversed when no root is given.
	DefaultRootDirectory = "."
	// DefaultOutputPath is the file written when no output is given.
	DefaultOutputPath = "todo-frontend.js"
	// DefaultExcludedDirectory is the directory name skipped when no exclusions are given.
	DefaultExcludedDirectory = "node_modules"
	// DefaultPattern selects JavaScript sources.
	DefaultPattern = "*.js"
	// DefaultTokenizerModel is the model used for token counting.
	DefaultTokenizerModel = "gpt-4o"

	// ListErrorPolicySkip logs unreadable directories and keeps walking.
	ListErrorPolicySkip = "skip"
	// ListErrorPolicyAbort stops the run on the first unreadable directory.
	ListErrorPolicyAbort = "abort"
)

// DefaultExcludedDirectories returns a fresh copy of the default exclusion set.
func DefaultExcludedDirectories() []string {
	return []string{DefaultExcludedDirectory}
}

// OutputSummary captures aggregate information about a concatenation run.
type OutputSummary struct {
	TotalFiles   int    `json:"totalFiles" xml:"totalFiles"`
	SkippedFiles int    `json:"skippedFiles,omitempty" xml:"skippedFiles,omitempty"`
	TotalSize    string `json:"totalSize" xml:"totalSize"`
	TotalTokens  int    `json:"totalTokens,omitempty" xml:"totalTokens,omitempty"`
	Model        string `json:"model,omitempty" xml:"model,omitempty"`
}
