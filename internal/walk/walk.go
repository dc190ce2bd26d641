// Package walk enumerates a directory tree as a pre-order sequence of steps, each holding a
// directory with its immediate subdirectory and file names. Subdirectories are pruned before
// descent, and the handling of unreadable directories is an explicit policy.
package walk

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
)

// ListErrorPolicy selects how a directory that cannot be listed is handled.
type ListErrorPolicy string

const (
	// ListErrorSkip reports the directory through Options.Warn and continues with its siblings.
	ListErrorSkip ListErrorPolicy = "skip"
	// ListErrorAbort stops the walk and returns a *ListError.
	ListErrorAbort ListErrorPolicy = "abort"
)

const (
	listErrorFormat            = "list directory %s: %v"
	unknownPolicyErrorFormat   = "unknown list error policy %q; accepted values: %s, %s"
	errorNilFileSystemMessage  = "walk: filesystem is nil"
	errorNilVisitFuncMessage   = "walk: visit function is nil"
	errorEmptyRootPathMessage  = "walk: root path is empty"
	pathSeparatorForwardString = "/"
)

// ErrUnknownListErrorPolicy is returned for policy values other than skip and abort.
var ErrUnknownListErrorPolicy = errors.New("unknown list error policy")

// ParseListErrorPolicy converts a configuration value into a ListErrorPolicy.
// Blank input selects ListErrorSkip.
func ParseListErrorPolicy(value string) (ListErrorPolicy, error) {
	normalized := ListErrorPolicy(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case "", ListErrorSkip:
		return ListErrorSkip, nil
	case ListErrorAbort:
		return ListErrorAbort, nil
	default:
		return "", fmt.Errorf(unknownPolicyErrorFormat+": %w", value, ListErrorSkip, ListErrorAbort, ErrUnknownListErrorPolicy)
	}
}

// ListError reports a directory whose entries could not be enumerated.
type ListError struct {
	Path string
	Err  error
}

func (listError *ListError) Error() string {
	return fmt.Sprintf(listErrorFormat, listError.Path, listError.Err)
}

func (listError *ListError) Unwrap() error {
	return listError.Err
}

// Step is one directory of the walk. Subdirectories and Files hold base names.
// Removing entries from Subdirectories inside a VisitFunc prevents descent into them.
type Step struct {
	Directory      string
	Subdirectories []string
	Files          []string
	// LinkedDirectories holds symbolic links that resolve to directories. They are listed
	// but never entered.
	LinkedDirectories []string
}

// Options configures a walk.
type Options struct {
	Root string
	// Prune reports whether a subdirectory with the given base name must not be entered.
	Prune           func(name string) bool
	ListErrorPolicy ListErrorPolicy
	Warn            func(path string, err error)
}

// VisitFunc receives each step before any of its descendants.
type VisitFunc func(step *Step) error

type walker struct {
	fileSystem billy.Filesystem
	options    Options
	visit      VisitFunc
}

// Walk traverses options.Root on fileSystem in pre-order and calls visit for every directory
// that could be listed. Entries reported as directories become subdirectories, symbolic links
// to directories become linked directories and are never followed, and every other entry is
// a file. An error returned by visit stops the walk and is returned unchanged.
func Walk(fileSystem billy.Filesystem, options Options, visit VisitFunc) error {
	if fileSystem == nil {
		return errors.New(errorNilFileSystemMessage)
	}
	if visit == nil {
		return errors.New(errorNilVisitFuncMessage)
	}
	if options.Root == "" {
		return errors.New(errorEmptyRootPathMessage)
	}
	policy, policyError := ParseListErrorPolicy(string(options.ListErrorPolicy))
	if policyError != nil {
		return policyError
	}
	options.ListErrorPolicy = policy
	if options.Warn == nil {
		options.Warn = func(string, error) {}
	}

	traversal := &walker{fileSystem: fileSystem, options: options, visit: visit}
	return traversal.walkDirectory(options.Root)
}

func (traversal *walker) walkDirectory(directoryPath string) error {
	entries, readError := traversal.fileSystem.ReadDir(directoryPath)
	if readError != nil {
		if traversal.options.ListErrorPolicy == ListErrorAbort {
			return &ListError{Path: directoryPath, Err: readError}
		}
		traversal.options.Warn(directoryPath, readError)
		return nil
	}

	step := &Step{Directory: directoryPath}
	for _, entry := range entries {
		entryName := entry.Name()
		if entry.Mode()&os.ModeSymlink != 0 {
			if traversal.linksToDirectory(JoinPath(directoryPath, entryName)) {
				step.LinkedDirectories = append(step.LinkedDirectories, entryName)
			} else {
				step.Files = append(step.Files, entryName)
			}
			continue
		}
		if !entry.IsDir() {
			step.Files = append(step.Files, entryName)
			continue
		}
		if traversal.options.Prune != nil && traversal.options.Prune(entryName) {
			continue
		}
		step.Subdirectories = append(step.Subdirectories, entryName)
	}

	if visitError := traversal.visit(step); visitError != nil {
		return visitError
	}

	for _, subdirectoryName := range step.Subdirectories {
		if walkError := traversal.walkDirectory(JoinPath(directoryPath, subdirectoryName)); walkError != nil {
			return walkError
		}
	}
	return nil
}

// linksToDirectory reports whether the symbolic link at linkPath resolves to a directory.
// A dangling link is treated as a file so reading it reports the failure.
func (traversal *walker) linksToDirectory(linkPath string) bool {
	targetInfo, statError := traversal.fileSystem.Stat(linkPath)
	return statError == nil && targetInfo.IsDir()
}

// JoinPath appends name to directory with the host separator. Unlike filepath.Join the
// directory prefix is kept verbatim, so a walk rooted at "." yields "./name".
func JoinPath(directory string, name string) string {
	if directory == "" {
		return name
	}
	if strings.HasSuffix(directory, string(filepath.Separator)) || strings.HasSuffix(directory, pathSeparatorForwardString) {
		return directory + name
	}
	return directory + string(filepath.Separator) + name
}
