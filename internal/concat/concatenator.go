// Package concat merges every file matching a glob under a directory tree into one output
// file, writing a path header before each file's content.
package concat

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"github.com/temirov/concat/internal/output"
	"github.com/temirov/concat/internal/types"
	"github.com/temirov/concat/internal/utils"
	"github.com/temirov/concat/internal/walk"
)

const (
	// DefaultPattern is used when Options.Pattern is blank.
	DefaultPattern = types.DefaultPattern

	outputFileFlags       = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	outputFilePermissions = 0o644

	errorEmptyRootMessage      = "root directory is empty"
	errorEmptyOutputMessage    = "output path is empty"
	errorInvalidPatternFormat  = "pattern %q: %v"
	errorParentNotDirectory    = "parent %s is not a directory"
	warningSkipDirectoryFormat = "Warning: skipping directory %s: %v"
	errorNilFileSystemMessage  = "concat: filesystem is nil"
)

// Options describes one concatenation run. Every value is explicit; defaults for the
// command line are applied by the caller.
type Options struct {
	Root       string
	OutputPath string
	// ExcludedDirectories holds base names compared by exact string equality.
	ExcludedDirectories []string
	// Pattern is a shell glob matched against file base names.
	Pattern         string
	ListErrorPolicy walk.ListErrorPolicy
	// IncludeOutputFile allows the output file to be read as input when it lies under Root.
	IncludeOutputFile bool
}

// Result describes a completed run.
type Result struct {
	OutputPath   string
	Files        int
	SkippedFiles int
	ContentBytes int64
}

// Concatenator runs concatenations against a filesystem.
type Concatenator struct {
	fileSystem billy.Filesystem
	logger     *zap.Logger
}

// NewConcatenator binds a Concatenator to fileSystem. A nil logger discards diagnostics.
func NewConcatenator(fileSystem billy.Filesystem, logger *zap.Logger) *Concatenator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Concatenator{fileSystem: fileSystem, logger: logger}
}

// Run opens the output, walks options.Root, and appends every matching file as a fragment.
// Unreadable or undecodable files are logged and skipped. Failures to open or write the
// output abort the run, as does an unreadable directory under walk.ListErrorAbort.
func (concatenator *Concatenator) Run(options Options) (result Result, err error) {
	if concatenator.fileSystem == nil {
		return Result{}, errors.New(errorNilFileSystemMessage)
	}
	normalizedOptions, validationError := normalizeOptions(options)
	if validationError != nil {
		return Result{}, validationError
	}
	result.OutputPath = normalizedOptions.OutputPath

	outputFile, openError := concatenator.openOutput(normalizedOptions.OutputPath)
	if openError != nil {
		return Result{}, openError
	}
	bufferedOutput := bufio.NewWriter(outputFile)
	defer func() {
		flushError := bufferedOutput.Flush()
		closeError := outputFile.Close()
		if err != nil {
			return
		}
		if flushError != nil {
			err = &OutputWriteError{Path: normalizedOptions.OutputPath, Err: flushError}
			return
		}
		if closeError != nil {
			err = &OutputWriteError{Path: normalizedOptions.OutputPath, Err: closeError}
		}
	}()

	fragmentWriter := output.NewFragmentWriter(bufferedOutput)
	excludedDirectories := utils.NameSet(normalizedOptions.ExcludedDirectories)
	outputIdentity := absolutePathOrSelf(normalizedOptions.OutputPath)

	visit := func(step *walk.Step) error {
		for _, fileName := range step.Files {
			isMatched, _ := filepath.Match(normalizedOptions.Pattern, fileName)
			if !isMatched {
				continue
			}
			filePath := walk.JoinPath(step.Directory, fileName)
			if !normalizedOptions.IncludeOutputFile && absolutePathOrSelf(filePath) == outputIdentity {
				continue
			}
			content, readError := readTextFile(concatenator.fileSystem, filePath)
			if readError != nil {
				result.SkippedFiles++
				concatenator.logger.Warn(readError.Error())
				continue
			}
			if writeError := fragmentWriter.WriteFragment(filePath, content); writeError != nil {
				return &OutputWriteError{Path: normalizedOptions.OutputPath, Err: writeError}
			}
		}
		return nil
	}

	walkOptions := walk.Options{
		Root: normalizedOptions.Root,
		Prune: func(name string) bool {
			_, excluded := excludedDirectories[name]
			return excluded
		},
		ListErrorPolicy: normalizedOptions.ListErrorPolicy,
		Warn: func(path string, listError error) {
			concatenator.logger.Warn(fmt.Sprintf(warningSkipDirectoryFormat, path, listError))
		},
	}
	walkError := walk.Walk(concatenator.fileSystem, walkOptions, visit)
	result.Files = fragmentWriter.Fragments()
	result.ContentBytes = fragmentWriter.ContentBytes()
	if walkError != nil {
		return result, walkError
	}
	return result, nil
}

// openOutput creates or truncates outputPath. The parent directory must already exist, so a
// missing parent fails without creating anything.
func (concatenator *Concatenator) openOutput(outputPath string) (billy.File, error) {
	parentDirectory := filepath.Dir(outputPath)
	parentInfo, statError := concatenator.fileSystem.Stat(parentDirectory)
	if statError != nil {
		return nil, &OutputOpenError{Path: outputPath, Err: statError}
	}
	if !parentInfo.IsDir() {
		return nil, &OutputOpenError{Path: outputPath, Err: fmt.Errorf(errorParentNotDirectory, parentDirectory)}
	}
	outputFile, openError := concatenator.fileSystem.OpenFile(outputPath, outputFileFlags, outputFilePermissions)
	if openError != nil {
		return nil, &OutputOpenError{Path: outputPath, Err: openError}
	}
	return outputFile, nil
}

func normalizeOptions(options Options) (Options, error) {
	normalized := options
	if strings.TrimSpace(normalized.Root) == "" {
		return Options{}, fmt.Errorf("%w: %s", ErrInvalidOptions, errorEmptyRootMessage)
	}
	if strings.TrimSpace(normalized.OutputPath) == "" {
		return Options{}, fmt.Errorf("%w: %s", ErrInvalidOptions, errorEmptyOutputMessage)
	}
	if strings.TrimSpace(normalized.Pattern) == "" {
		normalized.Pattern = DefaultPattern
	}
	normalized.Pattern = translateShellGlob(normalized.Pattern)
	if _, patternError := filepath.Match(normalized.Pattern, ""); patternError != nil {
		return Options{}, fmt.Errorf("%w: "+errorInvalidPatternFormat, ErrInvalidOptions, normalized.Pattern, patternError)
	}
	policy, policyError := walk.ParseListErrorPolicy(string(normalized.ListErrorPolicy))
	if policyError != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, policyError)
	}
	normalized.ListErrorPolicy = policy
	normalized.ExcludedDirectories = utils.NormalizeNames(normalized.ExcludedDirectories)
	return normalized, nil
}

// absolutePathOrSelf resolves path for identity comparison, falling back to the cleaned path.
func absolutePathOrSelf(path string) string {
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return filepath.Clean(path)
	}
	return absolutePath
}
