// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/concat/internal/concat"
	"github.com/temirov/concat/internal/config"
	"github.com/temirov/concat/internal/output"
	"github.com/temirov/concat/internal/services/clipboard"
	"github.com/temirov/concat/internal/tokenizer"
	"github.com/temirov/concat/internal/types"
	"github.com/temirov/concat/internal/utils"
	"github.com/temirov/concat/internal/walk"
)

const (
	outputFlagName        = "output"
	outputFlagShorthand   = "o"
	exclusionFlagName     = "exclude"
	exclusionFlagShortcut = "e"
	patternFlagName       = "pattern"
	patternFlagShorthand  = "p"
	listErrorFlagName     = "on-list-error"
	includeOutputFlagName = "include-output"
	summaryFlagName       = "summary"
	tokensFlagName        = "tokens"
	modelFlagName         = "model"
	copyFlagName          = "copy"
	configFlagName        = "config"
	versionFlagName       = "version"
	versionTemplate       = "concat version: %s\n"
	rootUse               = "concat [root]"
	rootShortDescription  = "concatenate matching files under a directory into one file"
	rootLongDescription   = `concat walks a directory tree, skips excluded directory names, and appends every file
whose name matches a glob to a single output file. Each file is preceded by a
"// Content of: <path>" header line and followed by a blank line.
Files that cannot be read as UTF-8 text are reported and skipped.`
	rootUsageExample = `  # Concatenate every .js file under the current directory into todo-frontend.js
  concat

  # Collect TypeScript sources from src, skipping node_modules and dist
  concat src -p "*.ts" -o bundle.ts -e node_modules -e dist

  # Print a summary with token counts and copy the result to the clipboard
  concat --summary --tokens --copy`

	outputFlagDescription        = "output file path"
	exclusionFlagDescription     = "directory name to skip (repeatable)"
	patternFlagDescription       = "glob matched against file names"
	listErrorFlagDescription     = "how to handle unreadable directories: skip or abort"
	includeOutputFlagDescription = "allow the output file to be read as input"
	summaryFlagDescription       = "print a summary of the concatenated files"
	tokensFlagDescription        = "include token counts in the summary"
	modelFlagDescription         = "tokenizer model to use for token counting"
	copyFlagDescription          = "copy the concatenated output to the clipboard"
	configFlagDescription        = "path to a configuration file"
	versionFlagDescription       = "display application version"

	completionMessageFormat     = "All files matching %s were concatenated into %s\n"
	summaryMessageFormat        = "%s\n"
	warningTokenCountFormat     = "Warning: tokens were not counted for %s"
	errorLoadConfigurationFmt   = "load configuration: %w"
	errorTokenizerFormat        = "initialize tokenizer: %w"
	errorCountTokensFormat      = "count tokens for %s: %w"
	errorReadOutputFormat       = "read output %s: %w"
	errorCopyOutputFormat       = "copy output to clipboard: %w"
	errorClipboardUnavailable   = "clipboard is not available on this system"
	errorMissingFileSystem      = "no filesystem configured"
	errorMissingTokenizerFormat = "no tokenizer configured for model %s"
)

// CounterFactory constructs a token counter and reports the resolved model name.
type CounterFactory func(tokenizer.Config) (tokenizer.Counter, string, error)

// Dependencies carries the collaborators used by the command tree.
type Dependencies struct {
	FileSystem billy.Filesystem
	Logger     *zap.Logger
	Copier     clipboard.Copier
	NewCounter CounterFactory
	// WorkingDirectory locates the local configuration file; empty means the process directory.
	WorkingDirectory string
	// HomeDirectory locates the global configuration file; empty means the user's home.
	HomeDirectory string
}

// Execute runs the concat application with process arguments.
func Execute(logger *zap.Logger) error {
	clipboardService := clipboard.NewService()
	var copier clipboard.Copier = clipboardService
	if clipboardService.Unsupported() {
		copier = nil
	}
	rootCommand := NewRootCommand(Dependencies{
		FileSystem: concat.NewOSFileSystem(),
		Logger:     logger,
		Copier:     copier,
		NewCounter: tokenizer.NewCounter,
	})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// runOptions stores values collected from flags.
type runOptions struct {
	outputPath          string
	excludedDirectories []string
	pattern             string
	listErrorPolicy     string
	includeOutput       bool
	summary             bool
	tokens              bool
	model               string
	copyOutput          bool
	configPath          string
	showVersion         bool
}

// NewRootCommand builds the root Cobra command bound to dependencies.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	var options runOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(command.OutOrStdout(), versionTemplate, utils.GetApplicationVersion())
				return err
			}
			return runConcat(command, dependencies, options, arguments)
		},
	}

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, types.DefaultOutputPath, outputFlagDescription)
	flagSet.StringArrayVarP(&options.excludedDirectories, exclusionFlagName, exclusionFlagShortcut, types.DefaultExcludedDirectories(), exclusionFlagDescription)
	flagSet.StringVarP(&options.pattern, patternFlagName, patternFlagShorthand, types.DefaultPattern, patternFlagDescription)
	flagSet.StringVar(&options.listErrorPolicy, listErrorFlagName, types.ListErrorPolicySkip, listErrorFlagDescription)
	registerBooleanFlag(flagSet, &options.includeOutput, includeOutputFlagName, false, includeOutputFlagDescription)
	registerBooleanFlag(flagSet, &options.summary, summaryFlagName, false, summaryFlagDescription)
	registerBooleanFlag(flagSet, &options.tokens, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, types.DefaultTokenizerModel, modelFlagDescription)
	registerBooleanFlag(flagSet, &options.copyOutput, copyFlagName, false, copyFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, utils.EmptyString, configFlagDescription)
	registerBooleanFlag(flagSet, &options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(createInitCommand(dependencies))
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runConcat resolves settings, performs the concatenation, and reports the outcome.
func runConcat(command *cobra.Command, dependencies Dependencies, options runOptions, arguments []string) error {
	if dependencies.FileSystem == nil {
		return errors.New(errorMissingFileSystem)
	}
	configuration, loadErr := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: dependencies.WorkingDirectory,
		ExplicitFilePath: options.configPath,
		HomeDirectory:    dependencies.HomeDirectory,
	})
	if loadErr != nil {
		return fmt.Errorf(errorLoadConfigurationFmt, loadErr)
	}
	settings := resolveSettings(command, options, configuration, arguments)

	policy, policyErr := walk.ParseListErrorPolicy(settings.listErrorPolicy)
	if policyErr != nil {
		return policyErr
	}

	concatenator := concat.NewConcatenator(dependencies.FileSystem, dependencies.Logger)
	result, runErr := concatenator.Run(concat.Options{
		Root:                settings.root,
		OutputPath:          settings.outputPath,
		ExcludedDirectories: settings.excludedDirectories,
		Pattern:             settings.pattern,
		ListErrorPolicy:     policy,
		IncludeOutputFile:   settings.includeOutput,
	})
	if runErr != nil {
		return runErr
	}

	stdout := command.OutOrStdout()
	if _, err := fmt.Fprintf(stdout, completionMessageFormat, settings.pattern, result.OutputPath); err != nil {
		return err
	}

	if settings.summary || settings.tokens {
		summary, summaryErr := buildSummary(dependencies, settings, result)
		if summaryErr != nil {
			return summaryErr
		}
		if _, err := fmt.Fprintf(stdout, summaryMessageFormat, output.FormatSummaryLine(summary)); err != nil {
			return err
		}
	}

	if settings.copyOutput {
		return copyOutput(dependencies, result.OutputPath)
	}
	return nil
}

func buildSummary(dependencies Dependencies, settings resolvedSettings, result concat.Result) (types.OutputSummary, error) {
	summary := types.OutputSummary{
		TotalFiles:   result.Files,
		SkippedFiles: result.SkippedFiles,
		TotalSize:    utils.FormatFileSize(result.ContentBytes),
	}
	if !settings.tokens {
		return summary, nil
	}
	if dependencies.NewCounter == nil {
		return types.OutputSummary{}, fmt.Errorf(errorMissingTokenizerFormat, settings.model)
	}
	counter, model, counterErr := dependencies.NewCounter(tokenizer.Config{Model: settings.model})
	if counterErr != nil {
		return types.OutputSummary{}, fmt.Errorf(errorTokenizerFormat, counterErr)
	}
	countResult, countErr := tokenizer.CountFile(counter, dependencies.FileSystem, result.OutputPath)
	if countErr != nil {
		return types.OutputSummary{}, fmt.Errorf(errorCountTokensFormat, result.OutputPath, countErr)
	}
	if !countResult.Counted && dependencies.Logger != nil {
		dependencies.Logger.Warn(fmt.Sprintf(warningTokenCountFormat, result.OutputPath))
	}
	summary.TotalTokens = countResult.Tokens
	summary.Model = model
	return summary, nil
}

func copyOutput(dependencies Dependencies, outputPath string) error {
	if dependencies.Copier == nil {
		return errors.New(errorClipboardUnavailable)
	}
	data, readErr := util.ReadFile(dependencies.FileSystem, outputPath)
	if readErr != nil {
		return fmt.Errorf(errorReadOutputFormat, outputPath, readErr)
	}
	if copyErr := dependencies.Copier.Copy(string(data)); copyErr != nil {
		return fmt.Errorf(errorCopyOutputFormat, copyErr)
	}
	return nil
}
