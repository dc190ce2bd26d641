package cli

import (
	"github.com/spf13/cobra"

	"github.com/temirov/concat/internal/config"
	"github.com/temirov/concat/internal/types"
	"github.com/temirov/concat/internal/utils"
)

// resolvedSettings holds the effective values of one run after applying precedence.
type resolvedSettings struct {
	root                string
	outputPath          string
	excludedDirectories []string
	pattern             string
	listErrorPolicy     string
	includeOutput       bool
	summary             bool
	tokens              bool
	model               string
	copyOutput          bool
}

// resolveSettings applies precedence: explicit argument or flag, then configuration files,
// then built-in defaults.
func resolveSettings(command *cobra.Command, options runOptions, configuration config.ApplicationConfiguration, arguments []string) resolvedSettings {
	flagChanged := func(name string) bool {
		return command.Flags().Changed(name)
	}

	settings := resolvedSettings{
		root:                types.DefaultRootDirectory,
		outputPath:          resolveString(flagChanged(outputFlagName), options.outputPath, configuration.Output, types.DefaultOutputPath),
		pattern:             resolveString(flagChanged(patternFlagName), options.pattern, configuration.Pattern, types.DefaultPattern),
		listErrorPolicy:     resolveString(flagChanged(listErrorFlagName), options.listErrorPolicy, configuration.OnListError, types.ListErrorPolicySkip),
		model:               resolveString(flagChanged(modelFlagName), options.model, configuration.Tokens.Model, types.DefaultTokenizerModel),
		includeOutput:       resolveBool(flagChanged(includeOutputFlagName), options.includeOutput, configuration.IncludeOutput),
		summary:             resolveBool(flagChanged(summaryFlagName), options.summary, configuration.Summary),
		tokens:              resolveBool(flagChanged(tokensFlagName), options.tokens, configuration.Tokens.Enabled),
		copyOutput:          resolveBool(flagChanged(copyFlagName), options.copyOutput, configuration.Clipboard),
		excludedDirectories: types.DefaultExcludedDirectories(),
	}

	if len(arguments) > 0 && arguments[0] != utils.EmptyString {
		settings.root = arguments[0]
	} else if configuration.Root != utils.EmptyString {
		settings.root = configuration.Root
	}

	if flagChanged(exclusionFlagName) {
		settings.excludedDirectories = utils.NormalizeNames(options.excludedDirectories)
	} else if configuration.ExcludeSet {
		settings.excludedDirectories = utils.NormalizeNames(configuration.Exclude)
	}
	return settings
}

func resolveString(flagChanged bool, flagValue string, configuredValue string, defaultValue string) string {
	if flagChanged {
		return flagValue
	}
	if configuredValue != utils.EmptyString {
		return configuredValue
	}
	return defaultValue
}

func resolveBool(flagChanged bool, flagValue bool, configuredValue *bool) bool {
	if flagChanged {
		return flagValue
	}
	if configuredValue != nil {
		return *configuredValue
	}
	return false
}
