package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/concat/internal/utils"
)

const excludeConfigurationKey = "exclude"

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
	// HomeDirectory overrides the user home directory used to locate the global file.
	HomeDirectory string
}

// ApplicationConfiguration holds configuration defaults read from YAML files.
type ApplicationConfiguration struct {
	Root    string   `mapstructure:"root"`
	Output  string   `mapstructure:"output"`
	Pattern string   `mapstructure:"pattern"`
	Exclude []string `mapstructure:"exclude"`
	// ExcludeSet records that the exclude key was present, so an empty list clears exclusions.
	ExcludeSet    bool               `mapstructure:"-"`
	IncludeOutput *bool              `mapstructure:"include_output"`
	OnListError   string             `mapstructure:"on_list_error"`
	Summary       *bool              `mapstructure:"summary"`
	Tokens        TokenConfiguration `mapstructure:"tokens"`
	Clipboard     *bool              `mapstructure:"clipboard"`
}

// TokenConfiguration controls token counting defaults.
type TokenConfiguration struct {
	Enabled *bool  `mapstructure:"enabled"`
	Model   string `mapstructure:"model"`
}

// LoadApplicationConfiguration loads configuration from the global file and then the local
// or explicitly requested file, merging later sources over earlier ones.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	globalPath := GlobalConfigurationPath(options.HomeDirectory)
	if globalPath != "" {
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)

	return merged, nil
}

// GlobalConfigurationPath returns the global configuration file path under homeDirectory,
// falling back to the current user's home. An empty result means no home is known.
func GlobalConfigurationPath(homeDirectory string) string {
	if homeDirectory == "" {
		resolvedHome, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		homeDirectory = resolvedHome
	}
	if homeDirectory == "" {
		return ""
	}
	return filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType("yaml")
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	config.ExcludeSet = reader.IsSet(excludeConfigurationKey)
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	if override.Root != "" {
		result.Root = override.Root
	}
	if override.Output != "" {
		result.Output = override.Output
	}
	if override.Pattern != "" {
		result.Pattern = override.Pattern
	}
	if override.ExcludeSet || len(override.Exclude) > 0 {
		result.Exclude = append([]string{}, utils.NormalizeNames(override.Exclude)...)
		result.ExcludeSet = true
	}
	if override.IncludeOutput != nil {
		result.IncludeOutput = cloneBool(override.IncludeOutput)
	}
	if override.OnListError != "" {
		result.OnListError = override.OnListError
	}
	if override.Summary != nil {
		result.Summary = cloneBool(override.Summary)
	}
	result.Tokens = result.Tokens.merge(override.Tokens)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (config TokenConfiguration) merge(override TokenConfiguration) TokenConfiguration {
	result := config
	if override.Enabled != nil {
		result.Enabled = cloneBool(override.Enabled)
	}
	if override.Model != "" {
		result.Model = override.Model
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
