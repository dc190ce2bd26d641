package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/temirov/concat/internal/utils"
)

type configTestCase struct {
	name          string
	globalContent string
	localContent  string
	explicitPath  string
	explicitBody  string
	expected      ApplicationConfiguration
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func writeConfigurationFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create configuration directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write configuration %s: %v", path, err)
	}
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:          "local_overrides_global",
			globalContent: "output: global.js\npattern: \"*.ts\"\nsummary: false\nclipboard: true\nexclude:\n  - vendor\n",
			localContent:  "output: local.js\nsummary: true\ntokens:\n  enabled: true\n  model: custom\n",
			expected: ApplicationConfiguration{
				Output:     "local.js",
				Pattern:    "*.ts",
				Exclude:    []string{"vendor"},
				ExcludeSet: true,
				Summary:    boolPointer(true),
				Clipboard:  boolPointer(true),
				Tokens:     TokenConfiguration{Enabled: boolPointer(true), Model: "custom"},
			},
		},
		{
			name:          "local_exclude_replaces_global",
			globalContent: "exclude:\n  - vendor\n  - dist\n",
			localContent:  "exclude:\n  - node_modules\n  - node_modules\n  - \"\"\n  - \"dist \"\n",
			expected: ApplicationConfiguration{
				Exclude:    []string{"node_modules", "dist "},
				ExcludeSet: true,
			},
		},
		{
			name:          "empty_local_exclude_clears_global",
			globalContent: "exclude:\n  - vendor\n",
			localContent:  "exclude: []\n",
			expected: ApplicationConfiguration{
				Exclude:    []string{},
				ExcludeSet: true,
			},
		},
		{
			name:          "explicit_path_replaces_local",
			globalContent: "root: src\n",
			localContent:  "output: ignored.js\n",
			explicitPath:  "custom.yaml",
			explicitBody:  "on_list_error: abort\ninclude_output: true\n",
			expected: ApplicationConfiguration{
				Root:          "src",
				OnListError:   "abort",
				IncludeOutput: boolPointer(true),
			},
		},
		{
			name:     "no_files",
			expected: ApplicationConfiguration{},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDirectory := t.TempDir()
			workingDirectory := t.TempDir()
			if testCase.globalContent != "" {
				writeConfigurationFile(t, GlobalConfigurationPath(homeDirectory), testCase.globalContent)
			}
			if testCase.localContent != "" {
				writeConfigurationFile(t, filepath.Join(workingDirectory, utils.ConfigFileName), testCase.localContent)
			}
			if testCase.explicitPath != "" {
				writeConfigurationFile(t, filepath.Join(workingDirectory, testCase.explicitPath), testCase.explicitBody)
			}

			configuration, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: testCase.explicitPath,
				HomeDirectory:    homeDirectory,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}
			if diff := cmp.Diff(testCase.expected, configuration); diff != "" {
				t.Fatalf("configuration mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadApplicationConfigurationErrors(t *testing.T) {
	testCases := []struct {
		name          string
		prepare       func(t *testing.T, workingDirectory string) string
		expectedError string
	}{
		{
			name: "malformed_yaml",
			prepare: func(t *testing.T, workingDirectory string) string {
				writeConfigurationFile(t, filepath.Join(workingDirectory, utils.ConfigFileName), "exclude: [unterminated\n")
				return ""
			},
			expectedError: "read configuration",
		},
		{
			name: "directory_instead_of_file",
			prepare: func(t *testing.T, workingDirectory string) string {
				if err := os.Mkdir(filepath.Join(workingDirectory, utils.ConfigFileName), 0o755); err != nil {
					t.Fatalf("mkdir: %v", err)
				}
				return ""
			},
			expectedError: "is a directory",
		},
		{
			name: "missing_explicit_file",
			prepare: func(t *testing.T, workingDirectory string) string {
				return "absent.yaml"
			},
			expectedError: "stat configuration",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			workingDirectory := t.TempDir()
			explicitPath := testCase.prepare(t, workingDirectory)
			_, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDirectory,
				ExplicitFilePath: explicitPath,
				HomeDirectory:    t.TempDir(),
			})
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), testCase.expectedError) {
				t.Fatalf("expected error containing %q, got %v", testCase.expectedError, err)
			}
		})
	}
}

func TestMergeDoesNotAliasOverride(t *testing.T) {
	override := ApplicationConfiguration{Summary: boolPointer(true), Exclude: []string{"dist"}}
	merged := ApplicationConfiguration{}.Merge(override)
	*override.Summary = false
	override.Exclude[0] = "changed"
	if merged.Summary == nil || !*merged.Summary {
		t.Fatalf("expected merged summary to stay true")
	}
	if merged.Exclude[0] != "dist" {
		t.Fatalf("expected merged exclude to stay dist, got %v", merged.Exclude)
	}
}
