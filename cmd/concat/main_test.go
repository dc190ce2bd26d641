package main_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

type commandOutcome struct {
	stdout   string
	stderr   string
	exitCode int
}

// #nosec G204
func buildBinary(t *testing.T) string {
	t.Helper()
	binaryName := "concat_integration_test_binary"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(t.TempDir(), binaryName)

	packageDirectory, directoryError := os.Getwd()
	if directoryError != nil {
		t.Fatalf("Failed to get current working directory: %v", directoryError)
	}

	buildCommand := exec.Command("go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = packageDirectory
	outputData, buildErr := buildCommand.CombinedOutput()
	if buildErr != nil {
		t.Fatalf("Failed to build binary in %s: %v\nBuild Output:\n%s", packageDirectory, buildErr, string(outputData))
	}
	return binaryPath
}

// #nosec G204
func runCommand(t *testing.T, binaryPath string, arguments []string, workingDirectory string) commandOutcome {
	t.Helper()
	command := exec.Command(binaryPath, arguments...)
	command.Dir = workingDirectory
	command.Env = append(os.Environ(), "HOME="+t.TempDir(), "USERPROFILE="+t.TempDir())

	var standardOutputBuffer, standardErrorBuffer bytes.Buffer
	command.Stdout = &standardOutputBuffer
	command.Stderr = &standardErrorBuffer

	outcome := commandOutcome{}
	runError := command.Run()
	outcome.stdout = standardOutputBuffer.String()
	outcome.stderr = standardErrorBuffer.String()
	if runError != nil {
		var exitError *exec.ExitError
		if !errors.As(runError, &exitError) {
			t.Fatalf("Command %s %s failed to start: %v", filepath.Base(binaryPath), strings.Join(arguments, " "), runError)
		}
		outcome.exitCode = exitError.ExitCode()
	}
	return outcome
}

func describe(outcome commandOutcome) string {
	return fmt.Sprintf("--- Exit Code ---\n%d\n--- Standard Output ---\n%s\n--- Standard Error ---\n%s", outcome.exitCode, outcome.stdout, outcome.stderr)
}

func writeTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for relativePath, content := range files {
		absolutePath := filepath.Join(root, relativePath)
		if err := os.MkdirAll(filepath.Dir(absolutePath), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", relativePath, err)
		}
		if err := os.WriteFile(absolutePath, content, 0o644); err != nil {
			t.Fatalf("write %s: %v", relativePath, err)
		}
	}
}

func TestConcatBinary(t *testing.T) {
	if testing.Short() {
		t.Skip("builds the binary")
	}
	binaryPath := buildBinary(t)

	t.Run("default_run", func(t *testing.T) {
		projectDirectory := t.TempDir()
		writeTree(t, projectDirectory, map[string][]byte{
			"app.js":              []byte("console.log(1)"),
			"bad.js":              {0xff, 0xfe},
			"node_modules/dep.js": []byte("dependency"),
		})

		outcome := runCommand(t, binaryPath, nil, projectDirectory)
		if outcome.exitCode != 0 {
			t.Fatalf("expected success\n%s", describe(outcome))
		}
		content, readErr := os.ReadFile(filepath.Join(projectDirectory, "todo-frontend.js"))
		if readErr != nil {
			t.Fatalf("read output: %v", readErr)
		}
		expected := "// Content of: ." + string(filepath.Separator) + "app.js\nconsole.log(1)\n\n"
		if string(content) != expected {
			t.Fatalf("expected output %q, got %q", expected, string(content))
		}
		if !strings.Contains(outcome.stdout, "All files matching *.js were concatenated into todo-frontend.js") {
			t.Fatalf("missing completion message\n%s", describe(outcome))
		}
		if !strings.Contains(outcome.stderr, "Error reading ."+string(filepath.Separator)+"bad.js: ") {
			t.Fatalf("missing diagnostic for bad.js\n%s", describe(outcome))
		}
	})

	t.Run("missing_output_parent_fails", func(t *testing.T) {
		projectDirectory := t.TempDir()
		writeTree(t, projectDirectory, map[string][]byte{"app.js": []byte("a")})

		outcome := runCommand(t, binaryPath, []string{"-o", filepath.Join("missing", "out.js")}, projectDirectory)
		if outcome.exitCode == 0 {
			t.Fatalf("expected failure\n%s", describe(outcome))
		}
		if _, statErr := os.Stat(filepath.Join(projectDirectory, "missing")); !os.IsNotExist(statErr) {
			t.Fatalf("expected no directory to be created, stat returned %v", statErr)
		}
	})

	t.Run("init_writes_configuration", func(t *testing.T) {
		projectDirectory := t.TempDir()
		outcome := runCommand(t, binaryPath, []string{"init"}, projectDirectory)
		if outcome.exitCode != 0 {
			t.Fatalf("expected success\n%s", describe(outcome))
		}
		if _, statErr := os.Stat(filepath.Join(projectDirectory, ".concat.yaml")); statErr != nil {
			t.Fatalf("expected configuration file: %v", statErr)
		}
	})
}
