package tokenizer

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
)

type testCounter struct{}

func (testCounter) Name() string { return "stub" }

func (testCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

func TestCountBytesText(t *testing.T) {
	result, err := CountBytes(testCounter{}, []byte("hello"))
	if err != nil {
		t.Fatalf("CountBytes error: %v", err)
	}
	if !result.Counted {
		t.Fatalf("expected counted result")
	}
	if result.Tokens != len([]rune("hello")) {
		t.Fatalf("expected %d tokens, got %d", len([]rune("hello")), result.Tokens)
	}
}

func TestCountBytesEmpty(t *testing.T) {
	result, err := CountBytes(testCounter{}, nil)
	if err != nil {
		t.Fatalf("CountBytes error: %v", err)
	}
	if !result.Counted || result.Tokens != 0 {
		t.Fatalf("expected zero counted tokens, got %+v", result)
	}
}

func TestCountBytesBinary(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{name: "nul_bytes", data: []byte{0x00, 0x01, 0x02}},
		{name: "invalid_utf8", data: []byte{0xff, 0xfe}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result, err := CountBytes(testCounter{}, testCase.data)
			if err != nil {
				t.Fatalf("CountBytes error: %v", err)
			}
			if result.Counted {
				t.Fatalf("expected binary data to be skipped")
			}
		})
	}
}

func TestCountBytesNilCounter(t *testing.T) {
	if _, err := CountBytes(nil, []byte("hello")); err == nil {
		t.Fatalf("expected error for nil counter")
	}
}

func TestCountFile(t *testing.T) {
	fileSystem := memfs.New()
	if err := util.WriteFile(fileSystem, "/out/bundle.js", []byte("tokens"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result, err := CountFile(testCounter{}, fileSystem, "/out/bundle.js")
	if err != nil {
		t.Fatalf("CountFile error: %v", err)
	}
	if result.Tokens != len("tokens") {
		t.Fatalf("expected %d tokens, got %d", len("tokens"), result.Tokens)
	}
	if _, missingErr := CountFile(testCounter{}, fileSystem, "/out/missing.js"); missingErr == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestIsOpenAIModel(t *testing.T) {
	testCases := map[string]bool{
		"gpt-4o":                 true,
		"text-embedding-3-small": true,
		"claude-3-opus":          false,
		"llama-3":                false,
	}
	for model, expected := range testCases {
		if actual := isOpenAIModel(model); actual != expected {
			t.Fatalf("isOpenAIModel(%q) = %v, want %v", model, actual, expected)
		}
	}
}
