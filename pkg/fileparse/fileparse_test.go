package fileparse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetLines(t *testing.T) {
	path := writeTemp(t, "one\n\n# comment\n  two  \nthree\n")

	lines, err := NewParser().GetLines(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"one", "two", "three"}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d: %v", len(expected), len(lines), lines)
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d: expected %q, got %q", i, want, lines[i])
		}
	}
}

func TestGetLinesKeepComments(t *testing.T) {
	path := writeTemp(t, "# kept\nentry\n")

	lines, err := NewParser(WithSkipComments(false)).GetLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}

func TestGetLinesErrors(t *testing.T) {
	p := NewParser(WithMaxSize(8))

	if _, err := p.GetLines(""); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := p.GetLines(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := p.GetLines(writeTemp(t, strings.Repeat("x", 16))); err == nil {
		t.Error("expected error for oversized file")
	}
	if _, err := p.GetLines(writeTemp(t, "bad\xff\xfe")); err == nil {
		t.Error("expected error for invalid UTF-8")
	}
}

func TestGetMap(t *testing.T) {
	path := writeTemp(t, "DisplayName=\"Acme Sync\"\nVersion=\"2.9.7653.47581\"\nFlagOnly\n")

	m, err := NewParser(WithVTrimChars(`"`)).GetMap(path)
	if err != nil {
		t.Fatal(err)
	}

	if m["DisplayName"] != "Acme Sync" {
		t.Errorf("expected trimmed quotes, got %q", m["DisplayName"])
	}
	if m["Version"] != "2.9.7653.47581" {
		t.Errorf("unexpected version %q", m["Version"])
	}
	if v, ok := m["FlagOnly"]; !ok || v != "" {
		t.Errorf("expected key-only entry with empty default, got %q ok=%t", v, ok)
	}
}

func TestGetMapCustomDelimiterAndDefault(t *testing.T) {
	path := writeTemp(t, "name: svc\nport: 8080\nenabled\n")

	m, err := NewParser(
		WithKVDelimiter(":"),
		WithVDefault("true"),
	).GetMap(path)
	if err != nil {
		t.Fatal(err)
	}

	if m["name"] != "svc" || m["port"] != "8080" {
		t.Errorf("unexpected map: %v", m)
	}
	if m["enabled"] != "true" {
		t.Errorf("expected default value, got %q", m["enabled"])
	}
}

func TestGetMapSkipEmptyValues(t *testing.T) {
	path := writeTemp(t, "a=1\nb=\nc\n")

	m, err := NewParser(WithSkipEmptyValues(true)).GetMap(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(m) != 1 || m["a"] != "1" {
		t.Errorf("expected only a=1, got %v", m)
	}
}

func TestGetMapFoldKeys(t *testing.T) {
	path := writeTemp(t, "DisplayName=x\nVERSION=1.2.3.4\n")

	m, err := NewParser(WithFoldKeys(true)).GetMap(path)
	if err != nil {
		t.Fatal(err)
	}

	if m["displayname"] != "x" || m["version"] != "1.2.3.4" {
		t.Errorf("expected folded keys, got %v", m)
	}
}
