package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeUnit(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestResolveOrdersImportsBeforeDependents(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "base.jp", "library Base :\n    global :\n        integer X = 1\n")
	entry := writeUnit(t, dir, "main.jp", "import \"base.jp\"\nlibrary Main :\n    global :\n        integer Y = 2\n")

	r := NewResolver()
	units, err := r.Resolve(context.Background(), entry)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}
	if filepath.Base(units[0].CanonicalPath) != "base.jp" {
		t.Fatalf("expected base.jp to precede its dependent, got order %v", units)
	}
	if filepath.Base(units[1].CanonicalPath) != "main.jp" {
		t.Fatalf("expected main.jp last, got %v", units)
	}
}

func TestResolveIsIdempotentUnderRepeatedImport(t *testing.T) {
	dir := t.TempDir()
	writeUnit(t, dir, "shared.jp", "library Shared :\n    global :\n        integer Z = 1\n")
	writeUnit(t, dir, "a.jp", "import \"shared.jp\"\nlibrary A :\n    global :\n        integer X = 1\n")
	entry := writeUnit(t, dir, "main.jp",
		"import \"shared.jp\"\nimport \"a.jp\"\nlibrary Main :\n    global :\n        integer Y = 2\n")

	r := NewResolver()
	units, err := r.Resolve(context.Background(), entry)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if len(units) != 3 {
		t.Fatalf("expected shared.jp to be deduplicated to a single unit, got %d units: %v", len(units), units)
	}
	if filepath.Base(units[0].CanonicalPath) != "shared.jp" {
		t.Fatalf("expected shared.jp first (imported by both), got %v", units)
	}
}

func TestResolveFallsBackToLatin1OnInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.jp")
	// 0xE9 alone is not valid UTF-8.
	raw := append([]byte("library L :\n    global :\n        string S = \""), 0xE9, '"', '\n')
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	r := NewResolver()
	units, err := r.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !units[0].Latin1Decoded {
		t.Fatal("expected Latin1Decoded fallback for invalid UTF-8 input")
	}
}

func TestResolveExpandsLeadingTabsToSpaces(t *testing.T) {
	dir := t.TempDir()
	entry := writeUnit(t, dir, "main.jp", "library L :\n\tglobal :\n\t\tinteger X = 1\n")

	r := NewResolver()
	units, err := r.Resolve(context.Background(), entry)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, line := range splitLines(units[0].Text) {
		for _, c := range line {
			if c == '\t' {
				t.Fatalf("expected leading tabs to be expanded to spaces, found one in %q", line)
			}
			break
		}
	}
}

func TestResolveNormalizesCRLF(t *testing.T) {
	dir := t.TempDir()
	entry := writeUnit(t, dir, "main.jp", "library L :\r\n    global :\r\n        integer X = 1\r\n")

	r := NewResolver()
	units, err := r.Resolve(context.Background(), entry)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, c := range units[0].Text {
		if c == '\r' {
			t.Fatal("expected CRLF to be normalized to LF")
		}
	}
}

func splitLines(text string) []string {
	var lines []string
	start := 0
	for i, c := range text {
		if c == '\n' {
			lines = append(lines, text[start:i])
			start = i + 1
		}
	}
	lines = append(lines, text[start:])
	return lines
}
