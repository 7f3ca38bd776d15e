package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const tabWidthDefault = 4

// Unit is one resolved compilation unit: a canonical path plus its
// normalized text. Units are deduplicated by CanonicalPath.
type Unit struct {
	CanonicalPath string
	Text          string
	Latin1Decoded bool // true if UTF-8 decoding failed and we fell back
}

// Resolver walks the import graph from an entry file and returns units in
// dependency post-order: a unit's imports always precede it in the result.
//
// Re-importing an already-visited canonical path is a silent no-op — this
// is what realizes "conditional & mass import" semantics (Testable
// Property 2 / scenario S3): the import graph can never cycle because a
// path is only ever expanded once.
type Resolver struct {
	TabWidth int

	visited map[string]bool
	order   []*Unit
	byPath  map[string]*Unit
}

// NewResolver creates a Resolver with the default tab width of 4, unless
// overridden by TabWidth (or the VJPC_TAB_WIDTH environment variable,
// applied by the caller before constructing the Resolver).
func NewResolver() *Resolver {
	return &Resolver{
		TabWidth: tabWidthDefault,
		visited:  make(map[string]bool),
		byPath:   make(map[string]*Unit),
	}
}

// Resolve loads the entry file and every import it transitively reaches,
// returning the ordered, deduplicated unit list. ctx is threaded through
// for symmetry with the rest of the driver; reads are not actually
// cancellable mid-flight, but a future timeout has a single place to hook
// in without touching every call site.
func (r *Resolver) Resolve(ctx context.Context, entryPath string) ([]*Unit, error) {
	abs, err := filepath.Abs(entryPath)
	if err != nil {
		return nil, fmt.Errorf("resolve entry %q: %w", entryPath, err)
	}
	abs = filepath.Clean(abs)

	if err := r.visit(ctx, abs, ""); err != nil {
		return nil, err
	}
	return r.order, nil
}

// visit loads path (unless already visited) and recurses into its
// imports. importer is the unit that referenced path, used only for
// diagnostics on a missing file; it is empty for the entry unit.
func (r *Resolver) visit(ctx context.Context, path string, importer string) error {
	if r.visited[path] {
		return nil
	}
	r.visited[path] = true

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	raw, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		if importer != "" {
			return fmt.Errorf("import %q from %q: %w", path, importer, err)
		}
		return fmt.Errorf("read entry %q: %w", path, err)
	}

	text, latin1 := decode(raw)
	text = normalize(text, r.tabWidth())

	unit := &Unit{CanonicalPath: path, Text: text, Latin1Decoded: latin1}
	r.byPath[path] = unit

	dir := filepath.Dir(path)
	for _, imp := range scanImports(text) {
		target := filepath.Clean(filepath.Join(dir, filepath.FromSlash(imp)))
		if err := r.visit(ctx, target, path); err != nil {
			return err
		}
	}

	// Post-order: append only after all of this unit's own imports have
	// already been appended, so dependencies precede dependents.
	r.order = append(r.order, unit)
	return nil
}

func (r *Resolver) tabWidth() int {
	if r.TabWidth <= 0 {
		return tabWidthDefault
	}
	return r.TabWidth
}

// decode converts raw bytes to a string, preferring UTF-8 and falling back
// to a byte-for-rune Latin-1 interpretation on the first invalid sequence.
func decode(raw []byte) (text string, latin1 bool) {
	if utf8.Valid(raw) {
		return string(raw), false
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		sb.WriteRune(rune(b))
	}
	return sb.String(), true
}

// normalize collapses CRLF/CR to LF and expands leading-tab indentation to
// spaces at the given width. Only leading tabs are expanded: a tab inside
// a string literal or after the first non-blank column is left alone, the
// lexer handles those as ordinary whitespace.
func normalize(text string, tabWidth int) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = expandLeadingTabs(line, tabWidth)
	}
	return strings.Join(lines, "\n")
}

func expandLeadingTabs(line string, tabWidth int) string {
	var sb strings.Builder
	col := 0
	i := 0
	for i < len(line) {
		c := line[i]
		if c == '\t' {
			spaces := tabWidth - (col % tabWidth)
			sb.WriteString(strings.Repeat(" ", spaces))
			col += spaces
			i++
			continue
		}
		if c != ' ' {
			break
		}
		sb.WriteByte(' ')
		col++
		i++
	}
	sb.WriteString(line[i:])
	return sb.String()
}

// scanImports scans the top-of-file lines of text for `import "<path>"`
// directives. Scanning stops at the first line that is not blank, not a
// comment, and not an import — imports must be conditional-but-contiguous
// at the head of a unit.
func scanImports(text string) []string {
	var imports []string
	lines := strings.Split(text, "\n")
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.HasPrefix(line, "import ") {
			break
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, "import"))
		path, ok := unquote(rest)
		if !ok {
			break
		}
		imports = append(imports, path)
	}
	return imports
}

func unquote(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", false
	}
	return s[1 : len(s)-1], true
}
