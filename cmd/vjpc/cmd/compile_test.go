package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.jp")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func runRoot(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCompileCommandWritesDotJOutput(t *testing.T) {
	entry := writeFixture(t, "library L :\n"+
		"    global :\n"+
		"        integer X = 1\n")

	if err := runRoot(t, "compile", entry); err != nil {
		t.Fatalf("compile command: %v", err)
	}

	out := withExtension(entry, ".j")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected output file at %s: %v", out, err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty compiled output")
	}
}

func TestCompileCommandRespectsOutFlag(t *testing.T) {
	entry := writeFixture(t, "library L :\n"+
		"    global :\n"+
		"        integer X = 1\n")
	out := filepath.Join(filepath.Dir(entry), "custom.out")

	if err := runRoot(t, "compile", entry, "--out", out); err != nil {
		t.Fatalf("compile command: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected output at custom path %s: %v", out, err)
	}
}

func TestCompileCommandReturnsErrorOnSyntaxError(t *testing.T) {
	entry := writeFixture(t, "library L\n")

	if err := runRoot(t, "compile", entry); err == nil {
		t.Fatal("expected compile command to fail on a missing colon")
	}
}

func TestTokensCommandPrintsTokenStream(t *testing.T) {
	entry := writeFixture(t, "x = 5\n")
	if err := runRoot(t, "tokens", entry); err != nil {
		t.Fatalf("tokens command: %v", err)
	}
}

func TestASTCommandPrintsTree(t *testing.T) {
	entry := writeFixture(t, "library L :\n"+
		"    global :\n"+
		"        integer X = 1\n")
	if err := runRoot(t, "ast", entry); err != nil {
		t.Fatalf("ast command: %v", err)
	}
}

func TestExitCodeMapsSuccessAndFailure(t *testing.T) {
	if ExitCode(nil) != 0 {
		t.Fatal("expected exit code 0 for nil error")
	}
	if ExitCode(os.ErrNotExist) != 1 {
		t.Fatal("expected exit code 1 for a user error")
	}
}

func TestWithExtensionSwapsSuffix(t *testing.T) {
	if got := withExtension("foo/bar.jp", ".j"); got != "foo/bar.j" {
		t.Fatalf("got %q", got)
	}
}
