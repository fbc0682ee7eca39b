package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"MarkdownCombine/internal/domain/model"
	"MarkdownCombine/internal/interface/output"
	"MarkdownCombine/internal/usecase/report"
)

func TestInspectCommand(t *testing.T) {
	doc := report.NewGenerator().Render("docs", []model.Section{
		{Path: "docs/a.md", Content: "Hello"},
		{Path: "docs/b/c.md", Content: "World"},
	})
	path := filepath.Join(t.TempDir(), "combined.md")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	stdout, _, err := executeCmd(t, "inspect", path, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var result map[string]any
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, stdout)
	}
	if result["source"] != "docs" || result["declared_count"] != float64(2) || result["consistent"] != true {
		t.Errorf("result = %v", result)
	}

	stdout, stderr, err := executeCmd(t, "inspect", path)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "Generated from: docs") || !strings.Contains(stdout, "  docs/b/c.md") {
		t.Errorf("stdout = %q", stdout)
	}
	if strings.Contains(stderr, "Warning") {
		t.Errorf("consistent document should not warn: %q", stderr)
	}
}

func TestInspectCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := executeCmd(t, "inspect", filepath.Join(dir, "missing.md"))
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Errorf("missing file exit code = %d, want %d", got, output.ExitUserError)
	}

	plain := filepath.Join(dir, "plain.md")
	if err := os.WriteFile(plain, []byte("# Notes\n\ntext\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, _, err = executeCmd(t, "inspect", plain)
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Errorf("plain file exit code = %d, want %d", got, output.ExitUserError)
	}
}
