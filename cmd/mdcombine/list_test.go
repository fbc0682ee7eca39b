package main

import (
	"encoding/json"
	"strings"
	"testing"

	"MarkdownCombine/internal/interface/output"
)

func TestFoldersCommand(t *testing.T) {
	vault := makeVault(t, docsFiles())

	stdout, _, err := executeCmd(t, "folders", "--vault", vault, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var result struct {
		Count   int      `json:"count"`
		Folders []string `json:"folders"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, stdout)
	}
	want := "/,docs,docs/b,empty"
	if got := strings.Join(result.Folders, ","); got != want || result.Count != 4 {
		t.Errorf("folders = %s (count %d), want %s", got, result.Count, want)
	}

	stdout, _, err = executeCmd(t, "folders", "--vault", vault)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "/\ndocs\ndocs/b\nempty\n" {
		t.Errorf("human output = %q", stdout)
	}
}

func TestFilesCommand(t *testing.T) {
	files := docsFiles()
	files["docs/b/c.md"] = "---\ntitle: Chapter C\n---\nWorld"
	vault := makeVault(t, files)

	stdout, _, err := executeCmd(t, "files", "docs", "--titles", "--vault", vault, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	var result struct {
		Folder string    `json:"folder"`
		Count  int       `json:"count"`
		Files  []fileRow `json:"files"`
	}
	if err := json.Unmarshal([]byte(stdout), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, stdout)
	}
	if result.Count != 2 || result.Files[0].Path != "docs/a.md" || result.Files[1].Title != "Chapter C" {
		t.Errorf("files = %+v", result)
	}

	stdout, _, err = executeCmd(t, "files", "docs", "--vault", vault)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "docs/a.md\ndocs/b/c.md\n" {
		t.Errorf("human output = %q", stdout)
	}
}

func TestFilesCommand_InvalidFolder(t *testing.T) {
	vault := makeVault(t, docsFiles())

	_, stderr, err := executeCmd(t, "files", "missing", "--vault", vault)
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", got, output.ExitUserError)
	}
	if !strings.Contains(stderr, "Invalid folder selected") {
		t.Errorf("stderr = %q", stderr)
	}
}
