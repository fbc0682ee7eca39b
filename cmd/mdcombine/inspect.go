package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"MarkdownCombine/internal/infrastructure/markdown"
	"MarkdownCombine/internal/interface/output"
)

// newInspectCmd は inspect コマンドを作成します
func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Check a combined document",
		Long: `Parse a combined document and report its header and file sections.
Warns when the "Total files" count does not match the number of sections.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
}

func runInspect(cmd *cobra.Command, path string) error {
	printer := newPrinter(cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		exitErr := output.NewSystemErrorWithCause(fmt.Sprintf("reading %s: %v", path, err), err)
		if errors.Is(err, fs.ErrNotExist) {
			exitErr.Code = output.ExitUserError
		}
		printer.Error(exitErr)
		return exitErr
	}

	outline, err := markdown.Inspect(data)
	if err != nil {
		exitErr := &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
		printer.Error(exitErr)
		return exitErr
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"title":          outline.Title,
			"source":         outline.Source,
			"declared_count": outline.DeclaredCount,
			"files":          outline.Files,
			"consistent":     outline.Consistent(),
		})
	}

	printer.Section(outline.Title)
	printer.KeyValue("Generated from", outline.Source)
	printer.KeyValue("Total files", strconv.Itoa(outline.DeclaredCount))
	printer.KeyValue("Sections", strconv.Itoa(len(outline.Files)))
	for _, f := range outline.Files {
		printer.Println("  " + f)
	}
	if !outline.Consistent() {
		printer.Warn("header declares %d files but %d sections were found", outline.DeclaredCount, len(outline.Files))
	}
	return nil
}
