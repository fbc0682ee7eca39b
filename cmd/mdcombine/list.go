package main

import (
	"github.com/spf13/cobra"

	"MarkdownCombine/internal/infrastructure/markdown"
)

// newFoldersCmd は folders コマンドを作成します
func newFoldersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List the folders the picker offers",
		Long: `List every folder of the vault, root first, in depth-first order.
These are the candidates shown by the folder pickers.`,
		Args: cobra.NoArgs,
		RunE: runFolders,
	}
}

func runFolders(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	folders, err := a.newCombiner(printer).Folders(cmd.Context())
	if err != nil {
		exitErr := toExitError(err)
		printer.Error(exitErr)
		return exitErr
	}

	paths := make([]string, 0, len(folders))
	for _, f := range folders {
		paths = append(paths, f.Path)
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"count":   len(paths),
			"folders": paths,
		})
	}
	for _, p := range paths {
		printer.Println(p)
	}
	return nil
}

// fileRow は files コマンドの1行です
type fileRow struct {
	Path  string `json:"path"`
	Title string `json:"title,omitempty"`
}

// newFilesCmd は files コマンドを作成します
func newFilesCmd() *cobra.Command {
	var titlesFlag bool
	cmd := &cobra.Command{
		Use:   "files <folder>",
		Short: "List the markdown files a combine would include",
		Long: `List the markdown files under a folder in the order combine concatenates them.

Examples:
  mdcombine files docs           # Paths only
  mdcombine files docs --titles  # Include front matter titles`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(cmd, args[0], titlesFlag)
		},
	}
	cmd.Flags().BoolVar(&titlesFlag, "titles", false, "Read each file and show its front matter title")
	return cmd
}

func runFiles(cmd *cobra.Command, folder string, titles bool) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	files, err := a.newCombiner(printer).Files(cmd.Context(), folder)
	if err != nil {
		exitErr := toExitError(err)
		printer.Error(exitErr)
		return exitErr
	}

	rows := make([]fileRow, 0, len(files))
	for _, file := range files {
		row := fileRow{Path: file.Path}
		if titles {
			content, err := a.vault.Read(cmd.Context(), file)
			if err != nil {
				exitErr := toExitError(err)
				printer.Error(exitErr)
				return exitErr
			}
			if row.Title, err = markdown.Title([]byte(content)); err != nil {
				printer.Warn("%s: %v", file.Path, err)
			}
		}
		rows = append(rows, row)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"folder": folder,
			"count":  len(rows),
			"files":  rows,
		})
	}
	if len(rows) == 0 {
		printer.Warn("no markdown files under %s", folder)
		return nil
	}
	if !titles {
		for _, row := range rows {
			printer.Println(row.Path)
		}
		return nil
	}
	table := make([][]string, 0, len(rows))
	for _, row := range rows {
		table = append(table, []string{row.Path, row.Title})
	}
	printer.Table([]string{"PATH", "TITLE"}, table)
	return nil
}
