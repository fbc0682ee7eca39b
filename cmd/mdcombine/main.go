// Package main はmdcombineコマンドのエントリーポイントを提供します
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"MarkdownCombine/internal/interface/output"
)

// ビルド時に -ldflags "-X main.version=..." で設定します
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// flagValue はサブコマンドと親コマンドの永続フラグからフラグの値を探します
func flagValue(cmd *cobra.Command, name string) string {
	if flag := lookupFlag(cmd, name); flag != nil {
		return flag.Value.String()
	}
	return ""
}

// flagChanged はフラグがコマンドラインで指定されたかを返します
func flagChanged(cmd *cobra.Command, name string) bool {
	flag := lookupFlag(cmd, name)
	return flag != nil && flag.Changed
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup(name)
	}
	return flag
}

// isJSONMode は --json が指定されているかを返します
func isJSONMode(cmd *cobra.Command) bool {
	return flagValue(cmd, "json") == "true"
}

// useColor は --color と出力先から色付き出力にするかを決めます
func useColor(cmd *cobra.Command) bool {
	return output.ColorMode(flagValue(cmd, "color")).Enabled(cmd.OutOrStdout())
}

// newPrinter はコマンドの出力先に合わせた Printer を作成します
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
}

// buildVersion はコミットと日付を含むバージョン文字列を返します
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd は mdcombine のルートコマンドを作成します
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mdcombine",
		Short: "Combine the markdown files of a folder into one document",
		Long: `mdcombine - Combine every markdown file under a folder into a single document.

The combined document is written to the vault root as
combined-<folder>-<timestamp>.md. Files are ordered by path and each one
becomes a "## File: <path>" section.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := newPrinter(cmd)
				err := output.NewUserError("no command specified. Run 'mdcombine --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.Bool("json", false, "Output in JSON format")
	flags.String("color", string(output.ColorAuto), "Colorize output: auto, always, never")
	flags.String("config", "", "Config file (default is <config dir>/mdcombine/config.yaml)")
	flags.String("vault", "", "Vault directory (overrides config)")
	flags.String("log-level", "", "Minimum log level: DEBUG, INFO, WARN, ERROR (overrides config)")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "query", Title: "Query Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "app", Title: "Application Commands:"})
}

func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newCombineCmd(), "core")

	addGroupedCommand(cmd, newFoldersCmd(), "query")
	addGroupedCommand(cmd, newFilesCmd(), "query")
	addGroupedCommand(cmd, newInspectCmd(), "query")

	addGroupedCommand(cmd, newGUICmd(), "app")
	addGroupedCommand(cmd, newServeCmd(), "app")
	addGroupedCommand(cmd, newConfigCmd(), "app")
}

func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
