package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"MarkdownCombine/internal/infrastructure/config"
	"MarkdownCombine/internal/interface/output"
)

// newConfigCmd は設定ファイルを扱う config コマンドを作成します
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the configuration file",
	}
	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{
					"path":      configPath(cmd),
					"vault":     cfg.Vault,
					"picker":    cfg.Picker,
					"open":      cfg.Open,
					"ordering":  cfg.Ordering,
					"log_level": cfg.LogLevel,
					"log_file":  cfg.LogFile,
				})
			}
			printer.KeyValue("Config", configPath(cmd))
			printer.KeyValue("Vault", cfg.Vault)
			printer.KeyValue("Picker", cfg.Picker)
			printer.KeyValue("Open", strconv.FormatBool(cfg.Open))
			printer.KeyValue("Ordering", cfg.Ordering)
			printer.KeyValue("Log level", cfg.LogLevel)
			printer.KeyValue("Log file", cfg.LogFile)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var forceFlag bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := newPrinter(cmd)
			path := configPath(cmd)
			if path == "" {
				err := output.NewUserError("cannot determine the config directory; use --config")
				printer.Error(err)
				return err
			}
			if _, err := os.Stat(path); err == nil && !forceFlag {
				exitErr := output.NewConflictErrorWithCause(fmt.Sprintf("%s already exists (use --force to overwrite)", path), fs.ErrExist)
				printer.Error(exitErr)
				return exitErr
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				exitErr := output.NewSystemErrorWithCause(err.Error(), err)
				printer.Error(exitErr)
				return exitErr
			}
			if err := config.Save(path, config.Default()); err != nil {
				exitErr := output.NewSystemErrorWithCause(err.Error(), err)
				printer.Error(exitErr)
				return exitErr
			}
			if printer.IsJSON() {
				return printer.WriteJSON(map[string]any{"path": path})
			}
			printer.Notice("Wrote " + path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing file")
	return cmd
}
