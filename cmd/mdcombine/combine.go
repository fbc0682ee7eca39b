package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"MarkdownCombine/internal/domain/model"
	"MarkdownCombine/internal/gui"
	"MarkdownCombine/internal/infrastructure/config"
	"MarkdownCombine/internal/infrastructure/filesystem"
	"MarkdownCombine/internal/interface/output"
	"MarkdownCombine/internal/interface/ui"
	"MarkdownCombine/internal/usecase/combine"
)

// combineResult は combine コマンドの出力です
type combineResult struct {
	Notice     string   `json:"notice"`
	FolderPath string   `json:"folder_path"`
	FileName   string   `json:"file_name"`
	Path       string   `json:"path"`
	Files      []string `json:"files"`
	Opened     bool     `json:"opened"`
}

// noticeRecorder は最後の通知を覚えておき、人向け出力のときだけ表示します
type noticeRecorder struct {
	printer *output.Printer
	last    string
}

func (n *noticeRecorder) Notice(message string) {
	n.last = message
	if !n.printer.IsJSON() {
		n.printer.Notice(message)
	}
}

// pathOpener は端末では作成したファイルの絶対パスを表示することで「開く」を表します
type pathOpener struct {
	vault *filesystem.LocalVault
	path  string
}

func (o *pathOpener) Open(_ context.Context, file *model.FileNode) error {
	o.path = o.vault.AbsPath(file.Path)
	return nil
}

// newCombineCmd は combine コマンドを作成します
func newCombineCmd() *cobra.Command {
	var (
		pickerFlag string
		openFlag   bool
	)
	cmd := &cobra.Command{
		Use:   "combine [folder]",
		Short: "Combine the markdown files under a folder",
		Long: `Combine every markdown file under a folder (recursively) into a new
combined-<folder>-<timestamp>.md file at the vault root.

Without a folder argument a picker opens: "filter" (type to search),
"dropdown" or "native" (the OS directory dialog). Use / for the vault root.

Examples:
  mdcombine combine docs             # Combine everything under docs/
  mdcombine combine                  # Pick the folder interactively
  mdcombine combine --picker native  # Use the OS folder dialog
  mdcombine combine docs --json      # Output the result as JSON`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(cmd, args, pickerFlag, openFlag)
		},
	}
	cmd.Flags().StringVar(&pickerFlag, "picker", "", "Folder picker when no folder is given: filter, dropdown, native (overrides config)")
	cmd.Flags().BoolVar(&openFlag, "open", false, "Show the created file's path (overrides config)")
	return cmd
}

func runCombine(cmd *cobra.Command, args []string, pickerName string, open bool) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	if !cmd.Flags().Changed("open") {
		open = a.cfg.Open
	}
	if pickerName == "" {
		pickerName = a.cfg.Picker
	}

	picker, err := choosePicker(args, pickerName, a.vault)
	if err != nil {
		printer.Error(err)
		return err
	}

	notices := &noticeRecorder{printer: printer}
	opener := &pathOpener{vault: a.vault}
	var opts []combine.Option
	if open {
		opts = append(opts, combine.WithOpener(opener))
	}
	combiner := a.newCombiner(notices, opts...)

	result, err := combiner.Run(cmd.Context(), picker)
	if err != nil {
		exitErr := toExitError(err)
		if printer.IsJSON() || !noticeShown(err) {
			printer.Error(exitErr)
		}
		return exitErr
	}
	if result == nil {
		printer.Warn("no folder selected")
		return nil
	}

	out := combineResult{
		Notice:     notices.last,
		FolderPath: result.FolderPath,
		FileName:   result.FileName,
		Path:       a.vault.AbsPath(result.FileName),
		Files:      result.Files,
		Opened:     result.Opened,
	}
	if printer.IsJSON() {
		return printer.WriteJSON(out)
	}
	if result.Opened {
		printer.KeyValue("Path", opener.path)
	}
	return nil
}

// choosePicker はフォルダ引数があればそのパスを、なければ指定方式の Picker を返します
func choosePicker(args []string, name string, vault *filesystem.LocalVault) (combine.Picker, error) {
	if len(args) == 1 {
		return combine.PathPicker(args[0]), nil
	}
	switch name {
	case config.PickerNative:
		return ui.NewNativePicker(vault), nil
	case config.PickerFilter, config.PickerDropdown:
		strategy, err := gui.NewStrategy(name)
		if err != nil {
			return nil, err
		}
		return gui.NewOneShot(strategy), nil
	}
	return nil, output.NewUserError(fmt.Sprintf("unknown picker %q (filter, dropdown, native)", name))
}
