package main

import (
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"MarkdownCombine/internal/gui"
	"MarkdownCombine/internal/usecase/combine"
)

// guiAppID はデスクトップ通知と設定の保存に使うアプリケーションIDです
const guiAppID = "io.github.mdcombine"

// newGUICmd はデスクトップウィンドウを開く gui コマンドを作成します
func newGUICmd() *cobra.Command {
	var pickerFlag string
	cmd := &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window",
		Long: `Open a desktop window with a "Combine Markdown Files" button.
The button, the Commands menu and Ctrl+Shift+M all open the folder picker.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGUI(cmd, pickerFlag)
		},
	}
	cmd.Flags().StringVar(&pickerFlag, "picker", "", "Folder picker: filter or dropdown (overrides config)")
	return cmd
}

func runGUI(cmd *cobra.Command, pickerName string) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	if pickerName == "" {
		pickerName = a.cfg.Picker
	}
	strategy, err := gui.NewStrategy(pickerName)
	if err != nil {
		printer.Warn("%v; using the filter picker", err)
		strategy = gui.FilterPicker{}
	}

	fyneApp := fyneapp.NewWithID(guiAppID)
	notifier := gui.NewNotifier(fyneApp)
	var opts []combine.Option
	if a.cfg.Open {
		opts = append(opts, combine.WithOpener(gui.NewURLOpener(fyneApp, a.vault)))
	}
	combiner := a.newCombiner(notifier, opts...)

	gui.NewDesktop(cmd.Context(), fyneApp, combiner, strategy, notifier, a.logger).ShowAndRun()
	return nil
}
