package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/synopsis/internal/article"
	"github.com/yildizm/synopsis/internal/logger"
	"github.com/yildizm/synopsis/internal/ui"
)

var (
	tuiFile  string
	tuiURL   string
	tuiWatch bool
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive summarizer",
		Long: `Open the interactive summarizer.

Paste or type an article, press ctrl+s to summarize it and ctrl+d to load the
sample article from the service. The editor can be prefilled from a file or a
web page, and --watch reloads the file whenever it changes on disk.

Examples:
  synopsis tui
  synopsis tui --file draft.txt --watch
  synopsis tui --url https://example.com/post`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}

	addTUIFlags(cmd)

	return cmd
}

func addTUIFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&tuiFile, "file", "f", "", "prefill the editor from a text file")
	cmd.Flags().StringVarP(&tuiURL, "url", "u", "", "prefill the editor from a web page")
	cmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "reload --file when it changes")
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	if tuiWatch && tuiFile == "" {
		return fmt.Errorf("--watch requires --file")
	}

	if !ui.SetThemeByName(cfg.UI.Theme) {
		return fmt.Errorf("unknown theme: %s", cfg.UI.Theme)
	}

	closeLog := redirectLogs(cfg.LogFilePath())
	defer closeLog()

	log := newLogger("tui")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := loadArticle(ctx, cfg, articleSource{path: tuiFile, url: tuiURL}, os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to load article: %w", err)
	}

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	opts := ui.Options{
		Client:    client,
		WrapWidth: cfg.UI.WrapWidth,
		Logger:    log,
	}
	if doc != nil {
		opts.Text = doc.Text
		opts.Source = doc.Source
	}

	if tuiWatch {
		watcher, err := article.NewWatcher(tuiFile, cfg.Article.MaxBytes, log)
		if err != nil {
			return err
		}
		go runWatcher(ctx, watcher, log)
		opts.Watcher = watcher
	}

	log.Info("starting terminal UI against %s", client.BaseURL())
	return ui.Run(ctx, opts)
}

func runWatcher(ctx context.Context, watcher *article.Watcher, log *logger.Logger) {
	if err := watcher.Run(ctx); err != nil {
		log.Warn("watcher stopped: %v", err)
	}
}

// redirectLogs sends log output to path while the alternate screen is active.
// The returned func restores stderr and closes the file.
func redirectLogs(path string) func() {
	file, err := logger.OpenLogFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger.SetDefaultOutput(io.Discard)
		return func() { logger.SetDefaultOutput(nil) }
	}

	logger.SetDefaultOutput(file)
	return func() {
		logger.SetDefaultOutput(nil)
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}
}
