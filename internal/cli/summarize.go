package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yildizm/synopsis/internal/article"
	"github.com/yildizm/synopsis/internal/formatter"
	"github.com/yildizm/synopsis/internal/remote"
	"github.com/yildizm/synopsis/internal/session"
)

var (
	summarizeURL        string
	summarizeOutputFile string
)

func newSummarizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize an article file, stdin or web page",
		Long: `Send one article to the summarization service and print the summary.

If no file is specified, or the file is "-", reads from stdin. With --url the
page is downloaded and its main content extracted first.

Examples:
  synopsis summarize article.txt
  cat article.txt | synopsis summarize
  synopsis summarize --url https://example.com/post -o markdown
  synopsis summarize article.txt -o json --output-file summary.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSummarize,
	}

	cmd.Flags().StringVarP(&summarizeURL, "url", "u", "", "summarize a web page")
	cmd.Flags().StringVar(&summarizeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	log := newLogger("summarize")

	src := articleSource{url: summarizeURL}
	if len(args) == 1 {
		src.path = args[0]
	} else if summarizeURL == "" {
		src.path = "-"
	}

	doc, err := loadArticle(cmd.Context(), cfg, src, cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to load article: %w", err)
	}

	// same rule as the interactive session: blank input never reaches the service
	if strings.TrimSpace(doc.Text) == "" {
		return errors.New(session.ValidationMessage)
	}

	f, err := getFormatter(getOutputFormat(), useColor())
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	client, err := newClient(cfg, log)
	if err != nil {
		return err
	}

	result, err := client.Summarize(cmd.Context(), strings.TrimSpace(doc.Text))
	if err != nil {
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		}
		return errors.New(remote.MessageOf(err, remote.FallbackSummarizeMessage))
	}

	output, err := f.FormatSummary(&formatter.SummaryReport{
		Source: doc.Source,
		Input:  article.Measure(doc.Text),
		Result: result,
	})
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(cmd, output, summarizeOutputFile)
}
