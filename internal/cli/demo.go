package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yildizm/synopsis/internal/remote"
)

var demoOutputFile string

func newDemoCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Print the sample article and its reference summary",
		Long: `Fetch the sample article the service offers for trying things out,
together with its reference summary when one exists.

Examples:
  synopsis demo
  synopsis demo -o json
  synopsis demo -o markdown --output-file sample.md`,
		Args: cobra.NoArgs,
		RunE: runDemo,
	}

	cmd.Flags().StringVar(&demoOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	f, err := getFormatter(getOutputFormat(), useColor())
	if err != nil {
		return fmt.Errorf("failed to get formatter: %w", err)
	}

	client, err := newClient(cfg, newLogger("demo"))
	if err != nil {
		return err
	}

	demo, err := client.FetchDemo(cmd.Context())
	if err != nil {
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Request failed: %v\n", err)
		}
		return errors.New(remote.MessageOf(err, remote.FallbackDemoMessage))
	}

	output, err := f.FormatDemo(demo)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return handleOutputDestination(cmd, output, demoOutputFile)
}
