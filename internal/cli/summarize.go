package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/codescope/internal/analyzer"
)

// summarizeCmd prints the natural-language summary of one file.
var summarizeCmd = &cobra.Command{
	Use:   "summarize [file]",
	Short: "Summarize a source file",
	Long: `Summarize a source file: inferred module purpose, structure,
line statistics, and a prose summary at the requested verbosity.

Example:
  codescope summarize --length detailed app.py`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().String("length", "medium", "summary length: brief, medium, or detailed")
	summarizeCmd.Flags().Bool("todos", true, "include TODO markers")

	viper.BindPFlag("summary_length", summarizeCmd.Flags().Lookup("length"))
}

func runSummarize(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	opts := analyzer.DefaultSummarizeOptions()
	opts.FilePath = args[0]
	opts.SummaryLength = viper.GetString("summary_length")
	opts.IncludeTodos, _ = cmd.Flags().GetBool("todos")

	return printJSON(analyzer.New().SummarizeCode(string(source), opts))
}
