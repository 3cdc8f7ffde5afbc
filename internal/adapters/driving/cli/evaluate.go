package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/fleetwatch/internal/core/ports/driving"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run one evaluation pass",
	Long: `Evaluates the current snapshot, records any new notifications and
trims the stored set to the retention limit. Conditions that already have
an unread notification are not reported again.`,
	Args: cobra.NoArgs,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	if evaluator == nil {
		return errors.New("evaluation service not configured")
	}

	result, err := evaluator.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	printEvaluation(cmd.OutOrStdout(), result)
	return nil
}

// evaluateOnce runs a pass and prints its summary; used by watch.
func evaluateOnce(ctx context.Context, out io.Writer) error {
	result, err := evaluator.Run(ctx)
	if err != nil {
		return err
	}
	printEvaluation(out, result)
	return nil
}

func printEvaluation(out io.Writer, result *driving.EvaluationResult) {
	fmt.Fprintf(out, "Evaluated at %s: %d candidates, %d new, %d evicted, %d stored.\n",
		result.EvaluatedAt.Format("2006-01-02 15:04:05 MST"),
		result.Candidates, len(result.Emitted), result.Evicted, result.Retained)

	if len(result.Emitted) == 0 {
		return
	}

	t := newTableWriter(out)
	t.Row("SEVERITY", "MESSAGE", "LINK", "ID")
	for _, r := range result.Emitted {
		t.Row(string(r.Severity), r.Message, r.LinkTarget, r.ID)
	}
	_ = t.Flush()
}
