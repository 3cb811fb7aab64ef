package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mathfacts/internal/session"
	"github.com/abhisek/mathfacts/internal/ui/theme"
)

var sessionCmd = &cobra.Command{
	Use:   "session <file.json>",
	Short: "Record a practice session from a JSON file and summarize it",
	Long: `Reads a session file of the form

  {"user_id": "ana", "attempts": [{"operand1": 8, "operand2": 3,
    "is_correct": true, "response_time_ms": 1800}]}

updates every practiced fact in one transaction and prints a summary.
--user overrides the file's user_id.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, userID, err := loadSessionFile(cmd, args[0])
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		out, err := newTracker(st).AnalyzeSessionPerformance(cmd.Context(), userID, file.Attempts)
		if err != nil && out == nil {
			return fmt.Errorf("analyze session: %w", err)
		}
		if err != nil {
			logger.Warn("session saved without a due count", zap.String("user_id", userID), zap.Error(err))
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, out.Summary)
		}
		sum := out.Summary
		if sum.Empty {
			fmt.Fprintln(w, theme.Hint.Render("The session had no attempts."))
			return nil
		}
		fmt.Fprintln(w, theme.Title.Render("Session summary for "+userID))
		fmt.Fprintln(w, theme.Field("Accuracy", formatPct(sum.Accuracy)))
		fmt.Fprintln(w, theme.Field("Attempts", fmt.Sprintf("%d (%d correct)", sum.TotalAttempts, sum.CorrectAttempts)))
		fmt.Fprintln(w, theme.Field("Avg response", fmt.Sprintf("%.0fms", sum.AverageResponseTimeMs)))
		fmt.Fprintln(w, theme.Field("Facts practiced", listOrDash(sum.FactsPracticed)))
		fmt.Fprintln(w, theme.Field("New facts", listOrDash(sum.NewFactsLearned)))
		fmt.Fprintln(w, theme.Field("Mastered", listOrDash(sum.FactsMastered)))
		fmt.Fprintln(w, theme.Field("Cleared from review", listOrDash(sum.FactsCleared)))
		fmt.Fprintln(w, theme.Field("Still due", fmt.Sprint(sum.RemainingDue)))
		return nil
	},
}

// loadSessionFile decodes a session file; --user wins over its user_id.
func loadSessionFile(cmd *cobra.Command, path string) (*session.File, string, error) {
	file, err := session.DecodeFile(path)
	if err != nil {
		return nil, "", err
	}
	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		userID = file.UserID
	}
	if userID == "" {
		return nil, "", fmt.Errorf("%s has no user_id: pass --user", path)
	}
	return file, userID, nil
}

func listOrDash(keys []string) string {
	if len(keys) == 0 {
		return "-"
	}
	return strings.Join(keys, ", ")
}
