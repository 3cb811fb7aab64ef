package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/session"
	"github.com/abhisek/mathfacts/internal/ui/theme"
)

var trackCmd = &cobra.Command{
	Use:   "track <fact>",
	Short: "Record one answer to a fact such as 8+3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		a, err := attemptFromFlags(cmd, args[0])
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := newTracker(st).TrackAttempt(cmd.Context(), userID, a)
		if err != nil {
			return fmt.Errorf("track attempt: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, rec)
		}
		fmt.Fprintln(w, theme.Title.Render(rec.FactKey), theme.Correctness(a.IsCorrect))
		fmt.Fprintln(w, theme.Field("Accuracy", formatPct(rec.Accuracy())))
		fmt.Fprintln(w, theme.Field("Easiness factor", fmt.Sprintf("%.2f", rec.EasinessFactor)))
		fmt.Fprintln(w, theme.Field("Repetition", fmt.Sprint(rec.RepetitionNumber)))
		fmt.Fprintln(w, theme.Field("Interval", fmt.Sprintf("%d day(s)", rec.IntervalDays)))
		fmt.Fprintln(w, theme.Field("Next review", formatDate(rec.NextReviewDate)))
		return nil
	},
}

// addAttemptFlags registers the flags read by attemptFromFlags.
func addAttemptFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("correct", false, "The answer was correct")
	cmd.Flags().Int("answer", 0, "The learner's answer (omit when skipped)")
	cmd.Flags().Int64("ms", 0, "Response time in milliseconds")
	cmd.Flags().Int("incorrect", 0, "Wrong tries on this problem before this answer")
	cmd.Flags().String("at", "", "When the answer was given (RFC 3339, default now)")
}

func attemptFromFlags(cmd *cobra.Command, fact string) (session.Attempt, error) {
	op1, op2, err := facts.ParseFactKey(fact)
	if err != nil {
		return session.Attempt{}, err
	}
	a := session.Attempt{Operand1: op1, Operand2: op2}
	a.IsCorrect, _ = cmd.Flags().GetBool("correct")
	a.ResponseTimeMs, _ = cmd.Flags().GetInt64("ms")
	a.IncorrectAttempts, _ = cmd.Flags().GetInt("incorrect")
	if cmd.Flags().Changed("answer") {
		answer, _ := cmd.Flags().GetInt("answer")
		a.UserAnswer = &answer
	}
	if at, _ := cmd.Flags().GetString("at"); at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return session.Attempt{}, fmt.Errorf("invalid --at: %w", err)
		}
		a.AttemptedAt = &t
	}
	return a, nil
}

func init() {
	addAttemptFlags(trackCmd)
}
