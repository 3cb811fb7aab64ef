package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathfacts/internal/ui/theme"
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List facts due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.Review.Limit
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := newTracker(st).GetFactsDueForReview(cmd.Context(), userID, limit)
		if err != nil {
			return fmt.Errorf("query due facts: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, list)
		}
		if len(list.Facts) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("Nothing due. Come back later."))
			return nil
		}
		fmt.Fprintln(w, recordTable(list.Facts, list.AsOf))
		fmt.Fprintf(w, "\n%d fact(s) due\n", len(list.Facts))
		return nil
	},
}

var weakCmd = &cobra.Command{
	Use:   "weak",
	Short: "List facts that need practice: due facts first, then the hardest",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.Review.WeakLimit
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		list, err := newTracker(st).GetWeakFacts(cmd.Context(), userID, limit)
		if err != nil {
			return fmt.Errorf("query weak facts: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, list)
		}
		if len(list.Facts) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("No facts practiced yet."))
			return nil
		}
		fmt.Fprintln(w, recordTable(list.Facts, list.AsOf))
		fmt.Fprintf(w, "\n%d due, %d by easiness\n", list.DueCount, len(list.Facts)-list.DueCount)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the attempt log, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		fact, _ := cmd.Flags().GetString("fact")
		limit, _ := cmd.Flags().GetInt("limit")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		attempts, err := newTracker(st).GetAttemptHistory(cmd.Context(), userID, fact, limit)
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, attempts)
		}
		if len(attempts) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("No attempts found."))
			return nil
		}
		fmt.Fprintln(w, attemptTable(attempts))
		return nil
	},
}

func init() {
	dueCmd.Flags().Int("limit", 0, "Maximum facts to list (default review.limit)")
	weakCmd.Flags().Int("limit", 0, "Maximum facts to list (default review.weak_limit)")
	historyCmd.Flags().String("fact", "", "Only this fact, e.g. 8+3")
	historyCmd.Flags().Int("limit", 20, "Maximum attempts to list (0 = all)")
}
