package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathfacts/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		sum, err := newTracker(st).GetPerformanceSummary(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("summarize performance: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, sum)
		}
		fmt.Fprintln(w, theme.Title.Render("Performance of "+userID))
		fmt.Fprintln(w, theme.Field("Facts", fmt.Sprint(sum.TotalFacts)))
		fmt.Fprintln(w, theme.Field("Due now", fmt.Sprint(sum.DueCount)))
		fmt.Fprintln(w, theme.Field("Attempts", fmt.Sprintf("%d (%d correct)", sum.TotalAttempts, sum.TotalCorrect)))
		fmt.Fprintln(w, theme.Field("Overall accuracy", formatPct(sum.OverallAccuracy)))
		fmt.Fprintln(w, theme.Field("Mean fact accuracy", formatPct(sum.MeanFactAccuracy)))
		fmt.Fprintln(w, theme.Field("Mean easiness", fmt.Sprintf("%.2f", sum.MeanEasinessFactor)))

		if len(sum.IntervalHistogram) == 0 {
			return nil
		}
		intervals := make([]int, 0, len(sum.IntervalHistogram))
		for d := range sum.IntervalHistogram {
			intervals = append(intervals, d)
		}
		sort.Ints(intervals)
		rows := make([][]string, 0, len(intervals))
		for _, d := range intervals {
			n := sum.IntervalHistogram[d]
			rows = append(rows, []string{
				fmt.Sprintf("%dd", d),
				fmt.Sprint(n),
				theme.Bar(float64(n)/float64(sum.TotalFacts)*100, 20),
			})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, theme.Table([]string{"INTERVAL", "FACTS", ""}, rows))
		return nil
	},
}
