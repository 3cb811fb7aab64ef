package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathfacts/internal/addition"
	"github.com/abhisek/mathfacts/internal/ui/theme"
)

var additionCmd = &cobra.Command{
	Use:   "addition",
	Short: "Table-practice mode: mastery levels without review scheduling",
}

var additionTrackCmd = &cobra.Command{
	Use:   "track <fact>",
	Short: "Record one table-practice answer",
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

		rec, err := newAddition(st).TrackAttempt(cmd.Context(), userID, a)
		if err != nil {
			return fmt.Errorf("track attempt: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, rec)
		}
		fmt.Fprintln(w, theme.Title.Render(rec.FactKey), theme.Correctness(a.IsCorrect))
		fmt.Fprintln(w, theme.Field("Accuracy", formatPct(rec.Accuracy())))
		fmt.Fprintln(w, theme.Field("Attempts", fmt.Sprint(rec.TotalAttempts)))
		fmt.Fprintln(w, theme.Field("Fastest", formatMs(rec.FastestResponseMs)))
		fmt.Fprintln(w, theme.Field("Level", theme.Level(rec.Level).Render(string(rec.Level))))
		return nil
	},
}

var additionWeakCmd = &cobra.Command{
	Use:   "weak",
	Short: "List facts answered correctly too rarely",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.Addition.WeakLimit
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		weak, err := newAddition(st).GetWeakFacts(cmd.Context(), userID,
			cfg.Addition.MinAttempts, cfg.Addition.MaxAccuracy, limit)
		if err != nil {
			return fmt.Errorf("query weak facts: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, weak)
		}
		if len(weak) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("No weak facts."))
			return nil
		}
		fmt.Fprintln(w, additionTable(weak))
		return nil
	},
}

var additionMasteredCmd = &cobra.Command{
	Use:   "mastered",
	Short: "List mastered facts, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		if limit == 0 {
			limit = cfg.Addition.MasteredLimit
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		mastered, err := newAddition(st).GetMasteredFacts(cmd.Context(), userID, limit)
		if err != nil {
			return fmt.Errorf("query mastered facts: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, mastered)
		}
		if len(mastered) == 0 {
			fmt.Fprintln(w, theme.Hint.Render("No mastered facts yet."))
			return nil
		}
		fmt.Fprintln(w, additionTable(mastered))
		return nil
	},
}

var additionStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show table-practice mastery and proficiency",
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

		sum, err := newAddition(st).GetPerformanceSummary(cmd.Context(), userID)
		if err != nil {
			return fmt.Errorf("summarize performance: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, sum)
		}
		fmt.Fprintln(w, theme.Title.Render(string(sum.Proficiency)))
		fmt.Fprintln(w, theme.Field("Mastery", theme.Bar(sum.MasteryPercentage, 20)+" "+formatPct(sum.MasteryPercentage)))
		fmt.Fprintln(w, theme.Field("Facts", fmt.Sprintf("%d learning, %d practicing, %d mastered",
			sum.Learning, sum.Practicing, sum.Mastered)))
		fmt.Fprintln(w, theme.Field("Attempts", fmt.Sprint(sum.TotalAttempts)))
		fmt.Fprintln(w, theme.Field("Overall accuracy", formatPct(sum.OverallAccuracy)))
		return nil
	},
}

var additionRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Suggest what to practice within an operand range",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := requireUser(cmd)
		if err != nil {
			return err
		}
		low, _ := cmd.Flags().GetInt("low")
		high, _ := cmd.Flags().GetInt("high")

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		rec, err := newAddition(st).GetPracticeRecommendations(cmd.Context(), userID, low, high)
		if err != nil {
			return fmt.Errorf("recommend practice: %w", err)
		}

		w := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(w, rec)
		}
		fmt.Fprintln(w, theme.Title.Render("Range "+rec.SessionRange()))
		fmt.Fprintln(w, theme.Field("Possible facts", fmt.Sprint(rec.TotalPossibleFacts)))
		fmt.Fprintln(w, theme.Field("Mastered", fmt.Sprint(rec.MasteredFactsCount)))
		fmt.Fprintln(w, theme.Field("Weak", fmt.Sprint(rec.WeakFactsCount)))
		if len(rec.WeakFacts) > 0 {
			fmt.Fprintln(w, additionTable(rec.WeakFacts))
		}
		fmt.Fprintln(w, theme.Hint.Render(rec.Message))
		return nil
	},
}

var additionSessionCmd = &cobra.Command{
	Use:   "session <file.json>",
	Short: "Record a table-practice session from a JSON file",
	Args:  cobra.ExactArgs(1),
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

		out, err := newAddition(st).AnalyzeSession(cmd.Context(), userID, file.Attempts)
		w := cmd.OutOrStdout()
		if errors.Is(err, addition.ErrNoAttempts) {
			fmt.Fprintln(w, theme.Hint.Render("The session had no attempts."))
			return nil
		}
		if err != nil {
			return fmt.Errorf("analyze session: %w", err)
		}

		if wantJSON(cmd) {
			return printJSON(w, out)
		}
		fmt.Fprintln(w, theme.Title.Render("Session summary for "+userID))
		fmt.Fprintln(w, theme.Field("Accuracy", formatPct(out.Accuracy)))
		fmt.Fprintln(w, theme.Field("Attempts", fmt.Sprintf("%d (%d correct)", out.TotalAttempts, out.CorrectAttempts)))
		fmt.Fprintln(w, theme.Field("Facts practiced", fmt.Sprint(out.FactsPracticed)))
		for _, t := range out.MasteryImprovements {
			fmt.Fprintln(w, theme.Field("Improved", fmt.Sprintf("%s %s -> %s", t.FactKey, t.From, theme.Level(t.To).Render(string(t.To)))))
		}
		fmt.Fprintln(w, theme.Field("Needs practice", listOrDash(out.FactsNeedingPractice)))
		return nil
	},
}

func init() {
	addAttemptFlags(additionTrackCmd)
	additionWeakCmd.Flags().Int("limit", 0, "Maximum facts to list (default addition.weak_limit)")
	additionMasteredCmd.Flags().Int("limit", 0, "Maximum facts to list (default addition.mastered_limit)")
	additionRecommendCmd.Flags().Int("low", 0, "Smallest operand of the range")
	additionRecommendCmd.Flags().Int("high", 10, "Largest operand of the range")

	additionCmd.AddCommand(additionTrackCmd)
	additionCmd.AddCommand(additionWeakCmd)
	additionCmd.AddCommand(additionMasteredCmd)
	additionCmd.AddCommand(additionStatsCmd)
	additionCmd.AddCommand(additionRecommendCmd)
	additionCmd.AddCommand(additionSessionCmd)
}
