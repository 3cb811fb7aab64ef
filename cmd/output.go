package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/ui/theme"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

func formatMs(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10) + "ms"
}

// recordTable renders SM-2 records with their schedule.
func recordTable(records []facts.Record, now time.Time) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		status := "in " + strconv.Itoa(r.DaysUntilReview(now)) + "d"
		if r.IsDue(now) {
			status = theme.Warn.Render(fmt.Sprintf("due %.1fd", r.OverdueDays(now)))
		}
		rows = append(rows, []string{
			r.FactKey,
			strconv.Itoa(r.TotalAttempts),
			formatPct(r.Accuracy()),
			strconv.FormatFloat(r.EasinessFactor, 'f', 2, 64),
			strconv.Itoa(r.IntervalDays),
			formatDate(r.NextReviewDate),
			status,
		})
	}
	return theme.Table([]string{"FACT", "TRIES", "ACCURACY", "EF", "INTERVAL", "NEXT REVIEW", "STATUS"}, rows)
}

// additionTable renders table-practice records with their level.
func additionTable(records []facts.AdditionRecord) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.FactKey,
			strconv.Itoa(r.TotalAttempts),
			formatPct(r.Accuracy()),
			strconv.FormatFloat(r.AverageResponseTimeSeconds(), 'f', 2, 64) + "s",
			theme.Level(r.Level).Render(string(r.Level)),
			formatDate(r.LastAttempted),
		})
	}
	return theme.Table([]string{"FACT", "TRIES", "ACCURACY", "AVG TIME", "LEVEL", "LAST SEEN"}, rows)
}

func attemptTable(attempts []facts.Attempt) string {
	rows := make([][]string, 0, len(attempts))
	for _, a := range attempts {
		answer := "skipped"
		if !a.Skipped() {
			answer = strconv.Itoa(*a.UserAnswer)
		}
		rows = append(rows, []string{
			strconv.FormatInt(a.Sequence, 10),
			a.AttemptedAt.Local().Format("2006-01-02 15:04:05"),
			a.FactKey,
			answer,
			theme.Correctness(a.IsCorrect),
			strconv.FormatInt(a.ResponseTimeMs, 10) + "ms",
			a.Grade.String(),
		})
	}
	return theme.Table([]string{"#", "TIME", "FACT", "ANSWER", "OK", "RESPONSE", "GRADE"}, rows)
}
