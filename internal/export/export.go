// Package export writes a learner's progress to an Excel workbook.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/store"
)

// Sheet names, in workbook order.
const (
	SheetFacts    = "Facts"
	SheetAttempts = "Attempts"
	SheetAddition = "Addition"
)

var (
	factHeader = []any{
		"fact_key", "total_attempts", "correct_attempts", "accuracy",
		"avg_response_time_s", "fastest_response_ms", "slowest_response_ms",
		"repetition_number", "easiness_factor", "interval_days",
		"next_review_date", "last_attempted",
	}
	attemptHeader = []any{
		"sequence", "fact_key", "user_answer", "correct_answer", "is_correct",
		"response_time_ms", "incorrect_attempts_in_session", "sm2_grade",
		"attempted_at",
	}
	additionHeader = []any{
		"fact_key", "total_attempts", "correct_attempts", "accuracy",
		"avg_response_time_s", "mastery_level", "last_attempted",
	}
)

// Data is everything exported for one learner.
type Data struct {
	Facts     []facts.Record
	Attempts  []facts.Attempt
	Additions []facts.AdditionRecord
}

// Load reads a learner's records, attempt log and table-practice records.
// as may be nil, in which case the Addition sheet stays empty.
func Load(ctx context.Context, fs store.FactStore, as store.AdditionStore, userID string) (*Data, error) {
	var d Data
	var err error
	if d.Facts, err = fs.QueryAll(ctx, userID); err != nil {
		return nil, fmt.Errorf("load facts: %w", err)
	}
	if d.Attempts, err = fs.ListAttempts(ctx, userID, store.AttemptQuery{}); err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	if as != nil {
		if d.Additions, err = as.QueryAdditionFacts(ctx, userID, store.AdditionQuery{}); err != nil {
			return nil, fmt.Errorf("load addition facts: %w", err)
		}
	}
	return &d, nil
}

// Workbook lays d out on three sheets with a header row each.
func Workbook(d *Data) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetFacts)
	for _, name := range []string{SheetAttempts, SheetAddition} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	rows := map[string][][]any{
		SheetFacts:    {factHeader},
		SheetAttempts: {attemptHeader},
		SheetAddition: {additionHeader},
	}
	for _, r := range d.Facts {
		rows[SheetFacts] = append(rows[SheetFacts], factRow(r))
	}
	for _, a := range d.Attempts {
		rows[SheetAttempts] = append(rows[SheetAttempts], attemptRow(a))
	}
	for _, r := range d.Additions {
		rows[SheetAddition] = append(rows[SheetAddition], additionRow(r))
	}

	for sheet, sheetRows := range rows {
		if err := writeRows(f, sheet, sheetRows); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// WriteFile saves the workbook for d at path.
func WriteFile(path string, d *Data) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// Write streams the workbook for d to w.
func Write(w io.Writer, d *Data) error {
	f, err := Workbook(d)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func factRow(r facts.Record) []any {
	return []any{
		r.FactKey, r.TotalAttempts, r.CorrectAttempts, round2(r.Accuracy()),
		round2(r.AverageResponseTimeSeconds()), optInt64(r.FastestResponseMs), optInt64(r.SlowestResponseMs),
		r.RepetitionNumber, r.EasinessFactor, r.IntervalDays,
		optTime(r.NextReviewDate), optTime(r.LastAttempted),
	}
}

func attemptRow(a facts.Attempt) []any {
	var answer any = ""
	if a.UserAnswer != nil {
		answer = *a.UserAnswer
	}
	return []any{
		a.Sequence, a.FactKey, answer, a.CorrectAnswer, a.IsCorrect,
		a.ResponseTimeMs, a.IncorrectAttemptsInSession, int(a.Grade),
		a.AttemptedAt.UTC().Format(time.RFC3339),
	}
}

func additionRow(r facts.AdditionRecord) []any {
	return []any{
		r.FactKey, r.TotalAttempts, r.CorrectAttempts, round2(r.Accuracy()),
		round2(r.AverageResponseTimeSeconds()), string(r.Level), optTime(r.LastAttempted),
	}
}

func optInt64(v *int64) any {
	if v == nil {
		return ""
	}
	return *v
}

func optTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
