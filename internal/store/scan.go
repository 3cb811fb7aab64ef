package store

import (
	"database/sql"
	"time"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/mastery"
	"github.com/abhisek/mathfacts/internal/spacedrep"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// statsColumns scans the shared statistics columns.
type statsColumns struct {
	total, correct   int
	totalMs          int64
	fastest, slowest sql.NullInt64
	last             sql.NullTime
}

func (c statsColumns) stats() mastery.Stats {
	return mastery.Stats{
		TotalAttempts:       c.total,
		CorrectAttempts:     c.correct,
		TotalResponseTimeMs: c.totalMs,
		FastestResponseMs:   fromNullInt64(c.fastest),
		SlowestResponseMs:   fromNullInt64(c.slowest),
		LastAttempted:       fromNullTime(c.last),
	}
}

func scanFactRecord(row rowScanner) (facts.Record, error) {
	var (
		r                      facts.Record
		st                     statsColumns
		next, created, updated sql.NullTime
		rep, interval          int
		ef                     float64
	)
	err := row.Scan(
		&r.ID, &r.UserID, &r.FactKey,
		&st.total, &st.correct, &st.totalMs, &st.fastest, &st.slowest, &st.last,
		&rep, &ef, &interval, &next,
		&created, &updated,
	)
	if err != nil {
		return facts.Record{}, err
	}
	r.Stats = st.stats()
	r.State = spacedrep.State{
		RepetitionNumber: rep,
		EasinessFactor:   ef,
		IntervalDays:     interval,
		NextReviewDate:   fromNullTime(next),
	}
	r.CreatedAt = fromNullTime(created)
	r.UpdatedAt = fromNullTime(updated)
	return r, nil
}

func factRecordValues(r facts.Record) []any {
	return []any{
		r.ID, r.UserID, r.FactKey,
		r.TotalAttempts, r.CorrectAttempts, r.TotalResponseTimeMs,
		toNullInt64(r.FastestResponseMs), toNullInt64(r.SlowestResponseMs), toNullTime(r.LastAttempted),
		r.RepetitionNumber, r.EasinessFactor, r.IntervalDays, toNullTime(r.NextReviewDate),
		toNullTime(r.CreatedAt), toNullTime(r.UpdatedAt),
	}
}

func scanAttempt(row rowScanner) (facts.Attempt, error) {
	var (
		a      facts.Attempt
		answer sql.NullInt64
		grade  int
	)
	err := row.Scan(
		&a.ID, &a.Sequence, &a.UserID, &a.FactKey, &a.Operand1, &a.Operand2,
		&answer, &a.CorrectAnswer, &a.IsCorrect, &a.ResponseTimeMs,
		&a.IncorrectAttemptsInSession, &grade, &a.AttemptedAt,
	)
	if err != nil {
		return facts.Attempt{}, err
	}
	if answer.Valid {
		v := int(answer.Int64)
		a.UserAnswer = &v
	}
	a.Grade = spacedrep.Grade(grade)
	a.AttemptedAt = a.AttemptedAt.UTC()
	return a, nil
}

func attemptValues(a facts.Attempt) []any {
	var answer sql.NullInt64
	if a.UserAnswer != nil {
		answer = sql.NullInt64{Int64: int64(*a.UserAnswer), Valid: true}
	}
	return []any{
		a.ID, a.Sequence, a.UserID, a.FactKey, a.Operand1, a.Operand2,
		answer, a.CorrectAnswer, a.IsCorrect, a.ResponseTimeMs,
		a.IncorrectAttemptsInSession, int(a.Grade), a.AttemptedAt.UTC(),
	}
}

func scanAdditionRecord(row rowScanner) (facts.AdditionRecord, error) {
	var (
		r                facts.AdditionRecord
		st               statsColumns
		level            string
		created, updated sql.NullTime
	)
	err := row.Scan(
		&r.ID, &r.UserID, &r.FactKey,
		&st.total, &st.correct, &st.totalMs, &st.fastest, &st.slowest, &st.last,
		&level, &created, &updated,
	)
	if err != nil {
		return facts.AdditionRecord{}, err
	}
	r.Stats = st.stats()
	if r.Level, err = mastery.ParseLevel(level); err != nil {
		return facts.AdditionRecord{}, err
	}
	r.CreatedAt = fromNullTime(created)
	r.UpdatedAt = fromNullTime(updated)
	return r, nil
}

func additionRecordValues(r facts.AdditionRecord) []any {
	level := r.Level
	if level == "" {
		level = mastery.LevelLearning
	}
	return []any{
		r.ID, r.UserID, r.FactKey,
		r.TotalAttempts, r.CorrectAttempts, r.TotalResponseTimeMs,
		toNullInt64(r.FastestResponseMs), toNullInt64(r.SlowestResponseMs), toNullTime(r.LastAttempted),
		string(level), toNullTime(r.CreatedAt), toNullTime(r.UpdatedAt),
	}
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func fromNullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// fromNullTime normalizes to UTC; drivers hand back fixed-offset zones.
func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}
