package export

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/mathfacts/internal/facts"
	"github.com/abhisek/mathfacts/internal/spacedrep"
	"github.com/abhisek/mathfacts/internal/store"
)

var now = time.Date(2025, 3, 9, 8, 30, 0, 0, time.UTC)

func sampleData() *Data {
	rec := facts.NewRecord(facts.NewKey("u1", 8, 3), "r1", now)
	rec.Stats = rec.Stats.Record(true, 1500, now)
	rec.Stats = rec.Stats.Record(false, 4000, now)

	answer := 11
	attempt := facts.Attempt{
		ID: "a1", Sequence: 4, UserID: "u1", FactKey: "8+3", Operand1: 8, Operand2: 3,
		UserAnswer: &answer, CorrectAnswer: 11, IsCorrect: true, ResponseTimeMs: 1500,
		Grade: spacedrep.GradePerfect, AttemptedAt: now,
	}
	skipped := attempt
	skipped.ID, skipped.Sequence, skipped.UserAnswer, skipped.IsCorrect = "a2", 5, nil, false

	add := facts.NewAdditionRecord(facts.NewKey("u1", 2, 2), "x1", now).Track(true, 900, now)

	return &Data{
		Facts:     []facts.Record{rec},
		Attempts:  []facts.Attempt{attempt, skipped},
		Additions: []facts.AdditionRecord{add},
	}
}

func readBack(t *testing.T, d *Data) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbook_Sheets(t *testing.T) {
	f := readBack(t, &Data{})
	assert.Equal(t, []string{SheetFacts, SheetAttempts, SheetAddition}, f.GetSheetList())

	rows, err := f.GetRows(SheetFacts)
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, "fact_key", rows[0][0])
}

func TestWorkbook_Rows(t *testing.T) {
	f := readBack(t, sampleData())

	factsRows, err := f.GetRows(SheetFacts)
	require.NoError(t, err)
	require.Len(t, factsRows, 2)
	assert.Equal(t, []string{
		"8+3", "2", "1", "50", "1.5", "1500", "1500",
		"0", "2.5", "1", "2025-03-10T08:30:00Z", "2025-03-09T08:30:00Z",
	}, factsRows[1])

	attemptRows, err := f.GetRows(SheetAttempts)
	require.NoError(t, err)
	require.Len(t, attemptRows, 3)
	assert.Equal(t, "4", attemptRows[1][0])
	assert.Equal(t, "11", attemptRows[1][2])
	assert.Equal(t, "TRUE", attemptRows[1][4])
	assert.Equal(t, "5", attemptRows[1][7])
	assert.Equal(t, "", attemptRows[2][2], "skipped answer stays blank")
	assert.Equal(t, "FALSE", attemptRows[2][4])

	addRows, err := f.GetRows(SheetAddition)
	require.NoError(t, err)
	require.Len(t, addRows, 2)
	assert.Equal(t, []string{"2+2", "1", "1", "100", "0.9", "learning", "2025-03-09T08:30:00Z"}, addRows[1])
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.xlsx")
	require.NoError(t, WriteFile(path, sampleData()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(SheetAttempts)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestLoad_FromStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(store.DriverSQLite, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	d := sampleData()
	require.NoError(t, s.SaveSession(ctx, d.Facts, d.Attempts))
	require.NoError(t, s.UpsertAdditionFacts(ctx, d.Additions))

	got, err := Load(ctx, s, s, "u1")
	require.NoError(t, err)
	assert.Len(t, got.Facts, 1)
	assert.Len(t, got.Attempts, 2)
	assert.Len(t, got.Additions, 1)

	got, err = Load(ctx, s, nil, "u1")
	require.NoError(t, err)
	assert.Empty(t, got.Additions)
}
