package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	factRecordsTable     = "fact_records"
	attemptRecordsTable  = "attempt_records"
	additionRecordsTable = "addition_fact_records"
	sequenceTable        = "global_sequence"
)

var (
	// FactRecordsColumns holds the columns for the "fact_records" table.
	FactRecordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "fact_key", Type: field.TypeString},
		{Name: "total_attempts", Type: field.TypeInt, Default: 0},
		{Name: "correct_attempts", Type: field.TypeInt, Default: 0},
		{Name: "total_response_time_ms", Type: field.TypeInt64, Default: 0},
		{Name: "fastest_response_ms", Type: field.TypeInt64, Nullable: true},
		{Name: "slowest_response_ms", Type: field.TypeInt64, Nullable: true},
		{Name: "last_attempted", Type: field.TypeTime, Nullable: true},
		{Name: "repetition_number", Type: field.TypeInt, Default: 0},
		{Name: "easiness_factor", Type: field.TypeFloat64, Default: 2.5},
		{Name: "interval_days", Type: field.TypeInt, Default: 1},
		{Name: "next_review_date", Type: field.TypeTime, Nullable: true},
		{Name: "created_at", Type: field.TypeTime, Nullable: true},
		{Name: "updated_at", Type: field.TypeTime, Nullable: true},
	}
	// FactRecordsTable holds the schema information for the "fact_records" table.
	FactRecordsTable = &schema.Table{
		Name:       factRecordsTable,
		Columns:    FactRecordsColumns,
		PrimaryKey: []*schema.Column{FactRecordsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "factrecord_user_id_fact_key",
				Unique:  true,
				Columns: []*schema.Column{FactRecordsColumns[1], FactRecordsColumns[2]},
			},
			{
				Name:    "factrecord_user_id_next_review_date",
				Unique:  false,
				Columns: []*schema.Column{FactRecordsColumns[1], FactRecordsColumns[12]},
			},
			{
				Name:    "factrecord_user_id_easiness_factor",
				Unique:  false,
				Columns: []*schema.Column{FactRecordsColumns[1], FactRecordsColumns[10]},
			},
		},
	}
	// AttemptRecordsColumns holds the columns for the "attempt_records" table.
	AttemptRecordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "user_id", Type: field.TypeString},
		{Name: "fact_key", Type: field.TypeString},
		{Name: "operand1", Type: field.TypeInt},
		{Name: "operand2", Type: field.TypeInt},
		{Name: "user_answer", Type: field.TypeInt, Nullable: true},
		{Name: "correct_answer", Type: field.TypeInt},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "response_time_ms", Type: field.TypeInt64},
		{Name: "incorrect_attempts_in_session", Type: field.TypeInt, Default: 0},
		{Name: "sm2_grade", Type: field.TypeInt},
		{Name: "attempted_at", Type: field.TypeTime},
	}
	// AttemptRecordsTable holds the schema information for the "attempt_records" table.
	AttemptRecordsTable = &schema.Table{
		Name:       attemptRecordsTable,
		Columns:    AttemptRecordsColumns,
		PrimaryKey: []*schema.Column{AttemptRecordsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attemptrecord_user_id_fact_key_sequence",
				Unique:  false,
				Columns: []*schema.Column{AttemptRecordsColumns[2], AttemptRecordsColumns[3], AttemptRecordsColumns[1]},
			},
			{
				Name:    "attemptrecord_user_id_sequence",
				Unique:  false,
				Columns: []*schema.Column{AttemptRecordsColumns[2], AttemptRecordsColumns[1]},
			},
		},
	}
	// AdditionFactRecordsColumns holds the columns for the "addition_fact_records" table.
	AdditionFactRecordsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "user_id", Type: field.TypeString},
		{Name: "fact_key", Type: field.TypeString},
		{Name: "total_attempts", Type: field.TypeInt, Default: 0},
		{Name: "correct_attempts", Type: field.TypeInt, Default: 0},
		{Name: "total_response_time_ms", Type: field.TypeInt64, Default: 0},
		{Name: "fastest_response_ms", Type: field.TypeInt64, Nullable: true},
		{Name: "slowest_response_ms", Type: field.TypeInt64, Nullable: true},
		{Name: "last_attempted", Type: field.TypeTime, Nullable: true},
		{Name: "mastery_level", Type: field.TypeString, Default: "learning"},
		{Name: "created_at", Type: field.TypeTime, Nullable: true},
		{Name: "updated_at", Type: field.TypeTime, Nullable: true},
	}
	// AdditionFactRecordsTable holds the schema information for the "addition_fact_records" table.
	AdditionFactRecordsTable = &schema.Table{
		Name:       additionRecordsTable,
		Columns:    AdditionFactRecordsColumns,
		PrimaryKey: []*schema.Column{AdditionFactRecordsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "additionfactrecord_user_id_fact_key",
				Unique:  true,
				Columns: []*schema.Column{AdditionFactRecordsColumns[1], AdditionFactRecordsColumns[2]},
			},
			{
				Name:    "additionfactrecord_user_id_mastery_level",
				Unique:  false,
				Columns: []*schema.Column{AdditionFactRecordsColumns[1], AdditionFactRecordsColumns[9]},
			},
		},
	}
	// GlobalSequenceColumns holds the columns for the "global_sequence" table.
	GlobalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64, Default: 1},
	}
	// GlobalSequenceTable holds the schema information for the "global_sequence" table.
	GlobalSequenceTable = &schema.Table{
		Name:       sequenceTable,
		Columns:    GlobalSequenceColumns,
		PrimaryKey: []*schema.Column{GlobalSequenceColumns[0]},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		FactRecordsTable,
		AttemptRecordsTable,
		AdditionFactRecordsTable,
		GlobalSequenceTable,
	}
)

func columnNames(cols []*schema.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
