package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AttemptRecord is one immutable entry of the attempt log.
type AttemptRecord struct {
	ent.Schema
}

func (AttemptRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable(),
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Monotonically increasing global sequence number"),
		field.String("user_id").
			NotEmpty().
			Immutable(),
		field.String("fact_key").
			NotEmpty().
			Immutable(),
		field.Int("operand1").
			Immutable(),
		field.Int("operand2").
			Immutable(),
		field.Int("user_answer").
			Optional().
			Nillable().
			Immutable().
			Comment("Absent when the learner skipped"),
		field.Int("correct_answer").
			Immutable(),
		field.Bool("is_correct").
			Immutable(),
		field.Int64("response_time_ms").
			NonNegative().
			Immutable(),
		field.Int("incorrect_attempts_in_session").
			NonNegative().
			Default(0).
			Immutable(),
		field.Int("sm2_grade").
			Range(0, 5).
			Immutable(),
		field.Time("attempted_at").
			Default(time.Now).
			Immutable().
			Comment("UTC time of the answer"),
	}
}

func (AttemptRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "fact_key", "sequence"),
		index.Fields("user_id", "sequence"),
	}
}
