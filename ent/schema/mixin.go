package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/mixin"
)

// StatsMixin provides the running performance statistics shared by SM-2
// and table-practice records. Response-time fields cover correct answers
// only.
type StatsMixin struct {
	mixin.Schema
}

func (StatsMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int("total_attempts").
			NonNegative().
			Default(0),
		field.Int("correct_attempts").
			NonNegative().
			Default(0).
			Comment("Never exceeds total_attempts"),
		field.Int64("total_response_time_ms").
			NonNegative().
			Default(0),
		field.Int64("fastest_response_ms").
			Optional().
			Nillable(),
		field.Int64("slowest_response_ms").
			Optional().
			Nillable(),
		field.Time("last_attempted").
			Optional().
			Nillable().
			Comment("UTC time of the latest attempt"),
	}
}

// TimeMixin provides created_at and updated_at.
type TimeMixin struct {
	mixin.Schema
}

func (TimeMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Time("created_at").
			Optional().
			Nillable().
			Immutable(),
		field.Time("updated_at").
			Optional().
			Nillable(),
	}
}
