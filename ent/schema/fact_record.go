package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// FactRecord is the per-(user, fact) performance and SM-2 schedule.
type FactRecord struct {
	ent.Schema
}

func (FactRecord) Mixin() []ent.Mixin {
	return []ent.Mixin{StatsMixin{}, TimeMixin{}}
}

func (FactRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable(),
		field.String("user_id").
			NotEmpty().
			Immutable(),
		field.String("fact_key").
			NotEmpty().
			Immutable().
			Comment("Operands in presentation order, e.g. 8+3"),
		field.Int("repetition_number").
			NonNegative().
			Default(0),
		field.Float("easiness_factor").
			Default(2.5).
			Min(1.3).
			Max(4.0),
		field.Int("interval_days").
			Positive().
			Default(1),
		field.Time("next_review_date").
			Optional().
			Nillable(),
	}
}

func (FactRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "fact_key").Unique(),
		index.Fields("user_id", "next_review_date"),
		index.Fields("user_id", "easiness_factor"),
	}
}
