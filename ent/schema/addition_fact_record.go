package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AdditionFactRecord tracks a fact in table-practice mode.
type AdditionFactRecord struct {
	ent.Schema
}

func (AdditionFactRecord) Mixin() []ent.Mixin {
	return []ent.Mixin{StatsMixin{}, TimeMixin{}}
}

func (AdditionFactRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable(),
		field.String("user_id").
			NotEmpty().
			Immutable(),
		field.String("fact_key").
			NotEmpty().
			Immutable(),
		field.String("mastery_level").
			Default("learning").
			Comment("learning, practicing or mastered"),
	}
}

func (AdditionFactRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "fact_key").Unique(),
		index.Fields("user_id", "mastery_level"),
	}
}
