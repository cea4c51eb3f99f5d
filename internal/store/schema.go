package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	tableProfiles    = "profiles"
	tableCompletions = "completion_records"
	tableLLMEvents   = "llm_request_events"
)

var (
	profilesColumns = []*schema.Column{
		{Name: "learner_id", Type: field.TypeString, Size: 128},
		{Name: "streak_count", Type: field.TypeInt, Default: 0},
		{Name: "total_points", Type: field.TypeInt, Default: 0},
		{Name: "last_lesson_date", Type: field.TypeString, Nullable: true, Size: 10},
		{Name: "updated_at", Type: field.TypeTime},
	}
	profilesTable = &schema.Table{
		Name:       tableProfiles,
		Columns:    profilesColumns,
		PrimaryKey: []*schema.Column{profilesColumns[0]},
	}

	completionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "learner_id", Type: field.TypeString, Size: 128},
		{Name: "topic_id", Type: field.TypeString, Size: 64},
		{Name: "day", Type: field.TypeString, Size: 10},
		{Name: "score", Type: field.TypeInt},
	}
	completionsTable = &schema.Table{
		Name:       tableCompletions,
		Columns:    completionsColumns,
		PrimaryKey: []*schema.Column{completionsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "completionrecord_learner_id_topic_id_day",
				Unique:  true,
				Columns: []*schema.Column{completionsColumns[1], completionsColumns[2], completionsColumns[3]},
			},
		},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	llmEventsTable = &schema.Table{
		Name:       tableLLMEvents,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{llmEventsColumns[1]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[4]}},
		},
	}

	tables = []*schema.Table{profilesTable, completionsTable, llmEventsTable}
)

// Migrate creates or upgrades the tables on drv. Both the SQLite store
// and the Postgres adapter use it.
func Migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
