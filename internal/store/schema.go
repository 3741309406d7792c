package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Every event row carries the global sequence and a unix-millisecond
// timestamp after its id.
func eventColumns(cols ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
	}, cols...)
}

func eventTable(name string, cols []*schema.Column, indexed ...string) *schema.Table {
	t := &schema.Table{Name: name, Columns: cols, PrimaryKey: cols[:1]}
	for _, c := range indexed {
		col := columnByName(cols, c)
		if col == nil {
			panic(fmt.Sprintf("store: table %s has no column %s", name, c))
		}
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    fmt.Sprintf("idx_%s_%s", name, c),
			Columns: []*schema.Column{col},
		})
	}
	return t
}

func columnByName(cols []*schema.Column, name string) *schema.Column {
	for _, c := range cols {
		if c.Name == name {
			return c
		}
	}
	return nil
}

var (
	taskEventsTable = eventTable("task_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "task_id", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "task_text", Type: field.TypeString},
		&schema.Column{Name: "operand_a", Type: field.TypeString},
		&schema.Column{Name: "operand_b", Type: field.TypeString},
		&schema.Column{Name: "result", Type: field.TypeString},
		&schema.Column{Name: "multiplier", Type: field.TypeInt},
	), "task_id", "mode")

	attemptEventsTable = eventTable("attempt_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "task_id", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "answer", Type: field.TypeString},
		&schema.Column{Name: "state", Type: field.TypeString},
		&schema.Column{Name: "accepted", Type: field.TypeBool},
		&schema.Column{Name: "edits", Type: field.TypeInt},
	), "task_id")

	hintEventsTable = eventTable("hint_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "task_id", Type: field.TypeString},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "state", Type: field.TypeString},
		&schema.Column{Name: "hint", Type: field.TypeString},
		&schema.Column{Name: "source", Type: field.TypeString},
	), "task_id")

	sessionEventsTable = eventTable("session_events", eventColumns(
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "preset", Type: field.TypeString},
		&schema.Column{Name: "tasks", Type: field.TypeInt},
		&schema.Column{Name: "solved", Type: field.TypeInt},
		&schema.Column{Name: "hints", Type: field.TypeInt},
		&schema.Column{Name: "duration_secs", Type: field.TypeInt},
	))

	llmRequestEventsTable = eventTable("llm_request_events", eventColumns(
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString},
		&schema.Column{Name: "request_body", Type: field.TypeString},
		&schema.Column{Name: "response_body", Type: field.TypeString},
	))

	globalSequenceColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt},
		{Name: "next_val", Type: field.TypeInt64},
	}
	globalSequenceTable = &schema.Table{
		Name:       "global_sequence",
		Columns:    globalSequenceColumns,
		PrimaryKey: globalSequenceColumns[:1],
	}

	// eventTables lists every event table, in creation order.
	eventTables = []*schema.Table{
		taskEventsTable,
		attemptEventsTable,
		hintEventsTable,
		sessionEventsTable,
		llmRequestEventsTable,
	}
)

// migrate creates missing tables and indexes.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	tables := append([]*schema.Table{globalSequenceTable}, eventTables...)
	if err := m.Create(ctx, tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
