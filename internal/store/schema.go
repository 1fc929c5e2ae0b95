package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names shared by the repositories.
const (
	tableLLMRequestEvents = "llm_request_events"
	tableReasoningRuns    = "reasoning_runs"
	tableReasoningSteps   = "reasoning_steps"
)

var (
	// LLMRequestEventsColumns holds the columns for the "llm_request_events" table.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Default: ""},
		{Name: "response_body", Type: field.TypeString, Default: ""},
	}
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       tableLLMRequestEvents,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Columns: []*schema.Column{LLMRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LLMRequestEventsColumns[5]}},
			{Name: "llmrequestevent_model", Columns: []*schema.Column{LLMRequestEventsColumns[4]}},
		},
	}

	// ReasoningRunsColumns holds the columns for the "reasoning_runs" table.
	ReasoningRunsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "problem", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "prompt", Type: field.TypeString, Default: ""},
		{Name: "raw_response", Type: field.TypeString, Default: ""},
		{Name: "outcome", Type: field.TypeString},
		{Name: "failure", Type: field.TypeString, Default: ""},
		{Name: "model", Type: field.TypeString, Default: ""},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "step_count", Type: field.TypeInt, Default: 0},
	}
	// ReasoningRunsTable holds the schema information for the "reasoning_runs" table.
	ReasoningRunsTable = &schema.Table{
		Name:       tableReasoningRuns,
		Columns:    ReasoningRunsColumns,
		PrimaryKey: []*schema.Column{ReasoningRunsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "reasoningrun_created_at", Columns: []*schema.Column{ReasoningRunsColumns[2]}},
			{Name: "reasoningrun_category", Columns: []*schema.Column{ReasoningRunsColumns[4]}},
		},
	}

	// ReasoningStepsColumns holds the columns for the "reasoning_steps" table.
	ReasoningStepsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "ordinal", Type: field.TypeInt},
		{Name: "content", Type: field.TypeString},
		{Name: "kind", Type: field.TypeString},
		{Name: "run_id", Type: field.TypeString},
	}
	// ReasoningStepsTable holds the schema information for the "reasoning_steps" table.
	ReasoningStepsTable = &schema.Table{
		Name:       tableReasoningSteps,
		Columns:    ReasoningStepsColumns,
		PrimaryKey: []*schema.Column{ReasoningStepsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "reasoning_steps_reasoning_runs_steps",
				Columns:    []*schema.Column{ReasoningStepsColumns[4]},
				RefColumns: []*schema.Column{ReasoningRunsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{Name: "reasoningstep_run_id_ordinal", Unique: true, Columns: []*schema.Column{ReasoningStepsColumns[4], ReasoningStepsColumns[1]}},
			{Name: "reasoningstep_kind", Columns: []*schema.Column{ReasoningStepsColumns[3]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		LLMRequestEventsTable,
		ReasoningRunsTable,
		ReasoningStepsTable,
	}
)

func init() {
	ReasoningStepsTable.ForeignKeys[0].RefTable = ReasoningRunsTable
}

// migrate creates or extends all tables. It runs in append-only mode:
// columns and indexes are added, never dropped.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, Tables...)
}
