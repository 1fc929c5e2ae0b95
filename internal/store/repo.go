package store

import (
	"context"
	"time"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMEventQuery filters LLM events. An empty Purpose matches all.
type LLMEventQuery struct {
	QueryOpts
	Purpose string
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string `db:"purpose"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	AvgLatencyMs int64  `db:"avg_latency_ms"`
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string `db:"model"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, q LLMEventQuery) ([]LLMEvent, error)

	// GetLLMEvent returns a single event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// StepRecord is one persisted reasoning step.
type StepRecord struct {
	Ordinal int    `db:"ordinal"`
	Content string `db:"content"`
	Kind    string `db:"kind"`
}

// RunRecord is one persisted problem/answer/steps run.
type RunRecord struct {
	ID           string
	Sequence     int64
	CreatedAt    time.Time
	Problem      string
	Category     string
	Prompt       string
	RawResponse  string
	Outcome      string
	Failure      string
	Model        string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	StepCount    int

	// Steps is populated by GetRun only.
	Steps []StepRecord
}

// RunQuery filters runs. An empty Category matches all.
type RunQuery struct {
	QueryOpts
	Category string
}

// KindTotal is the number of stored steps of one kind.
type KindTotal struct {
	Kind  string `db:"kind"`
	Count int    `db:"count"`
}

// CategoryTotal summarizes stored runs of one category.
type CategoryTotal struct {
	Category     string `db:"category"`
	Runs         int    `db:"runs"`
	Steps        int    `db:"steps"`
	AvgLatencyMs int64  `db:"avg_latency_ms"`
}

// RunRepo persists reasoning runs and their steps.
type RunRepo interface {
	// SaveRun stores a run and its steps atomically. ID must be set;
	// Sequence is assigned by the store.
	SaveRun(ctx context.Context, run *RunRecord) error

	// GetRun returns a run with its steps or ErrNotFound.
	GetRun(ctx context.Context, id string) (*RunRecord, error)

	// ListRuns returns runs newest first, without steps.
	ListRuns(ctx context.Context, q RunQuery) ([]RunRecord, error)

	// DeleteRun removes a run and its steps. Returns ErrNotFound when
	// no run has the id.
	DeleteRun(ctx context.Context, id string) error

	// StepKindTotals counts stored steps per kind, most frequent first.
	StepKindTotals(ctx context.Context) ([]KindTotal, error)

	// CategoryTotals counts runs and steps per category.
	CategoryTotals(ctx context.Context) ([]CategoryTotal, error)
}
