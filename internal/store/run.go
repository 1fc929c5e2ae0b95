package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"
)

// runRepo implements RunRepo. Steps live in their own table and are
// removed with their run by the foreign-key cascade.
type runRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

var runColumns = []string{
	"id", "sequence", "created_at", "problem", "category", "prompt",
	"raw_response", "outcome", "failure", "model", "input_tokens",
	"output_tokens", "latency_ms", "step_count",
}

type runRow struct {
	ID           string `db:"id"`
	Sequence     int64  `db:"sequence"`
	CreatedAt    int64  `db:"created_at"`
	Problem      string `db:"problem"`
	Category     string `db:"category"`
	Prompt       string `db:"prompt"`
	RawResponse  string `db:"raw_response"`
	Outcome      string `db:"outcome"`
	Failure      string `db:"failure"`
	Model        string `db:"model"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	LatencyMs    int64  `db:"latency_ms"`
	StepCount    int    `db:"step_count"`
}

func (r runRow) toRecord() RunRecord {
	return RunRecord{
		ID:           r.ID,
		Sequence:     r.Sequence,
		CreatedAt:    time.UnixMilli(r.CreatedAt).UTC(),
		Problem:      r.Problem,
		Category:     r.Category,
		Prompt:       r.Prompt,
		RawResponse:  r.RawResponse,
		Outcome:      r.Outcome,
		Failure:      r.Failure,
		Model:        r.Model,
		InputTokens:  r.InputTokens,
		OutputTokens: r.OutputTokens,
		LatencyMs:    r.LatencyMs,
		StepCount:    r.StepCount,
	}
}

func (r *runRepo) SaveRun(ctx context.Context, run *RunRecord) error {
	if run.ID == "" {
		return errors.New("save run: missing id")
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	run.Sequence = seqNum
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.StepCount = len(run.Steps)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(tableReasoningRuns).
		Columns(runColumns...).
		Values(
			run.ID,
			run.Sequence,
			run.CreatedAt.UnixMilli(),
			run.Problem,
			run.Category,
			run.Prompt,
			run.RawResponse,
			run.Outcome,
			run.Failure,
			run.Model,
			run.InputTokens,
			run.OutputTokens,
			run.LatencyMs,
			run.StepCount,
		).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	if len(run.Steps) > 0 {
		ins := entsql.Dialect(dialect.SQLite).
			Insert(tableReasoningSteps).
			Columns("run_id", "ordinal", "content", "kind")
		for _, st := range run.Steps {
			ins.Values(run.ID, st.Ordinal, st.Content, st.Kind)
		}
		query, args := ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save run steps: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

func (r *runRepo) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(runColumns...).
		From(entsql.Table(tableReasoningRuns)).
		Where(entsql.EQ("id", id)).
		Query()

	var row runRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get run: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Select("ordinal", "content", "kind").
		From(entsql.Table(tableReasoningSteps)).
		Where(entsql.EQ("run_id", id)).
		OrderBy(entsql.Asc("ordinal")).
		Query()

	steps := []StepRecord{}
	if err := r.db.SelectContext(ctx, &steps, query, args...); err != nil {
		return nil, fmt.Errorf("get run steps: %w", err)
	}

	rec := row.toRecord()
	rec.Steps = steps
	return &rec, nil
}

func (r *runRepo) ListRuns(ctx context.Context, q RunQuery) ([]RunRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(runColumns...).
		From(entsql.Table(tableReasoningRuns)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, q.QueryOpts, "created_at")
	if q.Category != "" {
		sel.Where(entsql.EQ("category", q.Category))
	}

	query, args := sel.Query()
	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	out := make([]RunRecord, len(rows))
	for i, row := range rows {
		out[i] = row.toRecord()
	}
	return out, nil
}

func (r *runRepo) DeleteRun(ctx context.Context, id string) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Delete(tableReasoningRuns).
		Where(entsql.EQ("id", id)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *runRepo) StepKindTotals(ctx context.Context) ([]KindTotal, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("kind", entsql.As(entsql.Count("*"), "count")).
		From(entsql.Table(tableReasoningSteps)).
		GroupBy("kind").
		OrderBy(entsql.Desc("count"), entsql.Asc("kind")).
		Query()

	var out []KindTotal
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("query step kind totals: %w", err)
	}
	return out, nil
}

func (r *runRepo) CategoryTotals(ctx context.Context) ([]CategoryTotal, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"category",
			entsql.As(entsql.Count("*"), "runs"),
			entsql.As(entsql.Sum("step_count"), "steps"),
			entsql.As("CAST(AVG(`latency_ms`) AS INTEGER)", "avg_latency_ms"),
		).
		From(entsql.Table(tableReasoningRuns)).
		GroupBy("category").
		OrderBy(entsql.Desc("runs"), entsql.Asc("category")).
		Query()

	var out []CategoryTotal
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	return out, nil
}
