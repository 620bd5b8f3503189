package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Event kinds stored in solve_events.
const (
	EventSolve = "solve"
	EventDrill = "drill"
)

// SolveEvent records one answered problem or one completed speed drill.
// For drills Num1 holds the number of correct answers and Num2 the number
// attempted.
type SolveEvent struct {
	Seq        int64
	StudentID  string
	Kind       string
	Topic      string
	Num1       int
	Num2       int
	Correct    bool
	Points     int
	ResponseMs int64
	HintsUsed  int
	Difficulty string
	CreatedAt  time.Time
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	After int64     // sequence > After
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
	Kind  string    // only events of this kind ("" = all)
}

// EventRepo provides append and query access to solve events.
type EventRepo interface {
	// AppendSolve records an event and returns its sequence number.
	AppendSolve(ctx context.Context, ev SolveEvent) (int64, error)

	// QuerySolves returns a student's events in ascending sequence order.
	QuerySolves(ctx context.Context, studentID string, opts QueryOpts) ([]SolveEvent, error)

	// RecentSolves returns the latest n events, newest first.
	RecentSolves(ctx context.Context, studentID string, n int) ([]SolveEvent, error)

	// DeleteSolves removes every event of a student.
	DeleteSolves(ctx context.Context, studentID string) error
}

type eventRepo struct {
	db execer
}

var solveColumns = []string{
	"seq", "student_id", "kind", "topic", "num1", "num2", "correct",
	"points", "response_ms", "hints_used", "difficulty", "created_at",
}

func (r *eventRepo) AppendSolve(ctx context.Context, ev SolveEvent) (int64, error) {
	if ev.Kind == "" {
		ev.Kind = EventSolve
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	query, args := builder().Insert(tableSolveEvents).
		Columns(solveColumns[1:]...).
		Values(ev.StudentID, ev.Kind, ev.Topic, ev.Num1, ev.Num2, boolToInt(ev.Correct),
			ev.Points, ev.ResponseMs, ev.HintsUsed, ev.Difficulty, ev.CreatedAt.UnixMilli()).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("save solve event: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("solve event id: %w", err)
	}
	return seq, nil
}

func (r *eventRepo) QuerySolves(ctx context.Context, studentID string, opts QueryOpts) ([]SolveEvent, error) {
	preds := []*entsql.Predicate{entsql.EQ("student_id", studentID)}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("seq", opts.After))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("created_at", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("created_at", opts.To.UnixMilli()))
	}
	if opts.Kind != "" {
		preds = append(preds, entsql.EQ("kind", opts.Kind))
	}

	sel := builder().Select(solveColumns...).
		From(entsql.Table(tableSolveEvents)).
		Where(entsql.And(preds...)).
		OrderBy("seq")
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return r.query(ctx, sel)
}

func (r *eventRepo) RecentSolves(ctx context.Context, studentID string, n int) ([]SolveEvent, error) {
	sel := builder().Select(solveColumns...).
		From(entsql.Table(tableSolveEvents)).
		Where(entsql.EQ("student_id", studentID)).
		OrderBy(entsql.Desc("seq"))
	if n > 0 {
		sel = sel.Limit(n)
	}
	return r.query(ctx, sel)
}

func (r *eventRepo) DeleteSolves(ctx context.Context, studentID string) error {
	query, args := builder().Delete(tableSolveEvents).
		Where(entsql.EQ("student_id", studentID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete solve events: %w", err)
	}
	return nil
}

func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector) ([]SolveEvent, error) {
	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query solve events: %w", err)
	}
	defer rows.Close()

	var out []SolveEvent
	for rows.Next() {
		var (
			ev      SolveEvent
			correct int
			created int64
		)
		if err := rows.Scan(&ev.Seq, &ev.StudentID, &ev.Kind, &ev.Topic, &ev.Num1, &ev.Num2,
			&correct, &ev.Points, &ev.ResponseMs, &ev.HintsUsed, &ev.Difficulty, &created); err != nil {
			return nil, fmt.Errorf("scan solve event: %w", err)
		}
		ev.Correct = correct != 0
		ev.CreatedAt = time.UnixMilli(created)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
