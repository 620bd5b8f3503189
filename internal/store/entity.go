package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// Entity is one row of the kind/id state store.
type Entity struct {
	Kind      string
	ID        string
	State     []byte
	Version   int64
	UpdatedAt time.Time
}

// EntityRepo is a get/set state contract keyed by kind and id. Each Put
// bumps the version.
type EntityRepo interface {
	// Get returns the entity, or ErrNotFound.
	Get(ctx context.Context, kind, id string) (*Entity, error)

	// Put stores state and returns the new version.
	Put(ctx context.Context, kind, id string, state []byte) (int64, error)

	// Delete removes the entity. Deleting a missing entity is not an error.
	Delete(ctx context.Context, kind, id string) error

	// List returns the entities of a kind ordered by id.
	List(ctx context.Context, kind string) ([]Entity, error)
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type entityRepo struct {
	s *Store
}

func (r *entityRepo) Get(ctx context.Context, kind, id string) (*Entity, error) {
	return getEntity(ctx, r.s.db, kind, id)
}

func (r *entityRepo) Put(ctx context.Context, kind, id string, state []byte) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var version int64
	cur, err := getEntity(ctx, tx, kind, id)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return 0, err
	default:
		version = cur.Version
	}

	version++
	if err := putEntity(ctx, tx, kind, id, state, version, time.Now()); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return version, nil
}

func (r *entityRepo) Delete(ctx context.Context, kind, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	query, args := builder().Delete(tableEntities).
		Where(entsql.And(entsql.EQ("kind", kind), entsql.EQ("id", id))).
		Query()
	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %s/%s: %w", kind, id, err)
	}
	return nil
}

func (r *entityRepo) List(ctx context.Context, kind string) ([]Entity, error) {
	query, args := builder().
		Select("kind", "id", "state", "version", "updated_at").
		From(entsql.Table(tableEntities)).
		Where(entsql.EQ("kind", kind)).
		OrderBy("id").
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer rows.Close()

	var out []Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// mutate runs a read-modify-write cycle on one entity inside a transaction.
// fn receives nil state when the entity does not exist yet.
func (r *entityRepo) mutate(ctx context.Context, kind, id string, fn func(state []byte) ([]byte, error)) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx, err := r.s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	var (
		state   []byte
		version int64
	)
	cur, err := getEntity(ctx, tx, kind, id)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return 0, err
	default:
		state, version = cur.State, cur.Version
	}

	next, err := fn(state)
	if err != nil {
		return 0, err
	}

	version++
	if err := putEntity(ctx, tx, kind, id, next, version, time.Now()); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return version, nil
}

func getEntity(ctx context.Context, q execer, kind, id string) (*Entity, error) {
	query, args := builder().
		Select("kind", "id", "state", "version", "updated_at").
		From(entsql.Table(tableEntities)).
		Where(entsql.And(entsql.EQ("kind", kind), entsql.EQ("id", id))).
		Query()

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", kind, id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get %s/%s: %w", kind, id, err)
		}
		return nil, fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
	}
	return scanEntity(rows)
}

func putEntity(ctx context.Context, q execer, kind, id string, state []byte, version int64, now time.Time) error {
	query, args := builder().Insert(tableEntities).
		Columns("kind", "id", "state", "version", "updated_at").
		Values(kind, id, string(state), version, now.UnixMilli()).
		OnConflict(entsql.ConflictColumns("kind", "id"), entsql.ResolveWithNewValues()).
		Query()

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %s/%s: %w", kind, id, err)
	}
	return nil
}

func scanEntity(rows *sql.Rows) (*Entity, error) {
	var (
		e       Entity
		state   string
		updated int64
	)
	if err := rows.Scan(&e.Kind, &e.ID, &state, &e.Version, &updated); err != nil {
		return nil, fmt.Errorf("scan entity: %w", err)
	}
	e.State = []byte(state)
	e.UpdatedAt = time.UnixMilli(updated)
	return &e, nil
}
