package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by TestOpen_FileDB.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_FileDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nn.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	// Reopening an existing database must not fail on the schema.
	s2, err := Open(path)
	require.NoError(t, err)
	s2.Close()
}

func TestEntities_PutGetVersion(t *testing.T) {
	s := openTestStore(t)
	repo := s.Entities()
	ctx := context.Background()

	_, err := repo.Get(ctx, "thing", "a")
	require.ErrorIs(t, err, ErrNotFound)

	v, err := repo.Put(ctx, "thing", "a", []byte(`{"n":1}`))
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = repo.Put(ctx, "thing", "a", []byte(`{"n":2}`))
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)

	e, err := repo.Get(ctx, "thing", "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(e.State))
	assert.Equal(t, int64(2), e.Version)

	// Same id under another kind is a different entity.
	_, err = repo.Get(ctx, "other", "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntities_ListAndDelete(t *testing.T) {
	s := openTestStore(t)
	repo := s.Entities()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		_, err := repo.Put(ctx, "k", id, []byte(`{}`))
		require.NoError(t, err)
	}

	list, err := repo.List(ctx, "k")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "c", list[2].ID)

	require.NoError(t, repo.Delete(ctx, "k", "b"))
	require.NoError(t, repo.Delete(ctx, "k", "missing"))

	list, err = repo.List(ctx, "k")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestStats_GetOrCreateDefaults(t *testing.T) {
	s := openTestStore(t)
	repo := s.Stats()
	ctx := context.Background()

	_, err := repo.Get(ctx, "kid-1")
	require.ErrorIs(t, err, ErrNotFound)

	st, err := repo.GetOrCreate(ctx, "kid-1")
	require.NoError(t, err)
	assert.Equal(t, "kid-1", st.ID)
	assert.Zero(t, st.TotalScore)
	assert.Nil(t, st.TopicScores)
	assert.Equal(t, "medium", st.Difficulty)
	assert.NotNil(t, st.Achievements)
	assert.False(t, st.CreatedAt.IsZero())

	again, err := repo.GetOrCreate(ctx, "kid-1")
	require.NoError(t, err)
	assert.Equal(t, st.CreatedAt.UnixMilli(), again.CreatedAt.UnixMilli())
}

func TestStats_Mutate(t *testing.T) {
	s := openTestStore(t)
	repo := s.Stats()
	ctx := context.Background()

	st, err := repo.Mutate(ctx, "kid", func(st *StudentStats) error {
		st.AddTopicScore("addition", 10)
		st.Achievements = append(st.Achievements, "first-steps")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 10, st.TotalScore)

	got, err := repo.Get(ctx, "kid")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"addition": 10}, got.TopicScores)
	assert.True(t, got.HasAchievement("first-steps"))

	// A failing mutation leaves the stored document untouched.
	boom := errors.New("boom")
	_, err = repo.Mutate(ctx, "kid", func(st *StudentStats) error {
		st.TotalScore = 999
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err = repo.Get(ctx, "kid")
	require.NoError(t, err)
	assert.Equal(t, 10, got.TotalScore)
}

func TestStats_MutateConcurrent(t *testing.T) {
	s := openTestStore(t)
	repo := s.Stats()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Mutate(ctx, "kid", func(st *StudentStats) error {
				st.AddTopicScore("addition", 1)
				return nil
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, "kid")
	require.NoError(t, err)
	assert.Equal(t, n, got.TotalScore)
}

func TestStats_DeleteAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.Stats()
	ctx := context.Background()

	for _, id := range []string{"b", "a"} {
		_, err := repo.GetOrCreate(ctx, id)
		require.NoError(t, err)
	}
	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)

	require.NoError(t, repo.Delete(ctx, "a"))
	_, err = repo.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentStats_Helpers(t *testing.T) {
	var nilStats *StudentStats
	assert.Zero(t, nilStats.Accuracy())
	assert.False(t, nilStats.HasAchievement("x"))
	_, ok := nilStats.TopicScore("addition")
	assert.False(t, ok)

	st := NewStudentStats("id", time.Now())
	st.ProblemsSolved = 4
	st.CorrectAnswers = 3
	assert.InDelta(t, 0.75, st.Accuracy(), 1e-9)

	st.AddTopicScore("subtraction", 5)
	c := st.Clone()
	c.TopicScores["subtraction"] = 50
	c.Achievements = append(c.Achievements, "x")
	assert.Equal(t, 5, st.TopicScores["subtraction"])
	assert.Empty(t, st.Achievements)
}

func TestEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 5 {
		_, err := events.AppendSolve(ctx, SolveEvent{
			StudentID: "kid",
			Topic:     "addition",
			Num1:      i,
			Num2:      1,
			Correct:   i%2 == 0,
			Points:    10,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}
	_, err := events.AppendSolve(ctx, SolveEvent{StudentID: "kid", Kind: EventDrill, Topic: "addition", Num1: 8, Num2: 10, CreatedAt: base})
	require.NoError(t, err)
	_, err = events.AppendSolve(ctx, SolveEvent{StudentID: "other", Topic: "addition", CreatedAt: base})
	require.NoError(t, err)

	all, err := events.QuerySolves(ctx, "kid", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, EventSolve, all[0].Kind)
	assert.True(t, all[0].Correct)
	assert.False(t, all[1].Correct)
	assert.True(t, all[0].CreatedAt.Equal(base))

	solves, err := events.QuerySolves(ctx, "kid", QueryOpts{Kind: EventSolve, From: base.Add(time.Hour), To: base.Add(3 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, solves, 3)

	after, err := events.QuerySolves(ctx, "kid", QueryOpts{After: all[3].Seq, Limit: 1})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, all[4].Seq, after[0].Seq)

	recent, err := events.RecentSolves(ctx, "kid", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, EventDrill, recent[0].Kind)

	require.NoError(t, events.DeleteSolves(ctx, "kid"))
	all, err = events.QuerySolves(ctx, "kid", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, all)

	others, err := events.QuerySolves(ctx, "other", QueryOpts{})
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestResolveDBPath(t *testing.T) {
	dir := t.TempDir()

	explicit := filepath.Join(dir, "explicit", "x.db")
	got, err := ResolveDBPath(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
	assert.DirExists(t, filepath.Dir(explicit))

	envPath := filepath.Join(dir, "env", "y.db")
	t.Setenv("NUMBERNEXUS_DB", envPath)
	got, err = ResolveDBPath("")
	require.NoError(t, err)
	assert.Equal(t, envPath, got)

	t.Setenv("NUMBERNEXUS_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err = ResolveDBPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "numbernexus", "numbernexus.db"), got)
}
