package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
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

func TestWALOnFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fractiz.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("PRAGMA journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if n <= last {
			t.Fatalf("sequence %d after %d", n, last)
		}
		last = n
	}
}

func seedTasks(t *testing.T, repo EventRepo) {
	t.Helper()
	ctx := context.Background()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	must(repo.AppendTask(ctx, TaskEventData{SessionID: "s1", TaskID: "t1", Mode: "add", TaskText: "2/3 + 3/4 = ?", OperandA: "2/3", OperandB: "3/4", Result: "17/12"}))
	must(repo.AppendAttempt(ctx, AttemptEventData{SessionID: "s1", TaskID: "t1", Mode: "add", Answer: "8/12 + 8/12", State: "wrong_sum", Edits: 3}))
	must(repo.AppendHint(ctx, HintEventData{SessionID: "s1", TaskID: "t1", Mode: "add", State: "wrong_sum", Hint: "Check the numerators.", Source: "builtin"}))
	must(repo.AppendAttempt(ctx, AttemptEventData{SessionID: "s1", TaskID: "t1", Mode: "add", Answer: "8/12 + 9/12", State: "correct", Accepted: true, Edits: 4}))

	must(repo.AppendTask(ctx, TaskEventData{SessionID: "s1", TaskID: "t2", Mode: "add", TaskText: "1/2 + 1/3 = ?", OperandA: "1/2", OperandB: "1/3", Result: "5/6"}))

	must(repo.AppendTask(ctx, TaskEventData{SessionID: "s2", TaskID: "t3", Mode: "reduce", TaskText: "6/15 = ?", OperandA: "6/15", Result: "2/5", Multiplier: 3}))
	must(repo.AppendAttempt(ctx, AttemptEventData{SessionID: "s2", TaskID: "t3", Mode: "reduce", Answer: "2/5", State: "correct", Accepted: true, Edits: 2}))
}

func TestRecentTasks(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedTasks(t, repo)
	ctx := context.Background()

	all, err := repo.RecentTasks(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("recent tasks: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d tasks, want 3", len(all))
	}
	if all[0].TaskID != "t3" || all[2].TaskID != "t1" {
		t.Errorf("order = %s, %s, %s; want newest first", all[0].TaskID, all[1].TaskID, all[2].TaskID)
	}
	t1 := all[2]
	if !t1.Solved || t1.Attempts != 2 || t1.Hints != 1 {
		t.Errorf("t1 = %+v", t1)
	}
	if all[1].Solved {
		t.Error("t2 should be unsolved")
	}

	limited, err := repo.RecentTasks(ctx, QueryOpts{Limit: 1, Mode: "add"})
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].TaskID != "t2" {
		t.Errorf("limited = %+v", limited)
	}

	bySession, err := repo.RecentTasks(ctx, QueryOpts{SessionID: "s2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(bySession) != 1 || bySession[0].TaskID != "t3" {
		t.Errorf("by session = %+v", bySession)
	}
}

func TestModeStats(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedTasks(t, repo)

	stats, err := repo.ModeStats(context.Background())
	if err != nil {
		t.Fatalf("mode stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("got %d modes, want 2", len(stats))
	}
	add, reduce := stats[0], stats[1]
	if add.Mode != "add" || add.Tasks != 2 || add.Solved != 1 || add.Attempts != 2 || add.Hints != 1 {
		t.Errorf("add stats = %+v", add)
	}
	if reduce.Mode != "reduce" || reduce.Tasks != 1 || reduce.Solved != 1 {
		t.Errorf("reduce stats = %+v", reduce)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"hint", "hint", "explain"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      purpose,
			InputTokens:  10 * (i + 1),
			OutputTokens: 5,
			LatencyMs:    100,
			Success:      i != 2,
			RequestBody:  "[user]\nhelp",
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 || events[0].Purpose != "explain" || events[0].Success {
		t.Errorf("events = %+v", events)
	}

	e, err := repo.GetLLMEvent(ctx, events[1].ID)
	if err != nil || e == nil {
		t.Fatalf("get: %v, %v", e, err)
	}
	if e.RequestBody != "[user]\nhelp" || e.InputTokens != 20 {
		t.Errorf("event = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil || missing != nil {
		t.Errorf("missing event = %v, %v; want nil, nil", missing, err)
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byPurpose) != 2 || byPurpose[1].Purpose != "hint" || byPurpose[1].Calls != 2 || byPurpose[1].InputTokens != 30 {
		t.Errorf("by purpose = %+v", byPurpose)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(byModel) != 1 || byModel[0].Calls != 3 {
		t.Errorf("by model = %+v", byModel)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	seedTasks(t, repo)
	ctx := context.Background()

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	tasks, err := repo.RecentTasks(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 0 {
		t.Errorf("%d tasks after reset", len(tasks))
	}
	n, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("sequence after reset = %d, want 1", n)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("FRACTIZ_DB", p)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != p {
		t.Errorf("path = %q, want %q", got, p)
	}
	if _, err := os.Stat(filepath.Dir(p)); err != nil {
		t.Errorf("parent dir not created: %v", err)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FRACTIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "fractiz", "fractiz.db"); got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestMigrateCreatesSchema(t *testing.T) {
	s := openTestStore(t)

	want := []string{
		"global_sequence", "task_events", "attempt_events", "hint_events",
		"session_events", "llm_request_events", "idx_task_events_task_id",
		"idx_task_events_mode", "idx_attempt_events_task_id", "idx_hint_events_task_id",
	}
	for _, name := range want {
		var n int
		err := s.DB().QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE name = ?", name).Scan(&n)
		if err != nil {
			t.Fatalf("sqlite_master %s: %v", name, err)
		}
		if n != 1 {
			t.Errorf("%s missing from schema", name)
		}
	}
}

func TestReopenKeepsEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fractiz.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	seedTasks(t, s.EventRepo())
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	tasks, err := s.EventRepo().RecentTasks(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 3 {
		t.Errorf("got %d tasks after reopen, want 3", len(tasks))
	}
	n, err := s.seq.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 8 {
		t.Errorf("sequence after reopen = %d, want 8", n)
	}
}
