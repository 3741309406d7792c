package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendTask(ctx context.Context, data TaskEventData) error {
	err := r.insert(ctx, taskEventsTable.Name,
		[]string{"session_id", "task_id", "mode", "task_text", "operand_a", "operand_b", "result", "multiplier"},
		data.SessionID, data.TaskID, data.Mode, data.TaskText,
		data.OperandA, data.OperandB, data.Result, data.Multiplier)
	if err != nil {
		return fmt.Errorf("save task event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	err := r.insert(ctx, attemptEventsTable.Name,
		[]string{"session_id", "task_id", "mode", "answer", "state", "accepted", "edits"},
		data.SessionID, data.TaskID, data.Mode, data.Answer, data.State,
		data.Accepted, data.Edits)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendHint(ctx context.Context, data HintEventData) error {
	err := r.insert(ctx, hintEventsTable.Name,
		[]string{"session_id", "task_id", "mode", "state", "hint", "source"},
		data.SessionID, data.TaskID, data.Mode, data.State, data.Hint, data.Source)
	if err != nil {
		return fmt.Errorf("save hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable.Name,
		[]string{"session_id", "action", "preset", "tasks", "solved", "hints", "duration_secs"},
		data.SessionID, data.Action, data.Preset, data.Tasks, data.Solved,
		data.Hints, data.DurationSecs)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentTasks(ctx context.Context, opts QueryOpts) ([]TaskRecord, error) {
	t := entsql.Table(taskEventsTable.Name)
	sel := sqlite.Select(t.C("id"), t.C("timestamp"), t.C("session_id"), t.C("task_id"),
		t.C("mode"), t.C("task_text"), t.C("result")).
		From(t).
		OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Mode != "" {
		sel.Where(entsql.EQ(t.C("mode"), opts.Mode))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ(t.C("session_id"), opts.SessionID))
	}

	var out []TaskRecord
	err := r.query(ctx, limit(sel, opts), func(rows *entsql.Rows) error {
		var rec TaskRecord
		var ts int64
		if err := rows.Scan(&rec.ID, &ts, &rec.SessionID, &rec.TaskID, &rec.Mode,
			&rec.TaskText, &rec.Result); err != nil {
			return err
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query recent tasks: %w", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]any, len(out))
	byID := make(map[string][]int, len(out))
	for i, rec := range out {
		ids[i] = rec.TaskID
		byID[rec.TaskID] = append(byID[rec.TaskID], i)
	}

	a := entsql.Table(attemptEventsTable.Name)
	attempts := sqlite.Select(a.C("task_id"), entsql.Count("*"), entsql.Max(a.C("accepted"))).
		From(a).
		Where(entsql.In(a.C("task_id"), ids...)).
		GroupBy(a.C("task_id"))
	err = r.query(ctx, attempts, func(rows *entsql.Rows) error {
		var id string
		var n, accepted int
		if err := rows.Scan(&id, &n, &accepted); err != nil {
			return err
		}
		for _, i := range byID[id] {
			out[i].Attempts = n
			out[i].Solved = accepted == 1
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query task attempts: %w", err)
	}

	h := entsql.Table(hintEventsTable.Name)
	hints := sqlite.Select(h.C("task_id"), entsql.Count("*")).
		From(h).
		Where(entsql.In(h.C("task_id"), ids...)).
		GroupBy(h.C("task_id"))
	err = r.query(ctx, hints, func(rows *entsql.Rows) error {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return err
		}
		for _, i := range byID[id] {
			out[i].Hints = n
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query task hints: %w", err)
	}
	return out, nil
}

func (r *eventRepo) ModeStats(ctx context.Context) ([]ModeStats, error) {
	t := entsql.Table(taskEventsTable.Name)
	var out []ModeStats
	index := map[string]int{}
	err := r.query(ctx, sqlite.Select(t.C("mode"), entsql.Count("*")).
		From(t).
		GroupBy(t.C("mode")).
		OrderBy(t.C("mode")),
		func(rows *entsql.Rows) error {
			var st ModeStats
			if err := rows.Scan(&st.Mode, &st.Tasks); err != nil {
				return err
			}
			index[st.Mode] = len(out)
			out = append(out, st)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("query mode stats: %w", err)
	}

	// countBy adds per-mode counts from sel to the field picked by dst.
	countBy := func(sel *entsql.Selector, dst func(*ModeStats) *int) error {
		return r.query(ctx, sel, func(rows *entsql.Rows) error {
			var mode string
			var n int
			if err := rows.Scan(&mode, &n); err != nil {
				return err
			}
			if i, ok := index[mode]; ok {
				*dst(&out[i]) = n
			}
			return nil
		})
	}

	// Distinct: a task can log more than one accepted attempt.
	solved := entsql.Table(taskEventsTable.Name).As("t")
	accepted := entsql.Table(attemptEventsTable.Name).As("a")
	err = r.query(ctx, sqlite.Select(solved.C("mode"), solved.C("task_id")).
		Distinct().
		From(solved).
		Join(accepted).On(solved.C("task_id"), accepted.C("task_id")).
		Where(entsql.EQ(accepted.C("accepted"), true)),
		func(rows *entsql.Rows) error {
			var mode, taskID string
			if err := rows.Scan(&mode, &taskID); err != nil {
				return err
			}
			if i, ok := index[mode]; ok {
				out[i].Solved++
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("query solved tasks: %w", err)
	}

	a := entsql.Table(attemptEventsTable.Name)
	if err := countBy(sqlite.Select(a.C("mode"), entsql.Count("*")).From(a).GroupBy(a.C("mode")),
		func(s *ModeStats) *int { return &s.Attempts }); err != nil {
		return nil, fmt.Errorf("query mode attempts: %w", err)
	}
	h := entsql.Table(hintEventsTable.Name)
	if err := countBy(sqlite.Select(h.C("mode"), entsql.Count("*")).From(h).GroupBy(h.C("mode")),
		func(s *ModeStats) *int { return &s.Hints }); err != nil {
		return nil, fmt.Errorf("query mode hints: %w", err)
	}
	return out, nil
}
