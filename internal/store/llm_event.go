package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	err := r.insert(ctx, llmRequestEventsTable.Name,
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms",
			"success", "error_message", "request_body", "response_body"},
		data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

var llmEventColumns = []string{"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success", "error_message",
	"request_body", "response_body"}

func selectLLMEvents() *entsql.Selector {
	t := entsql.Table(llmRequestEventsTable.Name)
	cols := make([]string, len(llmEventColumns))
	for i, c := range llmEventColumns {
		cols[i] = t.C(c)
	}
	return sqlite.Select(cols...).From(t)
}

func scanLLMEvent(rows *entsql.Rows) (LLMRequestEvent, error) {
	var e LLMRequestEvent
	var ts int64
	err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.Provider, &e.Model, &e.Purpose,
		&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &e.ErrorMessage,
		&e.RequestBody, &e.ResponseBody)
	if err != nil {
		return e, err
	}
	e.Timestamp = time.UnixMilli(ts)
	return e, nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	sel := selectLLMEvents().OrderBy(entsql.Desc("sequence"))

	var out []LLMRequestEvent
	err := r.query(ctx, limit(sel, opts), func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	return out, nil
}

// GetLLMEvent returns nil without error when id does not exist.
func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	var found *LLMRequestEvent
	err := r.query(ctx, selectLLMEvents().Where(entsql.EQ("id", id)), func(rows *entsql.Rows) error {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return err
		}
		found = &e
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get LLM event %d: %w", id, err)
	}
	return found, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	t := entsql.Table(llmRequestEventsTable.Name)
	sel := sqlite.Select(t.C("purpose"), entsql.Count("*"), entsql.Sum(t.C("input_tokens")),
		entsql.Sum(t.C("output_tokens")), entsql.Avg(t.C("latency_ms"))).
		From(t).
		GroupBy(t.C("purpose")).
		OrderBy(t.C("purpose"))

	var out []PurposeUsage
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var u PurposeUsage
		var avg float64
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			return err
		}
		u.AvgLatencyMs = int(avg)
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query usage by purpose: %w", err)
	}
	return out, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	t := entsql.Table(llmRequestEventsTable.Name)
	sel := sqlite.Select(t.C("model"), entsql.Count("*"), entsql.Sum(t.C("input_tokens")),
		entsql.Sum(t.C("output_tokens"))).
		From(t).
		GroupBy(t.C("model")).
		OrderBy(t.C("model"))

	var out []ModelUsage
	err := r.query(ctx, sel, func(rows *entsql.Rows) error {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return err
		}
		out = append(out, u)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query usage by model: %w", err)
	}
	return out, nil
}
