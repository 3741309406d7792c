package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fractiz/internal/store"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

func TestRetry(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{"hint":"ok"}`)}
	down := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("502")}}
	invalid := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}}

	tests := []struct {
		name      string
		script    []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first try", []MockResponse{ok}, false, 1},
		{"transient then ok", []MockResponse{down, ok}, false, 2},
		{"always down", []MockResponse{down, down, down, ok}, true, 3},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok}, true, 1},
		{"invalid retried once", []MockResponse{invalid, invalid, ok}, true, 2},
		{"invalid then ok", []MockResponse{invalid, ok}, false, 2},
		{"canceled not retried", []MockResponse{{Err: context.Canceled}, ok}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.script...)
			_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})
			assert.Equal(t, tt.wantErr, err != nil, "err = %v", err)
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_StopsOnContextDone(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Minute}}, MockResponse{Content: json.RawMessage(`{}`)})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := WithRetry(mock, fastRetry()).Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_BackoffBounds(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{MaxAttempts: 5, InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}
	for attempt := 0; attempt < 5; attempt++ {
		d := r.backoff(attempt, errors.New("x"))
		assert.LessOrEqual(t, d, 360*time.Millisecond, "attempt %d", attempt)
		assert.GreaterOrEqual(t, d, 80*time.Millisecond, "attempt %d", attempt)
	}
	assert.Equal(t, 7*time.Second, r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second}))
}

type slowProvider struct{}

func (slowProvider) ModelID() string { return "slow" }
func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestWithTimeout(t *testing.T) {
	mock := NewMockProvider()
	assert.Same(t, Provider(mock), WithTimeout(mock, 0))

	_, err := WithTimeout(slowProvider{}, 10*time.Millisecond).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"hint":"Use 12."}`), Usage: newUsage(20, 6)},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
	)
	p := WithLogging(mock, "mock", repo, nil)
	ctx := WithPurpose(context.Background(), "hint")

	_, err = p.Generate(ctx, UserPrompt("coach", "2/3 + 3/4"))
	require.NoError(t, err)
	_, err = p.Generate(ctx, UserPrompt("coach", "1/2 + 1/3"))
	require.Error(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, okEvent := events[0], events[1]
	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "rate limited")
	assert.True(t, okEvent.Success)
	assert.Equal(t, "hint", okEvent.Purpose)
	assert.Equal(t, "mock", okEvent.Provider)
	assert.Equal(t, 20, okEvent.InputTokens)
	assert.Equal(t, `{"hint":"Use 12."}`, okEvent.ResponseBody)
	assert.True(t, strings.HasPrefix(okEvent.RequestBody, "[system]\ncoach\n\n[user]\n2/3 + 3/4"))
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	_, err := WithLogging(mock, "mock", nil, nil).Generate(context.Background(), Request{})
	assert.NoError(t, err)
}

func TestRenderRequest(t *testing.T) {
	req := UserPrompt("sys", "hello")
	req.Schema = &Schema{Name: "s", Definition: map[string]any{"type": "object"}}
	assert.Equal(t, "[system]\nsys\n\n[user]\nhello\n\n[schema: s]\n{\"type\":\"object\"}\n", renderRequest(req))
}
