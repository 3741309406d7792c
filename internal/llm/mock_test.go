package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"hint":"a"}`), Usage: newUsage(3, 4)})
	mock.AddResponse(MockResponse{Err: &ErrRateLimit{}})

	resp, err := mock.Generate(context.Background(), UserPrompt("sys", "first"))
	require.NoError(t, err)
	assert.Equal(t, `{"hint":"a"}`, string(resp.Content))
	assert.Equal(t, 7, resp.Usage.TotalTokens)
	assert.Equal(t, "mock", resp.Model)

	_, err = mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl))

	_, err = mock.Generate(context.Background(), Request{})
	var down *ErrProviderUnavailable
	assert.True(t, errors.As(err, &down))

	assert.Equal(t, 3, mock.CallCount())
	assert.Equal(t, "sys", mock.Calls[0].System)
}

func TestMockProvider_ValidatesSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"hint":""}`)})
	req := Request{Schema: hintTestSchema()}
	_, err := mock.Generate(context.Background(), req)
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))
}

func TestPurpose(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "hint", PurposeFrom(WithPurpose(ctx, "hint")))
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gpt-4o-mini")
	require.NotNil(t, c)
	assert.InDelta(t, 0.15+0.6, c.Cost(1_000_000, 1_000_000), 1e-9)
	assert.Nil(t, LookupCost("no-such-model"))
}
