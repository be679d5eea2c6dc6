package suggest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRationales(t *testing.T) {
	t.Run("plain JSON array", func(t *testing.T) {
		rationales, err := parseRationales(
			`[{"reviewer_id": "rev-1", "rationale": "strong skill match"}]`)
		require.NoError(t, err)
		require.Len(t, rationales, 1)
		assert.Equal(t, "rev-1", rationales[0].ReviewerID)
		assert.Equal(t, "strong skill match", rationales[0].Rationale)
	})

	t.Run("markdown fenced with language", func(t *testing.T) {
		rationales, err := parseRationales(
			"```json\n[{\"reviewer_id\": \"rev-1\", \"rationale\": \"ok\"}]\n```")
		require.NoError(t, err)
		require.Len(t, rationales, 1)
		assert.Equal(t, "rev-1", rationales[0].ReviewerID)
	})

	t.Run("markdown fenced bare", func(t *testing.T) {
		rationales, err := parseRationales(
			"```\n[{\"reviewer_id\": \"rev-2\", \"rationale\": \"ok\"}]\n```")
		require.NoError(t, err)
		require.Len(t, rationales, 1)
		assert.Equal(t, "rev-2", rationales[0].ReviewerID)
	})

	t.Run("surrounding whitespace", func(t *testing.T) {
		rationales, err := parseRationales("\n  []  \n")
		require.NoError(t, err)
		assert.Empty(t, rationales)
	})

	t.Run("prose instead of JSON", func(t *testing.T) {
		_, err := parseRationales("Here are my recommendations: rev-1 is great.")
		assert.ErrorIs(t, err, ErrMalformedResponse)
	})
}

func TestBuildPrompt(t *testing.T) {
	system, user := buildPrompt(&Request{
		Title:        "Distributed Cache Consistency",
		RequiredTags: []string{"distributed-systems", "golang"},
		Candidates: []Candidate{
			{ReviewerID: "rev-1", CompositeScore: 0.91},
		},
	})

	assert.Contains(t, system, "JSON array")
	assert.Contains(t, user, "Distributed Cache Consistency")
	assert.Contains(t, user, "distributed-systems, golang")
	assert.Contains(t, user, "rev-1")
}

func TestIsRetryableProviderError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		retry bool
	}{
		{"nil", nil, false},
		{"cancelled context", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, false},
		{"rate limited", &anthropic.Error{StatusCode: http.StatusTooManyRequests}, true},
		{"server error", &anthropic.Error{StatusCode: http.StatusInternalServerError}, true},
		{"bad request", &anthropic.Error{StatusCode: http.StatusBadRequest}, false},
		{"unauthorized", &anthropic.Error{StatusCode: http.StatusUnauthorized}, false},
		{"transport failure", errors.New("connection reset"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retry, isRetryableProviderError(tt.err))
		})
	}
}

func TestIsQuotaError(t *testing.T) {
	assert.True(t, isQuotaError(&anthropic.Error{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, isQuotaError(&anthropic.Error{StatusCode: http.StatusInternalServerError}))
	assert.False(t, isQuotaError(errors.New("boom")))

	wrapped := errors.Join(errors.New("call failed"), &anthropic.Error{StatusCode: http.StatusTooManyRequests})
	assert.True(t, isQuotaError(wrapped))

	assert.True(t, strings.Contains(ErrQuotaExhausted.Error(), "quota"))
}
