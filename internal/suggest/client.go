package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/festy23/capstone_review/pkg/retry"
)

// Client calls the Anthropic API for candidate rationale text. Concurrency
// is capped by a weighted semaphore and retryable failures (429/5xx) are
// retried with capped exponential backoff and jitter.
type Client struct {
	api      *anthropic.Client
	model    anthropic.Model
	sem      *semaphore.Weighted
	retryCfg retry.Config
	logger   *zap.SugaredLogger
}

// NewClient creates a suggestion client. apiKey may be empty, in which case
// the SDK falls back to its environment configuration.
func NewClient(
	apiKey, model string,
	maxInFlight, maxAttempts int,
	logger *zap.SugaredLogger,
) *Client {
	opts := []option.RequestOption{}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	api := anthropic.NewClient(opts...)

	retryCfg := retry.Config{
		MaxAttempts:  maxAttempts,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     8 * time.Second,
		Multiplier:   2.0,
		RetryIf:      isRetryableProviderError,
	}

	return &Client{
		api:      &api,
		model:    anthropic.Model(model),
		sem:      semaphore.NewWeighted(int64(maxInFlight)),
		retryCfg: retryCfg,
		logger:   logger,
	}
}

// Suggest asks the provider for a short rationale per candidate.
func (c *Client) Suggest(ctx context.Context, req *Request) ([]Rationale, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("suggestion slot unavailable: %w", err)
	}
	defer c.sem.Release(1)

	systemPrompt, userPrompt := buildPrompt(req)

	text, err := retry.DoWithResult(ctx, c.retryCfg, func() (string, error) {
		return c.callAPI(ctx, systemPrompt, userPrompt)
	})
	if err != nil {
		if isQuotaError(err) {
			// Quota failures must halt further retries at the caller too.
			return nil, fmt.Errorf("%w: %s", ErrQuotaExhausted, err.Error())
		}
		return nil, err
	}

	rationales, err := parseRationales(text)
	if err != nil {
		return nil, err
	}

	return rationales, nil
}

// callAPI performs one provider round trip and extracts the text block.
func (c *Client) callAPI(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call: %w", err)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}

	return "", ErrMalformedResponse
}

// buildPrompt constructs the system and user prompts for rationale generation.
func buildPrompt(req *Request) (system string, user string) {
	system = `You explain reviewer recommendations for academic capstone submissions. ` +
		`Given a submission's required skill tags and a ranked candidate list with score breakdowns, ` +
		`return ONLY a JSON array of objects with fields "reviewer_id" and "rationale" ` +
		`(one short sentence each, grounded in the provided scores and matched tags). ` +
		`Do not reorder, add or drop candidates. Return valid JSON only, no markdown fencing.`

	var sb strings.Builder
	sb.WriteString("Submission: ")
	sb.WriteString(req.Title)
	sb.WriteString("\nRequired skills: ")
	sb.WriteString(strings.Join(req.RequiredTags, ", "))
	sb.WriteString("\nCandidates (ranked):\n")
	payload, _ := json.Marshal(req.Candidates)
	sb.Write(payload)
	user = sb.String()
	return
}

// parseRationales decodes the provider's JSON array, tolerating fencing.
func parseRationales(text string) ([]Rationale, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		lines := strings.SplitN(text, "\n", 2)
		if len(lines) > 1 {
			text = lines[1]
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var rationales []Rationale
	if err := json.Unmarshal([]byte(text), &rationales); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResponse, err.Error())
	}

	return rationales, nil
}

// isRetryableProviderError retries rate limits, server errors and transient
// transport failures; cancelled contexts and client errors are terminal.
func isRetryableProviderError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= http.StatusInternalServerError
	}

	// Transport-level failures without a status code are worth one more try.
	return true
}

// isQuotaError reports whether the terminal error was a rate-limit response.
func isQuotaError(err error) bool {
	var apiErr *anthropic.Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests
}
