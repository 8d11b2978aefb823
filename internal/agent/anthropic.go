package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/avast/retry-go/v4"
)

type anthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	system    string
	maxTokens int64
	attempts  uint
	delay     time.Duration
	logger    *slog.Logger
}

// NewAnthropic creates an agent client backed by the Anthropic Messages API.
// The API key comes from the environment (ANTHROPIC_API_KEY). The SDK's own
// retry loop is disabled; bounded retry on transient failures happens here.
// Additional request options are forwarded to the SDK client.
func NewAnthropic(cfg *Config, system string, logger *slog.Logger, opts ...option.RequestOption) Client {
	c := anthropic.NewClient(append([]option.RequestOption{option.WithMaxRetries(0)}, opts...)...)

	return &anthropicClient{
		client:    &c,
		model:     resolveModel(cfg.Model),
		system:    system,
		maxTokens: cfg.MaxTokens,
		attempts:  cfg.RetryAttempts,
		delay:     cfg.RetryDelayDuration(),
		logger:    logger.With("system", "agent"),
	}
}

func (a *anthropicClient) Respond(ctx context.Context, prompt string) (string, error) {
	var text string

	err := retry.Do(
		func() error {
			msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
				Model:     a.model,
				MaxTokens: a.maxTokens,
				System: []anthropic.TextBlockParam{
					{Text: a.system},
				},
				Messages: []anthropic.MessageParam{
					anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
				},
			})
			if err != nil {
				return err
			}

			text = collectText(msg)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(a.attempts),
		retry.Delay(a.delay),
		retry.RetryIf(isTransient),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			a.logger.Warn("agent request retry", "attempt", n+1, "error", err)
		}),
	)

	if err != nil {
		return "", fmt.Errorf("agent request: %w", err)
	}

	return text, nil
}

func collectText(msg *anthropic.Message) string {
	var b strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(text.Text)
		}
	}
	return b.String()
}

// Rate limits and server-side failures are worth another attempt; anything
// the API rejects outright is not.
func isTransient(err error) bool {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return apierr.StatusCode == 429 || apierr.StatusCode >= 500
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Transport-level failures (timeouts, resets) carry no status code.
	return true
}

// Short aliases follow the hosted CLI convention; anything else is passed
// through as a full model identifier.
func resolveModel(model string) anthropic.Model {
	switch model {
	case "sonnet":
		return anthropic.ModelClaude3_7SonnetLatest
	default:
		return anthropic.Model(model)
	}
}
