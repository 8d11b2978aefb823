package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &anthropic.Error{StatusCode: 429}, true},
		{"server error", &anthropic.Error{StatusCode: 500}, true},
		{"overloaded", &anthropic.Error{StatusCode: 529}, true},
		{"bad request", &anthropic.Error{StatusCode: 400}, false},
		{"unauthorized", &anthropic.Error{StatusCode: 401}, false},
		{"wrapped api error", fmt.Errorf("request: %w", &anthropic.Error{StatusCode: 503}), true},
		{"cancelled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, false},
		{"transport failure", errors.New("connection reset by peer"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("sonnet"); got != anthropic.ModelClaude3_7SonnetLatest {
		t.Errorf("resolveModel(sonnet) = %q, want %q", got, anthropic.ModelClaude3_7SonnetLatest)
	}
	if got := resolveModel("claude-opus-4-0"); got != anthropic.Model("claude-opus-4-0") {
		t.Errorf("resolveModel passthrough = %q, want claude-opus-4-0", got)
	}
}

func TestCollectText(t *testing.T) {
	raw := `{
		"content": [
			{"type": "text", "text": "Hello"},
			{"type": "tool_use", "id": "t1", "name": "lookup", "input": {}},
			{"type": "text", "text": " world"}
		]
	}`

	var msg anthropic.Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}

	if got := collectText(&msg); got != "Hello world" {
		t.Errorf("collectText = %q, want %q", got, "Hello world")
	}
}

func TestCollectTextEmpty(t *testing.T) {
	var msg anthropic.Message
	if got := collectText(&msg); got != "" {
		t.Errorf("collectText = %q, want empty", got)
	}
}
