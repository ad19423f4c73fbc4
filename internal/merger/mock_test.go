package merger

import (
	"context"
	"sync"
	"time"

	"github.com/sells-group/esg-merge-cli/pkg/completion"
)

// mockGenerator is a scriptable Generator for orchestrator tests.
type mockGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string

	// respond computes the reply per call; when nil, response/err are
	// returned as-is.
	respond  func(systemPrompt, userPrompt string) (string, error)
	response string
	err      error

	// delay simulates a slow service; the call still honors ctx.
	delay time.Duration
}

func (m *mockGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string, _ completion.Params) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, userPrompt)
	m.mu.Unlock()

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(m.delay):
		}
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if m.respond != nil {
		return m.respond(systemPrompt, userPrompt)
	}
	return m.response, m.err
}

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockGenerator) userPrompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}
