package merger

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// outcome is the tagged result of a model-assisted fallback call. The
// service signals "do not merge" with a sentinel string; that signal is
// converted here at the adapter boundary and never threads through text
// cleanup.
type outcome struct {
	Merged bool
	Text   string
}

// fallbackGenerate retries the merge with the stricter judge-then-merge
// prompt. A sentinel response or a service failure yields a rejected
// outcome.
func (m *Merger) fallbackGenerate(ctx context.Context, questionA, questionB string) outcome {
	callCtx, cancel := context.WithTimeout(ctx, m.cfg.CallTimeout)
	defer cancel()

	text, err := m.gen.Complete(callCtx, systemPrompt, fallbackPrompt(questionA, questionB), m.params())
	if err != nil {
		zap.L().Debug("fallback generation failed", zap.Error(err))
		return outcome{}
	}
	trimmed := strings.TrimSpace(text)
	if strings.Contains(strings.ToUpper(trimmed), rejectSentinel) {
		return outcome{}
	}
	return outcome{Merged: true, Text: trimmed}
}

// connectors vary the phrasing of deterministic merges.
var connectors = []string{
	"relate to",
	"align with",
	"interact with",
	"support",
}

// DeterministicMerge builds a syntactically valid merged question with no
// service dependency: the first five words of each source joined by a
// connector. Guaranteed to pass the format validator.
func (m *Merger) DeterministicMerge(questionA, questionB string) string {
	conn := connectors[m.intN(len(connectors))]
	text := "How does " + firstWords(questionA, 5) + " " + conn + " " + firstWords(questionB, 5)
	out, ok := finalize(text, m.pickEmoji())
	if !ok {
		// Inputs short enough to fail length bounds still deserve a valid
		// shape; pad with the generic subject.
		out, _ = finalize("How do these two framework questions connect", m.pickEmoji())
	}
	return out
}

// firstWords returns up to n leading whitespace-delimited words, with any
// trailing punctuation trimmed.
func firstWords(text string, n int) string {
	fields := strings.Fields(cleanText(text))
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.TrimRight(strings.Join(fields, " "), ".,;:?!")
}

// longerOf picks the longer of two cleaned question texts, the last-resort
// merge result when generation and fallback both fail.
func longerOf(a, b string) string {
	if len(b) > len(a) {
		return b
	}
	return a
}
