package merger

import "fmt"

// systemPrompt frames every merge call.
const systemPrompt = `You are an expert in sustainability reporting standards (GRI, SASB, TCFD, CSRD, ISSB and peers).

You merge overlapping questionnaire items from different frameworks into one combined question.

Rules:
- Produce exactly one question and nothing else
- The question must end with a question mark
- Keep it under 45 words
- Preserve the substantive intent of both source questions
- Plain text only: no markup, no quotes, no preamble`

// mergePrompt asks for a single combined question, embedding the thematic
// connection and the heuristic similarity so the model knows how close the
// sources are.
func mergePrompt(frameworkA, frameworkB, questionA, questionB, theme string, similarity float64) string {
	return fmt.Sprintf(`Two sustainability frameworks ask closely related questions.

%s asks: %s
%s asks: %s

Thematic connection: %s
Heuristic similarity: %.0f%%

Write ONE merged question that covers the substance of both. Under 45 words, ending with a question mark.`,
		frameworkA, questionA, frameworkB, questionB, theme, similarity*100)
}

// rejectSentinel is the exact token the fallback prompt must return when
// the two questions do not share enough context to merge. It never leaves
// this package: the adapter converts it into a rejected outcome.
const rejectSentinel = "DIFFERENT_CONTEXT"

// fallbackPrompt is the stricter second attempt: the model first judges
// whether the questions genuinely share context, and only then merges.
func fallbackPrompt(questionA, questionB string) string {
	return fmt.Sprintf(`Decide whether these two sustainability questions address the same underlying topic.

Question 1: %s
Question 2: %s

If they do NOT share enough context to combine honestly, respond with exactly: %s
Otherwise respond with a single merged question, under 45 words, ending with a question mark. No other text.`,
		questionA, questionB, rejectSentinel)
}
