package merger

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sells-group/esg-merge-cli/internal/keywords"
)

// Emojis is the fixed glyph set a merged question may open with.
var Emojis = []string{
	"🌍", "🌱", "♻️", "💧", "⚡", "🏭", "📊", "🔍", "🤝", "🛡️", "📋", "🌿",
}

const (
	minResponseLen = 10
	maxMergedLen   = 500
	// placeholderToken is a template artifact some model responses echo
	// back verbatim; its presence means the model never filled it in.
	placeholderToken = "[MERGED QUESTION]"
)

// safeText keeps letters, digits, whitespace, and questionnaire-safe
// punctuation; everything else is stripped.
var safeText = regexp.MustCompile(`[^\p{L}\p{N}\s.,;:'"()?!%&/-]+`)

var multiSpace = regexp.MustCompile(`\s+`)

// artifactPrefixes are lead-ins models prepend despite instructions.
var artifactPrefixes = []string{
	"merged question:",
	"combined question:",
	"question:",
	"answer:",
}

// typoRepairs fixes literal misspellings observed in merge output.
var typoRepairs = map[string]string{
	"enviromental": "environmental",
	"complaince":   "compliance",
}

// cleanText keeps the first line only, strips characters outside the safe
// whitelist, and collapses whitespace.
func cleanText(text string) string {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	text = safeText.ReplaceAllString(text, " ")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// normalizeForCompare reduces text to its bare token stream for the
// identical-question short circuit.
func normalizeForCompare(text string) string {
	return strings.Join(keywords.Tokenize(text), " ")
}

// validMergeResponse enforces the quality gates on raw model output:
// minimum length, a question mark, no angle-bracket markup, no
// placeholder echo, and at least one extracted keyword from each source
// question. Sources with no extractable keywords count as covered.
func validMergeResponse(text, sourceA, sourceB string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minResponseLen {
		return false
	}
	if !strings.Contains(trimmed, "?") {
		return false
	}
	if strings.ContainsAny(trimmed, "<>") {
		return false
	}
	if strings.Contains(strings.ToUpper(trimmed), placeholderToken) {
		return false
	}
	return coversKeywords(trimmed, sourceA) && coversKeywords(trimmed, sourceB)
}

func coversKeywords(text, source string) bool {
	kws := keywords.Extract(source)
	if len(kws) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, kw := range kws {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// finalize turns validated merge text into presentable form: re-clean,
// strip artifact lead-ins and wrapping quotes, repair known typos, force a
// terminal question mark, capitalize, and prepend the emoji. Returns false
// when the result fails the final length or leading-format checks; the
// caller discards the pair in that case.
func finalize(text, emoji string) (string, bool) {
	t := cleanText(text)
	lower := strings.ToLower(t)
	for _, p := range artifactPrefixes {
		if strings.HasPrefix(lower, p) {
			t = strings.TrimSpace(t[len(p):])
			lower = strings.ToLower(t)
		}
	}
	t = strings.Trim(t, `"'`)

	for typo, fix := range typoRepairs {
		t = strings.ReplaceAll(t, typo, fix)
	}

	t = strings.TrimRight(t, " .,!;:")
	if !strings.HasSuffix(t, "?") {
		t += "?"
	}
	t = capitalizeFirst(t)
	t = emoji + " " + t

	if !ValidFormat(t) {
		return "", false
	}
	return t, true
}

func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ValidFormat reports whether a merged question has the final shape:
// one glyph from the fixed emoji set, a space, a capitalized start, a
// terminal question mark, and a total length within bounds.
func ValidFormat(text string) bool {
	n := utf8.RuneCountInString(text)
	if n < minResponseLen || n > maxMergedLen {
		return false
	}
	if !strings.HasSuffix(text, "?") {
		return false
	}

	rest := ""
	for _, e := range Emojis {
		if strings.HasPrefix(text, e+" ") {
			rest = text[len(e)+1:]
			break
		}
	}
	if rest == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsUpper(first) || unicode.IsDigit(first)
}
