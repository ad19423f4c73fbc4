// Package model holds the domain types shared across the merge pipeline.
package model

import "time"

// RawQuestion is a single question as loaded from a framework catalog.
type RawQuestion struct {
	Text     string `json:"text" yaml:"question"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Ref      string `json:"ref,omitempty" yaml:"ref,omitempty"`
}

// Framework is a named reporting standard with its question set.
type Framework struct {
	ID          string        `json:"_id" yaml:"_id"`
	Name        string        `json:"name" yaml:"name"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
	Questions   []RawQuestion `json:"questions" yaml:"questions"`
}

// FrameworkPair describes a relationship between two selected frameworks.
// Computed once per unordered pair and cached for the run.
type FrameworkPair struct {
	FrameworkA         string `json:"framework_a"`
	FrameworkB         string `json:"framework_b"`
	ThematicConnection string `json:"thematic_connection"`
}

// CandidatePair is a scored, not-yet-merged combination of one question
// from each of two frameworks. Score is always positive: below-threshold
// pairs are dropped by the scorer, never emitted with score zero.
type CandidatePair struct {
	FrameworkA         string      `json:"framework_a"`
	FrameworkB         string      `json:"framework_b"`
	QuestionA          RawQuestion `json:"question_a"`
	QuestionB          RawQuestion `json:"question_b"`
	Score              float64     `json:"score"`
	ThematicConnection string      `json:"thematic_connection"`
}

// SourceQuestion records one of the two originals behind a merged question.
type SourceQuestion struct {
	Text      string `json:"text"`
	Framework string `json:"framework"`
	Category  string `json:"category,omitempty"`
	Ref       string `json:"ref,omitempty"`
}

// MergedQuestion is the pipeline output: a single combined question built
// from exactly two source questions. Immutable after creation; owned by the
// caller for the lifetime of one generation run.
type MergedQuestion struct {
	ID                string            `json:"id"`
	Text              string            `json:"text"`
	FrameworkIDs      [2]string         `json:"framework_ids"`
	OriginalQuestions [2]SourceQuestion `json:"original_questions"`
	Emoji             string            `json:"emoji"`
	Category          string            `json:"category,omitempty"`
	Ref               string            `json:"ref"`
	CreatedAt         time.Time         `json:"created_at"`
	GeneratedByModel  bool              `json:"generated_by_model"`
}
