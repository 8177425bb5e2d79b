package model

import (
	"time"

	"github.com/google/uuid"
)

// QuestionType enumerates the supported question kinds.
type QuestionType string

const (
	QuestionTypeSingle   QuestionType = "single"
	QuestionTypeMultiple QuestionType = "multiple"
	QuestionTypeBoolean  QuestionType = "boolean"
)

// ValidQuestionType reports whether t is a known question type.
func ValidQuestionType(t QuestionType) bool {
	switch t {
	case QuestionTypeSingle, QuestionTypeMultiple, QuestionTypeBoolean:
		return true
	}
	return false
}

// MaxOptions caps the option list at letters A through H.
const MaxOptions = 8

// Question represents one imported question. Options are ordered and
// addressed by letter (A, B, ...); CorrectAnswer is a single letter for
// single/boolean and a canonical letter set (sorted, deduplicated, no
// separators) for multiple.
type Question struct {
	ID            uuid.UUID    `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"prompt"`
	Options       []string     `json:"options"`
	CorrectAnswer string       `json:"correct_answer"`
	CreatedAt     time.Time    `json:"created_at"`
}

// OptionLetter returns the letter for an option index (0 -> "A").
func OptionLetter(i int) string {
	return string(rune('A' + i))
}
