package model

import (
	"time"

	"github.com/google/uuid"
)

// ExamQuestion is a question as served to an exam taker. The correct
// answer is deliberately absent: grading is server-side and the generate
// payload must not carry the answer key.
type ExamQuestion struct {
	ID      uuid.UUID    `json:"id"`
	Type    QuestionType `json:"type"`
	Prompt  string       `json:"prompt"`
	Options []string     `json:"options"`
}

// GeneratedExam is one exam instance as served to the client, category
// order fixed: single, then multiple, then boolean.
type GeneratedExam struct {
	Single   []ExamQuestion `json:"single"`
	Multiple []ExamQuestion `json:"multiple"`
	Boolean  []ExamQuestion `json:"boolean"`
}

// ExamSet is a grading input: the full questions (answers included) for
// one submission, bucketed by category. Never serialized to clients.
type ExamSet struct {
	Single   []Question
	Multiple []Question
	Boolean  []Question
}

// Score holds per-category and total exam scores.
type Score struct {
	Single   int `json:"single_score"`
	Multiple int `json:"multiple_score"`
	Boolean  int `json:"boolean_score"`
	Total    int `json:"total"`
}

// ExamResult is a persisted exam submission outcome. Insert-only.
type ExamResult struct {
	ID            uuid.UUID `json:"id"`
	UserID        int       `json:"user_id"`
	SingleScore   int       `json:"single_score"`
	MultipleScore int       `json:"multiple_score"`
	BooleanScore  int       `json:"boolean_score"`
	Total         int       `json:"total"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// SubmitExamRequest is the payload for submitting a finished exam.
// QuestionIDs is the exact set of question ids the client was served;
// Answers maps question id to the raw submitted answer. Questions left
// unanswered may be omitted from Answers.
type SubmitExamRequest struct {
	QuestionIDs []uuid.UUID          `json:"question_ids" binding:"required,min=1"`
	Answers     map[uuid.UUID]string `json:"answers"`
}
