package model

import (
	"time"

	"github.com/google/uuid"
)

// WrongSource tells where a miss was recorded from.
type WrongSource string

const (
	WrongSourceStudy WrongSource = "study"
	WrongSourceExam  WrongSource = "exam"
)

// WrongQuestion is a per-user, per-question mistake record. Unique per
// (UserID, QuestionID); a repeat miss updates the record in place and
// increments ReviewCount.
type WrongQuestion struct {
	UserID         int         `json:"user_id"`
	QuestionID     uuid.UUID   `json:"question_id"`
	WrongAnswer    string      `json:"wrong_answer"`
	Source         WrongSource `json:"source"`
	ReviewCount    int         `json:"review_count"`
	CreatedAt      time.Time   `json:"created_at"`
	LastReviewedAt time.Time   `json:"last_reviewed_at"`
}

// WrongQuestionDetail is a mistake record joined with its question.
type WrongQuestionDetail struct {
	WrongQuestion
	Question Question `json:"question"`
}

// RecordWrongQuestionRequest is the payload for recording a study-mode miss.
type RecordWrongQuestionRequest struct {
	QuestionID  uuid.UUID   `json:"question_id" binding:"required"`
	WrongAnswer string      `json:"wrong_answer"`
	Source      WrongSource `json:"source" binding:"required,oneof=study exam"`
}
