package service

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// Per-question point values, fixed for the current exam format.
const (
	SinglePoints   = 1
	MultiplePoints = 2
	BooleanPoints  = 1
)

// NormalizeAnswer canonicalizes a multiple-choice answer: delimiters
// (commas, semicolons, whitespace) are dropped, option letters are
// uppercased, deduplicated and sorted, then rejoined with no separator.
// "D,B", "b d" and "BD" all normalize to "BD"; an empty or
// delimiter-only input normalizes to "". The function is idempotent.
func NormalizeAnswer(raw string) string {
	seen := make(map[rune]bool)
	letters := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch r {
		case ',', ';', ' ', '\t', '\n', '\r':
			continue
		}
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if !seen[r] {
			seen[r] = true
			letters = append(letters, r)
		}
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return string(letters)
}

// IsCorrect reports whether a submitted raw answer matches the question's
// correct answer. Multiple-choice answers are compared after normalization;
// single and boolean answers are compared letter-for-letter after trimming
// and uppercasing, so case never decides correctness in either branch.
// Malformed or empty stored answers never match a non-empty submission and
// never cause an error.
func IsCorrect(q model.Question, rawAnswer string) bool {
	if q.Type == model.QuestionTypeMultiple {
		submitted := NormalizeAnswer(rawAnswer)
		correct := NormalizeAnswer(q.CorrectAnswer)
		return submitted != "" && submitted == correct
	}
	submitted := strings.ToUpper(strings.TrimSpace(rawAnswer))
	return submitted != "" && submitted == strings.ToUpper(strings.TrimSpace(q.CorrectAnswer))
}

// GradeExam scores a submitted answer set against an exam instance.
// A question absent from answers grades as incorrect. Pure: no side
// effects, deterministic for identical inputs.
func GradeExam(examSet model.ExamSet, answers map[uuid.UUID]string) model.Score {
	var score model.Score
	for _, q := range examSet.Single {
		if IsCorrect(q, answers[q.ID]) {
			score.Single += SinglePoints
		}
	}
	for _, q := range examSet.Multiple {
		if IsCorrect(q, answers[q.ID]) {
			score.Multiple += MultiplePoints
		}
	}
	for _, q := range examSet.Boolean {
		if IsCorrect(q, answers[q.ID]) {
			score.Boolean += BooleanPoints
		}
	}
	score.Total = score.Single + score.Multiple + score.Boolean
	return score
}
