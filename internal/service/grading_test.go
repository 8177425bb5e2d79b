package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge-backend/internal/model"
)

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "already canonical", raw: "BD", want: "BD"},
		{name: "comma separated", raw: "B,D", want: "BD"},
		{name: "reversed order", raw: "D,B", want: "BD"},
		{name: "spaces and trailing delimiter", raw: "A, B, ", want: "AB"},
		{name: "semicolons", raw: "C;A", want: "AC"},
		{name: "duplicates", raw: "A,A,B", want: "AB"},
		{name: "lowercase", raw: "b,a", want: "AB"},
		{name: "no delimiter unsorted", raw: "DB", want: "BD"},
		{name: "empty", raw: "", want: ""},
		{name: "delimiters only", raw: ", ;", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAnswer(tt.raw); got != tt.want {
				t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeAnswerIdempotent(t *testing.T) {
	inputs := []string{"B,A", "A, B, ", "", "D;C;B;A", "bd", "AB"}
	for _, raw := range inputs {
		once := NormalizeAnswer(raw)
		twice := NormalizeAnswer(once)
		if once != twice {
			t.Errorf("NormalizeAnswer not idempotent for %q: %q != %q", raw, once, twice)
		}
	}
}

func TestNormalizeAnswerOrderInsensitive(t *testing.T) {
	a := NormalizeAnswer("B,A")
	b := NormalizeAnswer("A,B")
	c := NormalizeAnswer("A, B, ")
	if a != b || b != c {
		t.Errorf("want equal canonical forms, got %q %q %q", a, b, c)
	}
}

func TestIsCorrect(t *testing.T) {
	single := model.Question{
		ID:            uuid.New(),
		Type:          model.QuestionTypeSingle,
		Options:       []string{"opt a", "opt b", "opt c", "opt d"},
		CorrectAnswer: "B",
	}
	multiple := model.Question{
		ID:            uuid.New(),
		Type:          model.QuestionTypeMultiple,
		Options:       []string{"opt a", "opt b", "opt c", "opt d"},
		CorrectAnswer: "BD",
	}
	boolean := model.Question{
		ID:            uuid.New(),
		Type:          model.QuestionTypeBoolean,
		Options:       []string{"true", "false"},
		CorrectAnswer: "A",
	}
	singleLowerStored := model.Question{
		ID:            uuid.New(),
		Type:          model.QuestionTypeSingle,
		Options:       []string{"opt a", "opt b"},
		CorrectAnswer: "b",
	}
	noAnswer := model.Question{
		ID:            uuid.New(),
		Type:          model.QuestionTypeMultiple,
		Options:       []string{"opt a", "opt b"},
		CorrectAnswer: "",
	}

	tests := []struct {
		name     string
		question model.Question
		raw      string
		want     bool
	}{
		{name: "single correct", question: single, raw: "B", want: true},
		{name: "single wrong", question: single, raw: "A", want: false},
		{name: "single empty", question: single, raw: "", want: false},
		{name: "single padded", question: single, raw: " B ", want: true},
		{name: "single lowercase", question: single, raw: "b", want: true},
		{name: "single stored lowercase", question: singleLowerStored, raw: "B", want: true},
		{name: "multiple canonical", question: multiple, raw: "BD", want: true},
		{name: "multiple reversed with delimiter", question: multiple, raw: "D,B", want: true},
		{name: "multiple partial", question: multiple, raw: "B", want: false},
		{name: "multiple superset", question: multiple, raw: "A,B,D", want: false},
		{name: "multiple empty", question: multiple, raw: "", want: false},
		{name: "boolean correct", question: boolean, raw: "A", want: true},
		{name: "boolean lowercase", question: boolean, raw: "a", want: true},
		{name: "boolean wrong", question: boolean, raw: "B", want: false},
		{name: "malformed stored answer never matches", question: noAnswer, raw: "A", want: false},
		{name: "malformed stored answer with empty submission", question: noAnswer, raw: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCorrect(tt.question, tt.raw); got != tt.want {
				t.Errorf("IsCorrect(%s, %q) = %v, want %v", tt.question.Type, tt.raw, got, tt.want)
			}
		})
	}
}

func makeQuestions(questionType model.QuestionType, correct string, n int) []model.Question {
	questions := make([]model.Question, n)
	for i := range questions {
		questions[i] = model.Question{
			ID:            uuid.New(),
			Type:          questionType,
			Prompt:        fmt.Sprintf("%s question %d", questionType, i),
			Options:       []string{"opt a", "opt b", "opt c", "opt d"},
			CorrectAnswer: correct,
		}
	}
	return questions
}

func TestGradeExamScenarios(t *testing.T) {
	single := model.Question{
		ID:            uuid.New(),
		Type:          model.QuestionTypeSingle,
		Options:       []string{"opt a", "opt b", "opt c", "opt d"},
		CorrectAnswer: "B",
	}

	t.Run("single answered correctly", func(t *testing.T) {
		examSet := model.ExamSet{Single: []model.Question{single}}
		score := GradeExam(examSet, map[uuid.UUID]string{single.ID: "B"})
		if score.Single != 1 || score.Total != 1 {
			t.Errorf("got %+v, want single=1 total=1", score)
		}
	})

	t.Run("single answered empty", func(t *testing.T) {
		examSet := model.ExamSet{Single: []model.Question{single}}
		score := GradeExam(examSet, map[uuid.UUID]string{single.ID: ""})
		if score.Total != 0 {
			t.Errorf("got %+v, want total=0", score)
		}
	})

	t.Run("single unanswered", func(t *testing.T) {
		examSet := model.ExamSet{Single: []model.Question{single}}
		score := GradeExam(examSet, map[uuid.UUID]string{})
		if score.Total != 0 {
			t.Errorf("got %+v, want total=0", score)
		}
	})

	t.Run("nil answers never panics", func(t *testing.T) {
		examSet := model.ExamSet{Single: []model.Question{single}}
		score := GradeExam(examSet, nil)
		if score.Total != 0 {
			t.Errorf("got %+v, want total=0", score)
		}
	})

	t.Run("multiple normalized both sides", func(t *testing.T) {
		q := model.Question{
			ID:            uuid.New(),
			Type:          model.QuestionTypeMultiple,
			Options:       []string{"opt a", "opt b", "opt c", "opt d"},
			CorrectAnswer: "BD",
		}
		examSet := model.ExamSet{Multiple: []model.Question{q}}

		score := GradeExam(examSet, map[uuid.UUID]string{q.ID: "D,B"})
		if score.Multiple != 2 {
			t.Errorf("got multiple=%d, want 2", score.Multiple)
		}

		score = GradeExam(examSet, map[uuid.UUID]string{q.ID: "B"})
		if score.Multiple != 0 {
			t.Errorf("partial credit granted: got multiple=%d, want 0", score.Multiple)
		}
	})
}

func TestGradeExamFullMarks(t *testing.T) {
	examSet := model.ExamSet{
		Single:   makeQuestions(model.QuestionTypeSingle, "A", 30),
		Multiple: makeQuestions(model.QuestionTypeMultiple, "AB", 20),
		Boolean:  makeQuestions(model.QuestionTypeBoolean, "A", 30),
	}

	answers := make(map[uuid.UUID]string)
	for _, q := range examSet.Single {
		answers[q.ID] = "A"
	}
	for _, q := range examSet.Multiple {
		answers[q.ID] = "B,A"
	}
	for _, q := range examSet.Boolean {
		answers[q.ID] = "A"
	}

	score := GradeExam(examSet, answers)
	if score.Single != 30 || score.Multiple != 40 || score.Boolean != 30 {
		t.Errorf("got %+v, want single=30 multiple=40 boolean=30", score)
	}
	if score.Total != 100 {
		t.Errorf("got total=%d, want 100", score.Total)
	}
}

func TestGradeExamDeterministic(t *testing.T) {
	examSet := model.ExamSet{
		Single:   makeQuestions(model.QuestionTypeSingle, "C", 5),
		Multiple: makeQuestions(model.QuestionTypeMultiple, "AC", 5),
		Boolean:  makeQuestions(model.QuestionTypeBoolean, "B", 5),
	}
	answers := map[uuid.UUID]string{
		examSet.Single[0].ID:   "C",
		examSet.Single[1].ID:   "A",
		examSet.Multiple[0].ID: "C,A",
		examSet.Boolean[0].ID:  "B",
	}

	first := GradeExam(examSet, answers)
	second := GradeExam(examSet, answers)
	if first != second {
		t.Errorf("grading not deterministic: %+v != %+v", first, second)
	}
	want := model.Score{Single: 1, Multiple: 2, Boolean: 1, Total: 4}
	if first != want {
		t.Errorf("got %+v, want %+v", first, want)
	}
}
