package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func TestSampleQuestionsNoDuplicates(t *testing.T) {
	pool := makeQuestions(model.QuestionTypeSingle, "A", 50)

	sample := sampleQuestions(pool, 30)
	if len(sample) != 30 {
		t.Fatalf("got %d questions, want 30", len(sample))
	}

	seen := make(map[uuid.UUID]bool, len(sample))
	poolIDs := make(map[uuid.UUID]bool, len(pool))
	for _, q := range pool {
		poolIDs[q.ID] = true
	}
	for _, q := range sample {
		if seen[q.ID] {
			t.Errorf("question %s sampled twice", q.ID)
		}
		seen[q.ID] = true
		if !poolIDs[q.ID] {
			t.Errorf("question %s not from the source pool", q.ID)
		}
	}
}

func TestSampleQuestionsUnderSupply(t *testing.T) {
	pool := makeQuestions(model.QuestionTypeMultiple, "AB", 7)

	sample := sampleQuestions(pool, 20)
	if len(sample) != 7 {
		t.Fatalf("got %d questions, want all 7", len(sample))
	}

	seen := make(map[uuid.UUID]bool, len(sample))
	for _, q := range sample {
		if seen[q.ID] {
			t.Errorf("question %s sampled twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestSampleQuestionsEmptyPool(t *testing.T) {
	sample := sampleQuestions(nil, 30)
	if len(sample) != 0 {
		t.Fatalf("got %d questions from empty pool, want 0", len(sample))
	}
}

func TestExamQuestionOmitsCorrectAnswer(t *testing.T) {
	questions := makeQuestions(model.QuestionTypeSingle, "B", 3)
	served := toExamQuestions(questions)

	if len(served) != 3 {
		t.Fatalf("got %d served questions, want 3", len(served))
	}
	for i, q := range served {
		if q.ID != questions[i].ID || q.Prompt != questions[i].Prompt || len(q.Options) != len(questions[i].Options) {
			t.Errorf("served question %d lost fields: %+v", i, q)
		}
	}

	body, err := json.Marshal(served)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if bytes.Contains(body, []byte("correct_answer")) || bytes.Contains(body, []byte(`"B"`)) {
		t.Errorf("served payload leaks the answer key: %s", body)
	}
}

func TestGenerateServesFromCacheWithoutAnswers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	pools := map[model.QuestionType][]model.Question{
		model.QuestionTypeSingle:   makeQuestions(model.QuestionTypeSingle, "A", 40),
		model.QuestionTypeMultiple: makeQuestions(model.QuestionTypeMultiple, "AB", 25),
		model.QuestionTypeBoolean:  makeQuestions(model.QuestionTypeBoolean, "A", 35),
	}
	for questionType, questions := range pools {
		data, err := json.Marshal(questions)
		if err != nil {
			t.Fatalf("marshal %s pool: %v", questionType, err)
		}
		if err := mr.Set(config.CacheKey.QuestionsByTypeKey(string(questionType)), string(data)); err != nil {
			t.Fatalf("seed cache: %v", err)
		}
	}

	// Nil repositories: generation must be satisfied entirely by the cache.
	questionService := NewQuestionService(nil, rdb, zerolog.Nop())
	examService := NewExamService(questionService, nil, nil, nil, zerolog.Nop())

	exam, err := examService.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(exam.Single) != SingleCount || len(exam.Multiple) != MultipleCount || len(exam.Boolean) != BooleanCount {
		t.Fatalf("got %d/%d/%d questions, want %d/%d/%d",
			len(exam.Single), len(exam.Multiple), len(exam.Boolean),
			SingleCount, MultipleCount, BooleanCount)
	}

	body, err := json.Marshal(exam)
	if err != nil {
		t.Fatalf("marshal exam: %v", err)
	}
	if bytes.Contains(body, []byte("correct_answer")) {
		t.Errorf("generated exam leaks the answer key")
	}
}

func TestSampleQuestionsDoesNotModifyInput(t *testing.T) {
	pool := makeQuestions(model.QuestionTypeBoolean, "A", 10)
	before := make([]uuid.UUID, len(pool))
	for i, q := range pool {
		before[i] = q.ID
	}

	sampleQuestions(pool, 5)

	for i, q := range pool {
		if q.ID != before[i] {
			t.Fatalf("input slice reordered at index %d", i)
		}
	}
}
