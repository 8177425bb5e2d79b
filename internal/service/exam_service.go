package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Exam composition, fixed for the current exam format: 30 single-choice,
// 20 multiple-choice and 30 boolean questions for a 100-point total.
const (
	SingleCount   = 30
	MultipleCount = 20
	BooleanCount  = 30
)

// ExamService generates exam instances and grades submissions.
type ExamService struct {
	questions    *QuestionService
	questionRepo *repository.QuestionRepository
	resultRepo   *repository.ExamResultRepository
	wrongRepo    *repository.WrongQuestionRepository
	log          zerolog.Logger
}

// NewExamService creates a new ExamService. Category listings for
// generation go through questions so they are served from its cache;
// questionRepo is only used to load submitted questions by id.
func NewExamService(
	questions *QuestionService,
	questionRepo *repository.QuestionRepository,
	resultRepo *repository.ExamResultRepository,
	wrongRepo *repository.WrongQuestionRepository,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		questions:    questions,
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		wrongRepo:    wrongRepo,
		log:          log.With().Str("component", "exam_service").Logger(),
	}
}

// Generate assembles one exam instance: a uniform random sample without
// replacement per category. A category with fewer questions than requested
// yields all it has — a partial exam rather than an error. Nothing is
// persisted; the client holds the set until submission. The served payload
// never includes correct answers.
func (s *ExamService) Generate(ctx context.Context) (*model.GeneratedExam, error) {
	single, err := s.sampleCategory(ctx, model.QuestionTypeSingle, SingleCount)
	if err != nil {
		return nil, err
	}
	multiple, err := s.sampleCategory(ctx, model.QuestionTypeMultiple, MultipleCount)
	if err != nil {
		return nil, err
	}
	boolean, err := s.sampleCategory(ctx, model.QuestionTypeBoolean, BooleanCount)
	if err != nil {
		return nil, err
	}

	return &model.GeneratedExam{
		Single:   single,
		Multiple: multiple,
		Boolean:  boolean,
	}, nil
}

func (s *ExamService) sampleCategory(ctx context.Context, questionType model.QuestionType, count int) ([]model.ExamQuestion, error) {
	questions, err := s.questions.ListByType(ctx, questionType)
	if err != nil {
		return nil, fmt.Errorf("list %s questions: %w", questionType, err)
	}
	return toExamQuestions(sampleQuestions(questions, count)), nil
}

// toExamQuestions strips the sampled questions down to what the exam taker
// may see.
func toExamQuestions(questions []model.Question) []model.ExamQuestion {
	out := make([]model.ExamQuestion, len(questions))
	for i, q := range questions {
		out[i] = model.ExamQuestion{
			ID:      q.ID,
			Type:    q.Type,
			Prompt:  q.Prompt,
			Options: q.Options,
		}
	}
	return out
}

// sampleQuestions draws up to count questions uniformly without replacement
// via a partial Fisher-Yates shuffle. The input slice is not modified.
func sampleQuestions(questions []model.Question, count int) []model.Question {
	if count > len(questions) {
		count = len(questions)
	}
	if count <= 0 {
		return []model.Question{}
	}

	pool := make([]model.Question, len(questions))
	copy(pool, questions)
	for i := 0; i < count; i++ {
		j := i + rand.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count]
}

// Submit grades a finished exam against the questions the client was
// served, persists the result exactly once and records every miss with
// source=exam. Returns the persisted result.
func (s *ExamService) Submit(ctx context.Context, userID int, req model.SubmitExamRequest) (*model.ExamResult, error) {
	questions, err := s.questionRepo.GetByIDs(ctx, req.QuestionIDs)
	if err != nil {
		return nil, fmt.Errorf("load exam questions: %w", err)
	}

	examSet := model.ExamSet{}
	for _, q := range questions {
		switch q.Type {
		case model.QuestionTypeSingle:
			examSet.Single = append(examSet.Single, q)
		case model.QuestionTypeMultiple:
			examSet.Multiple = append(examSet.Multiple, q)
		case model.QuestionTypeBoolean:
			examSet.Boolean = append(examSet.Boolean, q)
		}
	}

	score := GradeExam(examSet, req.Answers)

	result := &model.ExamResult{
		UserID:        userID,
		SingleScore:   score.Single,
		MultipleScore: score.Multiple,
		BooleanScore:  score.Boolean,
		Total:         score.Total,
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("persist exam result: %w", err)
	}

	s.recordMisses(ctx, userID, questions, req.Answers)

	s.log.Info().
		Int("user_id", userID).
		Int("total", score.Total).
		Int("questions", len(questions)).
		Msg("Exam submitted")
	return result, nil
}

// recordMisses upserts a mistake record for each incorrectly answered
// question. A failed upsert is logged and skipped so a storage hiccup on
// one record does not void an already-persisted result.
func (s *ExamService) recordMisses(ctx context.Context, userID int, questions []model.Question, answers map[uuid.UUID]string) {
	for _, q := range questions {
		raw := answers[q.ID]
		if IsCorrect(q, raw) {
			continue
		}
		w := &model.WrongQuestion{
			UserID:      userID,
			QuestionID:  q.ID,
			WrongAnswer: raw,
			Source:      model.WrongSourceExam,
		}
		if err := s.wrongRepo.Upsert(ctx, w); err != nil {
			s.log.Error().Err(err).
				Int("user_id", userID).
				Str("question_id", q.ID.String()).
				Msg("failed to record miss")
		}
	}
}

// ListResults retrieves a user's past exam results, newest first.
func (s *ExamService) ListResults(ctx context.Context, userID int) ([]model.ExamResult, error) {
	return s.resultRepo.ListByUser(ctx, userID)
}
