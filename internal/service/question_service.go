package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrUnknownQuestionType is returned for type filters outside
// single/multiple/boolean.
var ErrUnknownQuestionType = errors.New("unknown question type")

// questionCacheTTL bounds staleness if an invalidation is ever missed.
const questionCacheTTL = 12 * time.Hour

// QuestionService handles the question bank: listing (Redis-cached for
// study mode), spreadsheet import and bulk deletion.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
	rdb          *redis.Client
	log          zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository, rdb *redis.Client, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		rdb:          rdb,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// ListByType returns all questions of one type, served from Redis when
// cached. A cache failure falls through to PostgreSQL.
func (s *QuestionService) ListByType(ctx context.Context, questionType model.QuestionType) ([]model.Question, error) {
	if !model.ValidQuestionType(questionType) {
		return nil, ErrUnknownQuestionType
	}

	key := config.CacheKey.QuestionsByTypeKey(string(questionType))
	if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
		var questions []model.Question
		if err := json.Unmarshal(data, &questions); err == nil {
			return questions, nil
		}
		s.log.Warn().Str("key", key).Msg("corrupt question cache entry, refetching")
	}

	questions, err := s.questionRepo.ListByType(ctx, questionType)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(questions); err == nil {
		if err := s.rdb.Set(ctx, key, data, questionCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to cache questions")
		}
	}
	return questions, nil
}

// ListAll returns every question regardless of type. Not cached; only the
// per-type study lists are hot.
func (s *QuestionService) ListAll(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.ListAll(ctx)
}

// Import parses an xlsx workbook and inserts the valid rows as questions
// of the given type. Returns the number imported. Invalid rows are skipped;
// zero valid rows is an error.
func (s *QuestionService) Import(ctx context.Context, r io.Reader, questionType model.QuestionType) (int, error) {
	if !model.ValidQuestionType(questionType) {
		return 0, ErrUnknownQuestionType
	}

	questions, err := ParseQuestionWorkbook(r, questionType)
	if err != nil {
		return 0, err
	}

	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		return 0, err
	}

	s.invalidateCache(ctx, questionType)
	s.log.Info().
		Str("type", string(questionType)).
		Int("count", len(questions)).
		Msg("Questions imported")
	return len(questions), nil
}

// DeleteByType removes all questions of one type, or every question when
// questionType is empty.
func (s *QuestionService) DeleteByType(ctx context.Context, questionType model.QuestionType) (int64, error) {
	if questionType == "" {
		n, err := s.questionRepo.DeleteAll(ctx)
		if err != nil {
			return 0, err
		}
		s.invalidateCache(ctx,
			model.QuestionTypeSingle, model.QuestionTypeMultiple, model.QuestionTypeBoolean)
		return n, nil
	}

	if !model.ValidQuestionType(questionType) {
		return 0, ErrUnknownQuestionType
	}

	n, err := s.questionRepo.DeleteByType(ctx, questionType)
	if err != nil {
		return 0, err
	}
	s.invalidateCache(ctx, questionType)
	return n, nil
}

func (s *QuestionService) invalidateCache(ctx context.Context, types ...model.QuestionType) {
	pipe := s.rdb.Pipeline()
	for _, t := range types {
		pipe.Del(ctx, config.CacheKey.QuestionsByTypeKey(string(t)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Msg("failed to invalidate question cache")
	}
}
