package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
	"github.com/rs/zerolog"
)

// ErrQuestionNotFound is returned when a miss references an unknown question.
var ErrQuestionNotFound = errors.New("question not found")

// WrongQuestionService handles the per-user mistake book.
type WrongQuestionService struct {
	wrongRepo *repository.WrongQuestionRepository
	log       zerolog.Logger
}

// NewWrongQuestionService creates a new WrongQuestionService.
func NewWrongQuestionService(wrongRepo *repository.WrongQuestionRepository, log zerolog.Logger) *WrongQuestionService {
	return &WrongQuestionService{
		wrongRepo: wrongRepo,
		log:       log.With().Str("component", "wrong_question_service").Logger(),
	}
}

// Record upserts a miss for (userID, questionID). The caller decides
// correctness; this only persists the outcome.
func (s *WrongQuestionService) Record(ctx context.Context, userID int, req model.RecordWrongQuestionRequest) (*model.WrongQuestion, error) {
	w := &model.WrongQuestion{
		UserID:      userID,
		QuestionID:  req.QuestionID,
		WrongAnswer: req.WrongAnswer,
		Source:      req.Source,
	}
	if err := s.wrongRepo.Upsert(ctx, w); err != nil {
		// FK violation: the referenced question does not exist.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return w, nil
}

// List retrieves the user's mistake records with question details,
// newest first.
func (s *WrongQuestionService) List(ctx context.Context, userID int) ([]model.WrongQuestionDetail, error) {
	return s.wrongRepo.ListByUser(ctx, userID)
}

// Remove deletes one mistake record. Removing an absent record is a no-op.
func (s *WrongQuestionService) Remove(ctx context.Context, userID int, questionID uuid.UUID) error {
	return s.wrongRepo.Delete(ctx, userID, questionID)
}
