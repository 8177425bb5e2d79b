package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListByType retrieves all questions of one type.
func (r *QuestionRepository) ListByType(ctx context.Context, questionType model.QuestionType) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type, prompt, options, correct_answer, created_at
		 FROM questions WHERE type = $1
		 ORDER BY created_at`, questionType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// ListAll retrieves every question regardless of type.
func (r *QuestionRepository) ListAll(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type, prompt, options, correct_answer, created_at
		 FROM questions ORDER BY type, created_at`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// GetByIDs retrieves the questions matching the given ids. Unknown ids are
// silently absent from the result.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, type, prompt, options, correct_answer, created_at
		 FROM questions WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// CreateBatch inserts imported questions in a single transaction.
func (r *QuestionRepository) CreateBatch(ctx context.Context, questions []model.Question) error {
	if len(questions) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for i := range questions {
		batch.Queue(
			`INSERT INTO questions (type, prompt, options, correct_answer)
			 VALUES ($1, $2, $3, $4)`,
			questions[i].Type, questions[i].Prompt, questions[i].Options, questions[i].CorrectAnswer,
		)
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DeleteByType removes all questions of one type.
func (r *QuestionRepository) DeleteByType(ctx context.Context, questionType model.QuestionType) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE type = $1`, questionType)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteAll removes every question.
func (r *QuestionRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanQuestions(rows pgx.Rows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Type, &q.Prompt, &q.Options, &q.CorrectAnswer, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
