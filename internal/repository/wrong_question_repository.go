package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// WrongQuestionRepository handles mistake-record data access.
type WrongQuestionRepository struct {
	pool *pgxpool.Pool
}

// NewWrongQuestionRepository creates a new WrongQuestionRepository.
func NewWrongQuestionRepository(pool *pgxpool.Pool) *WrongQuestionRepository {
	return &WrongQuestionRepository{pool: pool}
}

// Upsert records a miss. First miss inserts with review_count = 1; a repeat
// miss on the same (user_id, question_id) overwrites wrong_answer and source,
// increments review_count and refreshes last_reviewed_at. The ON CONFLICT
// clause makes concurrent misses on the same key serialize in the store.
func (r *WrongQuestionRepository) Upsert(ctx context.Context, w *model.WrongQuestion) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO wrong_questions (user_id, question_id, wrong_answer, source)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id, question_id) DO UPDATE
		   SET wrong_answer     = EXCLUDED.wrong_answer,
		       source           = EXCLUDED.source,
		       review_count     = wrong_questions.review_count + 1,
		       last_reviewed_at = now()
		 RETURNING review_count, created_at, last_reviewed_at`,
		w.UserID, w.QuestionID, w.WrongAnswer, w.Source,
	).Scan(&w.ReviewCount, &w.CreatedAt, &w.LastReviewedAt)
}

// ListByUser retrieves a user's mistake records joined with their questions,
// newest first.
func (r *WrongQuestionRepository) ListByUser(ctx context.Context, userID int) ([]model.WrongQuestionDetail, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT w.user_id, w.question_id, w.wrong_answer, w.source,
		        w.review_count, w.created_at, w.last_reviewed_at,
		        q.id, q.type, q.prompt, q.options, q.correct_answer, q.created_at
		 FROM wrong_questions w
		 JOIN questions q ON q.id = w.question_id
		 WHERE w.user_id = $1
		 ORDER BY w.created_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.WrongQuestionDetail
	for rows.Next() {
		var d model.WrongQuestionDetail
		if err := rows.Scan(
			&d.UserID, &d.QuestionID, &d.WrongAnswer, &d.Source,
			&d.ReviewCount, &d.CreatedAt, &d.LastReviewedAt,
			&d.Question.ID, &d.Question.Type, &d.Question.Prompt,
			&d.Question.Options, &d.Question.CorrectAnswer, &d.Question.CreatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, d)
	}
	return records, rows.Err()
}

// Delete removes a mistake record. Deleting an absent record is a no-op.
func (r *WrongQuestionRepository) Delete(ctx context.Context, userID int, questionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM wrong_questions WHERE user_id = $1 AND question_id = $2`,
		userID, questionID,
	)
	return err
}
