package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quizforge/quizforge-backend/internal/model"
)

// ExamResultRepository handles exam result data access. Results are
// insert-only; there is no update path.
type ExamResultRepository struct {
	pool *pgxpool.Pool
}

// NewExamResultRepository creates a new ExamResultRepository.
func NewExamResultRepository(pool *pgxpool.Pool) *ExamResultRepository {
	return &ExamResultRepository{pool: pool}
}

// Create inserts a new exam result.
func (r *ExamResultRepository) Create(ctx context.Context, res *model.ExamResult) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO exam_results (user_id, single_score, multiple_score, boolean_score, total)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, submitted_at`,
		res.UserID, res.SingleScore, res.MultipleScore, res.BooleanScore, res.Total,
	).Scan(&res.ID, &res.SubmittedAt)
}

// ListByUser retrieves a user's results, newest first.
func (r *ExamResultRepository) ListByUser(ctx context.Context, userID int) ([]model.ExamResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, single_score, multiple_score, boolean_score, total, submitted_at
		 FROM exam_results WHERE user_id = $1
		 ORDER BY submitted_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.ExamResult
	for rows.Next() {
		var res model.ExamResult
		if err := rows.Scan(&res.ID, &res.UserID, &res.SingleScore, &res.MultipleScore, &res.BooleanScore, &res.Total, &res.SubmittedAt); err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
