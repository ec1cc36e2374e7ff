package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/question"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrRecordNotFound = fmt.Errorf("question record not found")

type PostgresQuestionRepository struct {
	db *sql.DB
}

func NewPostgresQuestionRepository(db *sql.DB) *PostgresQuestionRepository {
	return &PostgresQuestionRepository{db: db}
}

const questionColumns = `id, student_id, student_name, question, answer, edited_answer,
               is_approved, from_image, image_path, approved_by, approved_at, created_at, updated_at`

func (r *PostgresQuestionRepository) Create(ctx context.Context, rec *question.Record) error {
	query := `INSERT INTO question_records
               (student_id, student_name, question, answer, from_image, image_path)
               VALUES ($1, $2, $3, $4, $5, $6)
               RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		rec.StudentID, rec.StudentName, rec.Question, rec.Answer, rec.FromImage, rec.ImagePath,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating question record: %w", err)
	}
	return nil
}

func (r *PostgresQuestionRepository) GetByID(ctx context.Context, id string) (*question.Record, error) {
	query := `SELECT ` + questionColumns + ` FROM question_records WHERE id = $1`

	rec := &question.Record{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.StudentID, &rec.StudentName, &rec.Question, &rec.Answer, &rec.EditedAnswer,
		&rec.IsApproved, &rec.FromImage, &rec.ImagePath, &rec.ApprovedBy, &rec.ApprovedAt,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("error getting question record by ID: %w", err)
	}
	return rec, nil
}

// Update writes the approval-time mutation. It is the single mutation
// point of a record's lifecycle and relies on Postgres single-row write
// atomicity; no explicit transaction is taken.
func (r *PostgresQuestionRepository) Update(ctx context.Context, rec *question.Record) error {
	query := `UPDATE question_records
               SET edited_answer = $1, is_approved = $2, approved_by = $3, approved_at = $4, updated_at = NOW()
               WHERE id = $5
               RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		rec.EditedAnswer, rec.IsApproved, rec.ApprovedBy, rec.ApprovedAt, rec.ID,
	).Scan(&rec.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrRecordNotFound
		}
		return fmt.Errorf("error updating question record: %w", err)
	}
	return nil
}

func (r *PostgresQuestionRepository) ListPending(ctx context.Context, limit int) ([]*question.Record, error) {
	query := `SELECT ` + questionColumns + `
               FROM question_records WHERE is_approved = FALSE ORDER BY created_at LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *PostgresQuestionRepository) ListRecent(ctx context.Context, limit int) ([]*question.Record, error) {
	query := `SELECT ` + questionColumns + `
               FROM question_records ORDER BY created_at DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

func (r *PostgresQuestionRepository) list(ctx context.Context, query string, limit int) ([]*question.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing question records: %w", err)
	}
	defer rows.Close()

	records := make([]*question.Record, 0)
	for rows.Next() {
		rec := &question.Record{}
		if err := rows.Scan(
			&rec.ID, &rec.StudentID, &rec.StudentName, &rec.Question, &rec.Answer, &rec.EditedAnswer,
			&rec.IsApproved, &rec.FromImage, &rec.ImagePath, &rec.ApprovedBy, &rec.ApprovedAt,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning question record: %w", err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question records: %w", err)
	}
	return records, nil
}

func (r *PostgresQuestionRepository) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM question_records WHERE is_approved = FALSE`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting pending records: %w", err)
	}
	return n, nil
}

func (r *PostgresQuestionRepository) CountApprovedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM question_records WHERE is_approved = TRUE AND approved_at >= $1`, since).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting approved records: %w", err)
	}
	return n, nil
}
