package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/VinothPrinzz/student-tutor-automation/internal/domain/student"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var ErrStudentNotFound = fmt.Errorf("student profile not found")

type PostgresStudentRepository struct {
	db *sql.DB
}

func NewPostgresStudentRepository(db *sql.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

func (r *PostgresStudentRepository) GetByPlatformID(ctx context.Context, platform student.Platform, platformUserID int64) (*student.Profile, error) {
	query := `SELECT id, platform, platform_user_id, first_name, last_name, questions_asked, last_seen_at, created_at
               FROM student_profiles WHERE platform = $1 AND platform_user_id = $2`

	p := &student.Profile{}
	err := r.db.QueryRowContext(ctx, query, platform, platformUserID).Scan(
		&p.ID, &p.Platform, &p.PlatformUserID, &p.FirstName, &p.LastName,
		&p.QuestionsAsked, &p.LastSeenAt, &p.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("error getting student profile: %w", err)
	}
	return p, nil
}

// RecordActivity upserts on the unique (platform, platform_user_id) pair,
// incrementing the question counter for returning students.
func (r *PostgresStudentRepository) RecordActivity(ctx context.Context, p *student.Profile) error {
	query := `INSERT INTO student_profiles
               (platform, platform_user_id, first_name, last_name, questions_asked, last_seen_at)
               VALUES ($1, $2, $3, $4, 1, NOW())
               ON CONFLICT (platform, platform_user_id) DO UPDATE
               SET first_name = EXCLUDED.first_name,
                   last_name = EXCLUDED.last_name,
                   questions_asked = student_profiles.questions_asked + 1,
                   last_seen_at = NOW()
               RETURNING id, questions_asked, last_seen_at, created_at`

	err := r.db.QueryRowContext(ctx, query, p.Platform, p.PlatformUserID, p.FirstName, p.LastName).
		Scan(&p.ID, &p.QuestionsAsked, &p.LastSeenAt, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording student activity: %w", err)
	}
	return nil
}
