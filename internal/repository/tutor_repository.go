package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/moltaqa/moltaqa-api/internal/models"
)

// TutorRepository manages read access to tutor profiles.
type TutorRepository struct {
	db *sqlx.DB
}

// NewTutorRepository constructs a TutorRepository.
func NewTutorRepository(db *sqlx.DB) *TutorRepository {
	return &TutorRepository{db: db}
}

// ListBySubject returns tutors teaching the subject either via the direct
// subject list or a per-subject pricing entry.
func (r *TutorRepository) ListBySubject(ctx context.Context, subjectID string, limit int) ([]models.TutorProfile, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query := fmt.Sprintf(`SELECT id, user_id, major_ids, subject_ids, levels, pricing, monthly_price, semester_price,
        teaching_mode, badge, last_active_at, created_at, updated_at
        FROM tutor_profiles
        WHERE subject_ids @> ARRAY[$1] OR pricing -> $1 IS NOT NULL
        ORDER BY last_active_at DESC NULLS LAST LIMIT %d`, limit)
	var tutors []models.TutorProfile
	if err := r.db.SelectContext(ctx, &tutors, query, subjectID); err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	return tutors, nil
}
