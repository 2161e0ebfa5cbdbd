package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/moltaqa/moltaqa-api/internal/models"
)

const profileDetailColumns = `p.id, p.user_id, p.college_id, p.major_id, p.level, p.subject_ids, p.study_modes,
        p.status_for_partners, p.status_for_help, p.visible, p.last_active_at, p.created_at, p.updated_at,
        u.full_name, u.gender, m.name AS major_name, c.name AS college_name`

// ProfileRepository manages persistence for student profiles.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs a ProfileRepository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// FindByUserID fetches the profile owned by a user account.
func (r *ProfileRepository) FindByUserID(ctx context.Context, userID string) (*models.StudentProfileDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_profiles p
        JOIN users u ON u.id = p.user_id
        LEFT JOIN majors m ON m.id = p.major_id
        LEFT JOIN colleges c ON c.id = p.college_id
        WHERE p.user_id = $1`, profileDetailColumns)
	var detail models.StudentProfileDetail
	if err := r.db.GetContext(ctx, &detail, query, userID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListVisible returns a page of visible profiles matching the query-level
// filters, along with the total count for pagination.
func (r *ProfileRepository) ListVisible(ctx context.Context, filter models.ProfileFilter) ([]models.StudentProfileDetail, int, error) {
	base := `FROM student_profiles p
        JOIN users u ON u.id = p.user_id
        LEFT JOIN majors m ON m.id = p.major_id
        LEFT JOIN colleges c ON c.id = p.college_id`
	conditions := []string{"p.visible = TRUE", "u.active = TRUE"}
	args := []interface{}{}

	if filter.MajorID != "" {
		conditions = append(conditions, fmt.Sprintf("p.major_id = $%d", len(args)+1))
		args = append(args, filter.MajorID)
	}
	if filter.Level != "" {
		conditions = append(conditions, fmt.Sprintf("p.level = $%d", len(args)+1))
		args = append(args, filter.Level)
	}
	if filter.ExcludeUserID != "" {
		conditions = append(conditions, fmt.Sprintf("p.user_id <> $%d", len(args)+1))
		args = append(args, filter.ExcludeUserID)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 50 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY p.created_at DESC LIMIT %d OFFSET %d",
		profileDetailColumns, base, size, offset)

	var profiles []models.StudentProfileDetail
	if err := r.db.SelectContext(ctx, &profiles, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list profiles: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(p.id) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count profiles: %w", err)
	}
	return profiles, total, nil
}

// ListRecent returns the most recently created visible profiles.
func (r *ProfileRepository) ListRecent(ctx context.Context, limit int) ([]models.StudentProfileDetail, error) {
	query := fmt.Sprintf(`SELECT %s FROM student_profiles p
        JOIN users u ON u.id = p.user_id
        LEFT JOIN majors m ON m.id = p.major_id
        LEFT JOIN colleges c ON c.id = p.college_id
        WHERE p.visible = TRUE AND u.active = TRUE
        ORDER BY p.created_at DESC LIMIT %d`, profileDetailColumns, limit)
	var profiles []models.StudentProfileDetail
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("list recent profiles: %w", err)
	}
	return profiles, nil
}

// Upsert creates or replaces the profile for a user.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.StudentProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	const query = `INSERT INTO student_profiles (id, user_id, college_id, major_id, level, subject_ids, study_modes,
        status_for_partners, status_for_help, visible, last_active_at, created_at, updated_at)
        VALUES (:id, :user_id, :college_id, :major_id, :level, :subject_ids, :study_modes,
        :status_for_partners, :status_for_help, :visible, :last_active_at, :created_at, :updated_at)
        ON CONFLICT (user_id) DO UPDATE SET
        college_id = EXCLUDED.college_id, major_id = EXCLUDED.major_id, level = EXCLUDED.level,
        subject_ids = EXCLUDED.subject_ids, study_modes = EXCLUDED.study_modes,
        status_for_partners = EXCLUDED.status_for_partners, status_for_help = EXCLUDED.status_for_help,
        visible = EXCLUDED.visible, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// TouchActivity stamps the profile's last activity time.
func (r *ProfileRepository) TouchActivity(ctx context.Context, userID string, ts time.Time) error {
	if _, err := r.db.ExecContext(ctx, "UPDATE student_profiles SET last_active_at = $1 WHERE user_id = $2", ts, userID); err != nil {
		return fmt.Errorf("touch profile activity: %w", err)
	}
	return nil
}
