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

const adDetailColumns = `a.id, a.creator_id, a.ad_type, a.subject_id, a.description, a.options, a.active, a.created_at,
        u.full_name AS creator_name, u.gender AS creator_gender,
        p.major_id AS creator_major_id, p.level AS creator_level, p.last_active_at,
        c.name AS creator_college, m.name AS creator_major`

// AdRepository manages persistence for intent ads.
type AdRepository struct {
	db *sqlx.DB
}

// NewAdRepository constructs an AdRepository.
func NewAdRepository(db *sqlx.DB) *AdRepository {
	return &AdRepository{db: db}
}

// List returns ads matching the filter, newest first, joined with the
// creator's user record and student profile.
func (r *AdRepository) List(ctx context.Context, filter models.AdFilter) ([]models.AdDetail, error) {
	base := `FROM ads a
        JOIN users u ON u.id = a.creator_id
        LEFT JOIN student_profiles p ON p.user_id = a.creator_id
        LEFT JOIN colleges c ON c.id = p.college_id
        LEFT JOIN majors m ON m.id = p.major_id`
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.AdType != "" {
		conditions = append(conditions, fmt.Sprintf("a.ad_type = $%d", len(args)+1))
		args = append(args, filter.AdType)
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("a.subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.ExcludeCreator != "" {
		conditions = append(conditions, fmt.Sprintf("a.creator_id <> $%d", len(args)+1))
		args = append(args, filter.ExcludeCreator)
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "a.active = TRUE")
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := fmt.Sprintf("SELECT %s %s WHERE %s ORDER BY a.created_at DESC LIMIT %d",
		adDetailColumns, base, strings.Join(conditions, " AND "), limit)

	var ads []models.AdDetail
	if err := r.db.SelectContext(ctx, &ads, query, args...); err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	return ads, nil
}

// FindByID fetches an ad by ID.
func (r *AdRepository) FindByID(ctx context.Context, id string) (*models.Ad, error) {
	const query = `SELECT id, creator_id, ad_type, subject_id, description, options, active, created_at FROM ads WHERE id = $1`
	var ad models.Ad
	if err := r.db.GetContext(ctx, &ad, query, id); err != nil {
		return nil, err
	}
	return &ad, nil
}

// Create inserts a new ad.
func (r *AdRepository) Create(ctx context.Context, ad *models.Ad) error {
	if ad.ID == "" {
		ad.ID = uuid.NewString()
	}
	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO ads (id, creator_id, ad_type, subject_id, description, options, active, created_at)
        VALUES (:id, :creator_id, :ad_type, :subject_id, :description, :options, :active, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, ad); err != nil {
		return fmt.Errorf("create ad: %w", err)
	}
	return nil
}

// Delete removes an ad owned by the given creator.
func (r *AdRepository) Delete(ctx context.Context, id, creatorID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM ads WHERE id = $1 AND creator_id = $2", id, creatorID)
	if err != nil {
		return false, fmt.Errorf("delete ad: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete ad rows: %w", err)
	}
	return affected > 0, nil
}
