package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/moltaqa/moltaqa-api/internal/models"
)

// GroupRepository manages persistence for study groups.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs a GroupRepository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// ListBySubject returns groups whose included subjects contain the target
// subject, newest first.
func (r *GroupRepository) ListBySubject(ctx context.Context, filter models.GroupFilter) ([]models.StudyGroup, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query := fmt.Sprintf(`SELECT id, creator_id, name, description, subject_ids, max_members, members, mode, help_oriented, created_at
        FROM study_groups WHERE subject_ids @> ARRAY[$1] ORDER BY created_at DESC LIMIT %d`, limit)
	var groups []models.StudyGroup
	if err := r.db.SelectContext(ctx, &groups, query, filter.SubjectID); err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Create inserts a new study group.
func (r *GroupRepository) Create(ctx context.Context, group *models.StudyGroup) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO study_groups (id, creator_id, name, description, subject_ids, max_members, members, mode, help_oriented, created_at)
        VALUES (:id, :creator_id, :name, :description, :subject_ids, :max_members, :members, :mode, :help_oriented, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}
