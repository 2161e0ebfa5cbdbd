package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/moltaqa/moltaqa-api/internal/models"
)

// CatalogRepository serves the read-only college/major/subject hierarchy.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs a CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListColleges returns all active colleges.
func (r *CatalogRepository) ListColleges(ctx context.Context) ([]models.College, error) {
	const query = `SELECT id, name, code, active, created_at FROM colleges WHERE active = TRUE ORDER BY name ASC`
	var colleges []models.College
	if err := r.db.SelectContext(ctx, &colleges, query); err != nil {
		return nil, fmt.Errorf("list colleges: %w", err)
	}
	return colleges, nil
}

// ListMajorsByCollege returns active majors under a college.
func (r *CatalogRepository) ListMajorsByCollege(ctx context.Context, collegeID string) ([]models.Major, error) {
	const query = `SELECT id, college_id, name, code, active, created_at FROM majors WHERE college_id = $1 AND active = TRUE ORDER BY name ASC`
	var majors []models.Major
	if err := r.db.SelectContext(ctx, &majors, query, collegeID); err != nil {
		return nil, fmt.Errorf("list majors: %w", err)
	}
	return majors, nil
}

// ListSubjectsByMajor returns active subjects under a major.
func (r *CatalogRepository) ListSubjectsByMajor(ctx context.Context, majorID string) ([]models.Subject, error) {
	const query = `SELECT id, major_id, name, code, level, active, created_at FROM subjects WHERE major_id = $1 AND active = TRUE ORDER BY name ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, majorID); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// FindSubjectByID fetches a subject by ID.
func (r *CatalogRepository) FindSubjectByID(ctx context.Context, id string) (*models.Subject, error) {
	const query = `SELECT id, major_id, name, code, level, active, created_at FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}
