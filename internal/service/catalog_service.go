package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
)

type catalogRepository interface {
	ListColleges(ctx context.Context) ([]models.College, error)
	ListMajorsByCollege(ctx context.Context, collegeID string) ([]models.Major, error)
	ListSubjectsByMajor(ctx context.Context, majorID string) ([]models.Subject, error)
	FindSubjectByID(ctx context.Context, id string) (*models.Subject, error)
}

// CatalogService serves the read-only college/major/subject hierarchy.
type CatalogService struct {
	repo   catalogRepository
	logger *zap.Logger
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(repo catalogRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, logger: logger}
}

// Colleges lists all active colleges.
func (s *CatalogService) Colleges(ctx context.Context) ([]models.College, error) {
	colleges, err := s.repo.ListColleges(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list colleges")
	}
	return colleges, nil
}

// Majors lists active majors under a college.
func (s *CatalogService) Majors(ctx context.Context, collegeID string) ([]models.Major, error) {
	majors, err := s.repo.ListMajorsByCollege(ctx, collegeID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list majors")
	}
	return majors, nil
}

// Subjects lists active subjects under a major.
func (s *CatalogService) Subjects(ctx context.Context, majorID string) ([]models.Subject, error) {
	subjects, err := s.repo.ListSubjectsByMajor(ctx, majorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Subject fetches one subject by ID.
func (s *CatalogService) Subject(ctx context.Context, id string) (*models.Subject, error) {
	subject, err := s.repo.FindSubjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	return subject, nil
}
