package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
)

type adRepository interface {
	List(ctx context.Context, filter models.AdFilter) ([]models.AdDetail, error)
	Create(ctx context.Context, ad *models.Ad) error
	Delete(ctx context.Context, id, creatorID string) (bool, error)
}

// CreateAdRequest holds the payload for posting an ad.
type CreateAdRequest struct {
	AdType      models.AdType    `json:"ad_type" validate:"required"`
	SubjectID   string           `json:"subject_id" validate:"required"`
	Description string           `json:"description"`
	Options     models.AdOptions `json:"options"`
}

// AdService handles ad lifecycle for students.
type AdService struct {
	repo      adRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAdService constructs the ad service.
func NewAdService(repo adRepository, validate *validator.Validate, logger *zap.Logger) *AdService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdService{repo: repo, validator: validate, logger: logger}
}

// List returns ads matching the filter.
func (s *AdService) List(ctx context.Context, filter models.AdFilter) ([]models.AdDetail, error) {
	filter.ActiveOnly = true
	ads, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list ads")
	}
	return ads, nil
}

// Create posts a new ad on behalf of the caller.
func (s *AdService) Create(ctx context.Context, creatorID string, req CreateAdRequest) (*models.Ad, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid ad payload")
	}
	if !req.AdType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "ad type must be one of partner, group, tutor, help")
	}

	ad := &models.Ad{
		CreatorID:   creatorID,
		AdType:      req.AdType,
		SubjectID:   req.SubjectID,
		Description: req.Description,
		Options:     req.Options,
		Active:      true,
	}
	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create ad")
	}
	return ad, nil
}

// Delete removes an ad owned by the caller.
func (s *AdService) Delete(ctx context.Context, id, creatorID string) error {
	deleted, err := s.repo.Delete(ctx, id, creatorID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete ad")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "ad not found")
	}
	return nil
}
