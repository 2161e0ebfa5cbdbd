package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
)

type profileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.StudentProfileDetail, error)
	Upsert(ctx context.Context, profile *models.StudentProfile) error
}

// UpsertProfileRequest holds the self-service profile payload.
type UpsertProfileRequest struct {
	CollegeID         string   `json:"college_id" validate:"required"`
	MajorID           string   `json:"major_id" validate:"required"`
	Level             string   `json:"level" validate:"required"`
	SubjectIDs        []string `json:"subject_ids"`
	StudyModes        []string `json:"study_modes"`
	StatusForPartners string   `json:"status_for_partners"`
	StatusForHelp     string   `json:"status_for_help"`
	Visible           *bool    `json:"visible"`
}

// ProfileService handles student profile self-service.
type ProfileService struct {
	repo      profileRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfileService constructs the profile service.
func NewProfileService(repo profileRepository, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{repo: repo, validator: validate, logger: logger}
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.StudentProfileDetail, error) {
	profile, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return profile, nil
}

// Upsert creates or replaces the caller's profile.
func (s *ProfileService) Upsert(ctx context.Context, userID string, req UpsertProfileRequest) (*models.StudentProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}

	visible := true
	if req.Visible != nil {
		visible = *req.Visible
	}
	now := time.Now().UTC()
	profile := &models.StudentProfile{
		UserID:            userID,
		CollegeID:         req.CollegeID,
		MajorID:           req.MajorID,
		Level:             req.Level,
		SubjectIDs:        req.SubjectIDs,
		StudyModes:        req.StudyModes,
		StatusForPartners: req.StatusForPartners,
		StatusForHelp:     req.StatusForHelp,
		Visible:           visible,
		LastActiveAt:      &now,
	}

	// Preserve identity and creation time on update.
	if existing, err := s.repo.FindByUserID(ctx, userID); err == nil {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save profile")
	}
	return profile, nil
}
