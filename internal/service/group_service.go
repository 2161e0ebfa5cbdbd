package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
)

type groupRepository interface {
	ListBySubject(ctx context.Context, filter models.GroupFilter) ([]models.StudyGroup, error)
	Create(ctx context.Context, group *models.StudyGroup) error
}

// CreateGroupRequest holds the payload for opening a study group.
type CreateGroupRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	SubjectIDs   []string `json:"subject_ids" validate:"required,min=1"`
	MaxMembers   int      `json:"max_members" validate:"required,min=2"`
	Mode         string   `json:"mode"`
	HelpOriented bool     `json:"help_oriented"`
}

// GroupService handles study group creation and listing.
type GroupService struct {
	repo      groupRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGroupService constructs the group service.
func NewGroupService(repo groupRepository, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{repo: repo, validator: validate, logger: logger}
}

// List returns study groups covering a subject.
func (s *GroupService) List(ctx context.Context, filter models.GroupFilter) ([]models.StudyGroup, error) {
	groups, err := s.repo.ListBySubject(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	return groups, nil
}

// Create opens a new study group with the caller as creator and first member.
func (s *GroupService) Create(ctx context.Context, creatorID string, req CreateGroupRequest) (*models.StudyGroup, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}

	group := &models.StudyGroup{
		CreatorID:    creatorID,
		Name:         req.Name,
		Description:  req.Description,
		SubjectIDs:   req.SubjectIDs,
		MaxMembers:   req.MaxMembers,
		Members:      []string{creatorID},
		Mode:         req.Mode,
		HelpOriented: req.HelpOriented,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create group")
	}
	return group, nil
}
