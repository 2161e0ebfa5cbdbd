package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
)

type mockGroupRepo struct {
	groups  []models.StudyGroup
	created []*models.StudyGroup
}

func (m *mockGroupRepo) ListBySubject(ctx context.Context, filter models.GroupFilter) ([]models.StudyGroup, error) {
	return m.groups, nil
}

func (m *mockGroupRepo) Create(ctx context.Context, group *models.StudyGroup) error {
	group.ID = "generated"
	cp := *group
	m.created = append(m.created, &cp)
	return nil
}

func TestGroupServiceCreate(t *testing.T) {
	repo := &mockGroupRepo{}
	svc := NewGroupService(repo, validator.New(), zap.NewNop())

	group, err := svc.Create(context.Background(), "u1", CreateGroupRequest{
		Name:       "Algo circle",
		SubjectIDs: []string{"subj-algo"},
		MaxMembers: 5,
		Mode:       models.ModeOnline,
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", group.CreatorID)
	assert.Equal(t, []string{"u1"}, []string(group.Members), "creator joins as first member")
	require.Len(t, repo.created, 1)
}

func TestGroupServiceCreateValidation(t *testing.T) {
	svc := NewGroupService(&mockGroupRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), "u1", CreateGroupRequest{
		Name:       "No subjects",
		MaxMembers: 5,
	})
	require.Error(t, err)

	_, err = svc.Create(context.Background(), "u1", CreateGroupRequest{
		Name:       "Too small",
		SubjectIDs: []string{"subj-algo"},
		MaxMembers: 1,
	})
	require.Error(t, err)
}
