package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
	"github.com/moltaqa/moltaqa-api/pkg/config"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
)

type mockSubjectRepo struct {
	subjects map[string]*models.Subject
}

func (m *mockSubjectRepo) FindSubjectByID(ctx context.Context, id string) (*models.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type mockMatchProfileRepo struct {
	profiles map[string]*models.StudentProfileDetail
	touched  []string
}

func (m *mockMatchProfileRepo) FindByUserID(ctx context.Context, userID string) (*models.StudentProfileDetail, error) {
	if p, ok := m.profiles[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockMatchProfileRepo) TouchActivity(ctx context.Context, userID string, ts time.Time) error {
	m.touched = append(m.touched, userID)
	return nil
}

type mockMatchAdRepo struct {
	ads     map[models.AdType][]models.AdDetail
	listErr error
}

func (m *mockMatchAdRepo) List(ctx context.Context, filter models.AdFilter) ([]models.AdDetail, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.ads[filter.AdType], nil
}

type mockMatchGroupRepo struct {
	groups []models.StudyGroup
}

func (m *mockMatchGroupRepo) ListBySubject(ctx context.Context, filter models.GroupFilter) ([]models.StudyGroup, error) {
	return m.groups, nil
}

type mockMatchTutorRepo struct {
	tutors []models.TutorProfile
}

func (m *mockMatchTutorRepo) ListBySubject(ctx context.Context, subjectID string, limit int) ([]models.TutorProfile, error) {
	return m.tutors, nil
}

func newTestMatchService(subjects *mockSubjectRepo, profiles *mockMatchProfileRepo, ads *mockMatchAdRepo, groups *mockMatchGroupRepo, tutors *mockMatchTutorRepo) *MatchService {
	if subjects == nil {
		subjects = &mockSubjectRepo{subjects: map[string]*models.Subject{
			"subj-algo": {ID: "subj-algo", MajorID: "major-cs", Level: "3"},
		}}
	}
	if profiles == nil {
		profiles = &mockMatchProfileRepo{profiles: map[string]*models.StudentProfileDetail{
			"u1": {StudentProfile: models.StudentProfile{ID: "p1", UserID: "u1", MajorID: "major-cs", Level: "3"}},
		}}
	}
	if ads == nil {
		ads = &mockMatchAdRepo{}
	}
	if groups == nil {
		groups = &mockMatchGroupRepo{}
	}
	if tutors == nil {
		tutors = &mockMatchTutorRepo{}
	}
	return NewMatchService(subjects, profiles, ads, groups, tutors, nil, config.SearchConfig{}, validator.New(), zap.NewNop())
}

func partnerAd(id, creatorID, majorID, level string, signals models.HelpSignals) models.AdDetail {
	return models.AdDetail{
		Ad: models.Ad{
			ID:        id,
			CreatorID: creatorID,
			AdType:    models.AdTypePartner,
			SubjectID: "subj-algo",
			Active:    true,
			Options: models.AdOptions{
				Partner: &models.PartnerOptions{HelpSignals: signals, Mode: models.ModeOnline},
			},
		},
		CreatorName:    "Candidate " + id,
		CreatorMajorID: &majorID,
		CreatorLevel:   &level,
	}
}

func TestMatchSearchInvalidType(t *testing.T) {
	svc := newTestMatchService(nil, nil, nil, nil, nil)

	_, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{
		SubjectID:  "subj-algo",
		SearchType: "mentor",
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidSearchType.Code, appErr.Code)
}

func TestMatchSearchMissingFields(t *testing.T) {
	svc := newTestMatchService(nil, nil, nil, nil, nil)

	_, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestMatchSearchNoProfile(t *testing.T) {
	profiles := &mockMatchProfileRepo{profiles: map[string]*models.StudentProfileDetail{}}
	svc := newTestMatchService(nil, profiles, nil, nil, nil)

	_, err := svc.Search(context.Background(), "ghost", models.MatchSearchRequest{
		SubjectID:  "subj-algo",
		SearchType: models.SearchPartner,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNoStudentProfile.Code, appErr.Code)
}

func TestMatchSearchUnknownSubject(t *testing.T) {
	svc := newTestMatchService(nil, nil, nil, nil, nil)

	_, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{
		SubjectID:  "subj-missing",
		SearchType: models.SearchPartner,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestMatchSearchTouchesActivity(t *testing.T) {
	profiles := &mockMatchProfileRepo{profiles: map[string]*models.StudentProfileDetail{
		"u1": {StudentProfile: models.StudentProfile{ID: "p1", UserID: "u1", MajorID: "major-cs", Level: "3"}},
	}}
	svc := newTestMatchService(nil, profiles, nil, nil, nil)

	_, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{
		SubjectID:  "subj-algo",
		SearchType: models.SearchPartner,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, profiles.touched)
}

func TestMatchSearchPartnersRankedAndTruncated(t *testing.T) {
	ads := &mockMatchAdRepo{ads: map[models.AdType][]models.AdDetail{}}
	for i := 0; i < 60; i++ {
		major := "major-bio"
		if i%2 == 0 {
			major = "major-cs"
		}
		ads.ads[models.AdTypePartner] = append(ads.ads[models.AdTypePartner],
			partnerAd(fmt.Sprintf("ad-%02d", i), fmt.Sprintf("c-%02d", i), major, "3", models.HelpSignals{}))
	}
	svc := newTestMatchService(nil, nil, ads, nil, nil)

	resp, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{
		SubjectID:  "subj-algo",
		SearchType: models.SearchPartner,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 50)

	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].MatchScore, resp.Results[i].MatchScore)
	}
	// Equal scores keep fetch order.
	assert.Equal(t, "ad-00", resp.Results[0].AdID)
	assert.Equal(t, "ad-02", resp.Results[1].AdID)
}

func TestMatchSearchPartnerComplementarityOrdering(t *testing.T) {
	ads := &mockMatchAdRepo{ads: map[models.AdType][]models.AdDetail{
		models.AdTypePartner: {
			partnerAd("ad-plain", "c1", "major-cs", "3", models.HelpSignals{}),
			partnerAd("ad-ready", "c2", "major-cs", "3", models.HelpSignals{ReadyToHelp: true}),
		},
	}}
	profiles := &mockMatchProfileRepo{profiles: map[string]*models.StudentProfileDetail{
		"u1": {StudentProfile: models.StudentProfile{
			ID: "p1", UserID: "u1", MajorID: "major-cs", Level: "3",
			StatusForHelp: models.StatusNeedExplain,
		}},
	}}
	svc := newTestMatchService(nil, profiles, ads, nil, nil)

	resp, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{
		SubjectID:  "subj-algo",
		SearchType: models.SearchPartner,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, "ad-ready", resp.Results[0].AdID)
	assert.Equal(t, 25, resp.Results[0].MatchScore-resp.Results[1].MatchScore)
}

func TestMatchSearchHelpExcludesUnready(t *testing.T) {
	ready := models.AdDetail{
		Ad: models.Ad{
			ID: "ad-ready", CreatorID: "c1", AdType: models.AdTypeHelp, SubjectID: "subj-algo", Active: true,
			Options: models.AdOptions{Help: &models.HelpOptions{
				HelpSignals: models.HelpSignals{ReadyToExplain: true},
			}},
		},
		CreatorName: "Ready",
	}
	empty := models.AdDetail{
		Ad: models.Ad{
			ID: "ad-empty", CreatorID: "c2", AdType: models.AdTypeHelp, SubjectID: "subj-algo", Active: true,
		},
		CreatorName: "Empty",
	}
	ads := &mockMatchAdRepo{ads: map[models.AdType][]models.AdDetail{
		models.AdTypeHelp: {empty, ready},
	}}
	svc := newTestMatchService(nil, nil, ads, nil, nil)

	resp, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{
		SubjectID:  "subj-algo",
		SearchType: models.SearchHelp,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "ad-ready", resp.Results[0].AdID)
}

func TestMatchSearchGroupsMergeStreams(t *testing.T) {
	groups := &mockMatchGroupRepo{groups: []models.StudyGroup{
		{
			ID: "g1", CreatorID: "c1", Name: "Algo circle",
			SubjectIDs: []string{"subj-algo"}, MaxMembers: 6,
			Members: []string{"c1", "c2"}, Mode: models.ModeOnline,
		},
	}}
	ads := &mockMatchAdRepo{ads: map[models.AdType][]models.AdDetail{
		models.AdTypeGroup: {
			{
				Ad: models.Ad{
					ID: "ad-g1", CreatorID: "c3", AdType: models.AdTypeGroup, SubjectID: "subj-algo", Active: true,
					Options: models.AdOptions{Group: &models.GroupOptions{MaxMembers: 4, Mode: models.ModeOnline}},
				},
				CreatorName: "Recruiter",
			},
		},
	}}
	svc := newTestMatchService(nil, nil, ads, groups, nil)

	resp, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{
		SubjectID:  "subj-algo",
		SearchType: models.SearchGroup,
		Mode:       models.ModeOnline,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	ids := []string{}
	for _, r := range resp.Results {
		assert.Equal(t, models.SearchGroup, r.Type)
		if r.GroupID != "" {
			ids = append(ids, r.GroupID)
		} else {
			ids = append(ids, r.AdID)
		}
	}
	assert.ElementsMatch(t, []string{"g1", "ad-g1"}, ids)
	// Both streams land in one jointly sorted list.
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].MatchScore, resp.Results[i].MatchScore)
	}
}

func TestMatchSearchTutorsPricingFallback(t *testing.T) {
	tutors := &mockMatchTutorRepo{tutors: []models.TutorProfile{
		{
			ID: "t1", UserID: "tu1",
			MajorIDs:   []string{"major-cs"},
			SubjectIDs: []string{"subj-algo"},
			Levels:     []string{"3", "4"},
			Pricing: models.PricingTable{
				"subj-algo": models.SubjectPricing{Monthly: 120, Semester: 400},
			},
			TeachingMode: models.ModeBoth,
			Badge:        "verified",
		},
		{
			ID: "t2", UserID: "tu2",
			MajorIDs:     []string{"major-bio"},
			SubjectIDs:   []string{"subj-algo"},
			Levels:       []string{"1"},
			MonthlyPrice: 80,
			TeachingMode: models.ModeOnline,
		},
	}}
	svc := newTestMatchService(nil, nil, nil, nil, tutors)

	resp, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{
		SubjectID:  "subj-algo",
		SearchType: models.SearchTutor,
		Mode:       models.ModeOnline,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)

	assert.Equal(t, "t1", resp.Results[0].TutorID)
	require.NotNil(t, resp.Results[0].Pricing)
	assert.Equal(t, float64(120), resp.Results[0].Pricing.Monthly)

	require.NotNil(t, resp.Results[1].Pricing)
	assert.Equal(t, float64(80), resp.Results[1].Pricing.Monthly)
}

func TestMatchSearchRepositoryErrorWrapped(t *testing.T) {
	ads := &mockMatchAdRepo{listErr: errors.New("db down")}
	svc := newTestMatchService(nil, nil, ads, nil, nil)

	_, err := svc.Search(context.Background(), "u1", models.MatchSearchRequest{
		SubjectID:  "subj-algo",
		SearchType: models.SearchPartner,
	})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInternal.Code, appErr.Code)
}
