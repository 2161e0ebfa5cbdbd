package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
	"github.com/moltaqa/moltaqa-api/pkg/config"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
)

type mockMoltaqaProfileRepo struct {
	visible []models.StudentProfileDetail
	recent  []models.StudentProfileDetail

	recentCalls int
}

func (m *mockMoltaqaProfileRepo) ListVisible(ctx context.Context, filter models.ProfileFilter) ([]models.StudentProfileDetail, int, error) {
	filtered := make([]models.StudentProfileDetail, 0, len(m.visible))
	for _, p := range m.visible {
		if filter.MajorID != "" && p.MajorID != filter.MajorID {
			continue
		}
		if filter.Level != "" && p.Level != filter.Level {
			continue
		}
		if filter.ExcludeUserID != "" && p.UserID == filter.ExcludeUserID {
			continue
		}
		filtered = append(filtered, p)
	}

	total := len(filtered)
	start := (filter.Page - 1) * filter.PageSize
	if start > total {
		start = total
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func (m *mockMoltaqaProfileRepo) ListRecent(ctx context.Context, limit int) ([]models.StudentProfileDetail, error) {
	m.recentCalls++
	if limit > len(m.recent) {
		limit = len(m.recent)
	}
	return m.recent[:limit], nil
}

type mockPreviewCache struct {
	store map[string][]byte
	sets  int
}

func (m *mockPreviewCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.store[key]
	if !ok {
		return appErrors.Clone(appErrors.ErrCacheMiss, "")
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockPreviewCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	m.store[key] = raw
	m.sets++
	return nil
}

func visibleProfiles(n int) []models.StudentProfileDetail {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	profiles := make([]models.StudentProfileDetail, 0, n)
	for i := 0; i < n; i++ {
		profiles = append(profiles, models.StudentProfileDetail{
			StudentProfile: models.StudentProfile{
				ID:         fmt.Sprintf("p-%02d", i),
				UserID:     fmt.Sprintf("u-%02d", i),
				MajorID:    "major-cs",
				Level:      "3",
				SubjectIDs: []string{"subj-algo"},
				StudyModes: []string{models.ModeOnline},
				Visible:    true,
				CreatedAt:  base.Add(time.Duration(i) * time.Hour),
			},
			FullName: fmt.Sprintf("Student %02d", i),
		})
	}
	return profiles
}

func TestMoltaqaSearchPagination(t *testing.T) {
	repo := &mockMoltaqaProfileRepo{visible: visibleProfiles(55)}
	svc := NewMoltaqaMatchService(repo, nil, config.MoltaqaConfig{}, zap.NewNop())

	first, err := svc.Search(context.Background(), "searcher", models.MoltaqaSearchRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, first.Results, 20)
	assert.Equal(t, 55, first.Pagination.Total)
	assert.True(t, first.Pagination.HasMore)

	last, err := svc.Search(context.Background(), "searcher", models.MoltaqaSearchRequest{Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, last.Results, 15)
	assert.False(t, last.Pagination.HasMore)
}

func TestMoltaqaSearchDefaultsAndCaps(t *testing.T) {
	repo := &mockMoltaqaProfileRepo{visible: visibleProfiles(100)}
	svc := NewMoltaqaMatchService(repo, nil, config.MoltaqaConfig{MaxPageSize: 50}, zap.NewNop())

	defaulted, err := svc.Search(context.Background(), "searcher", models.MoltaqaSearchRequest{})
	require.NoError(t, err)
	assert.Len(t, defaulted.Results, 20)
	assert.Equal(t, 1, defaulted.Pagination.Page)

	capped, err := svc.Search(context.Background(), "searcher", models.MoltaqaSearchRequest{Limit: 500})
	require.NoError(t, err)
	assert.Len(t, capped.Results, 50)
	assert.Equal(t, 50, capped.Pagination.Limit)
}

func TestMoltaqaSearchExcludesSearcher(t *testing.T) {
	repo := &mockMoltaqaProfileRepo{visible: visibleProfiles(5)}
	svc := NewMoltaqaMatchService(repo, nil, config.MoltaqaConfig{}, zap.NewNop())

	resp, err := svc.Search(context.Background(), "u-02", models.MoltaqaSearchRequest{})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 4)
	for _, r := range resp.Results {
		assert.NotEqual(t, "u-02", r.UserID)
	}
}

func TestMoltaqaSearchWeights(t *testing.T) {
	profile := &models.StudentProfileDetail{
		StudentProfile: models.StudentProfile{
			MajorID:    "major-cs",
			Level:      "3",
			SubjectIDs: []string{"subj-algo"},
			StudyModes: []string{"Online"},
		},
	}

	full := scoreProfile(profile, models.MoltaqaSearchRequest{
		SubjectID:  "subj-algo",
		MajorID:    "major-cs",
		Level:      "3",
		StudyModes: []string{"online"},
	})
	assert.Equal(t, 100, full)

	assert.Equal(t, 40, scoreProfile(profile, models.MoltaqaSearchRequest{SubjectID: "subj-algo"}))
	assert.Equal(t, 30, scoreProfile(profile, models.MoltaqaSearchRequest{MajorID: "major-cs"}))
	assert.Equal(t, 20, scoreProfile(profile, models.MoltaqaSearchRequest{Level: "3"}))
	assert.Equal(t, 10, scoreProfile(profile, models.MoltaqaSearchRequest{StudyModes: []string{"ONLINE"}}))
	assert.Equal(t, 0, scoreProfile(profile, models.MoltaqaSearchRequest{SubjectID: "subj-other"}))
}

func TestMoltaqaSearchOrdersByScoreThenRecency(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &mockMoltaqaProfileRepo{visible: []models.StudentProfileDetail{
		{StudentProfile: models.StudentProfile{ID: "old-low", UserID: "a", CreatedAt: base}},
		{StudentProfile: models.StudentProfile{ID: "new-high", UserID: "b", SubjectIDs: []string{"subj-algo"}, CreatedAt: base.Add(time.Hour)}},
		{StudentProfile: models.StudentProfile{ID: "old-high", UserID: "c", SubjectIDs: []string{"subj-algo"}, CreatedAt: base}},
		{StudentProfile: models.StudentProfile{ID: "new-low", UserID: "d", CreatedAt: base.Add(2 * time.Hour)}},
	}}
	svc := NewMoltaqaMatchService(repo, nil, config.MoltaqaConfig{}, zap.NewNop())

	// No scoring inputs: everyone ties at 0, so recency decides.
	resp, err := svc.Search(context.Background(), "searcher", models.MoltaqaSearchRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Results, 4)
	assert.Equal(t, "new-low", resp.Results[0].ProfileID)

	// Subject match dominates; recency only breaks the tie within each score band.
	scored, err := svc.Search(context.Background(), "searcher", models.MoltaqaSearchRequest{
		SubjectID: "subj-algo",
	})
	require.NoError(t, err)
	require.Len(t, scored.Results, 4)
	assert.Equal(t, "new-high", scored.Results[0].ProfileID)
	assert.Equal(t, "old-high", scored.Results[1].ProfileID)
	assert.Equal(t, "new-low", scored.Results[2].ProfileID)
	assert.Equal(t, "old-low", scored.Results[3].ProfileID)
}

func TestMoltaqaPreviewCaching(t *testing.T) {
	repo := &mockMoltaqaProfileRepo{recent: visibleProfiles(10)}
	cache := &mockPreviewCache{}
	svc := NewMoltaqaMatchService(repo, cache, config.MoltaqaConfig{}, zap.NewNop())

	first, err := svc.Preview(context.Background(), 6)
	require.NoError(t, err)
	assert.Len(t, first, 6)
	assert.Equal(t, 1, repo.recentCalls)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Preview(context.Background(), 6)
	require.NoError(t, err)
	assert.Len(t, second, 6)
	assert.Equal(t, 1, repo.recentCalls, "second call is served from cache")
}

func TestMoltaqaPreviewLimitClamps(t *testing.T) {
	repo := &mockMoltaqaProfileRepo{recent: visibleProfiles(20)}
	svc := NewMoltaqaMatchService(repo, nil, config.MoltaqaConfig{}, zap.NewNop())

	defaulted, err := svc.Preview(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, defaulted, 6)

	capped, err := svc.Preview(context.Background(), 40)
	require.NoError(t, err)
	assert.Len(t, capped, 12)
}
