package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
	"github.com/moltaqa/moltaqa-api/pkg/config"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
)

// Weights of the profile-to-profile scorer. Deliberately looser than the
// primary engine: no subject gate, no boost, no recency.
const (
	moltaqaWeightSubject = 40
	moltaqaWeightMajor   = 30
	moltaqaWeightLevel   = 20
	moltaqaWeightModes   = 10

	moltaqaDefaultPageSize = 20
	moltaqaDefaultPreview  = 6
)

type moltaqaProfileRepository interface {
	ListVisible(ctx context.Context, filter models.ProfileFilter) ([]models.StudentProfileDetail, int, error)
	ListRecent(ctx context.Context, limit int) ([]models.StudentProfileDetail, error)
}

type previewCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// MoltaqaMatchService re-ranks a DB-filtered page of visible student profiles
// against explicit query parameters, and serves the unscored recent-profiles
// preview.
type MoltaqaMatchService struct {
	profiles moltaqaProfileRepository
	cache    previewCache
	logger   *zap.Logger
	cfg      config.MoltaqaConfig
}

// NewMoltaqaMatchService constructs the profile-to-profile search service.
func NewMoltaqaMatchService(profiles moltaqaProfileRepository, cache previewCache, cfg config.MoltaqaConfig, logger *zap.Logger) *MoltaqaMatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 50
	}
	if cfg.PreviewMaxLimit <= 0 {
		cfg.PreviewMaxLimit = 12
	}
	if cfg.PreviewCacheTTL <= 0 {
		cfg.PreviewCacheTTL = 2 * time.Minute
	}
	return &MoltaqaMatchService{profiles: profiles, cache: cache, logger: logger, cfg: cfg}
}

// Search returns a scored, paginated page of visible profiles. Major and
// level narrow the set at the query level; scoring happens in memory over the
// returned page.
func (s *MoltaqaMatchService) Search(ctx context.Context, userID string, req models.MoltaqaSearchRequest) (*models.MoltaqaSearchResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = moltaqaDefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	profiles, total, err := s.profiles.ListVisible(ctx, models.ProfileFilter{
		MajorID:       req.MajorID,
		Level:         req.Level,
		VisibleOnly:   true,
		ExcludeUserID: userID,
		Page:          page,
		PageSize:      limit,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list profiles")
	}

	results := make([]models.ScoredProfile, 0, len(profiles))
	for i := range profiles {
		profile := &profiles[i]
		results = append(results, models.ScoredProfile{
			ProfileID:  profile.ID,
			UserID:     profile.UserID,
			FullName:   profile.FullName,
			MajorID:    profile.MajorID,
			Level:      profile.Level,
			StudyModes: profile.StudyModes,
			MatchScore: scoreProfile(profile, req),
			CreatedAt:  profile.CreatedAt,
			SubjectIDs: profile.SubjectIDs,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].MatchScore != results[j].MatchScore {
			return results[i].MatchScore > results[j].MatchScore
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	skip := (page - 1) * limit
	return &models.MoltaqaSearchResponse{
		Results: results,
		Pagination: models.MoltaqaPagination{
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasMore: skip+len(results) < total,
		},
	}, nil
}

// Preview returns the most recently created visible profiles, unscored.
// Responses are cached in Redis and the cache fails open.
func (s *MoltaqaMatchService) Preview(ctx context.Context, limit int) ([]models.ProfileSummary, error) {
	if limit <= 0 {
		limit = moltaqaDefaultPreview
	}
	if limit > s.cfg.PreviewMaxLimit {
		limit = s.cfg.PreviewMaxLimit
	}

	key := fmt.Sprintf("moltaqa:preview:%d", limit)
	if s.cache != nil {
		var cached []models.ProfileSummary
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("preview cache lookup failed", zap.Error(err))
		}
	}

	profiles, err := s.profiles.ListRecent(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load recent profiles")
	}

	summaries := make([]models.ProfileSummary, 0, len(profiles))
	for i := range profiles {
		profile := &profiles[i]
		summaries = append(summaries, models.ProfileSummary{
			ProfileID:   profile.ID,
			FullName:    profile.FullName,
			Level:       profile.Level,
			MajorName:   deref(profile.MajorName),
			CollegeName: deref(profile.CollegeName),
			CreatedAt:   profile.CreatedAt,
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summaries, s.cfg.PreviewCacheTTL); err != nil {
			s.logger.Warn("preview cache store failed", zap.Error(err))
		}
	}

	return summaries, nil
}

// scoreProfile computes the 4-factor weighted score against the query
// parameters. A missing subject match scores 0 for that component instead of
// excluding the candidate.
func scoreProfile(profile *models.StudentProfileDetail, req models.MoltaqaSearchRequest) int {
	score := 0
	if req.SubjectID != "" && containsString(profile.SubjectIDs, req.SubjectID) {
		score += moltaqaWeightSubject
	}
	if req.MajorID != "" && req.MajorID == profile.MajorID {
		score += moltaqaWeightMajor
	}
	if req.Level != "" && req.Level == profile.Level {
		score += moltaqaWeightLevel
	}
	if modesOverlap(req.StudyModes, profile.StudyModes) {
		score += moltaqaWeightModes
	}
	return score
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

// modesOverlap reports a case-insensitive non-empty intersection.
func modesOverlap(queried, declared []string) bool {
	if len(queried) == 0 || len(declared) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(declared))
	for _, mode := range declared {
		set[strings.ToLower(mode)] = struct{}{}
	}
	for _, mode := range queried {
		if _, ok := set[strings.ToLower(mode)]; ok {
			return true
		}
	}
	return false
}
