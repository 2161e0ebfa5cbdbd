package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/moltaqa/moltaqa-api/internal/models"
	"github.com/moltaqa/moltaqa-api/pkg/config"
	appErrors "github.com/moltaqa/moltaqa-api/pkg/errors"
)

type matchSubjectRepository interface {
	FindSubjectByID(ctx context.Context, id string) (*models.Subject, error)
}

type matchProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*models.StudentProfileDetail, error)
	TouchActivity(ctx context.Context, userID string, ts time.Time) error
}

type matchAdRepository interface {
	List(ctx context.Context, filter models.AdFilter) ([]models.AdDetail, error)
}

type matchGroupRepository interface {
	ListBySubject(ctx context.Context, filter models.GroupFilter) ([]models.StudyGroup, error)
}

type matchTutorRepository interface {
	ListBySubject(ctx context.Context, subjectID string, limit int) ([]models.TutorProfile, error)
}

// MatchService orchestrates the candidate search: it resolves the searcher's
// profile and the target subject, dispatches to the finder for the requested
// search type, and returns ranked, truncated results.
type MatchService struct {
	subjects  matchSubjectRepository
	profiles  matchProfileRepository
	ads       matchAdRepository
	groups    matchGroupRepository
	tutors    matchTutorRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       config.SearchConfig
}

// NewMatchService constructs the match service.
func NewMatchService(subjects matchSubjectRepository, profiles matchProfileRepository, ads matchAdRepository, groups matchGroupRepository, tutors matchTutorRepository, metrics *MetricsService, cfg config.SearchConfig, validate *validator.Validate, logger *zap.Logger) *MatchService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CandidateFetchCap <= 0 {
		cfg.CandidateFetchCap = 100
	}
	if cfg.ResultCap <= 0 {
		cfg.ResultCap = 50
	}
	return &MatchService{
		subjects:  subjects,
		profiles:  profiles,
		ads:       ads,
		groups:    groups,
		tutors:    tutors,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// Search runs a candidate search on behalf of the authenticated student.
// Only callers with a linked student profile may search.
func (s *MatchService) Search(ctx context.Context, userID string, req models.MatchSearchRequest) (*models.MatchSearchResponse, error) {
	started := time.Now()

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "subjectId and searchType are required")
	}
	if !req.SearchType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrInvalidSearchType, "")
	}

	profile, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNoStudentProfile, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student profile")
	}

	subject, err := s.subjects.FindSubjectByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	if err := s.profiles.TouchActivity(ctx, userID, time.Now().UTC()); err != nil {
		s.logger.Warn("failed to touch profile activity", zap.String("user_id", userID), zap.Error(err))
	}

	var results []models.CandidateResult
	switch req.SearchType {
	case models.SearchPartner:
		results, err = s.findPartners(ctx, profile, subject, req.Mode)
	case models.SearchGroup:
		results, err = s.findGroups(ctx, profile, subject, req.Mode)
	case models.SearchTutor:
		results, err = s.findTutors(ctx, profile, subject, req.Mode)
	case models.SearchHelp:
		results, err = s.findHelpers(ctx, profile, subject, req.Mode)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "candidate search failed")
	}

	if s.metrics != nil {
		s.metrics.ObserveMatchSearch(string(req.SearchType), len(results), time.Since(started))
	}

	return &models.MatchSearchResponse{
		SubjectID:  subject.ID,
		SearchType: req.SearchType,
		Results:    results,
	}, nil
}

// findPartners scores partner ads for the target subject. The repository
// query already filters by subject, so SubjectMatches is always true here.
func (s *MatchService) findPartners(ctx context.Context, profile *models.StudentProfileDetail, subject *models.Subject, preferredMode string) ([]models.CandidateResult, error) {
	ads, err := s.ads.List(ctx, models.AdFilter{
		AdType:         models.AdTypePartner,
		SubjectID:      subject.ID,
		ExcludeCreator: profile.UserID,
		ActiveOnly:     true,
		Limit:          s.cfg.CandidateFetchCap,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	results := make([]models.CandidateResult, 0, len(ads))
	for i := range ads {
		ad := &ads[i]
		opts := ad.Options.PartnerOrDefault()
		signal := models.CandidateSignal{
			MajorID:        deref(ad.CreatorMajorID),
			Level:          deref(ad.CreatorLevel),
			Mode:           partnerAdMode(opts),
			LastActiveAt:   ad.LastActiveAt,
			SubjectMatches: true,
		}
		base := computeBaseMatchScore(&profile.StudentProfile, subject, signal, preferredMode, now)
		boost := computeComplementarityBoost(models.SearchPartner, &profile.StudentProfile, opts.HelpSignals, false)
		results = append(results, models.CandidateResult{
			Type:           models.SearchPartner,
			MatchScore:     clampScore(base + boost),
			UserID:         ad.CreatorID,
			AdID:           ad.ID,
			SubjectID:      subject.ID,
			BasicProfile:   adCreatorProfile(ad),
			PartnerOptions: &opts,
		})
	}
	return s.rank(results), nil
}

// findGroups merges two candidate streams: standing study groups and
// group-recruiting ads. Groups carry no per-student academic context, so they
// are scored against the subject's own major and level as a stand-in.
// Both streams are ranked jointly so neither representation is favored.
// TODO: allow group major tagging so groups stop borrowing the subject's context.
func (s *MatchService) findGroups(ctx context.Context, profile *models.StudentProfileDetail, subject *models.Subject, preferredMode string) ([]models.CandidateResult, error) {
	groups, err := s.groups.ListBySubject(ctx, models.GroupFilter{SubjectID: subject.ID, Limit: s.cfg.CandidateFetchCap})
	if err != nil {
		return nil, err
	}
	ads, err := s.ads.List(ctx, models.AdFilter{
		AdType:         models.AdTypeGroup,
		SubjectID:      subject.ID,
		ExcludeCreator: profile.UserID,
		ActiveOnly:     true,
		Limit:          s.cfg.CandidateFetchCap,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	results := make([]models.CandidateResult, 0, len(groups)+len(ads))

	for i := range groups {
		group := &groups[i]
		signal := models.CandidateSignal{
			MajorID:        subject.MajorID,
			Level:          subject.Level,
			Mode:           group.Mode,
			SubjectMatches: true,
		}
		base := computeBaseMatchScore(&profile.StudentProfile, subject, signal, preferredMode, now)
		boost := computeComplementarityBoost(models.SearchGroup, &profile.StudentProfile, models.HelpSignals{}, group.HelpOriented)
		results = append(results, models.CandidateResult{
			Type:       models.SearchGroup,
			MatchScore: clampScore(base + boost),
			GroupID:    group.ID,
			SubjectIDs: group.SubjectIDs,
			Size:       len(group.Members),
			MaxMembers: group.MaxMembers,
			Mode:       group.Mode,
			BasicInfo: &models.GroupInfo{
				Name:        group.Name,
				Description: group.Description,
				CreatorID:   group.CreatorID,
			},
		})
	}

	for i := range ads {
		ad := &ads[i]
		opts := ad.Options.GroupOrDefault()
		majorID := deref(ad.CreatorMajorID)
		if majorID == "" {
			majorID = subject.MajorID
		}
		level := deref(ad.CreatorLevel)
		if level == "" {
			level = subject.Level
		}
		signal := models.CandidateSignal{
			MajorID:        majorID,
			Level:          level,
			Mode:           opts.Mode,
			LastActiveAt:   ad.LastActiveAt,
			SubjectMatches: true,
		}
		base := computeBaseMatchScore(&profile.StudentProfile, subject, signal, preferredMode, now)
		boost := computeComplementarityBoost(models.SearchGroup, &profile.StudentProfile, models.HelpSignals{}, opts.HelpOriented)
		subjectIDs := opts.SubjectIDs
		if len(subjectIDs) == 0 {
			subjectIDs = []string{subject.ID}
		}
		results = append(results, models.CandidateResult{
			Type:       models.SearchGroup,
			MatchScore: clampScore(base + boost),
			AdID:       ad.ID,
			SubjectIDs: subjectIDs,
			MaxMembers: opts.MaxMembers,
			Mode:       opts.Mode,
			BasicInfo: &models.GroupInfo{
				Name:        ad.CreatorName,
				Description: ad.Description,
				CreatorID:   ad.CreatorID,
			},
		})
	}

	return s.rank(results), nil
}

// findTutors scores tutor profiles teaching the subject. Tutors are matched
// on whether they can teach at the searcher's level, not on exact level
// identity: the searcher's level is used when the tutor covers it, otherwise
// the tutor's first taught level stands in. No complementarity boost applies.
func (s *MatchService) findTutors(ctx context.Context, profile *models.StudentProfileDetail, subject *models.Subject, preferredMode string) ([]models.CandidateResult, error) {
	tutors, err := s.tutors.ListBySubject(ctx, subject.ID, s.cfg.CandidateFetchCap)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	results := make([]models.CandidateResult, 0, len(tutors))
	for i := range tutors {
		tutor := &tutors[i]
		signal := models.CandidateSignal{
			MajorID:        bestAvailable(tutor.MajorIDs, profile.MajorID),
			Level:          bestAvailable(tutor.Levels, profile.Level),
			Mode:           tutor.TeachingMode,
			LastActiveAt:   tutor.LastActiveAt,
			SubjectMatches: true,
		}
		score := computeBaseMatchScore(&profile.StudentProfile, subject, signal, preferredMode, now)
		pricing := tutor.PricingFor(subject.ID)
		results = append(results, models.CandidateResult{
			Type:       models.SearchTutor,
			MatchScore: score,
			TutorID:    tutor.ID,
			UserID:     tutor.UserID,
			SubjectID:  subject.ID,
			Pricing:    &pricing,
			Badge:      tutor.Badge,
		})
	}
	return s.rank(results), nil
}

// findHelpers scores help ads. Ads that do not declare readiness to help are
// excluded before scoring, not merely ranked lower.
func (s *MatchService) findHelpers(ctx context.Context, profile *models.StudentProfileDetail, subject *models.Subject, preferredMode string) ([]models.CandidateResult, error) {
	ads, err := s.ads.List(ctx, models.AdFilter{
		AdType:         models.AdTypeHelp,
		SubjectID:      subject.ID,
		ExcludeCreator: profile.UserID,
		ActiveOnly:     true,
		Limit:          s.cfg.CandidateFetchCap,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	results := make([]models.CandidateResult, 0, len(ads))
	for i := range ads {
		ad := &ads[i]
		opts := ad.Options.HelpOrDefault()
		if !opts.SignalsReadiness() {
			continue
		}
		signal := models.CandidateSignal{
			MajorID:        deref(ad.CreatorMajorID),
			Level:          deref(ad.CreatorLevel),
			Mode:           opts.Mode,
			LastActiveAt:   ad.LastActiveAt,
			SubjectMatches: true,
		}
		base := computeBaseMatchScore(&profile.StudentProfile, subject, signal, preferredMode, now)
		boost := computeComplementarityBoost(models.SearchHelp, &profile.StudentProfile, opts.HelpSignals, false)
		results = append(results, models.CandidateResult{
			Type:         models.SearchHelp,
			MatchScore:   clampScore(base + boost),
			UserID:       ad.CreatorID,
			AdID:         ad.ID,
			SubjectID:    subject.ID,
			BasicProfile: adCreatorProfile(ad),
			HelpOptions:  &opts,
		})
	}
	return s.rank(results), nil
}

// rank sorts non-increasing by score and truncates to the result cap. The
// stable sort keeps fetch order among equal scores.
func (s *MatchService) rank(results []models.CandidateResult) []models.CandidateResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	if len(results) > s.cfg.ResultCap {
		results = results[:s.cfg.ResultCap]
	}
	return results
}

func adCreatorProfile(ad *models.AdDetail) *models.BasicProfile {
	return &models.BasicProfile{
		Name:    ad.CreatorName,
		Gender:  ad.CreatorGender,
		Level:   deref(ad.CreatorLevel),
		Major:   deref(ad.CreatorMajor),
		College: deref(ad.CreatorCollege),
	}
}

func partnerAdMode(opts models.PartnerOptions) string {
	if opts.Mode != "" {
		return opts.Mode
	}
	if len(opts.Modes) > 0 {
		return opts.Modes[0]
	}
	return ""
}

// bestAvailable prefers the searcher's own value when the candidate list
// covers it, otherwise falls back to the candidate's first declared value.
func bestAvailable(available []string, preferred string) string {
	for _, v := range available {
		if v == preferred {
			return v
		}
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
