package service

import (
	"strconv"
	"strings"
	"time"

	"github.com/moltaqa/moltaqa-api/internal/models"
)

// Weights of the additive base-score model. Values are load-bearing: the
// ranking the legacy clients expect depends on these exact numbers.
const (
	weightSubject = 40
	weightMajor   = 25
	weightLevel   = 20
	weightMode    = 10
	weightRecency = 5

	maxMatchScore = 100
	maxBoost      = 25

	recencyWindow = 24 * time.Hour
)

// computeBaseMatchScore scores a candidate against the searching student on a
// 0-100 scale. Subject relevance is a hard gate: candidates that do not share
// or offer the target subject score 0 outright. Missing fields on either side
// contribute 0 for their component, never an error.
func computeBaseMatchScore(searcher *models.StudentProfile, subject *models.Subject, candidate models.CandidateSignal, preferredMode string, now time.Time) int {
	if !candidate.SubjectMatches {
		return 0
	}
	score := weightSubject

	score += majorAffinity(searcher, subject, candidate)
	score += levelProximity(searcherLevel(searcher), candidate.Level)
	score += modeCompatibility(preferredMode, candidate.Mode)

	if candidate.LastActiveAt != nil && now.Sub(*candidate.LastActiveAt) <= recencyWindow {
		score += weightRecency
	}

	return clampScore(score)
}

// majorAffinity awards full weight on an exact major match and 60% on a
// subject-major match. The branch order is a contract: exact candidate match,
// then searcher-vs-subject, then candidate-vs-subject. First match wins,
// partial triggers never stack.
func majorAffinity(searcher *models.StudentProfile, subject *models.Subject, candidate models.CandidateSignal) int {
	searcherMajor := ""
	if searcher != nil {
		searcherMajor = searcher.MajorID
	}
	subjectMajor := ""
	if subject != nil {
		subjectMajor = subject.MajorID
	}
	partial := weightMajor * 60 / 100

	switch {
	case candidate.MajorID != "" && candidate.MajorID == searcherMajor:
		return weightMajor
	case searcherMajor != "" && searcherMajor == subjectMajor:
		return partial
	case candidate.MajorID != "" && candidate.MajorID == subjectMajor:
		return partial
	}
	return 0
}

// levelProximity awards full weight on exact equality and half weight when
// both levels parse to numbers exactly one apart.
// TODO: refine proximity curve once level labels are normalized upstream.
func levelProximity(searcherLevel, candidateLevel string) int {
	if searcherLevel == "" || candidateLevel == "" {
		return 0
	}
	if searcherLevel == candidateLevel {
		return weightLevel
	}
	a, okA := parseLevel(searcherLevel)
	b, okB := parseLevel(candidateLevel)
	if okA && okB {
		diff := a - b
		if diff < 0 {
			diff = -diff
		}
		if diff == 1 {
			return weightLevel / 2
		}
	}
	return 0
}

// modeCompatibility awards weight-1 for any compatible pairing: "both" on
// either side, or equal explicit modes. Incompatible or missing modes score 0.
func modeCompatibility(preferred, candidate string) int {
	if preferred == "" || candidate == "" {
		return 0
	}
	if preferred == models.ModeBoth || candidate == models.ModeBoth || strings.EqualFold(preferred, candidate) {
		return weightMode - 1
	}
	return 0
}

// parseLevel extracts the first digit run embedded in a level label
// ("3", "Level 3", "L3"). Labels without digits do not parse.
func parseLevel(raw string) (int, bool) {
	start := -1
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}
	end := start
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(raw[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// computeComplementarityBoost rewards asymmetric need/offer pairings on top
// of the base score. It never returns a negative adjustment; the combined
// total is clamped at the call site.
func computeComplementarityBoost(searchType models.SearchType, searcher *models.StudentProfile, candidate models.HelpSignals, helpOriented bool) int {
	switch searchType {
	case models.SearchPartner:
		switch {
		case searcher.NeedsHelp() && candidate.SignalsReadiness():
			return maxBoost
		case searcherCanExplain(searcher) && candidate.SignalsNeed():
			return maxBoost * 80 / 100
		case searcher.NeedsHelp() && candidate.SignalsNeed():
			return maxBoost * 40 / 100
		}
	case models.SearchHelp:
		if searcher.NeedsHelp() && candidate.SignalsReadiness() {
			return maxBoost
		}
	case models.SearchGroup:
		if helpOriented && searcher.NeedsHelp() {
			return maxBoost * 40 / 100
		}
	}
	// Tutors are ranked on base score alone.
	return 0
}

func searcherCanExplain(p *models.StudentProfile) bool {
	if p == nil {
		return false
	}
	return p.StatusForHelp == models.StatusCanExplain || p.StatusForPartners == models.StatusCanExplain
}

func searcherLevel(p *models.StudentProfile) string {
	if p == nil {
		return ""
	}
	return p.Level
}

func clampScore(score int) int {
	if score > maxMatchScore {
		return maxMatchScore
	}
	if score < 0 {
		return 0
	}
	return score
}
