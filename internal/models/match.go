package models

import "time"

// SearchType selects which candidate finder serves a match search.
type SearchType string

const (
	SearchPartner SearchType = "partner"
	SearchGroup   SearchType = "group"
	SearchTutor   SearchType = "tutor"
	SearchHelp    SearchType = "help"
)

// Valid reports whether the search type is a known value.
func (t SearchType) Valid() bool {
	switch t {
	case SearchPartner, SearchGroup, SearchTutor, SearchHelp:
		return true
	}
	return false
}

// CandidateSignal is the normalized shape every finder builds before calling
// the shared scorer. SubjectMatches is pre-computed by the finder; the scorer
// treats it as a hard gate.
type CandidateSignal struct {
	MajorID        string
	Level          string
	Mode           string
	LastActiveAt   *time.Time
	SubjectMatches bool
}

// BasicProfile is the candidate snippet embedded in partner/help results.
// Field names follow the wire contract of the legacy clients.
type BasicProfile struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Level   string `json:"level"`
	Major   string `json:"major"`
	College string `json:"college"`
}

// GroupInfo is the group snippet embedded in group results.
type GroupInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatorID   string `json:"creatorId"`
}

// CandidateResult is a scored search hit. The populated fields depend on the
// search type; see the per-finder payload contract.
type CandidateResult struct {
	Type           SearchType      `json:"type"`
	MatchScore     int             `json:"matchScore"`
	UserID         string          `json:"userId,omitempty"`
	AdID           string          `json:"adId,omitempty"`
	GroupID        string          `json:"groupId,omitempty"`
	TutorID        string          `json:"tutorId,omitempty"`
	SubjectID      string          `json:"subjectId,omitempty"`
	SubjectIDs     []string        `json:"subjectIds,omitempty"`
	BasicProfile   *BasicProfile   `json:"basicProfile,omitempty"`
	BasicInfo      *GroupInfo      `json:"basicInfo,omitempty"`
	PartnerOptions *PartnerOptions `json:"partnerOptions,omitempty"`
	HelpOptions    *HelpOptions    `json:"helpOptions,omitempty"`
	Size           int             `json:"size,omitempty"`
	MaxMembers     int             `json:"maxMembers,omitempty"`
	Mode           string          `json:"mode,omitempty"`
	Pricing        *SubjectPricing `json:"pricing,omitempty"`
	Badge          string          `json:"badge,omitempty"`
}

// MatchSearchRequest is the body of POST /search/match.
type MatchSearchRequest struct {
	SubjectID  string     `json:"subjectId" validate:"required"`
	SearchType SearchType `json:"searchType" validate:"required"`
	Mode       string     `json:"mode"`
}

// MatchSearchResponse is the uniform result envelope of POST /search/match.
type MatchSearchResponse struct {
	SubjectID  string            `json:"subjectId"`
	SearchType SearchType        `json:"searchType"`
	Results    []CandidateResult `json:"results"`
}

// MoltaqaSearchRequest is the body of POST /moltaqa/match/search.
type MoltaqaSearchRequest struct {
	SubjectID  string   `json:"subjectId"`
	MajorID    string   `json:"majorId"`
	Level      string   `json:"level"`
	StudyModes []string `json:"studyModes"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
}

// MoltaqaPagination is the pagination block of the profile-to-profile search.
type MoltaqaPagination struct {
	Page    int  `json:"page"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// MoltaqaSearchResponse is the result envelope of POST /moltaqa/match/search.
type MoltaqaSearchResponse struct {
	Results    []ScoredProfile   `json:"results"`
	Pagination MoltaqaPagination `json:"pagination"`
}
