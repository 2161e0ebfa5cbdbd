package models

import (
	"time"

	"github.com/lib/pq"
)

// Help/partner status values carried on student profiles.
const (
	StatusNeedExplain = "needExplain"
	StatusCanExplain  = "canExplain"
	StatusReadyToHelp = "readyToHelp"
)

// Study mode tags used on profiles and ads.
const (
	ModeOnline     = "online"
	ModeInPerson   = "inPerson"
	ModeBoth       = "both"
	ModeReview     = "review"
	ModeGroupStudy = "groupStudy"
)

// StudentProfile holds the academic context of a student account (1:1 with users).
type StudentProfile struct {
	ID                string         `db:"id" json:"id"`
	UserID            string         `db:"user_id" json:"user_id"`
	CollegeID         string         `db:"college_id" json:"college_id"`
	MajorID           string         `db:"major_id" json:"major_id"`
	Level             string         `db:"level" json:"level"`
	SubjectIDs        pq.StringArray `db:"subject_ids" json:"subject_ids"`
	StudyModes        pq.StringArray `db:"study_modes" json:"study_modes"`
	StatusForPartners string         `db:"status_for_partners" json:"status_for_partners"`
	StatusForHelp     string         `db:"status_for_help" json:"status_for_help"`
	Visible           bool           `db:"visible" json:"visible"`
	LastActiveAt      *time.Time     `db:"last_active_at" json:"last_active_at,omitempty"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at" json:"updated_at"`
}

// NeedsHelp reports whether either status field signals a need for explanation.
func (p *StudentProfile) NeedsHelp() bool {
	if p == nil {
		return false
	}
	return p.StatusForHelp == StatusNeedExplain || p.StatusForPartners == StatusNeedExplain
}

// OffersHelp reports whether the profile signals explaining capability.
func (p *StudentProfile) OffersHelp() bool {
	if p == nil {
		return false
	}
	return p.StatusForHelp == StatusCanExplain || p.StatusForHelp == StatusReadyToHelp ||
		p.StatusForPartners == StatusCanExplain
}

// StudentProfileDetail joins the profile with its owning user and catalog names.
type StudentProfileDetail struct {
	StudentProfile
	FullName    string  `db:"full_name" json:"full_name"`
	Gender      string  `db:"gender" json:"gender"`
	MajorName   *string `db:"major_name" json:"major_name,omitempty"`
	CollegeName *string `db:"college_name" json:"college_name,omitempty"`
}

// ProfileFilter captures the query-level filters of the profile-to-profile search.
type ProfileFilter struct {
	MajorID       string
	Level         string
	VisibleOnly   bool
	ExcludeUserID string
	Page          int
	PageSize      int
}

// ScoredProfile is a profile-to-profile search hit.
type ScoredProfile struct {
	ProfileID  string         `json:"profile_id"`
	UserID     string         `json:"user_id"`
	FullName   string         `json:"full_name"`
	MajorID    string         `json:"major_id"`
	Level      string         `json:"level"`
	StudyModes []string       `json:"study_modes"`
	MatchScore int            `json:"match_score"`
	CreatedAt  time.Time      `json:"created_at"`
	SubjectIDs pq.StringArray `json:"subject_ids"`
}

// ProfileSummary is the unscored shape served by the preview endpoint.
type ProfileSummary struct {
	ProfileID   string    `json:"profile_id"`
	FullName    string    `json:"full_name"`
	Level       string    `json:"level"`
	MajorName   string    `json:"major_name,omitempty"`
	CollegeName string    `json:"college_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
