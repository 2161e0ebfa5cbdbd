package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AdType discriminates the intent of an ad.
type AdType string

const (
	AdTypePartner AdType = "partner"
	AdTypeGroup   AdType = "group"
	AdTypeTutor   AdType = "tutor"
	AdTypeHelp    AdType = "help"
)

// Valid reports whether the ad type is a known value.
func (t AdType) Valid() bool {
	switch t {
	case AdTypePartner, AdTypeGroup, AdTypeTutor, AdTypeHelp:
		return true
	}
	return false
}

// HelpSignals are the need/readiness flags shared by partner and help options.
type HelpSignals struct {
	NeedExplain    bool `json:"needExplain,omitempty"`
	CanExplain     bool `json:"canExplain,omitempty"`
	ReadyToHelp    bool `json:"readyToHelp,omitempty"`
	ReadyToExplain bool `json:"readyToExplain,omitempty"`
	OffersHelp     bool `json:"offersHelp,omitempty"`
}

// SignalsReadiness reports whether any readiness flag is set.
func (s HelpSignals) SignalsReadiness() bool {
	return s.CanExplain || s.ReadyToHelp || s.ReadyToExplain || s.OffersHelp
}

// SignalsNeed reports whether the need flag is set.
func (s HelpSignals) SignalsNeed() bool {
	return s.NeedExplain
}

// PartnerOptions configure a study-partner ad.
type PartnerOptions struct {
	HelpSignals
	Modes []string `json:"modes,omitempty"`
	Mode  string   `json:"mode,omitempty"`
}

// GroupOptions configure a group-recruiting ad.
type GroupOptions struct {
	SubjectIDs   []string `json:"subjectIds,omitempty"`
	MaxMembers   int      `json:"maxMembers,omitempty"`
	Mode         string   `json:"mode,omitempty"`
	HelpOriented bool     `json:"helpOriented,omitempty"`
}

// TutorOptions configure a tutor-wanted ad.
type TutorOptions struct {
	ExpectedPrice float64 `json:"expectedPrice,omitempty"`
	Mode          string  `json:"mode,omitempty"`
}

// HelpOptions configure a peer-help ad.
type HelpOptions struct {
	HelpSignals
	Mode string `json:"mode,omitempty"`
}

// AdOptions is the variant options record keyed by the ad's type. Exactly one
// branch is expected to be populated; readers treat missing branches as empty
// rather than failing.
type AdOptions struct {
	Partner *PartnerOptions `json:"partner,omitempty"`
	Group   *GroupOptions   `json:"group,omitempty"`
	Tutor   *TutorOptions   `json:"tutor,omitempty"`
	Help    *HelpOptions    `json:"help,omitempty"`
}

// Scan implements sql.Scanner for JSONB columns.
func (o *AdOptions) Scan(src interface{}) error {
	if src == nil {
		*o = AdOptions{}
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("ad options: unsupported source type %T", src)
	}
	return json.Unmarshal(raw, o)
}

// Value implements driver.Valuer for JSONB columns.
func (o AdOptions) Value() (driver.Value, error) {
	return json.Marshal(o)
}

// PartnerOrDefault returns the partner variant, empty when absent.
func (o AdOptions) PartnerOrDefault() PartnerOptions {
	if o.Partner == nil {
		return PartnerOptions{}
	}
	return *o.Partner
}

// GroupOrDefault returns the group variant, empty when absent.
func (o AdOptions) GroupOrDefault() GroupOptions {
	if o.Group == nil {
		return GroupOptions{}
	}
	return *o.Group
}

// HelpOrDefault returns the help variant, empty when absent.
func (o AdOptions) HelpOrDefault() HelpOptions {
	if o.Help == nil {
		return HelpOptions{}
	}
	return *o.Help
}

// Ad is a short-lived listing of intent created by a student.
type Ad struct {
	ID          string    `db:"id" json:"id"`
	CreatorID   string    `db:"creator_id" json:"creator_id"`
	AdType      AdType    `db:"ad_type" json:"ad_type"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	Description string    `db:"description" json:"description"`
	Options     AdOptions `db:"options" json:"options"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AdDetail joins an ad with its creator's user record and student profile.
type AdDetail struct {
	Ad
	CreatorName    string     `db:"creator_name" json:"creator_name"`
	CreatorGender  string     `db:"creator_gender" json:"creator_gender"`
	CreatorMajorID *string    `db:"creator_major_id" json:"creator_major_id,omitempty"`
	CreatorLevel   *string    `db:"creator_level" json:"creator_level,omitempty"`
	CreatorCollege *string    `db:"creator_college" json:"creator_college,omitempty"`
	CreatorMajor   *string    `db:"creator_major" json:"creator_major,omitempty"`
	LastActiveAt   *time.Time `db:"last_active_at" json:"last_active_at,omitempty"`
}

// AdFilter captures supported filters for listing ads.
type AdFilter struct {
	AdType         AdType
	SubjectID      string
	ExcludeCreator string
	ActiveOnly     bool
	Limit          int
}
