package models

import (
	"time"

	"github.com/lib/pq"
)

// StudyGroup is a persistent membership-based group, distinct from group ads.
type StudyGroup struct {
	ID           string         `db:"id" json:"id"`
	CreatorID    string         `db:"creator_id" json:"creator_id"`
	Name         string         `db:"name" json:"name"`
	Description  string         `db:"description" json:"description"`
	SubjectIDs   pq.StringArray `db:"subject_ids" json:"subject_ids"`
	MaxMembers   int            `db:"max_members" json:"max_members"`
	Members      pq.StringArray `db:"members" json:"members"`
	Mode         string         `db:"mode" json:"mode"`
	HelpOriented bool           `db:"help_oriented" json:"help_oriented"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// GroupFilter captures supported filters for listing study groups.
type GroupFilter struct {
	SubjectID string
	Limit     int
}
