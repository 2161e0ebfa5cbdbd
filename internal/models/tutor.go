package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// SubjectPricing is a per-subject price entry.
type SubjectPricing struct {
	Monthly  float64 `json:"monthly"`
	Semester float64 `json:"semester"`
}

// PricingTable maps subject IDs to their pricing, stored as JSONB.
type PricingTable map[string]SubjectPricing

// Scan implements sql.Scanner for JSONB columns.
func (t *PricingTable) Scan(src interface{}) error {
	if src == nil {
		*t = nil
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("pricing table: unsupported source type %T", src)
	}
	return json.Unmarshal(raw, t)
}

// Value implements driver.Valuer for JSONB columns.
func (t PricingTable) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t)
}

// TutorProfile holds a tutor's teaching offer (1:1 with users).
type TutorProfile struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"user_id"`
	MajorIDs      pq.StringArray `db:"major_ids" json:"major_ids"`
	SubjectIDs    pq.StringArray `db:"subject_ids" json:"subject_ids"`
	Levels        pq.StringArray `db:"levels" json:"levels"`
	Pricing       PricingTable   `db:"pricing" json:"pricing"`
	MonthlyPrice  float64        `db:"monthly_price" json:"monthly_price"`
	SemesterPrice float64        `db:"semester_price" json:"semester_price"`
	TeachingMode  string         `db:"teaching_mode" json:"teaching_mode"`
	Badge         string         `db:"badge" json:"badge"`
	LastActiveAt  *time.Time     `db:"last_active_at" json:"last_active_at,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// PricingFor resolves the effective price for a subject, preferring the
// subject-specific entry and falling back to the flat monthly/semester rates.
func (p *TutorProfile) PricingFor(subjectID string) SubjectPricing {
	if p == nil {
		return SubjectPricing{}
	}
	if entry, ok := p.Pricing[subjectID]; ok {
		return entry
	}
	return SubjectPricing{Monthly: p.MonthlyPrice, Semester: p.SemesterPrice}
}

// TeachesSubject reports whether the subject appears in the direct list or the
// pricing table.
func (p *TutorProfile) TeachesSubject(subjectID string) bool {
	if p == nil {
		return false
	}
	for _, id := range p.SubjectIDs {
		if id == subjectID {
			return true
		}
	}
	_, ok := p.Pricing[subjectID]
	return ok
}
