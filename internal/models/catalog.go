package models

import "time"

// College is the top level of the academic catalog.
type College struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Major belongs to a college and groups subjects.
type Major struct {
	ID        string    `db:"id" json:"id"`
	CollegeID string    `db:"college_id" json:"college_id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Subject is a course offered under a major at a given level.
type Subject struct {
	ID        string    `db:"id" json:"id"`
	MajorID   string    `db:"major_id" json:"major_id"`
	Name      string    `db:"name" json:"name"`
	Code      string    `db:"code" json:"code"`
	Level     string    `db:"level" json:"level"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
