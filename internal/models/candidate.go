package models

import (
	"gorm.io/gorm"
)

// Candidate lifecycle statuses. A candidate is terminal once the status
// leaves ACTIVE; no further round records are accepted after that.
const (
	StatusActive     = "ACTIVE"
	StatusTerminated = "TERMINATED"
	StatusCompleted  = "COMPLETED"
)

// Candidate represents one person going through the proctored interview.
type Candidate struct {
	gorm.Model
	Name           string  `gorm:"size:255;not null" json:"name"`
	Email          string  `gorm:"size:255;not null;index" json:"email"`
	Role           string  `gorm:"size:255" json:"role"`
	Seniority      string  `gorm:"size:64" json:"seniority"`
	Difficulty     string  `gorm:"size:64" json:"difficulty"`
	RoomURL        string  `gorm:"size:512" json:"roomUrl"`
	CurrentRound   int     `gorm:"default:1" json:"currentRound"`
	IntegrityScore int     `gorm:"default:100" json:"integrityScore"`
	Status         string  `gorm:"size:32;default:'ACTIVE';index" json:"status"`
	ViolationLog   string  `gorm:"type:text" json:"violationLog,omitempty"`
	FinalScore     int     `json:"finalScore"`
	FinalVerdict   string  `gorm:"size:64" json:"finalVerdict,omitempty"`
	FinalReport    *string `gorm:"type:json" json:"finalReport,omitempty"`
}

// Terminal reports whether the candidate can still make interview progress.
func (c *Candidate) Terminal() bool {
	return c.Status != StatusActive
}
