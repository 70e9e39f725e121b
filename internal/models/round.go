package models

import (
	"gorm.io/gorm"
)

// Round is one submission attempt for one coding round. Rows are append-only:
// every attempt gets its own record, even ones that trip the kill switch.
type Round struct {
	gorm.Model
	CandidateID   uint   `gorm:"not null;index" json:"candidateId"`
	RoundNumber   int    `gorm:"not null" json:"roundNumber"`
	TaskTitle     string `gorm:"size:255" json:"taskTitle"`
	SubmittedCode string `gorm:"type:text" json:"submittedCode"`
	AIFeedback    string `gorm:"type:text" json:"aiFeedback"`
	Score         int    `json:"score"`
}
