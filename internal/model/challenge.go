package model

import (
	"time"
)

type ChallengeStatus string

const (
	ChallengeDraft           ChallengeStatus = "draft"
	ChallengePendingApproval ChallengeStatus = "pending_approval"
	ChallengeOpen            ChallengeStatus = "open"
	ChallengeClosed          ChallengeStatus = "closed"
)

// swagger:model Challenge
type Challenge struct {
	BaseModel
	Title           string          `gorm:"size:200;not null" json:"title"`
	Description     string          `gorm:"type:text" json:"description"`
	ExpectedOutcome string          `gorm:"type:text" json:"expectedOutcome"`
	Tags            []string        `gorm:"serializer:json" json:"tags"`
	Status          ChallengeStatus `gorm:"type:enum('draft','pending_approval','open','closed');default:'draft';index" json:"status"`
	Points          int             `gorm:"not null;default:0" json:"points"`
	PenaltyPoints   int             `gorm:"not null;default:0" json:"penaltyPoints"`
	Deadline        *time.Time      `json:"deadline"`
	CreatedBy       string          `gorm:"size:100;not null;index" json:"createdBy"`
}

func (Challenge) TableName() string {
	return "challenges"
}
