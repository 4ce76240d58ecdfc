package model

import (
	"time"
)

type ReviewStatus string

const (
	ReviewPending     ReviewStatus = "pending_review"
	ReviewApproved    ReviewStatus = "approved"
	ReviewRejected    ReviewStatus = "rejected"
	ReviewNeedsRework ReviewStatus = "needs_rework"
)

// IsTerminal 终态评审不允许再次变更
func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewApproved || s == ReviewRejected || s == ReviewNeedsRework
}

// swagger:model Review
type Review struct {
	UUIDBase
	SubmissionID  string       `gorm:"type:varchar(36);not null;uniqueIndex" json:"submissionId"`
	ChallengeID   uint         `gorm:"not null;index" json:"challengeId"`
	Username      string       `gorm:"size:100;not null;index" json:"username"`
	Status        ReviewStatus `gorm:"type:varchar(20);not null;default:'pending_review';index" json:"status"`
	ReviewedBy    string       `gorm:"size:100" json:"reviewedBy"`
	ReviewedAt    *time.Time   `json:"reviewedAt"`
	ReviewComment string       `gorm:"type:text" json:"reviewComment"`
	// 终态时一次性写入，之后不可变
	PointsAwarded  int       `gorm:"not null;default:0" json:"pointsAwarded"`
	SubmissionDate time.Time `gorm:"not null" json:"submissionDate"`
	CommitmentDate time.Time `gorm:"not null" json:"commitmentDate"`
	IsOnTime       bool      `gorm:"not null;default:true" json:"isOnTime"`
}

func (Review) TableName() string {
	return "reviews"
}
