package model

import (
	"time"
)

type SubmissionStatus string

const (
	SubmissionPendingReview SubmissionStatus = "pending_review"
	SubmissionApproved      SubmissionStatus = "approved"
	SubmissionRejected      SubmissionStatus = "rejected"
	SubmissionNeedsRework   SubmissionStatus = "needs_rework"
)

// swagger:model Submission
type Submission struct {
	UUIDBase
	Username string `gorm:"size:100;not null;uniqueIndex:idx_submission_user_challenge" json:"username"`
	// 每个 (用户, 挑战) 只允许一次提交，由联合唯一索引兜底
	ChallengeID   uint             `gorm:"not null;uniqueIndex:idx_submission_user_challenge;index" json:"challengeId"`
	AcceptanceID  string           `gorm:"type:varchar(36);not null" json:"acceptanceId"`
	SubmittedAt   time.Time        `gorm:"not null" json:"submittedAt"`
	Description   string           `gorm:"type:text;not null" json:"description"`
	Technologies  []string         `gorm:"serializer:json" json:"technologies"`
	SourceCodeURL string           `gorm:"size:500;not null" json:"sourceCodeUrl"`
	HostedAppURL  string           `gorm:"size:500" json:"hostedAppUrl"`
	Status        SubmissionStatus `gorm:"type:varchar(20);not null;default:'pending_review';index" json:"status"`
}

func (Submission) TableName() string {
	return "submissions"
}
