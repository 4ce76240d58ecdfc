package model

import (
	"time"
)

type AcceptanceStatus string

const (
	AcceptanceAccepted      AcceptanceStatus = "accepted"
	AcceptancePendingReview AcceptanceStatus = "pending_review"
	AcceptanceApproved      AcceptanceStatus = "approved"
	AcceptanceRejected      AcceptanceStatus = "rejected"
	AcceptanceNeedsRework   AcceptanceStatus = "needs_rework"
	AcceptanceWithdrawn     AcceptanceStatus = "withdrawn"
)

// ActiveAcceptanceStatuses 处于这些状态的接受记录会阻止该用户接受新挑战
// 提交落库时直接推进到 pending_review，没有中间状态
var ActiveAcceptanceStatuses = []AcceptanceStatus{
	AcceptanceAccepted,
	AcceptancePendingReview,
}

// IsActive 判断状态是否属于占用名额的活跃状态
func (s AcceptanceStatus) IsActive() bool {
	return s == AcceptanceAccepted || s == AcceptancePendingReview
}

// swagger:model Acceptance
type Acceptance struct {
	UUIDBase
	Username    string           `gorm:"size:100;not null;index" json:"username"`
	ChallengeID uint             `gorm:"not null;index" json:"challengeId"`
	Status      AcceptanceStatus `gorm:"type:varchar(20);not null;default:'accepted';index" json:"status"`
	// 承诺完成日期，必须晚于接受时间
	CommittedDate time.Time `gorm:"not null" json:"committedDate"`
	AcceptedAt    time.Time `gorm:"not null" json:"acceptedAt"`
}

func (Acceptance) TableName() string {
	return "acceptances"
}
