package model

type PenaltyReason string

const (
	PenaltyNoSubmission PenaltyReason = "no_submission"
)

// PenaltyRecord 逾期未提交的扣分记录
// 唯一索引 (username, challenge_id, reason) 保证同一对用户/挑战只扣一次
// swagger:model PenaltyRecord
type PenaltyRecord struct {
	UUIDBase
	Username    string        `gorm:"size:100;not null;uniqueIndex:idx_penalty_user_challenge_reason" json:"username"`
	ChallengeID uint          `gorm:"not null;uniqueIndex:idx_penalty_user_challenge_reason" json:"challengeId"`
	Reason      PenaltyReason `gorm:"type:varchar(30);not null;uniqueIndex:idx_penalty_user_challenge_reason" json:"reason"`
	// 负值，代表从用户总积分中扣除的数量
	Points int `gorm:"not null" json:"points"`
}

func (PenaltyRecord) TableName() string {
	return "penalty_records"
}
