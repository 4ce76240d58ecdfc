package service

import (
	"challengehub_backend/internal/model"
	"time"
)

// ComputePoints 计算一次评审结论对应的得分，纯函数，无副作用
//
// 规则：
//   - rejected 恒为 0
//   - needs_rework 为 0，积分只在后续终审时结算
//   - approved 按时（submittedAt <= committedDate，含当天）得满分，
//     逾期得 points - penaltyPoints，最低为 0；
//     承诺日期或提交时间缺失时按满分处理
func ComputePoints(challenge *model.Challenge, outcome model.ReviewStatus, committedDate, submittedAt time.Time) int {
	switch outcome {
	case model.ReviewRejected, model.ReviewNeedsRework:
		return 0
	case model.ReviewApproved:
		if committedDate.IsZero() || submittedAt.IsZero() {
			return challenge.Points
		}
		if !submittedAt.After(committedDate) {
			return challenge.Points
		}
		late := challenge.Points - challenge.PenaltyPoints
		if late < 0 {
			return 0
		}
		return late
	}
	return 0
}

// IsOnTime 按时判定，边界含当天（submittedAt == committedDate 视为按时）
func IsOnTime(committedDate, submittedAt time.Time) bool {
	if committedDate.IsZero() || submittedAt.IsZero() {
		return true
	}
	return !submittedAt.After(committedDate)
}

// DeductPenaltyPoints 逾期未提交的扣分值（负数），供扫描任务使用
func DeductPenaltyPoints(challenge *model.Challenge) int {
	return -challenge.PenaltyPoints
}
