package service

import (
	"challengehub_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

// EffectiveStatus (用户, 挑战) 对的权威生命周期状态，读路径实时推导，从不缓存
type EffectiveStatus string

const (
	StatusNotAccepted   EffectiveStatus = "not_accepted"
	StatusWithdrawn     EffectiveStatus = "withdrawn"
	StatusAccepted      EffectiveStatus = "accepted"
	StatusPendingReview EffectiveStatus = "pending_review"
	StatusApproved      EffectiveStatus = "approved"
	StatusRejected      EffectiveStatus = "rejected"
	StatusNeedsRework   EffectiveStatus = "needs_rework"
)

// Resolution 状态推导结果，展示层只消费这里的输出，不自行推导
// swagger:model Resolution
type Resolution struct {
	EffectiveStatus EffectiveStatus `json:"effectiveStatus"`
	IsActive        bool            `json:"isActive"`
	CanAcceptNew    bool            `json:"canAcceptNew"`
	DisplayStatus   string          `json:"displayStatus"`
}

var displayStatuses = map[EffectiveStatus]string{
	StatusNotAccepted:   "未接受",
	StatusWithdrawn:     "已放弃",
	StatusAccepted:      "进行中",
	StatusPendingReview: "待评审",
	StatusApproved:      "已通过",
	StatusRejected:      "未通过",
	StatusNeedsRework:   "需返工",
}

func newResolution(status EffectiveStatus, active bool) Resolution {
	return Resolution{
		EffectiveStatus: status,
		IsActive:        active,
		CanAcceptNew:    !active,
		DisplayStatus:   displayStatuses[status],
	}
}

// ResolveStatus 按优先级表推导状态，自上而下首个命中生效：
//  1. 无接受记录 → not_accepted
//  2. 已放弃 → withdrawn，可再次接受
//  3. 接受记录已落入终态（评审流程写回）→ 对应终态，释放名额
//  4. 无提交 → accepted，占用名额
//  5. 有提交但评审未出结论（或评审记录缺失）→ pending_review，占用名额
//  6. 评审通过 → approved，释放名额
//  7. 评审未通过 → rejected，释放名额（计为一次完成的尝试）
//  8. 需返工 → needs_rework，释放名额（对名额判定视为终态）
//
// 第 3 条保证推导结果与接受记录的原始状态一致：评审终审和接受闸门
// 都以接受记录状态为准，推导不能比它更"活跃"
func ResolveStatus(acceptance *model.Acceptance, submission *model.Submission, review *model.Review) Resolution {
	switch {
	case acceptance == nil:
		return newResolution(StatusNotAccepted, false)
	case acceptance.Status == model.AcceptanceWithdrawn:
		return newResolution(StatusWithdrawn, false)
	case acceptance.Status == model.AcceptanceApproved:
		return newResolution(StatusApproved, false)
	case acceptance.Status == model.AcceptanceRejected:
		return newResolution(StatusRejected, false)
	case acceptance.Status == model.AcceptanceNeedsRework:
		return newResolution(StatusNeedsRework, false)
	case submission == nil:
		return newResolution(StatusAccepted, true)
	case review == nil || review.Status == model.ReviewPending:
		return newResolution(StatusPendingReview, true)
	case review.Status == model.ReviewApproved:
		return newResolution(StatusApproved, false)
	case review.Status == model.ReviewRejected:
		return newResolution(StatusRejected, false)
	default:
		return newResolution(StatusNeedsRework, false)
	}
}

// AcceptanceReader 状态推导所需的接受记录读取口
type AcceptanceReader interface {
	FindByUser(username string) ([]*model.Acceptance, error)
	FindLatestByUserAndChallenge(username string, challengeID uint) (*model.Acceptance, error)
}

type SubmissionReader interface {
	FindByUserAndChallenge(username string, challengeID uint) (*model.Submission, error)
	FindByAcceptanceID(acceptanceID string) (*model.Submission, error)
}

type ReviewReader interface {
	FindBySubmissionID(submissionID string) (*model.Review, error)
}

// StatusService 从存储加载三类记录并交给 ResolveStatus 推导
type StatusService struct {
	Acceptances AcceptanceReader
	Submissions SubmissionReader
	Reviews     ReviewReader
}

func NewStatusService(acceptances AcceptanceReader, submissions SubmissionReader, reviews ReviewReader) *StatusService {
	return &StatusService{
		Acceptances: acceptances,
		Submissions: submissions,
		Reviews:     reviews,
	}
}

// Resolve 推导调用者在某个挑战上的当前状态
func (s *StatusService) Resolve(username string, challengeID uint) (Resolution, error) {
	acceptance, err := s.Acceptances.FindLatestByUserAndChallenge(username, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolveStatus(nil, nil, nil), nil
		}
		return Resolution{}, err
	}
	return s.resolveAcceptance(acceptance)
}

// resolveAcceptance 提交按 AcceptanceID 配对，重新接受同一挑战时
// 不会把上一代接受记录的提交和评审算到新记录头上
func (s *StatusService) resolveAcceptance(acceptance *model.Acceptance) (Resolution, error) {
	submission, err := s.Submissions.FindByAcceptanceID(acceptance.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Resolution{}, err
		}
		return ResolveStatus(acceptance, nil, nil), nil
	}

	review, err := s.Reviews.FindBySubmissionID(submission.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return Resolution{}, err
		}
		// 正常流程下提交必有评审记录，缺失时按待评审处理
		return ResolveStatus(acceptance, submission, nil), nil
	}

	return ResolveStatus(acceptance, submission, review), nil
}

// CanAcceptNew 扫描用户全部接受记录，任何一条推导为活跃即不能接新挑战
func (s *StatusService) CanAcceptNew(username string) (bool, error) {
	acceptances, err := s.Acceptances.FindByUser(username)
	if err != nil {
		return false, err
	}

	for _, acceptance := range acceptances {
		resolution, err := s.resolveAcceptance(acceptance)
		if err != nil {
			return false, err
		}
		if resolution.IsActive {
			return false, nil
		}
	}
	return true, nil
}
