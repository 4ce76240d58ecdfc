package service

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// AcceptanceWriter 接受记录的写入口，CreateIfNoActive 必须原子地完成
// 活跃检查与插入（见 repository.AcceptanceRepository）
type AcceptanceWriter interface {
	AcceptanceReader
	FindByID(id string) (*model.Acceptance, error)
	CreateIfNoActive(acceptance *model.Acceptance) error
	UpdateStatusFrom(id string, from []model.AcceptanceStatus, to model.AcceptanceStatus) error
}

type ChallengeReader interface {
	FindByID(id uint) (*model.Challenge, error)
}

// AcceptanceService 接受闸门：单活跃挑战约束在这里成立
type AcceptanceService struct {
	Acceptances AcceptanceWriter
	Challenges  ChallengeReader
	Submissions SubmissionReader
	Status      *StatusService
}

func NewAcceptanceService(
	acceptances AcceptanceWriter,
	challenges ChallengeReader,
	submissions SubmissionReader,
	status *StatusService,
) *AcceptanceService {
	return &AcceptanceService{
		Acceptances: acceptances,
		Challenges:  challenges,
		Submissions: submissions,
		Status:      status,
	}
}

// Accept 接受挑战，前置条件按序检查，首个失败即返回：
//  1. 承诺日期最早为明天
//  2. 没有其他活跃挑战
//  3. 挑战存在且处于开放状态
//  4. 该用户对这个挑战还没有提交过方案（每对 (用户, 挑战) 只允许
//     一次提交，已提交即视为已了结，不允许再次接受）
//
// 检查通过后由存储层原子地复查并插入，防止同一用户并发接受两个挑战
func (s *AcceptanceService) Accept(username string, challengeID uint, committedDate time.Time) (*model.Acceptance, error) {
	now := time.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	if committedDate.Before(tomorrow) {
		return nil, util.ErrCommittedDateTooEarly
	}

	canAccept, err := s.Status.CanAcceptNew(username)
	if err != nil {
		return nil, err
	}
	if !canAccept {
		return nil, util.ErrActiveChallengeExists
	}

	challenge, err := s.Challenges.FindByID(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	if challenge.Status != model.ChallengeOpen {
		return nil, util.ErrChallengeNotOpen
	}

	if _, err := s.Submissions.FindByUserAndChallenge(username, challengeID); err == nil {
		return nil, util.ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	acceptance := &model.Acceptance{
		Username:      username,
		ChallengeID:   challengeID,
		Status:        model.AcceptanceAccepted,
		CommittedDate: committedDate,
		AcceptedAt:    now,
	}

	if err := s.Acceptances.CreateIfNoActive(acceptance); err != nil {
		return nil, err
	}
	return acceptance, nil
}

// Withdraw 放弃进行中的挑战，终态、不可逆，释放接受名额
func (s *AcceptanceService) Withdraw(username, acceptanceID string) (*model.Acceptance, error) {
	acceptance, err := s.Acceptances.FindByID(acceptanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAcceptanceNotFound
		}
		return nil, err
	}

	if acceptance.Username != username {
		return nil, util.ErrPermissionDenied
	}

	if err := s.Acceptances.UpdateStatusFrom(acceptanceID, model.ActiveAcceptanceStatuses, model.AcceptanceWithdrawn); err != nil {
		return nil, err
	}

	acceptance.Status = model.AcceptanceWithdrawn
	return acceptance, nil
}

// ListMine 用户的全部接受记录，附带实时推导的状态
func (s *AcceptanceService) ListMine(username string) ([]AcceptanceWithStatus, error) {
	acceptances, err := s.Acceptances.FindByUser(username)
	if err != nil {
		return nil, err
	}

	result := make([]AcceptanceWithStatus, 0, len(acceptances))
	for _, acceptance := range acceptances {
		resolution, err := s.Status.resolveAcceptance(acceptance)
		if err != nil {
			return nil, err
		}
		result = append(result, AcceptanceWithStatus{
			Acceptance: acceptance,
			Resolution: resolution,
		})
	}
	return result, nil
}

// swagger:model AcceptanceWithStatus
type AcceptanceWithStatus struct {
	Acceptance *model.Acceptance `json:"acceptance"`
	Resolution Resolution        `json:"resolution"`
}
