package service

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/repository"
	"challengehub_backend/pkg/logger"
	"challengehub_backend/pkg/monitoring"
	"errors"
	"time"

	"go.uber.org/zap"
)

type OverdueFinder interface {
	FindOverdueAccepted(now time.Time) ([]*model.Acceptance, error)
}

type PenaltyApplier interface {
	Apply(record *model.PenaltyRecord) error
	FindByUser(username string) ([]*model.PenaltyRecord, error)
}

// PenaltyService 逾期未提交扣分扫描，定时任务触发，也可由管理员手动触发
// 扣分记录上的唯一键保证重复运行/并发运行不会重复扣分
type PenaltyService struct {
	Acceptances OverdueFinder
	Penalties   PenaltyApplier
	Challenges  ChallengeReader
	Leaderboard LeaderboardInvalidator
}

func NewPenaltyService(
	acceptances OverdueFinder,
	penalties PenaltyApplier,
	challenges ChallengeReader,
	leaderboard LeaderboardInvalidator,
) *PenaltyService {
	return &PenaltyService{
		Acceptances: acceptances,
		Penalties:   penalties,
		Challenges:  challenges,
		Leaderboard: leaderboard,
	}
}

// Sweep 扫描一轮，返回本轮实际扣分的条数
func (s *PenaltyService) Sweep(now time.Time) (int, error) {
	overdue, err := s.Acceptances.FindOverdueAccepted(now)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, acceptance := range overdue {
		challenge, err := s.Challenges.FindByID(acceptance.ChallengeID)
		if err != nil {
			logger.Log.Warn("penalty sweep: challenge lookup failed",
				zap.Uint("challengeId", acceptance.ChallengeID), zap.Error(err))
			continue
		}

		record := &model.PenaltyRecord{
			Username:    acceptance.Username,
			ChallengeID: acceptance.ChallengeID,
			Reason:      model.PenaltyNoSubmission,
			Points:      DeductPenaltyPoints(challenge),
		}

		if err := s.Penalties.Apply(record); err != nil {
			if errors.Is(err, repository.ErrPenaltyAlreadyApplied) {
				continue
			}
			return applied, err
		}

		applied++
		monitoring.PenaltySweepCounter.Inc()
	}

	if applied > 0 && s.Leaderboard != nil {
		s.Leaderboard.Invalidate()
	}
	return applied, nil
}
