package service

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/repository"
	"challengehub_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

// DashboardService 个人工作台数据聚合，状态一律走 StatusService 实时推导
type DashboardService struct {
	Users       *repository.UserRepository
	Challenges  ChallengeReader
	Acceptances AcceptanceReader
	Submissions *SubmissionService
	Reviews     ReviewWriter
	Status      *StatusService
}

func NewDashboardService(
	users *repository.UserRepository,
	challenges ChallengeReader,
	acceptances AcceptanceReader,
	submissions *SubmissionService,
	reviews ReviewWriter,
	status *StatusService,
) *DashboardService {
	return &DashboardService{
		Users:       users,
		Challenges:  challenges,
		Acceptances: acceptances,
		Submissions: submissions,
		Reviews:     reviews,
		Status:      status,
	}
}

// swagger:model ActiveChallengeInfo
type ActiveChallengeInfo struct {
	Challenge  *model.Challenge  `json:"challenge"`
	Acceptance *model.Acceptance `json:"acceptance"`
	Resolution Resolution        `json:"resolution"`
}

// swagger:model Dashboard
type Dashboard struct {
	DisplayName        string                 `json:"displayName"`
	Department         string                 `json:"department"`
	TotalPoints        int                    `json:"totalPoints"`
	CanAcceptNew       bool                   `json:"canAcceptNew"`
	ActiveChallenge    *ActiveChallengeInfo   `json:"activeChallenge,omitempty"`
	RecentSubmissions  []SubmissionWithReview `json:"recentSubmissions"`
	PendingReviewCount int                    `json:"pendingReviewCount"`
}

func (s *DashboardService) GetDashboard(claims *util.Claims) (*Dashboard, error) {
	user, err := s.Users.FindByUsername(claims.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	dashboard := &Dashboard{
		DisplayName: user.DisplayName,
		Department:  user.Department,
		TotalPoints: user.TotalPoints,
	}

	canAccept, err := s.Status.CanAcceptNew(claims.Username)
	if err != nil {
		return nil, err
	}
	dashboard.CanAcceptNew = canAccept

	acceptances, err := s.Acceptances.FindByUser(claims.Username)
	if err != nil {
		return nil, err
	}
	for _, acceptance := range acceptances {
		resolution, err := s.Status.resolveAcceptance(acceptance)
		if err != nil {
			return nil, err
		}
		if !resolution.IsActive {
			continue
		}
		info := &ActiveChallengeInfo{
			Acceptance: acceptance,
			Resolution: resolution,
		}
		if challenge, err := s.Challenges.FindByID(acceptance.ChallengeID); err == nil {
			info.Challenge = challenge
		}
		dashboard.ActiveChallenge = info
		break
	}

	submissions, err := s.Submissions.ListMine(claims.Username)
	if err != nil {
		return nil, err
	}
	if len(submissions) > 5 {
		submissions = submissions[:5]
	}
	dashboard.RecentSubmissions = submissions

	if claims.Role == model.Management || claims.Role == model.Admin {
		pending, err := s.Reviews.FindPending()
		if err != nil {
			return nil, err
		}
		dashboard.PendingReviewCount = len(pending)
	}

	return dashboard, nil
}
