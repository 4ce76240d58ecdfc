package service

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/util"
	"errors"
	"net/url"
	"strings"
	"time"

	"gorm.io/gorm"
)

type SubmissionWriter interface {
	SubmissionReader
	FindByID(id string) (*model.Submission, error)
	FindByUser(username string) ([]*model.Submission, error)
	CreateWithReview(submission *model.Submission, review *model.Review) error
}

// SubmissionService 提交落库时同步生成待评审记录并推进接受状态
type SubmissionService struct {
	Submissions SubmissionWriter
	Acceptances AcceptanceReader
	Challenges  ChallengeReader
	Reviews     ReviewReader
}

func NewSubmissionService(
	submissions SubmissionWriter,
	acceptances AcceptanceReader,
	challenges ChallengeReader,
	reviews ReviewReader,
) *SubmissionService {
	return &SubmissionService{
		Submissions: submissions,
		Acceptances: acceptances,
		Challenges:  challenges,
		Reviews:     reviews,
	}
}

// SubmitRequest 提交方案的入参
type SubmitRequest struct {
	ChallengeID   uint
	Description   string
	Technologies  []string
	SourceCodeURL string
	HostedAppURL  string
}

func validateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return util.ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return util.ErrInvalidURL
	}
	return nil
}

// Submit 提交解决方案
// 每个 (用户, 挑战) 只允许一次提交；提交、待评审记录、接受状态推进在
// 一个事务内完成，失败不留半套数据
func (s *SubmissionService) Submit(username string, req SubmitRequest) (*model.Submission, error) {
	if len(strings.TrimSpace(req.Description)) < 10 {
		return nil, util.ErrDescriptionTooShort
	}
	if err := validateURL(req.SourceCodeURL); err != nil {
		return nil, err
	}
	if req.HostedAppURL != "" {
		if err := validateURL(req.HostedAppURL); err != nil {
			return nil, err
		}
	}

	if _, err := s.Challenges.FindByID(req.ChallengeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}

	acceptance, err := s.Acceptances.FindLatestByUserAndChallenge(username, req.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAcceptanceNotFound
		}
		return nil, err
	}
	if !acceptance.Status.IsActive() {
		return nil, util.ErrAcceptanceNotActive
	}

	if _, err := s.Submissions.FindByUserAndChallenge(username, req.ChallengeID); err == nil {
		return nil, util.ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	submission := &model.Submission{
		Username:      username,
		ChallengeID:   req.ChallengeID,
		AcceptanceID:  acceptance.ID,
		SubmittedAt:   now,
		Description:   req.Description,
		Technologies:  req.Technologies,
		SourceCodeURL: req.SourceCodeURL,
		HostedAppURL:  req.HostedAppURL,
		Status:        model.SubmissionPendingReview,
	}
	review := &model.Review{
		ChallengeID:    req.ChallengeID,
		Username:       username,
		Status:         model.ReviewPending,
		SubmissionDate: now,
		CommitmentDate: acceptance.CommittedDate,
		IsOnTime:       IsOnTime(acceptance.CommittedDate, now),
	}

	if err := s.Submissions.CreateWithReview(submission, review); err != nil {
		return nil, err
	}
	return submission, nil
}

// ListMine 用户的全部提交，附带评审状态
func (s *SubmissionService) ListMine(username string) ([]SubmissionWithReview, error) {
	submissions, err := s.Submissions.FindByUser(username)
	if err != nil {
		return nil, err
	}

	result := make([]SubmissionWithReview, 0, len(submissions))
	for _, submission := range submissions {
		item := SubmissionWithReview{Submission: submission}
		review, err := s.Reviews.FindBySubmissionID(submission.ID)
		if err == nil {
			item.Review = review
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// swagger:model SubmissionWithReview
type SubmissionWithReview struct {
	Submission *model.Submission `json:"submission"`
	Review     *model.Review     `json:"review,omitempty"`
}
