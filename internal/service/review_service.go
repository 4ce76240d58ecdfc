package service

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/util"
	"challengehub_backend/pkg/monitoring"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ReviewAction 管理者对提交的评审动作
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
	ActionRework  ReviewAction = "rework"
)

var actionTargets = map[ReviewAction]model.ReviewStatus{
	ActionApprove: model.ReviewApproved,
	ActionReject:  model.ReviewRejected,
	ActionRework:  model.ReviewNeedsRework,
}

type ReviewWriter interface {
	ReviewReader
	FindPending() ([]*model.Review, error)
	Finalize(
		review *model.Review,
		submission *model.Submission,
		target model.ReviewStatus,
		reviewedBy, comment string,
		reviewedAt time.Time,
		pointsAwarded int,
		isOnTime bool,
	) error
}

// LeaderboardInvalidator 积分变动后使排行榜缓存失效
type LeaderboardInvalidator interface {
	Invalidate()
}

// ReviewService 评审工作流：pending_review → {approved|rejected|needs_rework}
// 终态没有出边，不支持重评
type ReviewService struct {
	Reviews     ReviewWriter
	Submissions SubmissionWriter
	Challenges  ChallengeReader
	Leaderboard LeaderboardInvalidator
}

func NewReviewService(
	reviews ReviewWriter,
	submissions SubmissionWriter,
	challenges ChallengeReader,
	leaderboard LeaderboardInvalidator,
) *ReviewService {
	return &ReviewService{
		Reviews:     reviews,
		Submissions: submissions,
		Challenges:  challenges,
		Leaderboard: leaderboard,
	}
}

// Finalize 出具评审结论
// 只有 management/admin 角色可以调用；评审、提交、接受记录和用户积分
// 在一个事务内落库；重复评审返回冲突，积分恰好应用一次
func (s *ReviewService) Finalize(reviewer *util.Claims, submissionID string, action ReviewAction, comment string) (*model.Review, error) {
	if reviewer == nil {
		return nil, util.ErrPermissionDenied
	}
	if reviewer.Role != model.Management && reviewer.Role != model.Admin {
		return nil, util.ErrPermissionDenied
	}

	target, ok := actionTargets[action]
	if !ok {
		return nil, util.ErrInvalidReviewAction
	}

	submission, err := s.Submissions.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}

	review, err := s.Reviews.FindBySubmissionID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReviewNotFound
		}
		return nil, err
	}
	if review.Status.IsTerminal() {
		return nil, util.ErrReviewAlreadyFinal
	}

	challenge, err := s.Challenges.FindByID(submission.ChallengeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	points := ComputePoints(challenge, target, review.CommitmentDate, submission.SubmittedAt)
	onTime := IsOnTime(review.CommitmentDate, submission.SubmittedAt)

	if err := s.Reviews.Finalize(review, submission, target, reviewer.Username, comment, now, points, onTime); err != nil {
		return nil, err
	}

	monitoring.ReviewOutcomeCounter.WithLabelValues(string(target)).Inc()
	if target == model.ReviewApproved && s.Leaderboard != nil {
		s.Leaderboard.Invalidate()
	}

	review.Status = target
	review.ReviewedBy = reviewer.Username
	review.ReviewedAt = &now
	review.ReviewComment = comment
	review.PointsAwarded = points
	review.IsOnTime = onTime
	return review, nil
}

// PendingQueue 待评审队列，附带提交内容和挑战标题，供管理端列表使用
func (s *ReviewService) PendingQueue() ([]PendingReviewItem, error) {
	reviews, err := s.Reviews.FindPending()
	if err != nil {
		return nil, err
	}

	items := make([]PendingReviewItem, 0, len(reviews))
	for _, review := range reviews {
		item := PendingReviewItem{Review: review}
		submission, err := s.Submissions.FindByID(review.SubmissionID)
		if err == nil {
			item.Submission = submission
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		challenge, err := s.Challenges.FindByID(review.ChallengeID)
		if err == nil {
			item.ChallengeTitle = challenge.Title
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// swagger:model PendingReviewItem
type PendingReviewItem struct {
	Review         *model.Review     `json:"review"`
	Submission     *model.Submission `json:"submission,omitempty"`
	ChallengeTitle string            `json:"challengeTitle"`
}
