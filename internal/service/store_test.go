package service

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/repository"
	"challengehub_backend/internal/util"
	"challengehub_backend/pkg/logger"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	logger.Log = zap.NewNop()
}

// memStore 内存存储，实现各服务依赖的接口，行为与 repository 层一致：
// 原子的活跃检查加插入、事务式的评审终态落库、扣分幂等
type memStore struct {
	mu          sync.Mutex
	challenges  map[uint]*model.Challenge
	acceptances []*model.Acceptance
	submissions []*model.Submission
	reviews     []*model.Review
	users       map[string]*model.User
	penalties   []*model.PenaltyRecord
}

func newMemStore() *memStore {
	return &memStore{
		challenges: make(map[uint]*model.Challenge),
		users:      make(map[string]*model.User),
	}
}

func (s *memStore) addUser(username string, role model.UserRole) *model.User {
	user := &model.User{Username: username, DisplayName: username, Role: role}
	s.users[username] = user
	return user
}

func (s *memStore) addChallenge(id uint, points, penalty int, status model.ChallengeStatus) *model.Challenge {
	challenge := &model.Challenge{
		Title:         "challenge",
		Status:        status,
		Points:        points,
		PenaltyPoints: penalty,
	}
	challenge.ID = id
	s.challenges[id] = challenge
	return challenge
}

func (s *memStore) addAcceptance(username string, challengeID uint, status model.AcceptanceStatus, committed time.Time) *model.Acceptance {
	acceptance := &model.Acceptance{
		Username:      username,
		ChallengeID:   challengeID,
		Status:        status,
		CommittedDate: committed,
		AcceptedAt:    time.Now(),
	}
	acceptance.ID = model.GenerateUUID()
	s.acceptances = append(s.acceptances, acceptance)
	return acceptance
}

func (s *memStore) addSubmission(acceptance *model.Acceptance, submittedAt time.Time) (*model.Submission, *model.Review) {
	submission := &model.Submission{
		Username:      acceptance.Username,
		ChallengeID:   acceptance.ChallengeID,
		AcceptanceID:  acceptance.ID,
		SubmittedAt:   submittedAt,
		Description:   "a sufficiently long description",
		SourceCodeURL: "https://git.example.com/repo",
		Status:        model.SubmissionPendingReview,
	}
	submission.ID = model.GenerateUUID()
	s.submissions = append(s.submissions, submission)

	review := &model.Review{
		SubmissionID:   submission.ID,
		ChallengeID:    acceptance.ChallengeID,
		Username:       acceptance.Username,
		Status:         model.ReviewPending,
		SubmissionDate: submittedAt,
		CommitmentDate: acceptance.CommittedDate,
	}
	review.ID = model.GenerateUUID()
	s.reviews = append(s.reviews, review)

	acceptance.Status = model.AcceptancePendingReview
	return submission, review
}

type memAcceptances struct{ *memStore }
type memChallenges struct{ *memStore }
type memSubmissions struct{ *memStore }
type memReviews struct{ *memStore }
type memPenalties struct{ *memStore }

func (s *memStore) acceptanceStore() *memAcceptances { return &memAcceptances{s} }

func (s *memStore) challengeStore() *memChallenges { return &memChallenges{s} }

func (s *memStore) submissionStore() *memSubmissions { return &memSubmissions{s} }

func (s *memStore) reviewStore() *memReviews { return &memReviews{s} }

func (s *memStore) penaltyStore() *memPenalties { return &memPenalties{s} }

func (s *memStore) statusService() *StatusService {
	return NewStatusService(s.acceptanceStore(), s.submissionStore(), s.reviewStore())
}

func (a *memAcceptances) FindByUser(username string) ([]*model.Acceptance, error) {
	var result []*model.Acceptance
	for _, acceptance := range a.acceptances {
		if acceptance.Username == username {
			result = append(result, acceptance)
		}
	}
	return result, nil
}

func (a *memAcceptances) FindLatestByUserAndChallenge(username string, challengeID uint) (*model.Acceptance, error) {
	var matches []*model.Acceptance
	for _, acceptance := range a.acceptances {
		if acceptance.Username == username && acceptance.ChallengeID == challengeID {
			matches = append(matches, acceptance)
		}
	}
	if len(matches) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].AcceptedAt.After(matches[j].AcceptedAt)
	})
	return matches[0], nil
}

func (a *memAcceptances) FindByID(id string) (*model.Acceptance, error) {
	for _, acceptance := range a.acceptances {
		if acceptance.ID == id {
			return acceptance, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (a *memAcceptances) CreateIfNoActive(acceptance *model.Acceptance) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, existing := range a.acceptances {
		if existing.Username == acceptance.Username && existing.Status.IsActive() {
			return util.ErrActiveChallengeExists
		}
	}
	acceptance.ID = model.GenerateUUID()
	a.acceptances = append(a.acceptances, acceptance)
	return nil
}

func (a *memAcceptances) UpdateStatusFrom(id string, from []model.AcceptanceStatus, to model.AcceptanceStatus) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, acceptance := range a.acceptances {
		if acceptance.ID != id {
			continue
		}
		for _, status := range from {
			if acceptance.Status == status {
				acceptance.Status = to
				return nil
			}
		}
		return util.ErrInvalidStatusChange
	}
	return util.ErrInvalidStatusChange
}

func (a *memAcceptances) FindOverdueAccepted(now time.Time) ([]*model.Acceptance, error) {
	var result []*model.Acceptance
	for _, acceptance := range a.acceptances {
		if acceptance.Status != model.AcceptanceAccepted || !acceptance.CommittedDate.Before(now) {
			continue
		}
		hasSubmission := false
		for _, submission := range a.submissions {
			if submission.Username == acceptance.Username && submission.ChallengeID == acceptance.ChallengeID {
				hasSubmission = true
				break
			}
		}
		if !hasSubmission {
			result = append(result, acceptance)
		}
	}
	return result, nil
}

func (c *memChallenges) FindByID(id uint) (*model.Challenge, error) {
	challenge, ok := c.challenges[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return challenge, nil
}

func (s *memSubmissions) FindByAcceptanceID(acceptanceID string) (*model.Submission, error) {
	for _, submission := range s.submissions {
		if submission.AcceptanceID == acceptanceID {
			return submission, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memSubmissions) FindByUserAndChallenge(username string, challengeID uint) (*model.Submission, error) {
	for _, submission := range s.submissions {
		if submission.Username == username && submission.ChallengeID == challengeID {
			return submission, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memSubmissions) FindByID(id string) (*model.Submission, error) {
	for _, submission := range s.submissions {
		if submission.ID == id {
			return submission, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memSubmissions) FindByUser(username string) ([]*model.Submission, error) {
	var result []*model.Submission
	for _, submission := range s.submissions {
		if submission.Username == username {
			result = append(result, submission)
		}
	}
	return result, nil
}

func (s *memSubmissions) CreateWithReview(submission *model.Submission, review *model.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.submissions {
		if existing.Username == submission.Username && existing.ChallengeID == submission.ChallengeID {
			return util.ErrDuplicateSubmission
		}
	}

	var acceptance *model.Acceptance
	for _, candidate := range s.acceptances {
		if candidate.ID == submission.AcceptanceID {
			acceptance = candidate
			break
		}
	}
	if acceptance == nil || !acceptance.Status.IsActive() {
		return util.ErrAcceptanceNotActive
	}

	submission.ID = model.GenerateUUID()
	s.submissions = append(s.submissions, submission)

	review.ID = model.GenerateUUID()
	review.SubmissionID = submission.ID
	s.reviews = append(s.reviews, review)

	acceptance.Status = model.AcceptancePendingReview
	return nil
}

func (r *memReviews) FindBySubmissionID(submissionID string) (*model.Review, error) {
	for _, review := range r.reviews {
		if review.SubmissionID == submissionID {
			return review, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memReviews) FindPending() ([]*model.Review, error) {
	var result []*model.Review
	for _, review := range r.reviews {
		if review.Status == model.ReviewPending {
			result = append(result, review)
		}
	}
	return result, nil
}

func (r *memReviews) Finalize(
	review *model.Review,
	submission *model.Submission,
	target model.ReviewStatus,
	reviewedBy, comment string,
	reviewedAt time.Time,
	pointsAwarded int,
	isOnTime bool,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var stored *model.Review
	for _, candidate := range r.reviews {
		if candidate.ID == review.ID {
			stored = candidate
			break
		}
	}
	if stored == nil {
		return gorm.ErrRecordNotFound
	}
	if stored.Status != model.ReviewPending {
		return util.ErrReviewAlreadyFinal
	}

	stored.Status = target
	stored.ReviewedBy = reviewedBy
	stored.ReviewedAt = &reviewedAt
	stored.ReviewComment = comment
	stored.PointsAwarded = pointsAwarded
	stored.IsOnTime = isOnTime

	submission.Status = model.SubmissionStatus(target)
	for _, acceptance := range r.acceptances {
		if acceptance.ID == submission.AcceptanceID {
			acceptance.Status = model.AcceptanceStatus(target)
			break
		}
	}

	if target == model.ReviewApproved && pointsAwarded != 0 {
		if user, ok := r.users[stored.Username]; ok {
			user.TotalPoints += pointsAwarded
		}
	}
	return nil
}

func (p *memPenalties) Apply(record *model.PenaltyRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, existing := range p.penalties {
		if existing.Username == record.Username &&
			existing.ChallengeID == record.ChallengeID &&
			existing.Reason == record.Reason {
			return repository.ErrPenaltyAlreadyApplied
		}
	}
	record.ID = model.GenerateUUID()
	p.penalties = append(p.penalties, record)
	if user, ok := p.users[record.Username]; ok {
		user.TotalPoints += record.Points
	}
	return nil
}

func (p *memPenalties) FindByUser(username string) ([]*model.PenaltyRecord, error) {
	var result []*model.PenaltyRecord
	for _, record := range p.penalties {
		if record.Username == username {
			result = append(result, record)
		}
	}
	return result, nil
}
