package service

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/util"
	"errors"
	"testing"
	"time"
)

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate() { c.calls++ }

func newReviewService(store *memStore, leaderboard LeaderboardInvalidator) *ReviewService {
	return NewReviewService(store.reviewStore(), store.submissionStore(), store.challengeStore(), leaderboard)
}

func managerClaims() *util.Claims {
	return &util.Claims{UserID: 1, Username: "manager", Role: model.Management}
}

// 搭一条已提交待评审的完整链路
func seedPendingSubmission(store *memStore, committed, submitted time.Time) (*model.Submission, *model.Review) {
	store.addUser("alice", model.Employee)
	store.addChallenge(1, 500, 50, model.ChallengeOpen)
	acceptance := store.addAcceptance("alice", 1, model.AcceptanceAccepted, committed)
	return store.addSubmission(acceptance, submitted)
}

func TestFinalizeApproveOnTime(t *testing.T) {
	store := newMemStore()
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	submission, _ := seedPendingSubmission(store, committed, committed.Add(-6*time.Hour))
	leaderboard := &countingInvalidator{}
	svc := newReviewService(store, leaderboard)

	review, err := svc.Finalize(managerClaims(), submission.ID, ActionApprove, "做得不错")
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if review.Status != model.ReviewApproved {
		t.Errorf("review status = %q, want approved", review.Status)
	}
	if review.PointsAwarded != 500 {
		t.Errorf("points awarded = %d, want 500", review.PointsAwarded)
	}
	if !review.IsOnTime {
		t.Error("on-time submission should be marked on time")
	}
	if review.ReviewedBy != "manager" || review.ReviewedAt == nil {
		t.Error("reviewer identity and timestamp should be recorded")
	}

	if store.users["alice"].TotalPoints != 500 {
		t.Errorf("user total points = %d, want 500", store.users["alice"].TotalPoints)
	}
	if submission.Status != model.SubmissionApproved {
		t.Errorf("submission status = %q, want approved", submission.Status)
	}
	if store.acceptances[0].Status != model.AcceptanceApproved {
		t.Errorf("acceptance status = %q, want approved", store.acceptances[0].Status)
	}
	if leaderboard.calls != 1 {
		t.Errorf("leaderboard invalidated %d times, want 1", leaderboard.calls)
	}
}

func TestFinalizeApproveLate(t *testing.T) {
	store := newMemStore()
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	submission, _ := seedPendingSubmission(store, committed, committed.AddDate(0, 0, 1))
	svc := newReviewService(store, nil)

	review, err := svc.Finalize(managerClaims(), submission.ID, ActionApprove, "")
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if review.PointsAwarded != 450 {
		t.Errorf("late approval points = %d, want 450", review.PointsAwarded)
	}
	if review.IsOnTime {
		t.Error("late submission should not be marked on time")
	}
	if store.users["alice"].TotalPoints != 450 {
		t.Errorf("user total points = %d, want 450", store.users["alice"].TotalPoints)
	}
}

func TestFinalizeRejectAwardsNothing(t *testing.T) {
	store := newMemStore()
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	submission, _ := seedPendingSubmission(store, committed, committed.Add(-time.Hour))
	leaderboard := &countingInvalidator{}
	svc := newReviewService(store, leaderboard)

	review, err := svc.Finalize(managerClaims(), submission.ID, ActionReject, "不符合要求")
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if review.PointsAwarded != 0 {
		t.Errorf("rejected points = %d, want 0", review.PointsAwarded)
	}
	if store.users["alice"].TotalPoints != 0 {
		t.Errorf("user total points = %d, want 0", store.users["alice"].TotalPoints)
	}
	if store.acceptances[0].Status != model.AcceptanceRejected {
		t.Errorf("acceptance status = %q, want rejected", store.acceptances[0].Status)
	}
	// 非通过结论不触发排行榜失效
	if leaderboard.calls != 0 {
		t.Errorf("leaderboard invalidated %d times, want 0", leaderboard.calls)
	}
}

func TestFinalizeRework(t *testing.T) {
	store := newMemStore()
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	submission, _ := seedPendingSubmission(store, committed, committed.Add(-time.Hour))
	svc := newReviewService(store, nil)

	review, err := svc.Finalize(managerClaims(), submission.ID, ActionRework, "补充测试")
	if err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	if review.Status != model.ReviewNeedsRework || review.PointsAwarded != 0 {
		t.Errorf("rework result = (%q, %d), want (needs_rework, 0)", review.Status, review.PointsAwarded)
	}
	// 返工释放名额，用户可以接受新挑战
	can, err := store.statusService().CanAcceptNew("alice")
	if err != nil {
		t.Fatalf("CanAcceptNew() error: %v", err)
	}
	if !can {
		t.Error("needs_rework should release the acceptance slot")
	}
}

// 重复评审返回冲突，且积分只结算一次
func TestFinalizeTerminalIsFinal(t *testing.T) {
	store := newMemStore()
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	submission, _ := seedPendingSubmission(store, committed, committed.Add(-time.Hour))
	svc := newReviewService(store, nil)

	if _, err := svc.Finalize(managerClaims(), submission.ID, ActionApprove, ""); err != nil {
		t.Fatalf("first Finalize() error: %v", err)
	}
	if _, err := svc.Finalize(managerClaims(), submission.ID, ActionApprove, ""); !errors.Is(err, util.ErrReviewAlreadyFinal) {
		t.Errorf("second Finalize() error = %v, want ErrReviewAlreadyFinal", err)
	}
	if _, err := svc.Finalize(managerClaims(), submission.ID, ActionReject, ""); !errors.Is(err, util.ErrReviewAlreadyFinal) {
		t.Errorf("re-review with different action error = %v, want ErrReviewAlreadyFinal", err)
	}
	if store.users["alice"].TotalPoints != 500 {
		t.Errorf("user total points = %d after repeated reviews, want 500", store.users["alice"].TotalPoints)
	}
}

func TestFinalizePermissions(t *testing.T) {
	store := newMemStore()
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	submission, _ := seedPendingSubmission(store, committed, committed.Add(-time.Hour))
	svc := newReviewService(store, nil)

	employee := &util.Claims{UserID: 2, Username: "alice", Role: model.Employee}
	if _, err := svc.Finalize(employee, submission.ID, ActionApprove, ""); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("employee Finalize() error = %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Finalize(nil, submission.ID, ActionApprove, ""); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("anonymous Finalize() error = %v, want ErrPermissionDenied", err)
	}

	admin := &util.Claims{UserID: 3, Username: "admin", Role: model.Admin}
	if _, err := svc.Finalize(admin, submission.ID, ActionApprove, ""); err != nil {
		t.Errorf("admin Finalize() error: %v", err)
	}
}

func TestFinalizeValidation(t *testing.T) {
	store := newMemStore()
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	submission, _ := seedPendingSubmission(store, committed, committed.Add(-time.Hour))
	svc := newReviewService(store, nil)

	if _, err := svc.Finalize(managerClaims(), submission.ID, ReviewAction("escalate"), ""); !errors.Is(err, util.ErrInvalidReviewAction) {
		t.Errorf("unknown action error = %v, want ErrInvalidReviewAction", err)
	}
	if _, err := svc.Finalize(managerClaims(), "missing-id", ActionApprove, ""); !errors.Is(err, util.ErrSubmissionNotFound) {
		t.Errorf("missing submission error = %v, want ErrSubmissionNotFound", err)
	}
}

func TestPendingQueue(t *testing.T) {
	store := newMemStore()
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	submission, _ := seedPendingSubmission(store, committed, committed.Add(-time.Hour))
	svc := newReviewService(store, nil)

	items, err := svc.PendingQueue()
	if err != nil {
		t.Fatalf("PendingQueue() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("pending queue length = %d, want 1", len(items))
	}
	if items[0].Submission == nil || items[0].Submission.ID != submission.ID {
		t.Error("pending item should carry its submission")
	}
	if items[0].ChallengeTitle == "" {
		t.Error("pending item should carry the challenge title")
	}

	if _, err := svc.Finalize(managerClaims(), submission.ID, ActionApprove, ""); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}
	items, err = svc.PendingQueue()
	if err != nil {
		t.Fatalf("PendingQueue() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("pending queue length after review = %d, want 0", len(items))
	}
}
