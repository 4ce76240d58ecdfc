package service

import (
	"challengehub_backend/internal/model"
	"testing"
	"time"
)

func newPenaltyService(store *memStore, leaderboard LeaderboardInvalidator) *PenaltyService {
	return NewPenaltyService(store.acceptanceStore(), store.penaltyStore(), store.challengeStore(), leaderboard)
}

func TestSweepAppliesPenalty(t *testing.T) {
	store := newMemStore()
	user := store.addUser("alice", model.Employee)
	user.TotalPoints = 200
	store.addChallenge(1, 500, 50, model.ChallengeOpen)
	now := time.Now()
	store.addAcceptance("alice", 1, model.AcceptanceAccepted, now.AddDate(0, 0, -2))
	leaderboard := &countingInvalidator{}
	svc := newPenaltyService(store, leaderboard)

	applied, err := svc.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if applied != 1 {
		t.Errorf("Sweep() applied = %d, want 1", applied)
	}
	if user.TotalPoints != 150 {
		t.Errorf("user total points = %d, want 150", user.TotalPoints)
	}
	if len(store.penalties) != 1 {
		t.Fatalf("penalty records = %d, want 1", len(store.penalties))
	}
	record := store.penalties[0]
	if record.Points != -50 || record.Reason != model.PenaltyNoSubmission {
		t.Errorf("penalty record = (%d, %q), want (-50, no_submission)", record.Points, record.Reason)
	}
	if leaderboard.calls != 1 {
		t.Errorf("leaderboard invalidated %d times, want 1", leaderboard.calls)
	}
}

// 重复扫描是幂等的，同一对 (用户, 挑战) 只扣一次
func TestSweepIdempotent(t *testing.T) {
	store := newMemStore()
	user := store.addUser("alice", model.Employee)
	user.TotalPoints = 200
	store.addChallenge(1, 500, 50, model.ChallengeOpen)
	now := time.Now()
	store.addAcceptance("alice", 1, model.AcceptanceAccepted, now.AddDate(0, 0, -2))
	svc := newPenaltyService(store, nil)

	if _, err := svc.Sweep(now); err != nil {
		t.Fatalf("first Sweep() error: %v", err)
	}
	applied, err := svc.Sweep(now)
	if err != nil {
		t.Fatalf("second Sweep() error: %v", err)
	}
	if applied != 0 {
		t.Errorf("second Sweep() applied = %d, want 0", applied)
	}
	if user.TotalPoints != 150 {
		t.Errorf("user total points = %d after double sweep, want 150", user.TotalPoints)
	}
	if len(store.penalties) != 1 {
		t.Errorf("penalty records = %d after double sweep, want 1", len(store.penalties))
	}
}

func TestSweepSkipsSubmittedAndFuture(t *testing.T) {
	store := newMemStore()
	store.addUser("alice", model.Employee)
	store.addUser("bob", model.Employee)
	store.addUser("carol", model.Employee)
	store.addChallenge(1, 500, 50, model.ChallengeOpen)
	store.addChallenge(2, 300, 30, model.ChallengeOpen)
	store.addChallenge(3, 300, 30, model.ChallengeOpen)
	now := time.Now()

	// alice 逾期但已提交，不扣分
	overdue := store.addAcceptance("alice", 1, model.AcceptanceAccepted, now.AddDate(0, 0, -2))
	store.addSubmission(overdue, now.AddDate(0, 0, -1))
	overdue.Status = model.AcceptanceAccepted

	// bob 承诺日期还没到
	store.addAcceptance("bob", 2, model.AcceptanceAccepted, now.AddDate(0, 0, 3))

	// carol 已放弃，不在扫描范围内
	store.addAcceptance("carol", 3, model.AcceptanceWithdrawn, now.AddDate(0, 0, -2))

	svc := newPenaltyService(store, nil)
	applied, err := svc.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if applied != 0 {
		t.Errorf("Sweep() applied = %d, want 0", applied)
	}
	if len(store.penalties) != 0 {
		t.Errorf("penalty records = %d, want 0", len(store.penalties))
	}
}

func TestSweepMultipleUsers(t *testing.T) {
	store := newMemStore()
	store.addUser("alice", model.Employee)
	store.addUser("bob", model.Employee)
	store.addChallenge(1, 500, 50, model.ChallengeOpen)
	store.addChallenge(2, 300, 30, model.ChallengeOpen)
	now := time.Now()
	store.addAcceptance("alice", 1, model.AcceptanceAccepted, now.AddDate(0, 0, -1))
	store.addAcceptance("bob", 2, model.AcceptanceAccepted, now.AddDate(0, 0, -5))
	svc := newPenaltyService(store, nil)

	applied, err := svc.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}
	if applied != 2 {
		t.Errorf("Sweep() applied = %d, want 2", applied)
	}
	if store.users["alice"].TotalPoints != -50 {
		t.Errorf("alice total points = %d, want -50", store.users["alice"].TotalPoints)
	}
	if store.users["bob"].TotalPoints != -30 {
		t.Errorf("bob total points = %d, want -30", store.users["bob"].TotalPoints)
	}
}
