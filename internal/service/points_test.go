package service

import (
	"challengehub_backend/internal/model"
	"testing"
	"time"
)

func pointsChallenge(points, penalty int) *model.Challenge {
	return &model.Challenge{Points: points, PenaltyPoints: penalty}
}

func TestComputePointsOutcomes(t *testing.T) {
	challenge := pointsChallenge(500, 50)
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	onTime := time.Date(2024, 1, 14, 18, 0, 0, 0, time.UTC)
	late := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		outcome     model.ReviewStatus
		submittedAt time.Time
		want        int
	}{
		{"准时通过得满分", model.ReviewApproved, onTime, 500},
		{"逾期通过扣罚分", model.ReviewApproved, late, 450},
		{"未通过不得分", model.ReviewRejected, onTime, 0},
		{"逾期未通过也不得分", model.ReviewRejected, late, 0},
		{"需返工不得分", model.ReviewNeedsRework, onTime, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputePoints(challenge, tc.outcome, committed, tc.submittedAt)
			if got != tc.want {
				t.Errorf("ComputePoints() = %d, want %d", got, tc.want)
			}
		})
	}
}

// 承诺日当天提交算准时，边界为闭区间
func TestComputePointsOnTimeBoundary(t *testing.T) {
	challenge := pointsChallenge(300, 30)
	committed := time.Date(2024, 3, 1, 23, 59, 59, 0, time.UTC)

	if got := ComputePoints(challenge, model.ReviewApproved, committed, committed); got != 300 {
		t.Errorf("submission exactly at committed date should award full points, got %d", got)
	}
	oneSecondLate := committed.Add(time.Second)
	if got := ComputePoints(challenge, model.ReviewApproved, committed, oneSecondLate); got != 270 {
		t.Errorf("submission one second late should be penalized, got %d", got)
	}
}

// 罚分超过基础分时得分取零，不会出现负分
func TestComputePointsNeverNegative(t *testing.T) {
	challenge := pointsChallenge(40, 100)
	committed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	late := committed.AddDate(0, 0, 3)

	if got := ComputePoints(challenge, model.ReviewApproved, committed, late); got != 0 {
		t.Errorf("late award should floor at zero, got %d", got)
	}
}

// 承诺日期缺失时不视为逾期
func TestComputePointsZeroCommittedDate(t *testing.T) {
	challenge := pointsChallenge(200, 20)
	submitted := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := ComputePoints(challenge, model.ReviewApproved, time.Time{}, submitted); got != 200 {
		t.Errorf("missing committed date should award full points, got %d", got)
	}
}

// 相同输入必须产生相同输出，结算逻辑不依赖隐藏状态
func TestComputePointsDeterministic(t *testing.T) {
	challenge := pointsChallenge(500, 50)
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	late := committed.AddDate(0, 0, 1)

	first := ComputePoints(challenge, model.ReviewApproved, committed, late)
	for i := 0; i < 10; i++ {
		if got := ComputePoints(challenge, model.ReviewApproved, committed, late); got != first {
			t.Fatalf("ComputePoints() not deterministic: %d then %d", first, got)
		}
	}
}

func TestIsOnTime(t *testing.T) {
	committed := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	if !IsOnTime(committed, committed.Add(-time.Hour)) {
		t.Error("submission before committed date should be on time")
	}
	if !IsOnTime(committed, committed) {
		t.Error("submission at committed date should be on time")
	}
	if IsOnTime(committed, committed.Add(time.Minute)) {
		t.Error("submission after committed date should be late")
	}
	if !IsOnTime(time.Time{}, committed) {
		t.Error("missing committed date should count as on time")
	}
}

func TestDeductPenaltyPoints(t *testing.T) {
	if got := DeductPenaltyPoints(pointsChallenge(500, 50)); got != -50 {
		t.Errorf("DeductPenaltyPoints() = %d, want -50", got)
	}
	if got := DeductPenaltyPoints(pointsChallenge(500, 0)); got != 0 {
		t.Errorf("DeductPenaltyPoints() = %d, want 0", got)
	}
}
