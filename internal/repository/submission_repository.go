package repository

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("id = ?", id).First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) FindByUser(username string) ([]*model.Submission, error) {
	var submissions []*model.Submission
	err := r.DB.Where("username = ?", username).Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindByAcceptanceID(acceptanceID string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("acceptance_id = ?", acceptanceID).First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) FindByUserAndChallenge(username string, challengeID uint) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("username = ? AND challenge_id = ?", username, challengeID).First(&submission).Error
	return &submission, err
}

// CreateWithReview 提交与待评审记录一并落库，同时把接受记录推进到 pending_review
// 任一步失败整体回滚，不会留下半套记录
func (r *SubmissionRepository) CreateWithReview(submission *model.Submission, review *model.Review) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}

		review.SubmissionID = submission.ID
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Acceptance{}).
			Where("id = ? AND status IN ?", submission.AcceptanceID, model.ActiveAcceptanceStatuses).
			Update("status", model.AcceptancePendingReview)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return util.ErrAcceptanceNotActive
		}
		return nil
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrDuplicateSubmission
	}
	return err
}
