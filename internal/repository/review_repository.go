package repository

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{DB: db}
}

func (r *ReviewRepository) FindBySubmissionID(submissionID string) (*model.Review, error) {
	var review model.Review
	err := r.DB.Where("submission_id = ?", submissionID).First(&review).Error
	return &review, err
}

func (r *ReviewRepository) FindByUserAndChallenge(username string, challengeID uint) (*model.Review, error) {
	var review model.Review
	err := r.DB.Where("username = ? AND challenge_id = ?", username, challengeID).
		Order("created_at DESC").
		First(&review).Error
	return &review, err
}

func (r *ReviewRepository) FindPending() ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.DB.Where("status = ?", model.ReviewPending).Order("created_at ASC").Find(&reviews).Error
	return reviews, err
}

// Finalize 评审终态落库：评审、提交、接受记录和用户积分在一个事务内更新
// 评审行的更新带 status = pending_review 条件，并发重复评审只有一个会生效，
// 积分因此恰好应用一次
func (r *ReviewRepository) Finalize(
	review *model.Review,
	submission *model.Submission,
	target model.ReviewStatus,
	reviewedBy, comment string,
	reviewedAt time.Time,
	pointsAwarded int,
	isOnTime bool,
) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Review{}).
			Where("id = ? AND status = ?", review.ID, model.ReviewPending).
			Updates(map[string]interface{}{
				"status":         target,
				"reviewed_by":    reviewedBy,
				"reviewed_at":    reviewedAt,
				"review_comment": comment,
				"points_awarded": pointsAwarded,
				"is_on_time":     isOnTime,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return util.ErrReviewAlreadyFinal
		}

		if err := tx.Model(&model.Submission{}).
			Where("id = ?", submission.ID).
			Update("status", model.SubmissionStatus(target)).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Acceptance{}).
			Where("id = ?", submission.AcceptanceID).
			Update("status", model.AcceptanceStatus(target)).Error; err != nil {
			return err
		}

		if target == model.ReviewApproved && pointsAwarded != 0 {
			if err := tx.Model(&model.User{}).
				Where("username = ?", review.Username).
				UpdateColumn("total_points", gorm.Expr("total_points + ?", pointsAwarded)).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
