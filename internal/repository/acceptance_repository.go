package repository

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/util"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AcceptanceRepository struct {
	DB *gorm.DB
}

func NewAcceptanceRepository(db *gorm.DB) *AcceptanceRepository {
	return &AcceptanceRepository{DB: db}
}

func (r *AcceptanceRepository) FindByID(id string) (*model.Acceptance, error) {
	var acceptance model.Acceptance
	err := r.DB.Where("id = ?", id).First(&acceptance).Error
	return &acceptance, err
}

func (r *AcceptanceRepository) FindByUser(username string) ([]*model.Acceptance, error) {
	var acceptances []*model.Acceptance
	err := r.DB.Where("username = ?", username).Order("accepted_at DESC").Find(&acceptances).Error
	return acceptances, err
}

// FindLatestByUserAndChallenge 取该用户对该挑战最近一次接受记录
func (r *AcceptanceRepository) FindLatestByUserAndChallenge(username string, challengeID uint) (*model.Acceptance, error) {
	var acceptance model.Acceptance
	err := r.DB.Where("username = ? AND challenge_id = ?", username, challengeID).
		Order("accepted_at DESC").
		First(&acceptance).Error
	return &acceptance, err
}

func (r *AcceptanceRepository) FindActiveByUser(username string) (*model.Acceptance, error) {
	var acceptance model.Acceptance
	err := r.DB.Where("username = ? AND status IN ?", username, model.ActiveAcceptanceStatuses).
		First(&acceptance).Error
	return &acceptance, err
}

// CreateIfNoActive 单活跃挑战约束的原子检查加插入
// 事务内对该用户的接受记录加排他锁（InnoDB 的 gap lock 同时挡住并发首次接受），
// 复查活跃集合后再插入，两次并发接受只会成功一次
func (r *AcceptanceRepository) CreateIfNoActive(acceptance *model.Acceptance) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Acceptance{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("username = ? AND status IN ?", acceptance.Username, model.ActiveAcceptanceStatuses).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return util.ErrActiveChallengeExists
		}
		return tx.Create(acceptance).Error
	})
}

// UpdateStatusFrom 仅当当前状态在 from 集合内才迁移，防止并发下的非法状态跳转
func (r *AcceptanceRepository) UpdateStatusFrom(id string, from []model.AcceptanceStatus, to model.AcceptanceStatus) error {
	result := r.DB.Model(&model.Acceptance{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return util.ErrInvalidStatusChange
	}
	return nil
}

// FindOverdueAccepted 逾期未提交扫描：状态仍为 accepted、承诺日期已过、且不存在对应提交
func (r *AcceptanceRepository) FindOverdueAccepted(now time.Time) ([]*model.Acceptance, error) {
	var acceptances []*model.Acceptance
	err := r.DB.Where("status = ? AND committed_date < ?", model.AcceptanceAccepted, now).
		Where("NOT EXISTS (SELECT 1 FROM submissions WHERE submissions.username = acceptances.username AND submissions.challenge_id = acceptances.challenge_id AND submissions.deleted_at IS NULL)").
		Find(&acceptances).Error
	return acceptances, err
}
