package repository

import (
	"challengehub_backend/internal/model"
	"errors"

	"gorm.io/gorm"
)

// ErrPenaltyAlreadyApplied 该 (用户, 挑战) 已扣过分，扫描可安全跳过
var ErrPenaltyAlreadyApplied = errors.New("penalty already applied")

type PenaltyRepository struct {
	DB *gorm.DB
}

func NewPenaltyRepository(db *gorm.DB) *PenaltyRepository {
	return &PenaltyRepository{DB: db}
}

func (r *PenaltyRepository) FindByUser(username string) ([]*model.PenaltyRecord, error) {
	var records []*model.PenaltyRecord
	err := r.DB.Where("username = ?", username).Order("created_at DESC").Find(&records).Error
	return records, err
}

// Apply 插入扣分记录并同步扣减用户总积分
// 唯一索引 (username, challenge_id, reason) 是幂等闸门：重复插入命中唯一键冲突，
// 整个事务回滚，积分不会扣第二次
func (r *PenaltyRepository) Apply(record *model.PenaltyRecord) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("username = ?", record.Username).
			UpdateColumn("total_points", gorm.Expr("total_points + ?", record.Points)).
			Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrPenaltyAlreadyApplied
	}
	return err
}
