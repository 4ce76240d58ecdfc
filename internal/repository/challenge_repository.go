package repository

import (
	"challengehub_backend/internal/model"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) Create(challenge *model.Challenge) error {
	return r.DB.Create(challenge).Error
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var challenge model.Challenge
	err := r.DB.First(&challenge, id).Error
	return &challenge, err
}

// List 按状态/标签过滤并分页，status 或 tag 为空时不过滤
func (r *ChallengeRepository) List(status model.ChallengeStatus, tag string, page, limit int) ([]*model.Challenge, int64, error) {
	var challenges []*model.Challenge
	var total int64

	query := r.DB.Model(&model.Challenge{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if tag != "" {
		// tags 以 JSON 数组存储，用 LIKE 做包含匹配
		query = query.Where("tags LIKE ?", "%\""+tag+"\"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&challenges).Error
	return challenges, total, err
}

func (r *ChallengeRepository) FindByCreator(username string) ([]*model.Challenge, error) {
	var challenges []*model.Challenge
	err := r.DB.Where("created_by = ?", username).Order("created_at DESC").Find(&challenges).Error
	return challenges, err
}

func (r *ChallengeRepository) Update(challenge *model.Challenge) error {
	return r.DB.Save(challenge).Error
}

// UpdateStatusFrom 仅当当前状态匹配时才迁移状态，返回 gorm.ErrRecordNotFound 表示状态不符或不存在
func (r *ChallengeRepository) UpdateStatusFrom(id uint, from, to model.ChallengeStatus) error {
	result := r.DB.Model(&model.Challenge{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
