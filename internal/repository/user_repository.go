package repository

import (
	"challengehub_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

// FindTopByPoints 按总积分倒序分页，department 为空时查全部
func (r *UserRepository) FindTopByPoints(department string, limit, offset int) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	query := r.DB.Model(&model.User{})
	if department != "" {
		query = query.Where("department = ?", department)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("total_points DESC, username ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, total, err
}

func (r *UserRepository) List(page, limit int) ([]*model.User, int64, error) {
	var users []*model.User
	var total int64

	if err := r.DB.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.DB.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

// AddPoints 积分增减，delta 可为负
func (r *UserRepository) AddPoints(username string, delta int) error {
	return r.DB.Model(&model.User{}).
		Where("username = ?", username).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", delta)).
		Error
}
