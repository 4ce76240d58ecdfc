package service

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/repository"
	"challengehub_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	PenaltyRepo *repository.PenaltyRepository
}

func NewUserService(userRepo *repository.UserRepository, penaltyRepo *repository.PenaltyRepository) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		PenaltyRepo: penaltyRepo,
	}
}

// swagger:model UserProfile
type UserProfile struct {
	User      *model.User            `json:"user"`
	Penalties []*model.PenaltyRecord `json:"penalties"`
}

func (s *UserService) GetProfile(username string) (*UserProfile, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	penalties, err := s.PenaltyRepo.FindByUser(username)
	if err != nil {
		return nil, err
	}

	return &UserProfile{
		User:      user,
		Penalties: penalties,
	}, nil
}

func (s *UserService) List(page, limit int) ([]*model.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.List(page, limit)
}
