package service

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/repository"
	"challengehub_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ChallengeService 挑战的创建、审批、编辑和查询
type ChallengeService struct {
	Challenges *repository.ChallengeRepository
	Status     *StatusService
}

func NewChallengeService(challenges *repository.ChallengeRepository, status *StatusService) *ChallengeService {
	return &ChallengeService{
		Challenges: challenges,
		Status:     status,
	}
}

// CreateRequest 创建挑战的入参
type CreateRequest struct {
	Title           string
	Description     string
	ExpectedOutcome string
	Tags            []string
	Points          int
	PenaltyPoints   int
	Deadline        *time.Time
}

// Create 员工创建进入待审批，管理角色创建直接开放
func (s *ChallengeService) Create(creator *util.Claims, req CreateRequest) (*model.Challenge, error) {
	if req.Points < 0 || req.PenaltyPoints < 0 {
		return nil, util.ErrNegativePoints
	}

	status := model.ChallengePendingApproval
	if creator.Role == model.Management || creator.Role == model.Admin {
		status = model.ChallengeOpen
	}

	challenge := &model.Challenge{
		Title:           req.Title,
		Description:     req.Description,
		ExpectedOutcome: req.ExpectedOutcome,
		Tags:            req.Tags,
		Status:          status,
		Points:          req.Points,
		PenaltyPoints:   req.PenaltyPoints,
		Deadline:        req.Deadline,
		CreatedBy:       creator.Username,
	}

	if err := s.Challenges.Create(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

func (s *ChallengeService) List(status model.ChallengeStatus, tag string, page, limit int) ([]*model.Challenge, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Challenges.List(status, tag, page, limit)
}

// swagger:model ChallengeDetail
type ChallengeDetail struct {
	Challenge  *model.Challenge `json:"challenge"`
	Resolution Resolution       `json:"resolution"`
}

// GetDetail 挑战详情，附带调用者在该挑战上的实时状态
func (s *ChallengeService) GetDetail(username string, id uint) (*ChallengeDetail, error) {
	challenge, err := s.Challenges.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}

	resolution, err := s.Status.Resolve(username, id)
	if err != nil {
		return nil, err
	}

	return &ChallengeDetail{
		Challenge:  challenge,
		Resolution: resolution,
	}, nil
}

// UpdateRequest 编辑挑战的入参，nil 字段不修改
type UpdateRequest struct {
	Title           *string
	Description     *string
	ExpectedOutcome *string
	Tags            []string
	Points          *int
	PenaltyPoints   *int
	Deadline        *time.Time
}

// Update 创建者或管理角色可编辑；已关闭的挑战不可编辑
func (s *ChallengeService) Update(actor *util.Claims, id uint, req UpdateRequest) (*model.Challenge, error) {
	if req.Points != nil && *req.Points < 0 {
		return nil, util.ErrNegativePoints
	}
	if req.PenaltyPoints != nil && *req.PenaltyPoints < 0 {
		return nil, util.ErrNegativePoints
	}

	challenge, err := s.Challenges.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}

	isManager := actor.Role == model.Management || actor.Role == model.Admin
	if challenge.CreatedBy != actor.Username && !isManager {
		return nil, util.ErrPermissionDenied
	}
	if challenge.Status == model.ChallengeClosed {
		return nil, util.ErrInvalidStatusChange
	}

	if req.Title != nil {
		challenge.Title = *req.Title
	}
	if req.Description != nil {
		challenge.Description = *req.Description
	}
	if req.ExpectedOutcome != nil {
		challenge.ExpectedOutcome = *req.ExpectedOutcome
	}
	if req.Tags != nil {
		challenge.Tags = req.Tags
	}
	if req.Points != nil {
		challenge.Points = *req.Points
	}
	if req.PenaltyPoints != nil {
		challenge.PenaltyPoints = *req.PenaltyPoints
	}
	if req.Deadline != nil {
		challenge.Deadline = req.Deadline
	}

	if err := s.Challenges.Update(challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// Approve 审批通过：pending_approval → open
func (s *ChallengeService) Approve(id uint) error {
	err := s.Challenges.UpdateStatusFrom(id, model.ChallengePendingApproval, model.ChallengeOpen)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrInvalidStatusChange
	}
	return err
}

// Close 软关闭：open → closed，不做物理删除
func (s *ChallengeService) Close(id uint) error {
	err := s.Challenges.UpdateStatusFrom(id, model.ChallengeOpen, model.ChallengeClosed)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrInvalidStatusChange
	}
	return err
}
