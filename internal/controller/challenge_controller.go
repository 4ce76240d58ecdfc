package controller

import (
	"challengehub_backend/internal/model"
	"challengehub_backend/internal/service"
	"challengehub_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ChallengeController 挑战的创建、审批、查询
type ChallengeController struct {
	ChallengeService *service.ChallengeService
	StatusService    *service.StatusService
}

func NewChallengeController(challengeService *service.ChallengeService, statusService *service.StatusService) *ChallengeController {
	return &ChallengeController{
		ChallengeService: challengeService,
		StatusService:    statusService,
	}
}

// CreateChallengeRequest 创建挑战请求
// swagger:model CreateChallengeRequest
type CreateChallengeRequest struct {
	Title           string     `json:"title" binding:"required,max=200"`
	Description     string     `json:"description" binding:"required"`
	ExpectedOutcome string     `json:"expectedOutcome"`
	Tags            []string   `json:"tags"`
	Points          int        `json:"points" binding:"min=0"`
	PenaltyPoints   int        `json:"penaltyPoints" binding:"min=0"`
	Deadline        *time.Time `json:"deadline"`
}

// CreateChallenge godoc
// @Summary 创建挑战
// @Description 员工创建进入待审批，管理角色创建直接开放
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateChallengeRequest true "创建挑战请求"
// @Success 201 {object} util.Response{data=model.Challenge} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/challenges [post]
func (c *ChallengeController) CreateChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var request CreateChallengeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.Create(claims, service.CreateRequest{
		Title:           request.Title,
		Description:     request.Description,
		ExpectedOutcome: request.ExpectedOutcome,
		Tags:            request.Tags,
		Points:          request.Points,
		PenaltyPoints:   request.PenaltyPoints,
		Deadline:        request.Deadline,
	})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, challenge)
}

// ListChallenges godoc
// @Summary 挑战列表
// @Description 按状态/标签过滤并分页
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param status query string false "状态过滤"
// @Param tag query string false "标签过滤"
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/challenges [get]
func (c *ChallengeController) ListChallenges(ctx *gin.Context) {
	status := model.ChallengeStatus(ctx.Query("status"))
	tag := ctx.Query("tag")
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	challenges, total, err := c.ChallengeService.List(status, tag, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  challenges,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetChallenge godoc
// @Summary 挑战详情
// @Description 挑战详情，附带调用者在该挑战上的实时状态
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response{data=service.ChallengeDetail} "成功"
// @Failure 404 {object} util.Response "挑战不存在"
// @Router /api/challenges/{id} [get]
func (c *ChallengeController) GetChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "挑战ID无效")
		return
	}

	detail, err := c.ChallengeService.GetDetail(claims.Username, uint(id))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// GetAcceptanceStatus godoc
// @Summary 接受状态查询
// @Description 调用者在该挑战上的状态推导结果，展示层不得自行推导
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response{data=service.Resolution} "成功"
// @Router /api/challenges/{id}/acceptance-status [get]
func (c *ChallengeController) GetAcceptanceStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "挑战ID无效")
		return
	}

	resolution, err := c.StatusService.Resolve(claims.Username, uint(id))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, resolution)
}

// UpdateChallengeRequest 编辑挑战请求，未提供的字段不修改
// swagger:model UpdateChallengeRequest
type UpdateChallengeRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	ExpectedOutcome *string    `json:"expectedOutcome"`
	Tags            []string   `json:"tags"`
	Points          *int       `json:"points"`
	PenaltyPoints   *int       `json:"penaltyPoints"`
	Deadline        *time.Time `json:"deadline"`
}

// UpdateChallenge godoc
// @Summary 编辑挑战
// @Description 创建者或管理角色可编辑，已关闭的挑战不可编辑
// @Tags 挑战
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Param request body UpdateChallengeRequest true "编辑请求"
// @Success 200 {object} util.Response{data=model.Challenge} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/challenges/{id} [put]
func (c *ChallengeController) UpdateChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "挑战ID无效")
		return
	}

	var request UpdateChallengeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	challenge, err := c.ChallengeService.Update(claims, uint(id), service.UpdateRequest{
		Title:           request.Title,
		Description:     request.Description,
		ExpectedOutcome: request.ExpectedOutcome,
		Tags:            request.Tags,
		Points:          request.Points,
		PenaltyPoints:   request.PenaltyPoints,
		Deadline:        request.Deadline,
	})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, challenge)
}

// ApproveChallenge godoc
// @Summary 审批挑战
// @Description 管理角色将待审批挑战开放
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response "成功"
// @Failure 409 {object} util.Response "状态不允许"
// @Router /api/challenges/{id}/approve [post]
func (c *ChallengeController) ApproveChallenge(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "挑战ID无效")
		return
	}

	if err := c.ChallengeService.Approve(uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// CloseChallenge godoc
// @Summary 关闭挑战
// @Description 管理角色软关闭开放中的挑战
// @Tags 挑战
// @Produce json
// @Security BearerAuth
// @Param id path int true "挑战ID"
// @Success 200 {object} util.Response "成功"
// @Failure 409 {object} util.Response "状态不允许"
// @Router /api/challenges/{id}/close [post]
func (c *ChallengeController) CloseChallenge(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "挑战ID无效")
		return
	}

	if err := c.ChallengeService.Close(uint(id)); err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
