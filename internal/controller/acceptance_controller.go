package controller

import (
	"challengehub_backend/internal/service"
	"challengehub_backend/internal/util"
	"time"

	"github.com/gin-gonic/gin"
)

type AcceptanceController struct {
	AcceptanceService *service.AcceptanceService
}

func NewAcceptanceController(acceptanceService *service.AcceptanceService) *AcceptanceController {
	return &AcceptanceController{AcceptanceService: acceptanceService}
}

// AcceptChallengeRequest 接受挑战请求
// swagger:model AcceptChallengeRequest
type AcceptChallengeRequest struct {
	ChallengeID   uint      `json:"challengeId" binding:"required"`
	CommittedDate time.Time `json:"committedDate" binding:"required"`
}

// AcceptChallenge godoc
// @Summary 接受挑战
// @Description 承诺日期最早为明天；同一时间只能有一个进行中的挑战
// @Tags 接受
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AcceptChallengeRequest true "接受挑战请求"
// @Success 201 {object} util.Response{data=model.Acceptance} "成功"
// @Failure 404 {object} util.Response "挑战不存在或未开放"
// @Failure 409 {object} util.Response "已有进行中的挑战或承诺日期过早"
// @Router /api/challenges/accept [post]
func (c *AcceptanceController) AcceptChallenge(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var request AcceptChallengeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	acceptance, err := c.AcceptanceService.Accept(claims.Username, request.ChallengeID, request.CommittedDate)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, acceptance)
}

// WithdrawAcceptance godoc
// @Summary 放弃挑战
// @Description 放弃进行中的挑战，终态、不可逆，释放接受名额
// @Tags 接受
// @Produce json
// @Security BearerAuth
// @Param id path string true "接受记录ID"
// @Success 200 {object} util.Response{data=model.Acceptance} "成功"
// @Failure 404 {object} util.Response "记录不存在"
// @Failure 409 {object} util.Response "当前状态不允许放弃"
// @Router /api/acceptances/{id}/withdraw [post]
func (c *AcceptanceController) WithdrawAcceptance(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	acceptance, err := c.AcceptanceService.Withdraw(claims.Username, ctx.Param("id"))
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, acceptance)
}

// ListMyAcceptances godoc
// @Summary 我的接受记录
// @Description 当前用户全部接受记录，附带实时推导状态
// @Tags 接受
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.AcceptanceWithStatus} "成功"
// @Router /api/acceptances/mine [get]
func (c *AcceptanceController) ListMyAcceptances(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	acceptances, err := c.AcceptanceService.ListMine(claims.Username)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"acceptances": acceptances,
	})
}
