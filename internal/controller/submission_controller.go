package controller

import (
	"challengehub_backend/internal/service"
	"challengehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// SubmitSolutionRequest 提交方案请求
// swagger:model SubmitSolutionRequest
type SubmitSolutionRequest struct {
	ChallengeID   uint     `json:"challengeId" binding:"required"`
	Description   string   `json:"description" binding:"required,min=10"`
	Technologies  []string `json:"technologies"`
	SourceCodeURL string   `json:"sourceCodeUrl" binding:"required,url"`
	HostedAppURL  string   `json:"hostedAppUrl" binding:"omitempty,url"`
}

// SubmitSolution godoc
// @Summary 提交方案
// @Description 每个挑战只允许提交一次；提交后自动生成待评审记录
// @Tags 提交
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SubmitSolutionRequest true "提交方案请求"
// @Success 201 {object} util.Response{data=model.Submission} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "没有进行中的接受记录"
// @Failure 409 {object} util.Response "重复提交"
// @Router /api/submissions [post]
func (c *SubmissionController) SubmitSolution(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var request SubmitSolutionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.SubmissionService.Submit(claims.Username, service.SubmitRequest{
		ChallengeID:   request.ChallengeID,
		Description:   request.Description,
		Technologies:  request.Technologies,
		SourceCodeURL: request.SourceCodeURL,
		HostedAppURL:  request.HostedAppURL,
	})
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Created(ctx, submission)
}

// ListMySubmissions godoc
// @Summary 我的提交
// @Description 当前用户全部提交，附带评审状态
// @Tags 提交
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.SubmissionWithReview} "成功"
// @Router /api/submissions/mine [get]
func (c *SubmissionController) ListMySubmissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	submissions, err := c.SubmissionService.ListMine(claims.Username)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"submissions": submissions,
	})
}
