package controller

import (
	"challengehub_backend/internal/service"
	"challengehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	ReviewService *service.ReviewService
}

func NewReviewController(reviewService *service.ReviewService) *ReviewController {
	return &ReviewController{ReviewService: reviewService}
}

// ReviewSubmissionRequest 评审请求
// swagger:model ReviewSubmissionRequest
type ReviewSubmissionRequest struct {
	Action  string `json:"action" binding:"required,oneof=approve reject rework"`
	Comment string `json:"comment"`
}

// ReviewSubmission godoc
// @Summary 评审提交
// @Description 管理角色出具评审结论，终态不可重评；通过时按时满分、逾期扣罚
// @Tags 评审
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "提交ID"
// @Param request body ReviewSubmissionRequest true "评审请求"
// @Success 200 {object} util.Response{data=model.Review} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "提交不存在"
// @Failure 409 {object} util.Response "评审已出结论"
// @Router /api/submissions/{id}/review [patch]
func (c *ReviewController) ReviewSubmission(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var request ReviewSubmissionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	review, err := c.ReviewService.Finalize(claims, ctx.Param("id"), service.ReviewAction(request.Action), request.Comment)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, review)
}

// GetPendingReviews godoc
// @Summary 待评审队列
// @Description 管理角色的待评审列表，附带提交内容和挑战标题
// @Tags 评审
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.PendingReviewItem} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/review/pending [get]
func (c *ReviewController) GetPendingReviews(ctx *gin.Context) {
	items, err := c.ReviewService.PendingQueue()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"reviews": items,
	})
}
