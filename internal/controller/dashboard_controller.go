package controller

import (
	"challengehub_backend/internal/service"
	"challengehub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetDashboard godoc
// @Summary 个人工作台
// @Description 当前进行中的挑战、最近提交、总积分，管理角色附带待评审数量
// @Tags 工作台
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=service.Dashboard} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.DashboardService.GetDashboard(claims)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}
