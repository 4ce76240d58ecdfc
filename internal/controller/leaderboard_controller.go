package controller

import (
	"challengehub_backend/internal/service"
	"challengehub_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// GetLeaderboard godoc
// @Summary 积分排行榜
// @Description 按总积分倒序，可按部门过滤，结果短暂缓存
// @Tags 排行榜
// @Produce json
// @Security BearerAuth
// @Param department query string false "部门过滤"
// @Param limit query int false "每页数量"
// @Param offset query int false "偏移量"
// @Success 200 {object} util.Response{data=service.LeaderboardPage} "成功"
// @Router /api/leaderboard [get]
func (c *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	department := ctx.Query("department")
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	page, err := c.LeaderboardService.Get(department, limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, page)
}
