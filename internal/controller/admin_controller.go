package controller

import (
	"challengehub_backend/internal/service"
	"challengehub_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// AdminController 管理员接口：用户列表、手动触发逾期扣分扫描
type AdminController struct {
	UserService    *service.UserService
	PenaltyService *service.PenaltyService
}

func NewAdminController(userService *service.UserService, penaltyService *service.PenaltyService) *AdminController {
	return &AdminController{
		UserService:    userService,
		PenaltyService: penaltyService,
	}
}

// ListUsers godoc
// @Summary 用户列表
// @Description 管理员分页查询全部用户
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	users, total, err := c.UserService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// TriggerPenaltySweep godoc
// @Summary 手动触发逾期扣分扫描
// @Description 幂等，重复触发不会重复扣分
// @Tags 管理
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=map[string]interface{}} "成功"
// @Failure 403 {object} util.Response "权限不足"
// @Router /api/admin/penalties/sweep [post]
func (c *AdminController) TriggerPenaltySweep(ctx *gin.Context) {
	applied, err := c.PenaltyService.Sweep(time.Now())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"applied": applied,
	})
}
