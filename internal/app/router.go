package app

import (
	"challengehub_backend/docs"
	"challengehub_backend/internal/config"
	"challengehub_backend/internal/middleware"
	"challengehub_backend/internal/model"
	"challengehub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.GET("/dashboard", c.dashboard.GetDashboard)
		authGroup.GET("/leaderboard", c.leaderboard.GetLeaderboard)

		// 挑战
		authGroup.POST("/challenges", c.challenge.CreateChallenge)
		authGroup.GET("/challenges", c.challenge.ListChallenges)
		authGroup.GET("/challenges/:id", c.challenge.GetChallenge)
		authGroup.PUT("/challenges/:id", c.challenge.UpdateChallenge)
		authGroup.GET("/challenges/:id/acceptance-status", c.challenge.GetAcceptanceStatus)

		// 接受/放弃
		authGroup.POST("/challenges/accept", c.acceptance.AcceptChallenge)
		authGroup.POST("/acceptances/:id/withdraw", c.acceptance.WithdrawAcceptance)
		authGroup.GET("/acceptances/mine", c.acceptance.ListMyAcceptances)

		// 提交
		authGroup.POST("/submissions", c.submission.SubmitSolution)
		authGroup.GET("/submissions/mine", c.submission.ListMySubmissions)

		// 管理角色接口
		management := authGroup.Group("")
		management.Use(middleware.RoleMiddleware(model.Management))
		{
			management.GET("/review/pending", c.review.GetPendingReviews)
			management.PATCH("/submissions/:id/review", c.review.ReviewSubmission)
			management.POST("/challenges/:id/approve", c.challenge.ApproveChallenge)
			management.POST("/challenges/:id/close", c.challenge.CloseChallenge)
		}

		// 管理员接口
		admin := authGroup.Group("/admin")
		admin.Use(middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/users", c.admin.ListUsers)
			admin.POST("/penalties/sweep", c.admin.TriggerPenaltySweep)
		}
	}
}
