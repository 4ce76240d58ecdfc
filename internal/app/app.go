package app

import (
	"challengehub_backend/internal/config"
	"challengehub_backend/internal/controller"
	"challengehub_backend/internal/repository"
	"challengehub_backend/internal/service"
	"challengehub_backend/pkg/database"
	"challengehub_backend/pkg/logger"
	"challengehub_backend/pkg/monitoring"
	"challengehub_backend/pkg/security"
	"challengehub_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	challenge  *repository.ChallengeRepository
	acceptance *repository.AcceptanceRepository
	submission *repository.SubmissionRepository
	review     *repository.ReviewRepository
	penalty    *repository.PenaltyRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	status      *service.StatusService
	challenge   *service.ChallengeService
	acceptance  *service.AcceptanceService
	submission  *service.SubmissionService
	review      *service.ReviewService
	penalty     *service.PenaltyService
	leaderboard *service.LeaderboardService
	dashboard   *service.DashboardService
}

type controllers struct {
	auth        *controller.AuthController
	challenge   *controller.ChallengeController
	acceptance  *controller.AcceptanceController
	submission  *controller.SubmissionController
	review      *controller.ReviewController
	leaderboard *controller.LeaderboardController
	dashboard   *controller.DashboardController
	admin       *controller.AdminController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，由 configwatcher 回调
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		challenge:  repository.NewChallengeRepository(db),
		acceptance: repository.NewAcceptanceRepository(db),
		submission: repository.NewSubmissionRepository(db),
		review:     repository.NewReviewRepository(db),
		penalty:    repository.NewPenaltyRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.penalty)
	s.status = service.NewStatusService(repos.acceptance, repos.submission, repos.review)
	s.challenge = service.NewChallengeService(repos.challenge, s.status)
	s.acceptance = service.NewAcceptanceService(repos.acceptance, repos.challenge, repos.submission, s.status)
	s.leaderboard = service.NewLeaderboardService(repos.user, rdb, cfg)
	s.submission = service.NewSubmissionService(repos.submission, repos.acceptance, repos.challenge, repos.review)
	s.review = service.NewReviewService(repos.review, repos.submission, repos.challenge, s.leaderboard)
	s.penalty = service.NewPenaltyService(repos.acceptance, repos.penalty, repos.challenge, s.leaderboard)
	s.dashboard = service.NewDashboardService(repos.user, repos.challenge, repos.acceptance, s.submission, repos.review, s.status)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		challenge:   controller.NewChallengeController(s.challenge, s.status),
		acceptance:  controller.NewAcceptanceController(s.acceptance),
		submission:  controller.NewSubmissionController(s.submission),
		review:      controller.NewReviewController(s.review),
		leaderboard: controller.NewLeaderboardController(s.leaderboard),
		dashboard:   controller.NewDashboardController(s.dashboard),
		admin:       controller.NewAdminController(s.user, s.penalty),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 600
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services, cfg *config.Config) {
	// 逾期未提交扣分扫描，幂等，可与手动触发并存
	go func() {
		interval := time.Duration(cfg.Penalty.SweepIntervalMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		for range ticker.C {
			applied, err := s.penalty.Sweep(time.Now())
			if err != nil {
				logger.Log.Error("penalty sweep error", zap.Error(err))
				continue
			}
			if applied > 0 {
				logger.Log.Info("penalty sweep applied", zap.Int("count", applied))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	// 监控初始化
	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("challengehub", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(func(c *config.Config) {
		services.leaderboard.TTL = time.Duration(c.Leaderboard.CacheTTLSeconds) * time.Second
	})

	app.startBackgroundTasks(services, cfg)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
