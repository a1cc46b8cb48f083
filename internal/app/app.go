package app

import (
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/controller"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/service"
	"edulearn_backend/pkg/database"
	"edulearn_backend/pkg/logger"
	"edulearn_backend/pkg/monitoring"
	"edulearn_backend/pkg/security"
	"edulearn_backend/pkg/tracing"
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
	user         *repository.UserRepository
	course       *repository.CourseRepository
	quiz         *repository.QuizRepository
	attempt      *repository.AttemptRepository
	enrollment   *repository.EnrollmentRepository
	assessment   *repository.AssessmentRepository
	learningPath *repository.LearningPathRepository
}

type services struct {
	auth         *service.AuthService
	course       *service.CourseService
	quiz         *service.QuizService
	grade        *service.GradeService
	assessment   *service.AssessmentService
	ai           *service.AIService
	learningPath *service.LearningPathService
}

type controllers struct {
	auth         *controller.AuthController
	course       *controller.CourseController
	quiz         *controller.QuizController
	grade        *controller.GradeController
	assessment   *controller.AssessmentController
	learningPath *controller.LearningPathController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，由配置监听协程调用
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		quiz:         repository.NewQuizRepository(db),
		attempt:      repository.NewAttemptRepository(db),
		enrollment:   repository.NewEnrollmentRepository(db),
		assessment:   repository.NewAssessmentRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.course = service.NewCourseService(repos.course, repos.enrollment)
	s.quiz = service.NewQuizService(repos.quiz, repos.attempt, repos.enrollment)
	s.grade = service.NewGradeService(repos.course, repos.quiz, repos.enrollment, repos.attempt)
	s.assessment = service.NewAssessmentService(repos.assessment)
	s.ai = service.NewAIService(cfg.AI)
	s.learningPath = service.NewLearningPathService(
		repos.learningPath,
		repos.assessment,
		repos.course,
		repos.enrollment,
		s.ai,
		rdb,
	)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		course:       controller.NewCourseController(s.course),
		quiz:         controller.NewQuizController(s.quiz),
		grade:        controller.NewGradeController(s.grade),
		assessment:   controller.NewAssessmentController(s.assessment, s.ai),
		learningPath: controller.NewLearningPathController(s.learningPath),
		health:       controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 100000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

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

	// AI 服务配置支持热更新
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.ai.UpdateConfig(newCfg.AI)
		logger.Log.Info("AI service config reloaded")
	})

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("edulearn-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

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
