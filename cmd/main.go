package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/pycourse/config"
	"github.com/lshigami/pycourse/database"
	_ "github.com/lshigami/pycourse/docs" // Swagger docs
	adminctrl "github.com/lshigami/pycourse/internal/controller/admin"
	userctrl "github.com/lshigami/pycourse/internal/controller/user"
	"github.com/lshigami/pycourse/internal/logger"
	"github.com/lshigami/pycourse/internal/middleware"
	"github.com/lshigami/pycourse/internal/model"
	"github.com/lshigami/pycourse/internal/repository"
	"github.com/lshigami/pycourse/internal/sandbox"
	"github.com/lshigami/pycourse/internal/service"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title PyCourse API
// @version 1.0
// @description Lectures, multiple-choice tests with server-side grading, and a sandboxed Python runner.
// @host localhost:8080
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey AdminToken
// @in header
// @name X-Admin-Token
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewExecutor,
			NewRateLimiter,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewTestResultRepository,
			repository.NewLectureRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewUserTestService,
			service.NewTestSubmissionService,
			service.NewAdminTestService,
			service.NewQuestionService,
			service.NewLectureService,
			service.NewCompilerService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewUserTestController,
			userctrl.NewLectureController,
			userctrl.NewCompilerController,
			userctrl.NewHealthController,
			adminctrl.NewAdminTestController,
			adminctrl.NewAdminLectureController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Failed to stop application cleanly")
	}
}

func NewGinEngine(cfg *config.Config) *gin.Engine {
	logger.SetFormat(cfg.LogFormat)
	logger.SetLevel(cfg.LogLevel)
	gin.SetMode(cfg.Server.GinMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.AdminTokenHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// URL: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func NewExecutor(cfg *config.Config) service.CodeRunner {
	sc := sandbox.DefaultConfig()
	sc.Interpreter = cfg.Sandbox.Interpreter
	sc.Timeout = cfg.Sandbox.Timeout
	sc.CheckTimeout = cfg.Sandbox.CheckTimeout
	sc.ScratchDir = cfg.Sandbox.ScratchDir
	sc.MaxOutputBytes = cfg.Sandbox.MaxOutputBytes
	sc.MaxConcurrent = cfg.Sandbox.MaxConcurrent
	sc.IsolateNetwork = cfg.Sandbox.IsolateNetwork
	sc.Limits.CPUSeconds = cfg.Sandbox.CPUSeconds
	sc.Limits.MemoryBytes = cfg.Sandbox.MemoryBytes
	sc.Limits.MaxProcesses = cfg.Sandbox.MaxProcesses
	sc.Limits.MaxFileBytes = cfg.Sandbox.MaxFileBytes

	ex := sandbox.NewExecutor(sc)
	log.Info().
		Str("interpreter", ex.Config().Interpreter).
		Dur("timeout", ex.Config().Timeout).
		Int("maxConcurrent", ex.Config().MaxConcurrent).
		Bool("isolateNetwork", ex.Config().IsolateNetwork).
		Str("limits", ex.Config().Limits.String()).
		Msg("Sandbox executor configured")
	return ex
}

func NewRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.RateLimiter {
	rl := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			rl.StartCleanup(ctx, 10*time.Minute)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
	return rl
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	rateLimiter *middleware.RateLimiter,
	userTestCtrl *userctrl.UserTestController,
	lectureCtrl *userctrl.LectureController,
	compilerCtrl *userctrl.CompilerController,
	healthCtrl *userctrl.HealthController,
	adminTestCtrl *adminctrl.AdminTestController,
	adminLectureCtrl *adminctrl.AdminLectureController,
) {
	api := router.Group("/api")
	{
		api.GET("/health", healthCtrl.Health)

		api.GET("/tests", userTestCtrl.GetAllTests)
		api.GET("/tests/:test_id", userTestCtrl.GetTestDetails)
		api.POST("/tests/:test_id/submit", userTestCtrl.SubmitTest)
		api.GET("/tests/:test_id/results", userTestCtrl.GetTestResults)

		api.GET("/lectures", lectureCtrl.GetAllLectures)
		api.GET("/lectures/:lecture_id", lectureCtrl.GetLecture)

		compiler := api.Group("/compiler")
		compiler.POST("/execute", rateLimiter.Middleware(), compilerCtrl.Execute)
		compiler.GET("/check", compilerCtrl.Check)
	}

	admin := api.Group("/admin", middleware.RequireAdmin(cfg.AdminToken))
	{
		admin.POST("/tests", adminTestCtrl.CreateTest)
		admin.GET("/tests/:test_id", adminTestCtrl.GetTest)
		admin.PUT("/tests/:test_id", adminTestCtrl.UpdateTest)
		admin.DELETE("/tests/:test_id", adminTestCtrl.DeleteTest)
		admin.POST("/tests/:test_id/questions", adminTestCtrl.AddQuestion)
		admin.PUT("/questions/:question_id", adminTestCtrl.UpdateQuestion)
		admin.DELETE("/questions/:question_id", adminTestCtrl.DeleteQuestion)
		admin.GET("/stats", adminTestCtrl.GetStats)

		admin.POST("/lectures", adminLectureCtrl.CreateLecture)
		admin.PUT("/lectures/:lecture_id", adminLectureCtrl.UpdateLecture)
		admin.DELETE("/lectures/:lecture_id", adminLectureCtrl.DeleteLecture)
	}
	if cfg.AdminToken == "" {
		log.Warn().Msg("ADMIN_TOKEN is empty, admin API is disabled")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("PyCourse API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			return server.Shutdown(ctx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Test{},
		&model.Question{},
		&model.TestResult{},
		&model.Lecture{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
