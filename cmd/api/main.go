package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/assessment-api/internal/config"
	"github.com/yourusername/assessment-api/internal/handler"
	"github.com/yourusername/assessment-api/internal/middleware"
	pgRepo "github.com/yourusername/assessment-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/assessment-api/internal/repository/redis"
	"github.com/yourusername/assessment-api/internal/service"
	"github.com/yourusername/assessment-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	questionRepo := pgRepo.NewQuestionRepo(db)
	paperRepo := pgRepo.NewPaperRepo(db)
	studentRepo := pgRepo.NewStudentRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	statRepo := pgRepo.NewStatRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем сервисы
	questionService := service.NewQuestionService(questionRepo, statRepo)
	paperService := service.NewPaperService(paperRepo, questionRepo)
	studentService := service.NewStudentService(studentRepo)
	attemptService := service.NewAttemptService(attemptRepo, questionRepo, paperRepo, studentRepo, statRepo, db)
	statsService := service.NewStatsService(statRepo, paperRepo, questionRepo, cacheRepo)

	// Инициализируем обработчики
	questionHandler := handler.NewQuestionHandler(questionService)
	paperHandler := handler.NewPaperHandler(paperService)
	studentHandler := handler.NewStudentHandler(studentService)
	attemptHandler := handler.NewAttemptHandler(attemptService, studentService)
	statsHandler := handler.NewStatsHandler(statsService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.Admin.JWTSecret)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		// Production: не доверять прокси-заголовкам
		// Если используете load balancer, замените nil на []string{"IP_БАЛАНСИРОВЩИКА"}
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		// Development: доверяем localhost
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:8000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Публичные экзаменационные маршруты
		exams := api.Group("/exams")
		if cfg.RateLimit.Enabled {
			examCfg := middleware.DefaultExamRateLimitConfig()
			if cfg.RateLimit.ExamPerMinute > 0 {
				examCfg.MaxRequests = cfg.RateLimit.ExamPerMinute
			}
			exams.Use(rateLimiter.Limit(examCfg))
		}
		{
			startGroup := exams.Group("")
			if cfg.RateLimit.Enabled {
				startCfg := middleware.StrictStartRateLimitConfig()
				if cfg.RateLimit.StartPerMinute > 0 {
					startCfg.MaxRequests = cfg.RateLimit.StartPerMinute
				}
				startGroup.Use(rateLimiter.Limit(startCfg))
			}
			startGroup.POST("/start", attemptHandler.StartAttempt)

			exams.POST("/submit", attemptHandler.SubmitAttempt)
			exams.GET("/result/:token", attemptHandler.GetResult)
		}

		// Административные маршруты
		admin := api.Group("")
		admin.Use(authMiddleware.RequireAdmin())
		{
			questions := admin.Group("/questions")
			{
				questions.POST("", questionHandler.CreateQuestion)
				questions.GET("", questionHandler.ListQuestions)
				questions.GET("/:id", questionHandler.GetQuestion)
				questions.PUT("/:id", questionHandler.UpdateQuestion)
				questions.DELETE("/:id", questionHandler.DeleteQuestion)
			}

			papers := admin.Group("/papers")
			{
				papers.POST("", paperHandler.CreatePaper)
				papers.GET("", paperHandler.ListPapers)
				papers.GET("/:id", paperHandler.GetPaper)
				papers.PUT("/:id", paperHandler.UpdatePaper)
				papers.DELETE("/:id", paperHandler.DeletePaper)
				papers.GET("/:id/generate", paperHandler.GeneratePaper)
			}

			students := admin.Group("/students")
			{
				students.GET("", studentHandler.ListStudents)
				students.GET("/:id", studentHandler.GetStudent)
			}

			stats := admin.Group("/admin")
			{
				stats.GET("/papers/:id/stats", statsHandler.GetPaperStats)
				stats.GET("/papers/:id/stats/export", statsHandler.ExportPaperStats)
				stats.GET("/questions/:id/choice-stats", statsHandler.GetQuestionChoiceStats)
			}
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
