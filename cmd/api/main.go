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

	"github.com/Junior279753/geopoll-sub000/internal/config"
	"github.com/Junior279753/geopoll-sub000/internal/handler"
	"github.com/Junior279753/geopoll-sub000/internal/middleware"
	pgRepo "github.com/Junior279753/geopoll-sub000/internal/repository/postgres"
	redisRepo "github.com/Junior279753/geopoll-sub000/internal/repository/redis"
	"github.com/Junior279753/geopoll-sub000/internal/service"
	"github.com/Junior279753/geopoll-sub000/pkg/auth"
	"github.com/Junior279753/geopoll-sub000/pkg/database"
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
	userRepo := pgRepo.NewUserRepo(db)
	themeRepo := pgRepo.NewThemeRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	txnRepo := pgRepo.NewTransactionRepo(db)
	methodRepo := pgRepo.NewPaymentMethodRepo(db)
	subRepo := pgRepo.NewSubscriptionRepo(db)
	activityRepo := pgRepo.NewActivityLogRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализируем отправку почты; без API-ключа письма не отправляются
	var emailService service.EmailService
	if cfg.Email.ResendAPIKey != "" {
		resendService, err := service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", err)
			os.Exit(1)
		}
		emailService = resendService
		log.Println("Email-уведомления через Resend включены")
	} else {
		emailService = &service.NoopEmailService{}
		log.Println("RESEND_API_KEY не задан, email-уведомления отключены")
	}

	// Инициализируем сервисы
	activityService := service.NewActivityService(activityRepo)
	authService := service.NewAuthService(userRepo, jwtService, activityService)
	attemptService := service.NewAttemptService(attemptRepo, themeRepo, questionRepo, userRepo, cacheRepo, cfg.Survey)
	themeService := service.NewThemeService(themeRepo, questionRepo, attemptRepo, cfg.Survey)
	userService := service.NewUserService(userRepo, attemptRepo, txnRepo, emailService, activityService)
	walletService := service.NewWalletService(userRepo, txnRepo, methodRepo, emailService, activityService)
	subscriptionService := service.NewSubscriptionService(subRepo, activityService)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService, cfg.JWT.ExpirationHrs)
	userHandler := handler.NewUserHandler(userService, attemptService)
	surveyHandler := handler.NewSurveyHandler(attemptService, themeService, cfg.Survey.QuestionsPerTheme)
	walletHandler := handler.NewWalletHandler(walletService, subscriptionService)
	adminHandler := handler.NewAdminHandler(userService, themeService, walletService, activityService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
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

	// Статические файлы панелей
	router.StaticFS("/admin", http.Dir("./static/admin"))
	router.StaticFS("/dashboard", http.Dir("./static/dashboard"))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)

			authedAuth := authGroup.Group("/")
			authedAuth.Use(authMiddleware.RequireAuth())
			{
				authedAuth.POST("/change-password", authHandler.ChangePassword)
			}
		}

		// Профиль
		users := api.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
		}

		// Лидерборд
		api.GET("/leaderboard", authMiddleware.RequireAuth(), userHandler.GetLeaderboard)

		// Темы и прохождение опросов
		themes := api.Group("/themes")
		themes.Use(authMiddleware.RequireAuth())
		{
			themes.GET("", surveyHandler.ListThemes)
			themes.GET("/:id/eligibility", surveyHandler.CheckEligibility)
			themes.POST("/:id/start", surveyHandler.StartAttempt)
		}

		attempts := api.Group("/attempts")
		attempts.Use(authMiddleware.RequireAuth())
		{
			attempts.GET("", surveyHandler.ListMyAttempts)
			attempts.GET("/:id", surveyHandler.GetAttempt)
			attempts.POST("/:id/answer", surveyHandler.SubmitAnswer)
			attempts.POST("/:id/complete", surveyHandler.CompleteAttempt)
		}

		// Кошелёк
		wallet := api.Group("/wallet")
		wallet.Use(authMiddleware.RequireAuth())
		{
			wallet.GET("/balance", walletHandler.GetBalance)
			wallet.GET("/transactions", walletHandler.ListTransactions)
			wallet.POST("/withdrawals", walletHandler.RequestWithdrawal)
			wallet.GET("/payment-methods", walletHandler.ListPaymentMethods)
			wallet.POST("/payment-methods", walletHandler.AddPaymentMethod)
			wallet.DELETE("/payment-methods/:id", walletHandler.DeletePaymentMethod)
		}

		// Подписки монетизации
		subscriptions := api.Group("/subscriptions")
		subscriptions.Use(authMiddleware.RequireAuth())
		{
			subscriptions.GET("/plans", walletHandler.ListPlans)
			subscriptions.GET("/me", walletHandler.GetSubscription)
			subscriptions.POST("", walletHandler.Subscribe)
		}

		// Административные маршруты
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/approval", adminHandler.SetApproval)
			admin.PUT("/users/:id/active", adminHandler.SetActive)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
			admin.GET("/users/export", adminHandler.ExportUsersXLSX)

			admin.GET("/themes", adminHandler.ListThemes)
			admin.POST("/themes", adminHandler.CreateTheme)
			admin.PUT("/themes/:id", adminHandler.UpdateTheme)
			admin.PUT("/themes/:id/active", adminHandler.SetThemeActive)
			admin.DELETE("/themes/:id", adminHandler.DeleteTheme)
			admin.GET("/themes/:id/questions", adminHandler.GetThemeQuestions)
			admin.POST("/themes/:id/questions", adminHandler.AddQuestion)
			admin.POST("/themes/:id/questions/batch", adminHandler.AddQuestionBatch)
			admin.PUT("/questions/:id", adminHandler.UpdateQuestion)
			admin.DELETE("/questions/:id", adminHandler.DeactivateQuestion)

			admin.GET("/transactions", adminHandler.ListTransactions)
			admin.GET("/transactions/export", adminHandler.ExportTransactionsXLSX)
			admin.PUT("/withdrawals/:id", adminHandler.ProcessWithdrawal)

			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/activity", adminHandler.ListActivity)
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Ошибка закрытия Redis клиента: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Ошибка закрытия подключения к БД: %v", err)
		}
	}

	log.Println("Server exiting")
}
