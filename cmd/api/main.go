package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "propertyhub/api/swagger" // swagger docs
	"propertyhub/internal/cache"
	"propertyhub/internal/config"
	"propertyhub/internal/database"
	"propertyhub/internal/handler"
	"propertyhub/internal/logger"
	"propertyhub/internal/middleware"
	"propertyhub/internal/repository"
	"propertyhub/internal/service"
	"propertyhub/internal/token"
	"propertyhub/internal/websocket"
	"propertyhub/pkg/validation"
)

// @title           Property Management API
// @version         1.0
// @description     Tenants, landlords and admins managing properties, maintenance, payments and receipts.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load("configs/.env")
	if err != nil {
		logger.New("info", "text").WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if missing := cfg.EnvFileMissing(); missing != "" {
		log.Infof("No %s file found, using process environment", missing)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.DSN(), cfg.DBAutoMigrate, log)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	log.Info("Connected to PostgreSQL successfully.")

	blocklist := cache.NoopBlocklist()
	if cfg.RedisAddr != "" {
		rdb, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			log.WithError(err).Fatal("redis connection failed")
		}
		defer rdb.Close()
		blocklist = cache.NewRedisBlocklist(rdb)
		log.Info("Token revocation backed by Redis.")
	} else {
		log.Warn("REDIS_ADDR not set, logout will not revoke tokens")
	}

	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run(ctx)

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	recorder := service.NewRecorder(auditRepo, notificationRepo, wsHub, log)
	accessService := service.NewAccessService(roleRepo, propertyRepo)

	authService := service.NewAuthService(userRepo, roleRepo, tokens, blocklist)
	propertyService := service.NewPropertyService(propertyRepo, unitRepo, roleRepo, txManager, accessService, recorder)
	roleService := service.NewRoleService(roleRepo, userRepo, propertyRepo, unitRepo, txManager, accessService, recorder)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, propertyRepo, accessService, recorder)
	paymentService := service.NewPaymentService(paymentRepo, propertyRepo, accessService, recorder)
	receiptService := service.NewReceiptService(receiptRepo, propertyRepo, roleRepo, txManager, accessService, recorder)
	announcementService := service.NewAnnouncementService(announcementRepo, propertyRepo, accessService, recorder)
	messageService := service.NewMessageService(messageRepo, userRepo, accessService, recorder)
	notificationService := service.NewNotificationService(notificationRepo, recorder)
	activityService := service.NewActivityService(auditRepo, accessService)
	dashboardService := service.NewDashboardService(propertyRepo, maintenanceRepo, paymentRepo, receiptRepo, announcementRepo, accessService, recorder)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.Setup()
	metrics := middleware.NewMetrics()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(log),
		metrics.Middleware(),
		middleware.SecureHeaders(cfg.IsProduction()),
	)

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	router.GET("/ws", websocket.Handler(wsHub, tokens, blocklist))

	api := router.Group("/api")
	protected := api.Group("", middleware.RequireAuth(tokens, blocklist))

	handler.NewAuthHandler(authService, cfg.IsProduction()).RegisterRoutes(api, protected)
	handler.NewDashboardHandler(dashboardService).RegisterRoutes(protected)
	handler.NewPropertyHandler(propertyService).RegisterRoutes(protected)
	handler.NewRoleHandler(roleService).RegisterRoutes(protected)
	handler.NewMaintenanceHandler(maintenanceService).RegisterRoutes(protected)
	handler.NewPaymentHandler(paymentService).RegisterRoutes(protected)
	handler.NewReceiptHandler(receiptService).RegisterRoutes(protected)
	handler.NewAnnouncementHandler(announcementService).RegisterRoutes(protected)
	handler.NewMessageHandler(messageService).RegisterRoutes(protected)
	handler.NewNotificationHandler(notificationService).RegisterRoutes(protected)
	handler.NewActivityHandler(activityService).RegisterRoutes(protected)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
