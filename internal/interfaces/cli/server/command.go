// Package server implements the HTTP server command.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"tally/internal/application/account/helpers"
	accountUC "tally/internal/application/account/usecases"
	notificationUC "tally/internal/application/notification/usecases"
	productUC "tally/internal/application/product/usecases"
	userUC "tally/internal/application/user/usecases"
	"tally/internal/infrastructure/auth"
	"tally/internal/infrastructure/config"
	"tally/internal/infrastructure/database"
	"tally/internal/infrastructure/migration"
	"tally/internal/infrastructure/push"
	"tally/internal/infrastructure/repository"
	"tally/internal/interfaces/http/handlers"
	"tally/internal/interfaces/http/middleware"
	"tally/internal/interfaces/http/routes"
	"tally/internal/shared/constants"
	"tally/internal/shared/db"
	"tally/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Tally HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	gormDB := database.Get()

	if autoMigrate {
		if env == constants.EnvProduction {
			log.Warnw("auto-migration enabled in production, this is not recommended")
		}
		if err := migration.NewManager(env).Migrate(gormDB); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(cmd.Context()).Err(); err != nil {
			// Rate limiting degrades to open when Redis is down; the
			// server still comes up.
			log.Warnw("redis unavailable, rate limiting degraded", "error", err)
		}
		defer redisClient.Close()
	}

	var sender push.Sender
	if cfg.Push.Enabled {
		fcmSender, err := push.NewFCMSender(&cfg.Push, log.Named("push"))
		if err != nil {
			return fmt.Errorf("failed to initialize push sender: %w", err)
		}
		sender = fcmSender
	} else {
		sender = push.NewNoopSender(log.Named("push"))
	}

	// Infrastructure
	accountRepo := repository.NewAccountRepository(gormDB, log.Named("repository.account"))
	sessionRepo := repository.NewSessionRepository(gormDB, log.Named("repository.session"))
	userRepo := repository.NewUserRepository(gormDB, log.Named("repository.user"))
	productRepo := repository.NewProductRepository(gormDB, log.Named("repository.product"))
	txManager := db.NewTransactionManager(gormDB)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	roleResolver := helpers.NewRoleResolver(userRepo)

	// Use cases
	cleanupUC := accountUC.NewCleanupSessionsUseCase(sessionRepo, cfg.Auth.Session, log.Named("usecase.cleanup"))
	registerUC := accountUC.NewRegisterAccountUseCase(accountRepo, hasher, log.Named("usecase.register"))
	loginUC := accountUC.NewLoginUseCase(accountRepo, sessionRepo, hasher, issuer, roleResolver, txManager, log.Named("usecase.login"))
	refreshUC := accountUC.NewRefreshTokenUseCase(sessionRepo, issuer, roleResolver, log.Named("usecase.refresh"))
	logoutUC := accountUC.NewLogoutUseCase(sessionRepo, cleanupUC, log.Named("usecase.logout"))
	changePasswordUC := accountUC.NewChangePasswordUseCase(accountRepo, hasher, log.Named("usecase.changepassword"))
	linkUserUC := accountUC.NewLinkUserUseCase(accountRepo, userRepo, log.Named("usecase.linkuser"))
	listAccountsUC := accountUC.NewListAccountsUseCase(accountRepo, log.Named("usecase.listaccounts"))
	attachPushKeyUC := accountUC.NewAttachPushKeyUseCase(sessionRepo, log.Named("usecase.attachpushkey"))
	listSessionsUC := accountUC.NewListSessionsUseCase(sessionRepo, log.Named("usecase.listsessions"))
	terminateOriginUC := accountUC.NewTerminateOriginSessionsUseCase(sessionRepo, log.Named("usecase.terminate"))
	terminateAccountUC := accountUC.NewTerminateAccountSessionsUseCase(sessionRepo, log.Named("usecase.terminate"))

	createUserUC := userUC.NewCreateUserUseCase(userRepo, log.Named("usecase.createuser"))
	getMyUserUC := userUC.NewGetMyUserUseCase(userRepo, log.Named("usecase.getmyuser"))
	listUsersUC := userUC.NewListUsersUseCase(userRepo, log.Named("usecase.listusers"))
	deleteUserUC := userUC.NewDeleteUserUseCase(userRepo, log.Named("usecase.deleteuser"))
	setProfilePictureUC := userUC.NewSetProfilePictureUseCase(userRepo, log.Named("usecase.profilepicture"))

	createCategoryUC := productUC.NewCreateCategoryUseCase(productRepo, log.Named("usecase.createcategory"))
	listCategoriesUC := productUC.NewListCategoriesUseCase(productRepo, log.Named("usecase.listcategories"))
	createBeverageUC := productUC.NewCreateBeverageUseCase(productRepo, log.Named("usecase.createbeverage"))
	listBeveragesUC := productUC.NewListBeveragesUseCase(productRepo, log.Named("usecase.listbeverages"))
	updatePricingUC := productUC.NewUpdateBeveragePricingUseCase(productRepo, log.Named("usecase.updatepricing"))
	deleteProductUC := productUC.NewDeleteProductUseCase(productRepo, log.Named("usecase.deleteproduct"))

	notifyAccountUC := notificationUC.NewNotifyAccountUseCase(sessionRepo, sender, log.Named("usecase.notify"))
	notifyUserUC := notificationUC.NewNotifyUserUseCase(sessionRepo, accountRepo, sender, log.Named("usecase.notify"))
	notifyAllUsersUC := notificationUC.NewNotifyAllUsersUseCase(sessionRepo, sender, log.Named("usecase.notify"))
	notifyAdminsUC := notificationUC.NewNotifyAdminsUseCase(sessionRepo, accountRepo, userRepo, sender, log.Named("usecase.notify"))

	// Handlers
	accountHandler := handlers.NewAccountHandler(registerUC, loginUC, refreshUC, logoutUC, changePasswordUC, linkUserUC, listAccountsUC, attachPushKeyUC, log.Named("handler.account"))
	sessionHandler := handlers.NewSessionHandler(listSessionsUC, terminateOriginUC, terminateAccountUC, log.Named("handler.session"))
	userHandler := handlers.NewUserHandler(createUserUC, getMyUserUC, listUsersUC, deleteUserUC, setProfilePictureUC, log.Named("handler.user"))
	productHandler := handlers.NewProductHandler(createCategoryUC, listCategoriesUC, createBeverageUC, listBeveragesUC, updatePricingUC, deleteProductUC, log.Named("handler.product"))
	notificationHandler := handlers.NewNotificationHandler(notifyAccountUC, notifyUserUC, notifyAllUsersUC, notifyAdminsUC, log.Named("handler.notification"))
	healthHandler := handlers.NewHealthHandler(gormDB)

	authMiddleware := middleware.NewAuthMiddleware(issuer, log.Named("middleware.auth"))
	rateLimiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.Limit, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)

	engine := gin.New()
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger(log.Named("http")))
	engine.Use(middleware.StoreTimeout(time.Duration(cfg.Database.StoreTimeoutSeconds) * time.Second))

	routes.SetupHealthRoutes(engine, healthHandler)
	routes.SetupAccountRoutes(engine, &routes.AccountRouteConfig{
		AccountHandler: accountHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
	})
	routes.SetupSessionRoutes(engine, &routes.SessionRouteConfig{
		SessionHandler: sessionHandler,
		AuthMiddleware: authMiddleware,
	})
	routes.SetupUserRoutes(engine, &routes.UserRouteConfig{
		UserHandler:    userHandler,
		AuthMiddleware: authMiddleware,
	})
	routes.SetupProductRoutes(engine, &routes.ProductRouteConfig{
		ProductHandler: productHandler,
		AuthMiddleware: authMiddleware,
	})
	routes.SetupNotificationRoutes(engine, &routes.NotificationRouteConfig{
		NotificationHandler: notificationHandler,
		AuthMiddleware:      authMiddleware,
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case constants.EnvProduction, "prod", "release":
		return gin.ReleaseMode
	case constants.EnvTest, "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
