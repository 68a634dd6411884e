package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"saloonhub-backend/config"
	"saloonhub-backend/controllers"
	"saloonhub-backend/repository"
	"saloonhub-backend/routes"
	"saloonhub-backend/services"
	"saloonhub-backend/utils"
)

func main() {
	logger := config.NewLogger()
	defer logger.Sync()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := config.ConnectDB(cfg.DatabaseURL); err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := config.Migrate(); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	serviceAccount, err := config.EnsureServiceAccount(cfg.ServiceAccountEmail)
	if err != nil {
		logger.Fatal("service account seeding failed", zap.Error(err))
	}

	identityKey, err := utils.ParseIdentityPublicKey(cfg.IdentityPublicKey)
	if err != nil {
		logger.Fatal("invalid identity public key", zap.Error(err))
	}

	notifier := services.NewTwilioNotifier(
		cfg.TwilioAccountSID, cfg.TwilioAuthToken,
		cfg.TwilioPhoneNumber, cfg.TwilioWhatsAppNumber, logger)

	accounts := repository.NewAccountRepository(config.DB)
	bookingStore := repository.NewBookingRepository(config.DB)

	resolver := services.NewResolver(accounts, logger)
	lifecycle := services.NewLifecycle(bookingStore, notifier, logger)
	completion := services.NewCompletionService(bookingStore, lifecycle, cfg.CompletionSchedule, logger)

	if _, err := completion.StartScheduler(); err != nil {
		logger.Fatal("scheduler start failed", zap.Error(err))
	}

	bookingController := &controllers.BookingController{
		Lifecycle:  lifecycle,
		Completion: completion,
	}

	serviceAccountID := func(c *gin.Context) (string, error) {
		return serviceAccount.ID.String(), nil
	}

	r := routes.SetupRouter(cfg, identityKey, resolver, bookingController, serviceAccountID, logger)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
