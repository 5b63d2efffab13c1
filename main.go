package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayhaven/config"
	"stayhaven/cron"
	"stayhaven/database"
	"stayhaven/database/repository"
	"stayhaven/handlers"
	"stayhaven/routes"
	"stayhaven/services/auth"
	listingSvc "stayhaven/services/listing"
	"stayhaven/services/payment"
	"stayhaven/services/reservation"
	"stayhaven/services/storage"
	"stayhaven/services/tasks"
	userSvc "stayhaven/services/user"
	"stayhaven/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockCache()
	stripe.Key = config.AppConfig.StripeKey

	imageStore, err := storage.NewCloudinaryStore(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize image storage: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// Repositories.
	listingRepo := repository.NewMongoListingRepo()
	userRepo := repository.NewMongoUserRepo()
	bookingRepo := repository.NewMongoBookingRepo()

	// Collaborators.
	authorizer := &auth.TokenAuthorizer{Users: userRepo}
	gateway := &payment.StripeGateway{Logger: logger}
	locker := reservation.NewRedisListingLocker(utils.GetLockClient())

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	confirmations := &tasks.AsynqEnqueuer{Client: asynqClient}
	cron.InitConfirmationWorker(&cron.LogNotifier{Logger: logger})

	// Services.
	reservationService := &reservation.DefaultReservationService{
		Auth:          authorizer,
		Listings:      listingRepo,
		Users:         userRepo,
		Bookings:      bookingRepo,
		Payments:      gateway,
		Locker:        locker,
		RunTx:         database.WithTransaction,
		Confirmations: confirmations,
		Logger:        logger,
	}

	listingService := &listingSvc.DefaultListingService{
		ListingRepo: listingRepo,
		UserRepo:    userRepo,
		BookingRepo: bookingRepo,
		Geocoder: &listingSvc.CachedGeocoder{
			Inner:  listingSvc.NewNominatimGeocoder(config.AppConfig.NominatimBaseURL),
			Client: utils.GetCacheClient(),
			TTL:    24 * time.Hour,
		},
		Images:      imageStore,
		Logger:      logger,
	}

	userService := &userSvc.DefaultUserService{
		UserRepo:    userRepo,
		ListingRepo: listingRepo,
		BookingRepo: bookingRepo,
		Wallet:      gateway,
		Logger:      logger,
	}

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		Auth:     authorizer,
		Bookings: handlers.NewBookingHandler(reservationService, logger),
		Listings: handlers.NewListingHandler(listingService, logger),
		Users:    handlers.NewUserHandler(userService, logger),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
