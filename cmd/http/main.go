package main

import (
	"context"
	"mdtcare-service/internal/app/config"
	"mdtcare-service/internal/app/delivery/http/controllers"
	"mdtcare-service/internal/app/delivery/http/middlewares"
	"mdtcare-service/internal/app/delivery/http/routers"
	"mdtcare-service/internal/app/drivers/database"
	"mdtcare-service/internal/app/drivers/logger"
	"mdtcare-service/internal/app/drivers/messaging"
	"mdtcare-service/internal/app/drivers/storage"
	"mdtcare-service/internal/app/services/core/careplans"
	"mdtcare-service/internal/app/services/core/meetings"
	"mdtcare-service/internal/app/services/core/plans"
	"mdtcare-service/internal/app/services/shared/interactions"
	"mdtcare-service/internal/app/services/shared/jwtmanager"
	"mdtcare-service/internal/app/services/shared/locker"
	"mdtcare-service/internal/app/services/shared/planevents"
	sharedredis "mdtcare-service/internal/app/services/shared/redis"
	"mdtcare-service/internal/app/services/shared/summaryarchive"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := storage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Shared services
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)
	ruleProvider := interactions.NewRuleEngine()

	eventPublisher, err := planevents.NewPublisher(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.MDT.EventQueueName,
		bootstrap.InternalConfig.MDT.EventDeadLetterQueue,
	)
	if err != nil {
		logrus.Fatalf("Failed to initialize plan event publisher: %v", err)
	}

	summaryArchiver := summaryarchive.NewMinioSummaryArchiver(
		bootstrap.Minio,
		bootstrap.Logger,
		bootstrap.InternalConfig.MDT.SummaryBucketName,
	)

	jwtManager, err := jwtmanager.NewJWTManager(bootstrap.InternalConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize JWT manager: %v", err)
	}

	// Middlewares
	rateLimiter := middlewares.NewRateLimiter(
		bootstrap.InternalConfig.App.MaxRequests,
		time.Second,
		time.Duration(bootstrap.InternalConfig.App.RateLimitBlockSeconds)*time.Second,
	)
	middlewares := &middlewares.Middlewares{
		Log:            bootstrap.Logger,
		JWTManager:     jwtManager,
		InternalConfig: bootstrap.InternalConfig,
		RateLimiter:    rateLimiter,
	}
	bootstrap.Router.Use(middlewares.RequestIDMiddleware)
	bootstrap.Router.Use(middlewares.Logging(bootstrap.Logger))

	// Meetings
	meetingMongoRepository := meetings.NewMeetingMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	meetingUsecase := meetings.NewMeetingUsecase(meetingMongoRepository, summaryArchiver, bootstrap.InternalConfig, bootstrap.Logger)
	meetingController := controllers.NewMeetingController(bootstrap.Logger, meetingUsecase)

	// Specialty plans
	planMongoRepository := plans.NewPlanMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	planUsecase := plans.NewPlanUsecase(planMongoRepository, lockerService, eventPublisher, bootstrap.InternalConfig, bootstrap.Logger)
	planController := controllers.NewPlanController(bootstrap.Logger, planUsecase)

	// Harmonized care plans
	carePlanMongoRepository := careplans.NewCarePlanMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	carePlanUsecase := careplans.NewCarePlanUsecase(
		carePlanMongoRepository,
		planMongoRepository,
		ruleProvider,
		eventPublisher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	carePlanController := controllers.NewCarePlanController(bootstrap.Logger, carePlanUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, meetingController, planController, carePlanController)
}
