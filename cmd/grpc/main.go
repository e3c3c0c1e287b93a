package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-catalog-service/config"
	"github.com/fekuna/omnipos-catalog-service/pkg/broker"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/middleware"

	basketDto "github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	basketH "github.com/fekuna/omnipos-catalog-service/internal/basket/handler"
	basketRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/basket/repository"
	basketUCPkg "github.com/fekuna/omnipos-catalog-service/internal/basket/usecase"

	catalogH "github.com/fekuna/omnipos-catalog-service/internal/catalog/handler"
	catalogRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/catalog/repository"
	catalogUCPkg "github.com/fekuna/omnipos-catalog-service/internal/catalog/usecase"

	catRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"

	itemRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/item/repository"
	itemUCPkg "github.com/fekuna/omnipos-catalog-service/internal/item/usecase"

	resRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/reservation/repository"
	resUCPkg "github.com/fekuna/omnipos-catalog-service/internal/reservation/usecase"

	stockListenerPkg "github.com/fekuna/omnipos-catalog-service/internal/stock/listener"
	stockRepoPkg "github.com/fekuna/omnipos-catalog-service/internal/stock/repository"
	stockUCPkg "github.com/fekuna/omnipos-catalog-service/internal/stock/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply the database schema before serving")
	flag.Parse()

	// 1. Load Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if *migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			appLogger.Fatal("Could not apply schema", zap.Error(err))
		}
		appLogger.Info("Database schema applied")
	}

	txManager := postgres.NewTxManager(db, cfg.Postgres.TxMaxRetries, appLogger)

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	itemRepo := itemRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)
	resRepo := resRepoPkg.NewPGRepository(db)
	basketRepo := basketRepoPkg.NewPGRepository(db)
	catalogRepo := catalogRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	var listCache *cache.ListCache
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(&cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Warn("Could not connect to Redis, listing cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			listCache = cache.NewListCache(redisClient, "catalog:list:", time.Duration(cfg.Redis.ListTTL)*time.Second, appLogger)
			appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	// 6. Initialize UseCases
	resUC := resUCPkg.NewReservationUseCase(resRepo, appLogger)
	catUC := catUCPkg.NewCategoryUseCase(catRepo, txManager, appLogger)
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, itemRepo, resUC, txManager, listCache, appLogger)
	itemUC := itemUCPkg.NewItemUseCase(itemRepo, catUC, stockRepo, txManager, listCache, appLogger)
	catalogUC := catalogUCPkg.NewCatalogUseCase(catalogRepo, listCache, appLogger)
	basketUC := basketUCPkg.NewBasketUseCase(
		basketRepo,
		itemRepo,
		stockRepo,
		resUC,
		txManager,
		listCache,
		basketDto.Options{IdempotentCreate: cfg.Basket.IdempotentCreate},
		appLogger,
	)

	// 6.5 Initialize Listeners
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

		stockListener := stockListenerPkg.NewStockListener(kafkaConsumer, stockUC, appLogger)
		go stockListener.Start(ctx)
	}

	// 7. Initialize Handlers
	catalogHandler := catalogH.NewCatalogHandler(catalogUC, itemUC, catUC, stockUC, appLogger)
	basketHandler := basketH.NewBasketHandler(basketUC, appLogger)

	// 8. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.RecoveryInterceptor(appLogger),
			middleware.LoggingInterceptor(appLogger),
		),
	)

	catalogH.RegisterCatalogServiceServer(grpcServer, catalogHandler)
	basketH.RegisterBasketServiceServer(grpcServer, basketHandler)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(catalogH.CatalogServiceName, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(basketH.BasketServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))

	// Graceful Shutdown
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
