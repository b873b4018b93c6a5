package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"mds-registry-api/config"
	"mds-registry-api/internal/application/ports"
	"mds-registry-api/internal/application/services"
	"mds-registry-api/internal/infrastructure/accounts"
	"mds-registry-api/internal/infrastructure/blob"
	"mds-registry-api/internal/infrastructure/db/memory"
	mongorepo "mds-registry-api/internal/infrastructure/db/mongo"
	"mds-registry-api/internal/infrastructure/db/postgres"
	pgCompany "mds-registry-api/internal/infrastructure/db/postgres/company"
	pgFile "mds-registry-api/internal/infrastructure/db/postgres/file"
	pgMds "mds-registry-api/internal/infrastructure/db/postgres/mds"
	"mds-registry-api/internal/infrastructure/jwt"
	"mds-registry-api/internal/infrastructure/metrics"
	"mds-registry-api/internal/infrastructure/mq"
	"mds-registry-api/internal/infrastructure/pdf"
	"mds-registry-api/internal/infrastructure/s3"
	"mds-registry-api/internal/interface/api/rest"
	"mds-registry-api/internal/interface/api/rest/middleware"
	"mds-registry-api/pkg/rmqconsumer"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	mongo      *mongo.Client
	stores     services.Stores
	blobs      ports.BlobStore
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	events     ports.EventPublisher
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// config
	cfg, err := config.Load(".")
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// logger
	logger, err := newLogger(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize zap logger: %w", err)
	}

	a := &App{
		logger:   logger,
		cfg:      cfg,
		mCounter: metrics.NewCounter(),
	}

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	a.router = gin.New()
	a.router.Use(gin.Recovery())
	a.router.Use(middleware.RequestLogGin(logger, a.mCounter))

	// httpServer
	a.httpSrv = &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err = a.initStorage(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err = a.initBlobs(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err = a.initMQ(ctx); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func newLogger(env string) (*zap.Logger, error) {
	switch env {
	case "dev", "development", "local", gin.DebugMode:
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

func (a *App) initStorage(ctx context.Context) error {
	switch a.cfg.Storage.Driver {
	case config.StoragePostgres:
		dsn, err := a.cfg.DBDSN()
		if err != nil {
			return fmt.Errorf("DB config error: %w", err)
		}
		migrateDSN, err := a.cfg.MigrateDSN()
		if err != nil {
			return fmt.Errorf("DB config error: %w", err)
		}
		if err = postgres.Migrate(a.logger, migrateDSN); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		a.db, err = postgres.New(ctx, a.logger, dsn)
		if err != nil {
			return err
		}
		a.stores = services.Stores{
			Companies: pgCompany.NewRepository(a.db),
			Entries:   pgMds.NewRepository(a.db),
			Files:     pgFile.NewRepository(a.db),
		}

	case config.StorageMongo:
		client, err := mongorepo.ConnectDB(a.cfg.Mongo.URI)
		if err != nil {
			return fmt.Errorf("failed to connect to mongo: %w", err)
		}
		a.mongo = client
		db := client.Database(a.cfg.Mongo.Database)
		if err = mongorepo.EnsureIndexes(ctx, a.logger, db); err != nil {
			return fmt.Errorf("failed to create mongo indexes: %w", err)
		}
		a.stores = services.Stores{
			Companies: mongorepo.NewCompanyRepository(db),
			Entries:   mongorepo.NewMdsRepository(db),
			Files:     mongorepo.NewFileRepository(db),
		}
		a.logger.Info("mongo connected successfully", zap.String("database", a.cfg.Mongo.Database))

	default:
		store := memory.New()
		a.stores = services.Stores{Companies: store, Entries: store, Files: store}
		a.logger.Warn("using in-memory storage, registry is lost on restart")
	}

	return nil
}

func (a *App) initBlobs(ctx context.Context) error {
	var err error
	switch a.cfg.Uploads.Backend {
	case config.BlobS3:
		a.blobs, err = s3.New(ctx, a.logger, a.cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to init S3: %w", err)
		}
	default:
		a.blobs, err = blob.NewDisk(a.cfg.Uploads.Dir, a.logger)
		if err != nil {
			return fmt.Errorf("failed to init uploads dir: %w", err)
		}
	}

	return nil
}

func (a *App) initMQ(ctx context.Context) error {
	if !a.cfg.MQEnabled() {
		a.logger.Info("rabbitMQ not configured, events are discarded")
		a.events = mq.NewNop(a.logger)
		return nil
	}

	rabbitDsn, err := a.cfg.AMQPDSN()
	if err != nil {
		return fmt.Errorf("RabbitMQ config error: %w", err)
	}
	rbMQ := mq.New(a.cfg.MQ, a.logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		return fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	a.mq, a.events = rbMQ, rbMQ
	if err = rbMQ.Init(); err != nil {
		return fmt.Errorf("failed init rabbitMQ: %w", err)
	}

	if !a.cfg.MQ.Audit {
		return nil
	}
	rmqConsumer := rmqconsumer.New(a.cfg.MQ, a.logger, nil)
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		return fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	a.mqConsumer = rmqConsumer
	if err = rmqConsumer.Init(); err != nil {
		return fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}

	return nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mongo != nil {
		if err := mongorepo.DisconnectDB(a.mongo); err != nil {
			a.logger.Error("mongo disconnect error", zap.Error(err))
		}
	}
	if a.mqConsumer != nil {
		_ = a.mqConsumer.Close()
	}
	if a.mq != nil {
		_ = a.mq.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run starts the http server and the mq workers under one context and shuts
// them down together on SIGINT/SIGTERM.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() error {
	// accounts
	seeds, err := a.cfg.SeedAccounts()
	if err != nil {
		return err
	}
	accountStore, err := accounts.New(seeds, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed accounts: %w", err)
	}
	if a.cfg.App.JWTSecret == "" {
		return errors.New("service.jwt_secret is required")
	}

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(accountStore, jwtService, a.cfg.App.TokenTTL, a.mCounter)
	registry := services.NewRegistryFromStores(a.stores, a.cfg.Cache, a.events, a.logger, a.mCounter)
	uploadService := services.NewUploadService(
		registry,
		a.blobs,
		pdf.New(),
		a.cfg.Uploads.MaxSize,
		a.logger,
		a.mCounter,
	)

	// controllers
	rest.NewAuthController(a.router, a.logger, authService)
	rest.NewFileController(a.router, registry, uploadService, a.blobs, a.cfg.Uploads.MaxSize, a.logger, jwtService)
	rest.NewCompanyController(a.router, registry, a.logger, jwtService)

	// ops
	rest.RegisterOps(a.router)

	return nil
}

func (a *App) Logger() *zap.Logger { return a.logger }
