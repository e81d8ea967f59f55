package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yoockh/joblynk/config"
	"github.com/yoockh/joblynk/internal/api/handlers"
	"github.com/yoockh/joblynk/internal/api/middleware"
	"github.com/yoockh/joblynk/internal/api/routes"
	"github.com/yoockh/joblynk/internal/cache"
	"github.com/yoockh/joblynk/internal/logger"
	"github.com/yoockh/joblynk/internal/observability/tracing"
	"github.com/yoockh/joblynk/internal/providers/identity"
	mongorepo "github.com/yoockh/joblynk/internal/repositories/mongo"
	pgrepo "github.com/yoockh/joblynk/internal/repositories/postgres"
	"github.com/yoockh/joblynk/internal/services"
	"github.com/yoockh/joblynk/internal/storage"
	"github.com/yoockh/joblynk/internal/workers"
)

const serviceName = "joblynk-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("config error")
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, log, cfg.OTLPEndpoint, serviceName, cfg.Environment)
	if err != nil {
		log.WithError(err).Fatal("tracing init error")
	}

	// PostgreSQL
	db, err := config.InitPostgres(cfg)
	if err != nil {
		log.WithError(err).Fatal("PostgreSQL init error")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("PostgreSQL pool error")
	}
	if cfg.RunMigrations {
		if err := config.RunMigrations(ctx, db); err != nil {
			log.WithError(err).Fatal("migration error")
		}
	}
	log.Info("PostgreSQL connected")

	readiness := map[string]handlers.Pinger{"postgres": sqlDB.PingContext}

	// Redis (optional): job detail cache
	var jobCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb, err := config.InitRedis(cfg.RedisAddr)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, job cache disabled")
		} else {
			defer rdb.Close()
			jobCache = cache.NewRedisCache(rdb, "joblynk:")
			readiness["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			log.Info("Redis connected")
		}
	}

	// MongoDB (optional): activity log
	var activityRepo mongorepo.ActivityRepository
	if cfg.MongoURI != "" {
		mc, err := config.InitMongo(cfg.MongoURI)
		if err != nil {
			log.WithError(err).Warn("MongoDB unavailable, activity log disabled")
		} else {
			defer func() { _ = mc.Disconnect(context.Background()) }()
			mdb := mc.Database(cfg.MongoDB)
			if err := config.EnsureMongoIndexes(mdb); err != nil {
				log.WithError(err).Warn("mongo index setup failed")
			}
			activityRepo = mongorepo.NewActivityRepo(mdb, config.ActivityCollection, cfg.ActivityTTL)
			log.Info("MongoDB connected")
		}
	}

	signer, err := newSigner(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("storage init error")
	}
	if c, ok := signer.(io.Closer); ok {
		defer c.Close()
	}

	provider, err := identity.NewOAuthProvider(identity.Config{
		ClientID:     cfg.Auth.ClientID,
		ClientSecret: cfg.Auth.ClientSecret,
		AuthorizeURL: cfg.Auth.AuthorizeURL,
		TokenURL:     cfg.Auth.TokenURL,
		RedirectURL:  cfg.Auth.RedirectURL,
		LogoutURL:    cfg.Auth.LogoutURL,
		ReturnTo:     cfg.FrontendHost,
		JWTSecret:    cfg.Auth.JWTSecret,
		Issuer:       cfg.Auth.JWTIssuer,
		Leeway:       cfg.Auth.RefreshLeeway,
	})
	if err != nil {
		log.WithError(err).Fatal("identity provider init error")
	}

	// Repositories
	userRepo := pgrepo.NewUserRepo(db)
	seekerRepo := pgrepo.NewSeekerRepo(db)
	recruiterRepo := pgrepo.NewRecruiterRepo(db)
	jobRepo := pgrepo.NewJobRepo(db)
	appRepo := pgrepo.NewApplicationRepo(db)

	// Services
	activitySvc := services.NewActivityService(activityRepo, log)
	seekerSvc := services.NewSeekerService(seekerRepo)
	recruiterSvc := services.NewRecruiterService(recruiterRepo)
	userSvc := services.NewUserService(userRepo, seekerSvc, recruiterSvc)
	appSvc := services.NewApplicationService(appRepo, jobRepo, activitySvc)
	jobSvc := services.NewJobService(services.JobServiceDeps{
		Jobs:         jobRepo,
		Applications: appSvc,
		Tx:           pgrepo.NewTransactor(db),
		Cache:        jobCache,
		CacheTTL:     cfg.JobCacheTTL,
		Activity:     activitySvc,
		Log:          log,
	})
	fileSvc := services.NewFileService(signer, services.FileServiceConfig{
		UploadTTL:   cfg.Storage.UploadURLTTL,
		DownloadTTL: cfg.Storage.DownloadURLTTL,
		MaxBytes:    cfg.Storage.MaxUploadBytes,
	})

	expiry := &workers.JobExpiryWorker{Jobs: jobSvc, Interval: cfg.JobExpiryInterval, Logger: log}
	if err := expiry.Start(ctx); err != nil {
		log.WithError(err).Fatal("job expiry worker error")
	}

	sessionCookie := middleware.SessionCookie{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
		MaxAge: cfg.Auth.CookieMaxAge,
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, routes.Deps{
		Log:           log,
		APIPrefix:     cfg.APIPrefix,
		CORSOrigins:   cfg.CORSAllowedOrigins,
		FrontendHost:  cfg.FrontendHost,
		Identity:      provider,
		SessionCookie: sessionCookie,
		Users:         userSvc,
		Auth:          handlers.NewAuthHandler(provider, sessionCookie, cfg.FrontendHost, log),
		User:          handlers.NewUserHandler(userSvc),
		Profile:       handlers.NewProfileHandler(seekerSvc, recruiterSvc),
		Job:           handlers.NewJobHandler(jobSvc, recruiterSvc),
		Application:   handlers.NewApplicationHandler(appSvc, seekerSvc, recruiterSvc),
		File:          handlers.NewFileHandler(fileSvc),
		Activity:      handlers.NewActivityHandler(activitySvc, recruiterSvc),
		Health:        handlers.NewHealthHandler(readiness),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server shutdown error")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.WithError(err).Warn("tracing shutdown error")
	}
	_ = sqlDB.Close()
}

func newSigner(ctx context.Context, cfg *config.Config) (storage.Signer, error) {
	if cfg.Storage.Provider == "gcs" {
		s, err := storage.NewGCSSigner(ctx, cfg.Storage.GCSBucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := storage.NewS3Signer(ctx, storage.S3Options{
		Bucket:       cfg.Storage.S3Bucket,
		Region:       cfg.Storage.S3Region,
		AccessKey:    cfg.Storage.S3AccessKey,
		SecretKey:    cfg.Storage.S3SecretKey,
		BaseEndpoint: cfg.Storage.S3BaseEndpoint,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}
