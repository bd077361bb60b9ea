package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/config"
	s3infra "github.com/acurldiem/INCLOVE-BACKEND/internal/infra/s3"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/jobs/cleanup"
	pgrepo "github.com/acurldiem/INCLOVE-BACKEND/internal/repo/postgres"
	redrepo "github.com/acurldiem/INCLOVE-BACKEND/internal/repo/redis"
	authsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/auth"
	discoverysvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/discovery"
	entsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/entitlements"
	matchingsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/matching"
	ratesvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/rate"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	cleanup    *cleanup.Job
	stopJobs   context.CancelFunc
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	userRepo := pgrepo.NewUserRepo(pool)
	profileRepo := pgrepo.NewProfileRepo(pool)
	matchRepo := pgrepo.NewMatchRepo(pool)
	interactionRepo := pgrepo.NewInteractionRepo(pool)
	quotaRepo := pgrepo.NewQuotaRepo(pool)
	blockRepo := pgrepo.NewBlockRepo(pool)
	reportRepo := pgrepo.NewReportRepo(pool)
	candidateRepo := pgrepo.NewCandidateRepo(pool)
	photoRepo := pgrepo.NewPhotoRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, sessionRepo, userRepo, cfg.Auth.GatewaySecret, cfg.Auth.RefreshTTL)
	entitlementService := entsvc.NewService(userRepo, entsvc.Config{})
	rateLimiter := ratesvc.NewLimiter(rateRepo, cfg.Rate.ActionsPerMinute, cfg.Rate.ActionsPer10Sec)
	matchingService := matchingsvc.NewService(matchingsvc.Dependencies{
		Pool:         pool,
		MatchStore:   matchRepo,
		Ledger:       interactionRepo,
		QuotaStore:   quotaRepo,
		BlockStore:   blockRepo,
		ReportStore:  reportRepo,
		ProfileStore: profileRepo,
		Tiers:        entitlementService,
		RateLimiter:  rateLimiter,
	}, matchingsvc.Config{
		FreeSuperLikesPerDay: cfg.Matching.FreeSuperLikesPerDay,
		PlusSuperLikesPerDay: cfg.Matching.PlusSuperLikesPerDay,
		MatchTTL:             cfg.Matching.MatchTTL,
		RewindWindow:         cfg.Matching.RewindWindow,
		DefaultTimezone:      cfg.Matching.DefaultTimezone,
	})

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}
	photoStorage := s3infra.NewStorage(s3Client, cfg.S3.Bucket)

	discoveryService := discoverysvc.NewService(discoverysvc.Dependencies{
		Users:      userRepo,
		Candidates: candidateRepo,
		Profiles:   profileRepo,
		Photos:     photoRepo,
		PhotoSign:  photoStorage,
	}, discoverysvc.Config{
		DefaultRadiusKM: cfg.Discovery.DefaultRadiusKM,
		MaxRadiusKM:     cfg.Discovery.MaxRadiusKM,
		FetchLimit:      cfg.Discovery.FetchLimit,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:      authService,
		MatchingService:  matchingService,
		DiscoveryService: discoveryService,
		Logger:           log,
		Config:           cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		cleanup:    cleanup.New(matchRepo, log),
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	jobCtx, cancel := context.WithCancel(context.Background())
	a.stopJobs = cancel
	go a.cleanup.Start(jobCtx, a.cfg.Matching.CleanupInterval)

	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if a.stopJobs != nil {
		a.stopJobs()
	}
	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
