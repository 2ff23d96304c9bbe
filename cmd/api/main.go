package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/cache"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/config"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/database"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/gemini"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/handler"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/logger"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/plans"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/questionbank"
	"github.com/Kusumkar-Deeepak/InterviewAI-Nexus/internal/repository"
)

type application struct {
	DB         *pgxpool.Pool
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
	Handler    *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded: %s", cfg)

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxOpenConns)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	var bankCache *cache.BankCache
	if cfg.Cache.Addr != "" {
		client := cache.NewRedisClient(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err := cache.Ping(ctx, client); err != nil {
			sugar.Warnw("redis unreachable, running without cache", "err", err)
		} else {
			bankCache = cache.NewBankCache(client, cfg.Cache.TTL)
		}
	}

	var aiClient questionbank.AIClient
	if !cfg.Gemini.Disabled {
		limiter := gemini.NewLimiter(cfg.Gemini.RatePerMin, cfg.Gemini.Burst)
		aiClient = retryClient{gemini.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout, limiter)}
	}
	generator := questionbank.NewGenerator(aiClient, cfg.Gemini.Disabled, log)

	repo := repository.NewRepository(pool)

	h := &handler.Handler{
		Logger:     log,
		Interviews: &repo.Interview,
		Banks:      &repo.Bank,
		Records:    &repo.Record,
		Plans:      plans.NewResolver(&repo.Plan),
		Generator:  generator,
		Cache:      bankCache,
		BaseURL:    cfg.BaseURL,
	}

	app := &application{
		DB:         pool,
		Logger:     log,
		Config:     cfg,
		Repository: repo,
		Handler:    h,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}

// retryClient routes generation through the throttle-aware retry path.
type retryClient struct {
	c *gemini.Client
}

func (r retryClient) Generate(ctx context.Context, prompt string) (string, error) {
	return r.c.GenerateWithRetry(ctx, prompt)
}
