package app

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"skinsbay/internal/app/config"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/queue"
	"skinsbay/internal/app/service/click"
	"skinsbay/internal/app/service/market"
	"skinsbay/internal/app/service/publisher"
	"skinsbay/internal/app/service/reconciler"
	"skinsbay/internal/app/session"
	"skinsbay/internal/app/storage"
	"skinsbay/internal/app/storage/postgres"
	"skinsbay/pkg/steam"
	"skinsbay/pkg/telegram"
)

const queueWorkers = 4

type App struct {
	config config.Config
	logger logger.Logger

	db  *sql.DB
	rdb *redis.Client

	users        storage.UserRepository
	skins        storage.SkinRepository
	transactions storage.TransactionRepository

	session session.Manager
	queue   *queue.Queue

	click      *click.Service
	market     *market.Service
	reconciler *reconciler.Service
	publisher  *publisher.Service

	stopCh chan struct{}
}

func New(cfg config.Config, logger logger.Logger, e embed.FS) (*App, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	if err := applyMigrations(e, db); err != nil {
		return nil, fmt.Errorf("db migrate: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	users, err := postgres.NewUserRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repository init: %w", err)
	}

	skins, err := postgres.NewSkinRepository(db)
	if err != nil {
		return nil, fmt.Errorf("skin repository init: %w", err)
	}

	transactions, err := postgres.NewTransactionRepository(db)
	if err != nil {
		return nil, fmt.Errorf("transaction repository init: %w", err)
	}

	steamOpts := []steam.ServiceOption{}
	if cfg.Steam.APIKey != "" {
		steamOpts = append(steamOpts, steam.WithAPIKey(cfg.Steam.APIKey))
	}
	trade, err := steam.NewService(cfg.Steam.RemoteURL, steamOpts...)
	if err != nil {
		return nil, fmt.Errorf("steam service init: %w", err)
	}

	bot, err := telegram.NewClient(cfg.Telegram.APIURL, cfg.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram client init: %w", err)
	}

	a := &App{
		config:       cfg,
		logger:       logger,
		db:           db,
		rdb:          rdb,
		users:        users,
		skins:        skins,
		transactions: transactions,
		session:      session.NewMemory(cfg.SecretKey, users),
		stopCh:       make(chan struct{}),
	}

	clickSvc, err := click.NewService(db, cfg.Click, users, transactions)
	if err != nil {
		return nil, fmt.Errorf("click service init: %w", err)
	}
	a.click = clickSvc

	// the queue and the services consuming it reference each other, so the
	// queue is built last around handler closures bound to the services
	var q *queue.Queue
	enqueuer := enqueuerFunc(func(ctx context.Context, kind queue.Kind, data interface{}, delay time.Duration) error {
		return q.Enqueue(ctx, kind, data, delay)
	})

	marketSvc, err := market.NewService(db, cfg.Telegram, users, skins, transactions, trade, enqueuer, cfg.Reconciler.BaseDelay)
	if err != nil {
		return nil, fmt.Errorf("market service init: %w", err)
	}
	a.market = marketSvc

	reconcilerSvc, err := reconciler.NewService(db, cfg.Telegram, users, skins, transactions, trade, enqueuer)
	if err != nil {
		return nil, fmt.Errorf("reconciler service init: %w", err)
	}
	a.reconciler = reconcilerSvc

	publisherSvc, err := publisher.NewService(bot, users, skins, enqueuer)
	if err != nil {
		return nil, fmt.Errorf("publisher service init: %w", err)
	}
	a.publisher = publisherSvc

	q = queue.New(rdb, queue.Handlers{
		PublishListing:           publisherSvc.PublishListing,
		UpdateListingStatus:      publisherSvc.UpdateListingStatus,
		DeleteListingMessage:     publisherSvc.DeleteListingMessage,
		NotifyUser:               publisherSvc.NotifyUser,
		CheckTradeOffer:          reconcilerSvc.CheckTradeOffer,
		CheckTradeOfferExhausted: reconcilerSvc.OfferExhausted,
	}, queue.WithPolicy(queue.KindCheckTradeOffer, queue.RetryPolicy{
		MaxAttempts: cfg.Reconciler.MaxAttempts,
		BaseDelay:   cfg.Reconciler.BaseDelay,
		MaxDelay:    cfg.Reconciler.MaxDelay,
	}))
	a.queue = q

	go func() {
		<-a.stopCh
		a.logger.Info().Msg("Shutting down application")
	}()

	return a, nil
}

// Start launches the background queue workers.
func (a *App) Start() {
	a.queue.Start(queueWorkers)
}

func (a *App) Stop() {
	a.queue.Stop()
	close(a.stopCh)
	if err := a.rdb.Close(); err != nil {
		a.logger.Error().Err(err).Msg("Redis close failed")
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error().Err(err).Msg("DB close failed")
	}
}

// enqueuerFunc adapts a closure to the Enqueue interfaces the services
// accept, letting the queue be constructed after its consumers.
type enqueuerFunc func(ctx context.Context, kind queue.Kind, data interface{}, delay time.Duration) error

func (f enqueuerFunc) Enqueue(ctx context.Context, kind queue.Kind, data interface{}, delay time.Duration) error {
	return f(ctx, kind, data, delay)
}
