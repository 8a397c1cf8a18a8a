package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/trainwise-backend/internal/data/db"
	"github.com/yungbote/trainwise-backend/internal/data/repos"
	"github.com/yungbote/trainwise-backend/internal/modules/workout"
	"github.com/yungbote/trainwise-backend/internal/observability"
	"github.com/yungbote/trainwise-backend/internal/platform/envutil"
	"github.com/yungbote/trainwise-backend/internal/platform/logger"
	"github.com/yungbote/trainwise-backend/internal/platform/rediscache"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    repos.Repos
	Clients  Clients
	Workouts workout.Usecases

	pg           *db.PostgresService
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	shutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: serviceName,
		Environment: cfg.Environment,
	})
	observability.Init(log)

	pg, err := db.NewPostgresService(log, db.PostgresConfigFromEnv())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	if cfg.Migrate {
		if err := db.AutoMigrateAll(pg.DB()); err != nil {
			_ = pg.Close()
			log.Sync()
			return nil, fmt.Errorf("postgres automigrate: %w", err)
		}
	}

	clients, err := wireClients(ctx, log)
	if err != nil {
		_ = pg.Close()
		log.Sync()
		return nil, err
	}

	reposet := repos.New(pg.DB(), log)
	workouts, err := wireWorkout(log, cfg, clients, reposet)
	if err != nil {
		clients.Close()
		_ = pg.Close()
		log.Sync()
		return nil, err
	}

	return &App{
		Log:          log,
		DB:           pg.DB(),
		Router:       wireRouter(log, cfg, pg, clients, workouts),
		Cfg:          cfg,
		Repos:        reposet,
		Clients:      clients,
		Workouts:     workouts,
		pg:           pg,
		otelShutdown: shutdown,
	}, nil
}

// Start launches the background metric collectors.
func (a *App) Start() {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	m := observability.Current()
	m.StartPostgresCollector(ctx, a.Log, a.DB)
	if a.Clients.EmbedCache != nil {
		m.StartRedisCollector(ctx, a.Log, rediscache.ConfigFromEnv().Addr)
	}
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.pg != nil {
		_ = a.pg.Close()
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
