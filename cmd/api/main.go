// Package main - точка входа для REST API приложения FitSphere.
//
// FitSphere - платформа фитнес-сообщества: цели, прогресс, достижения
// и уведомления. Пользователь ставит цель, записывает прогресс, система
// автоматически считает проценты, пересечённые вехи и выдаёт достижения.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries/Event Handlers)
// - Infrastructure: PostgreSQL, Redis, event bus, JWT
// - Interface: HTTP endpoints
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fitsphere/fitsphere-api/config"
	"github.com/fitsphere/fitsphere-api/internal/application/command"
	"github.com/fitsphere/fitsphere-api/internal/application/eventhandler"
	"github.com/fitsphere/fitsphere-api/internal/application/query"
	"github.com/fitsphere/fitsphere-api/internal/domain/achievement"
	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
	"github.com/fitsphere/fitsphere-api/internal/infrastructure/messaging"
	"github.com/fitsphere/fitsphere-api/internal/infrastructure/persistence/postgres"
	"github.com/fitsphere/fitsphere-api/internal/infrastructure/persistence/redis"
	"github.com/fitsphere/fitsphere-api/internal/infrastructure/service"
	httpserver "github.com/fitsphere/fitsphere-api/internal/interface/http"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting FitSphere API",
		"env", cfg.App.Environment,
		"debug", cfg.App.Debug,
		"version", cfg.App.Version,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПОДКЛЮЧЕНИЕ К БАЗЕ ДАННЫХ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database...")
	var dbConn *postgres.Connection
	if cfg.Database.URL != "" {
		dbConn, err = postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	} else {
		dbConn, err = postgres.NewConnection(ctx, postgres.DefaultConfig())
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection...")
		dbConn.Close()
	}()

	if err := dbConn.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Info("database connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ЗАПУСК МИГРАЦИЙ
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations...")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		status, err := migrator.Status(ctx)
		if err != nil {
			log.Warn("failed to get migration status", "error", err)
		} else {
			appliedCount := 0
			for _, m := range status {
				if m.IsApplied {
					appliedCount++
				}
			}
			log.Info("migrations completed", "applied", appliedCount, "total", len(status))
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ REDIS (опционально)
	// ─────────────────────────────────────────────────────────────────────────
	var goalCache query.GoalDetailCache
	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis...")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		redisCache, err := redis.NewCache(redisCfg)
		if err != nil {
			log.Warn("failed to connect to Redis, caching disabled", "error", err)
		} else {
			defer redisCache.Close()
			goalCache = redis.NewGoalDetailCache(redisCache, log)
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ STORE И СЕРВИСОВ
	// ─────────────────────────────────────────────────────────────────────────
	store := postgres.NewStore(dbConn)

	tokens, err := service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to create token service: %w", err)
	}

	evaluator := achievement.NewEvaluator(store.Goals(), store.Progress(), store.Achievements(), log)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ИНИЦИАЛИЗАЦИЯ EVENT BUS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing event bus...")
	eventBusConfig := messaging.DefaultInMemoryEventBusConfig()
	eventBusConfig.Logger = log
	eventBus := messaging.NewInMemoryEventBus(eventBusConfig)
	defer func() {
		log.Info("closing event bus...")
		_ = eventBus.Close()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 8. РЕГИСТРАЦИЯ EVENT HANDLERS
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("registering event handlers...")

	notifications := store.Notifications()
	if err := errors.Join(
		eventBus.Subscribe(shared.EventGoalCreated, eventhandler.NewOnGoalCreatedHandler(notifications, log)),
		eventBus.Subscribe(shared.EventGoalCompleted, eventhandler.NewOnGoalCompletedHandler(notifications, log)),
		eventBus.Subscribe(shared.EventMilestoneReached, eventhandler.NewOnMilestoneReachedHandler(notifications, log)),
		eventBus.Subscribe(shared.EventAchievementUnlocked, eventhandler.NewOnAchievementUnlockedHandler(notifications, log)),
	); err != nil {
		return fmt.Errorf("failed to register event handlers: %w", err)
	}

	if goalCache != nil {
		invalidator := eventhandler.NewOnGoalChangedHandler(goalCache, log)
		for _, et := range invalidator.EventTypes() {
			if err := eventBus.Subscribe(et, invalidator); err != nil {
				return fmt.Errorf("failed to register cache invalidator: %w", err)
			}
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer...")

	httpDeps := httpserver.Dependencies{
		RegisterUser:   command.NewRegisterUserHandler(store, tokens, log),
		Authenticate:   command.NewAuthenticateHandler(store, tokens, log),
		CreateGoal:     command.NewCreateGoalHandler(store, eventBus, log),
		UpdateGoal:     command.NewUpdateGoalHandler(store, evaluator, eventBus, log),
		DeleteGoal:     command.NewDeleteGoalHandler(store, eventBus, log),
		RecordProgress: command.NewRecordProgressHandler(store, evaluator, eventBus, log),
		UpdateProgress: command.NewUpdateProgressHandler(store, evaluator, eventBus, log),
		DeleteProgress: command.NewDeleteProgressHandler(store, eventBus, log),
		Notifications:  command.NewNotificationHandler(store, log),

		GetGoalDetail:     query.NewGetGoalDetailHandler(store, goalCache, log),
		ListGoals:         query.NewListGoalsHandler(store, log),
		ListPublicGoals:   query.NewListPublicGoalsHandler(store, log),
		ListProgress:      query.NewListProgressHandler(store, log),
		GetProgressDetail: query.NewGetProgressDetailHandler(store, log),
		AssessGoal:        query.NewAssessGoalHandler(store, log),
		PredictCompletion: query.NewPredictCompletionHandler(store, log),
		ListAchievements:  query.NewListAchievementsHandler(store, log),
		GetAchievement:    query.NewGetAchievementHandler(store, log),
		ListNotifications: query.NewListNotificationsHandler(store, log),

		Tokens:        tokens,
		Logger:        log,
		HealthChecker: &healthChecker{db: dbConn},
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 10. СОЗДАНИЕ И ЗАПУСК HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute

	server := httpserver.NewServer(httpConfig, httpDeps)

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "address", server.Address())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 11. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("FitSphere API is running", "http_address", server.Address())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		log.Error("service error", "error", err)
		return err
	}

	log.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", "error", err)
		return err
	}

	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// setupLogger настраивает структурированное логирование.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Observability.LogLevel),
	}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "json" || cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// healthChecker adapts the database connection to the HTTP health endpoint.
type healthChecker struct {
	db *postgres.Connection
}

func (h *healthChecker) Check(ctx context.Context) httpserver.HealthStatus {
	if err := h.db.Ping(ctx); err != nil {
		return httpserver.HealthStatus{
			Healthy: false,
			Message: "database unreachable",
			Checks:  map[string]string{"postgres": err.Error()},
		}
	}
	return httpserver.HealthStatus{
		Healthy: true,
		Checks:  map[string]string{"postgres": "ok"},
	}
}
