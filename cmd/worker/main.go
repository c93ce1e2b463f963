// Package main - точка входа для фоновых процессов (Worker) FitSphere.
//
// Worker отвечает за периодические задачи:
// - Ежедневный обход дедлайнов и запись напоминаний владельцам целей
//
// Worker использует ту же базу данных, что и API, но запускается отдельным
// процессом, чтобы фоновые задачи не конкурировали с HTTP-трафиком.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fitsphere/fitsphere-api/config"
	"github.com/fitsphere/fitsphere-api/internal/infrastructure/persistence/postgres"
	"github.com/fitsphere/fitsphere-api/internal/infrastructure/scheduler"
	"github.com/fitsphere/fitsphere-api/internal/infrastructure/scheduler/jobs"
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
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ И ЛОГИРОВАНИЕ
	// ─────────────────────────────────────────────────────────────────────────
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
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

	log.Info("starting FitSphere Worker",
		"env", cfg.App.Environment,
		"timezone", cfg.App.Timezone,
	)

	if !cfg.Scheduler.Enabled {
		return fmt.Errorf("scheduler is disabled, nothing to do")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. ПОДКЛЮЧЕНИЕ К БАЗЕ ДАННЫХ
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

	store := postgres.NewStore(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. РЕГИСТРАЦИЯ И ЗАПУСК ЗАДАЧ
	// ─────────────────────────────────────────────────────────────────────────
	sched := scheduler.NewScheduler(scheduler.SchedulerConfig{
		Logger:   log,
		Timezone: cfg.App.Location,
	})

	sweepSchedule, err := scheduler.NewCronSchedule(cfg.Scheduler.DeadlineSweepCron)
	if err != nil {
		return fmt.Errorf("invalid deadline sweep schedule: %w", err)
	}

	sweepJob := jobs.NewDeadlineSweepJob(
		store.Goals(),
		store.Notifications(),
		jobs.DeadlineSweepConfig{
			LeadDays: cfg.Scheduler.DeadlineLeadDays,
			Timeout:  cfg.Scheduler.JobTimeout,
		},
		log,
	)

	if err := sched.Register(sweepJob, sweepSchedule); err != nil {
		return fmt.Errorf("failed to register deadline sweep: %w", err)
	}

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 4. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("FitSphere Worker is running")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-sigCh
	log.Info("received shutdown signal", "signal", sig.String())

	if err := sched.Stop(); err != nil {
		log.Error("failed to stop scheduler gracefully", "error", err)
		return err
	}

	log.Info("shutdown completed successfully")
	return nil
}
