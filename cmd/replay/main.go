package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/ledger-replay/internal/config"
	"github.com/josh-kwaku/ledger-replay/internal/csvio"
	"github.com/josh-kwaku/ledger-replay/internal/domain"
	"github.com/josh-kwaku/ledger-replay/internal/engine"
	"github.com/josh-kwaku/ledger-replay/internal/ledger"
	"github.com/josh-kwaku/ledger-replay/internal/logging"
	"github.com/josh-kwaku/ledger-replay/internal/repository"
	"github.com/josh-kwaku/ledger-replay/internal/service"
)

var errUsage = errors.New("usage: replay <transactions.csv>")

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Init("ledger-replay", cfg.LogLevel, cfg.AppEnv, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout, logger); err != nil {
		logger.Error("replay failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer, logger *slog.Logger) error {
	if len(args) != 1 {
		return errUsage
	}
	path := args[0]

	policy, err := engine.ParseDuplicatePolicy(cfg.DuplicateTxPolicy)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer f.Close()

	runID := uuid.New()
	logger = logger.With("run_id", runID)
	ctx = logging.WithLogger(ctx, logger)
	logger.Info("replay started", "input", path, "duplicate_tx_policy", policy)

	store := ledger.NewStore()
	rejections := service.NewRejectionCounter()
	replay := service.NewReplayService(engine.New(store, policy), rejections, logger)

	if _, err := replay.Run(ctx, csvio.NewReader(bufio.NewReader(f))); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	rejections.LogSummary(logger)

	accounts := store.Accounts()
	out := bufio.NewWriter(stdout)
	if err := csvio.WriteSnapshot(out, accounts); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("run: flush: %w", err)
	}

	if cfg.ExportEnabled() {
		if err := exportSnapshot(ctx, cfg, runID, accounts); err != nil {
			return fmt.Errorf("run: %w", err)
		}
		logger.Info("snapshot exported", "accounts", len(accounts))
	}
	return nil
}

func exportSnapshot(ctx context.Context, cfg *config.Config, runID uuid.UUID, accounts []domain.Account) error {
	db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
		MaxOpenConns:     cfg.DBMaxOpenConns,
		MaxIdleConns:     cfg.DBMaxIdleConns,
		ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
		ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
	}, 30)
	if err != nil {
		return fmt.Errorf("exportSnapshot: %w", err)
	}
	defer db.Close()

	if err := repository.NewSnapshotRepository(db).Save(ctx, runID, accounts, time.Now().UTC()); err != nil {
		return fmt.Errorf("exportSnapshot: %w", err)
	}
	return nil
}
