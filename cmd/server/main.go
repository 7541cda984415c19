package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/onlyfootballfans/quiz/internal/catalog"
	"github.com/onlyfootballfans/quiz/internal/config"
	"github.com/onlyfootballfans/quiz/internal/database"
	"github.com/onlyfootballfans/quiz/internal/feed"
	"github.com/onlyfootballfans/quiz/internal/game"
	"github.com/onlyfootballfans/quiz/internal/handler/health"
	"github.com/onlyfootballfans/quiz/internal/migrations"
	"github.com/onlyfootballfans/quiz/internal/quiz"
	"github.com/onlyfootballfans/quiz/internal/server"
	"github.com/onlyfootballfans/quiz/internal/store"
	"github.com/onlyfootballfans/quiz/internal/validate"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- State store ---
	kv, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// --- Questions ---
	questions, err := loadQuestions(cfg.QuestionsPath, logger)
	if err != nil {
		return err
	}

	// --- Catalogs ---
	var source catalog.Source = catalog.DirSource{Dir: cfg.CatalogDir}
	if cfg.CatalogURL != "" {
		source = catalog.HTTPSource{BaseURL: cfg.CatalogURL, Timeout: cfg.CatalogTimeout}
		logger.Info("fetching catalogs over http", "url", cfg.CatalogURL)
	}
	catalogs := catalog.NewRegistry(source, logger)

	machine := game.NewMachine(questions, validate.New(catalogs), logger)
	host := game.NewHost(machine, kv, cfg.StoragePrefix, logger)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, server.Deps{
		Logger:       logger,
		Host:         host,
		Catalogs:     catalogs,
		Checks:       map[string]health.Checker{cfg.StoreBackend: health.Ping(kv)},
		OperatorHash: cfg.OperatorPasswordHash,
		SPADir:       cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.KV, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendRedis:
		r, err := store.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, nil, fmt.Errorf("pinging redis: %w", err)
		}
		logger.Info("connected to redis")
		return r, func() { r.Close() }, nil

	case config.BackendMemory:
		logger.Warn("game state is kept in memory only")
		return store.NewMemory(), func() {}, nil

	default:
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		if err := migrations.Run(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("running migrations: %w", err)
		}
		logger.Info("connected to sqlite", "path", cfg.DBPath)
		return store.NewSQLite(db), func() { db.Close() }, nil
	}
}

// loadQuestions treats a missing feed as empty so the service still starts.
func loadQuestions(path string, logger *slog.Logger) ([]quiz.Question, error) {
	questions, err := feed.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("question feed not found, starting with no questions", "path", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading questions: %w", err)
	}
	logger.Info("questions loaded", "path", path, "count", len(questions))
	return questions, nil
}
