package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"
	"golang.org/x/sync/errgroup"

	"github.com/you/user-dashboard/internal/config"
	"github.com/you/user-dashboard/internal/infra"
	"github.com/you/user-dashboard/internal/repository"
	pgrepo "github.com/you/user-dashboard/internal/repository/pg"
	sqliterepo "github.com/you/user-dashboard/internal/repository/sqlite"
	transport "github.com/you/user-dashboard/internal/transport/http"
	"github.com/you/user-dashboard/internal/transport/middleware"
	uc "github.com/you/user-dashboard/internal/usecase"
)

func main() {
	config.LoadEnvFile()
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := infra.NewStdLogger()
	logger.Infof("configuration loaded: %v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepo(ctx, cfg)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeRepo()

	handlers := transport.NewHandlers(uc.NewUserUsecase(repo), logger)
	router := transport.NewRouter(handlers)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIDHeader},
	})

	srv := &http.Server{
		Handler:      middleware.RequestLog(logger)(c.Handler(router)),
		Addr:         ":" + cfg.Port,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("starting users api on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		logger.Errorf("server error: %v", err)
	}
	logger.Infof("users api stopped")
}

func openRepo(ctx context.Context, cfg *config.ServerConfig) (repository.Repo, func(), error) {
	if cfg.StoreDriver == "sqlite" {
		r, err := sqliterepo.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	r := pgrepo.NewPGRepo(pool)
	if err := r.EnsureSchema(connectCtx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return r, pool.Close, nil
}
