package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/you/user-dashboard/internal/client"
	"github.com/you/user-dashboard/internal/config"
	"github.com/you/user-dashboard/internal/dashboard"
	"github.com/you/user-dashboard/internal/infra"
	"github.com/you/user-dashboard/internal/transport/middleware"
	"github.com/you/user-dashboard/internal/transport/web"
)

type Options struct {
	Addr       string `long:"addr" description:"Listen address for the dashboard (overrides DASHBOARD_ADDR)"`
	Mode       string `long:"mode" description:"Deployment mode, production or development (overrides NODE)"`
	BackendURL string `long:"backend-url" description:"Users API base URL (overrides the mode-selected URL)"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	config.LoadEnvFile()
	applyFlags(opts)
	cfg, err := config.LoadDashboard()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := infra.NewStdLogger()
	logger.Infof("configuration loaded: %v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	users := client.NewUsersClient(cfg.BackendURL, client.WithTimeout(cfg.HTTPTimeout))
	state := dashboard.NewSync(users)
	form := dashboard.NewForm(state)

	// Initial load, like a page mount. A failure leaves the grid empty until Refresh.
	if err := state.List(ctx); err != nil {
		logger.Warnf("initial user load from %s failed: %v", users.BaseURL(), err)
	} else {
		logger.Infof("loaded %d users from %s", state.Len(), users.BaseURL())
	}

	app, err := web.NewApp(state, form, logger)
	if err != nil {
		log.Fatalf("init dashboard: %v", err)
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      middleware.RequestLog(logger)(app.Routes()),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 5*time.Second,
		IdleTimeout:  time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("starting dashboard on http://localhost%s", cfg.Addr)
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
		logger.Errorf("dashboard error: %v", err)
	}
}

// applyFlags lets command line flags win over the environment.
func applyFlags(opts Options) {
	if opts.Mode != "" {
		os.Setenv("NODE", opts.Mode)
	}
	if opts.Addr != "" {
		os.Setenv("DASHBOARD_ADDR", opts.Addr)
	}
	if opts.BackendURL != "" {
		key := "DEV_BACKEND_URL"
		if os.Getenv("NODE") == config.ModeProduction {
			key = "PROD_BACKEND_URL"
		}
		os.Setenv(key, opts.BackendURL)
	}
}
