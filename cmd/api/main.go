// @title Catbox API
// @version 1.0
// @description Suscripciones de comida fresca para gatos: perfiles, cálculo nutricional, pedidos y avisos por WhatsApp.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"catbox/internal/adapters/auth/hosted"
	"catbox/internal/adapters/messaging/whatsapp"
	"catbox/internal/adapters/storage/postgres"
	"catbox/internal/domain/nutrition"
	"catbox/internal/platform/config"
	"catbox/internal/platform/logger"
	"catbox/internal/platform/scheduler"
	"catbox/internal/router"
)

const renewalJobTimeout = 5 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "catbox: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(".", "/etc/catbox")
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	defer func() { _ = log.Sync() }()

	catalog, ok := nutrition.CatalogFor(cfg.Nutrition.Locale)
	if !ok {
		return fmt.Errorf("unsupported nutrition locale %q", cfg.Nutrition.Locale)
	}
	engine, err := nutrition.NewEngine(nutrition.Config{
		Catalog:               catalog,
		CaloricDensityPer100g: cfg.Store.CaloricDensityPer100g,
	})
	if err != nil {
		return err
	}

	opts := router.Options{
		Config: cfg,
		Logger: log,
		Engine: engine,
	}

	if cfg.Database.DSN != "" {
		db, err := postgres.Open(ctx, cfg.Database.DSN, postgres.Options{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		})
		if err != nil {
			return err
		}
		defer db.Close()

		if cfg.Database.AutoMigrate {
			version, err := postgres.Migrate(db)
			if err != nil {
				return err
			}
			log.Info("migrations applied", map[string]any{"version": version})
		}
		opts.DB = db
	} else {
		log.Warn("database dsn empty, using in-memory storage", nil)
	}

	if cfg.Auth.BaseURL != "" {
		client, err := hosted.NewClient(hosted.Config{
			BaseURL: cfg.Auth.BaseURL,
			APIKey:  cfg.Auth.APIKey,
			Timeout: cfg.Auth.Timeout,
		})
		if err != nil {
			return err
		}
		opts.AuthVerifier = hosted.NewVerifier(client)
	} else {
		log.Warn("auth base url empty, dev mode: X-Debug-User-ID accepted", nil)
	}

	if cfg.WhatsApp.Enabled {
		wa, err := whatsapp.NewClient(whatsapp.Config{
			APIBaseURL:    cfg.WhatsApp.APIBaseURL,
			AccessToken:   cfg.WhatsApp.AccessToken,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			Timeout:       cfg.WhatsApp.Timeout,
		})
		if err != nil {
			return err
		}
		opts.Sender = wa
	}

	app := router.New(opts)

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.New(log)
		if err != nil {
			return err
		}
		err = sched.AddCronJob("subscription-renewals", cfg.Scheduler.RenewalCron, renewalJobTimeout,
			func(ctx context.Context) error {
				report, err := app.Subscriptions.RenewDue(ctx, time.Now().UTC())
				if err != nil {
					return err
				}
				log.Info("renewals processed", map[string]any{
					"due":     report.Due,
					"renewed": report.Renewed,
					"failed":  report.Failed,
				})
				return nil
			})
		if err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Warn("scheduler shutdown", map[string]any{"err": err})
			}
		}()
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      app.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
