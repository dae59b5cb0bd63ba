// Package main is the entry point for the ledger HTTP server.
// It loads configuration, opens the configured store, wires the services
// and serves the API until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"btcwallet/internal/config"
	"btcwallet/internal/logging"
	"btcwallet/internal/metrics"
	"btcwallet/internal/routes"
	"btcwallet/internal/services"
	"btcwallet/internal/services/admin"
	"btcwallet/internal/services/currency"
	"btcwallet/internal/services/wallet"
	"btcwallet/internal/storage"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to open store")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.WithError(err).Warn("failed to close store")
		}
	}()

	converter, err := currency.NewConverter(cfg.Converter)
	if err != nil {
		log.WithError(err).Fatal("failed to build currency converter")
	}
	authorizer, err := admin.NewKeyAuthorizer(cfg.Admin.Key, cfg.Admin.KeyHash)
	if err != nil {
		log.WithError(err).Fatal("failed to build admin authorizer")
	}

	collector := metrics.New()
	core := services.NewCore(backend.Store, services.Dependencies{
		Converter:  converter,
		Authorizer: authorizer,
		Wallet:     wallet.WalletConfig{Currency: wallet.DefaultCurrency},
		Metrics:    collector,
		Logger:     log,
	})

	scheduler := newScheduler(core, backend, collector, log)
	scheduler.Start()
	defer scheduler.Stop()

	app := routes.NewApp(core, routes.Options{
		Metrics:     collector,
		Log:         log,
		Health:      backend.HealthChecks(),
		CORSOrigins: cfg.CORSOrigins,
		SignupRate:  cfg.SignupRate,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Warn("graceful shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"port":      cfg.Port,
		"storage":   cfg.Storage,
		"converter": cfg.Converter.Kind,
	}).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.WithError(err).Error("server stopped")
	}
}

// newScheduler registers the periodic jobs: connection pool stats and the
// ledger audit.
func newScheduler(core *services.Core, backend *storage.Backend, collector *metrics.Collector, log logrus.FieldLogger) *cron.Cron {
	c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(log))))

	if backend.DB != nil {
		if sqlDB, err := backend.DB.DB(); err == nil {
			_, _ = c.AddFunc("@every 1m", func() {
				stats := sqlDB.Stats()
				collector.SetDBConnections(stats.OpenConnections, stats.InUse, stats.Idle)
				log.WithFields(logrus.Fields{
					"open":          stats.OpenConnections,
					"idle":          stats.Idle,
					"in_use":        stats.InUse,
					"wait_count":    stats.WaitCount,
					"wait_duration": stats.WaitDuration.String(),
				}).Debug("db pool stats")
			})
		}
	}

	if backend.Cache != nil {
		_, _ = c.AddFunc("@every 5m", func() {
			pool := backend.PoolStats()
			log.WithFields(logrus.Fields{
				"hits":        pool.Hits,
				"misses":      pool.Misses,
				"timeouts":    pool.Timeouts,
				"total_conns": pool.TotalConns,
				"idle_conns":  pool.IdleConns,
			}).Debug("redis pool stats")
		})
	}

	_, _ = c.AddFunc("@every 5m", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		report, err := core.Admin.Audit(ctx)
		if err != nil {
			log.WithError(err).Error("ledger audit failed")
			return
		}
		collector.SetLedgerDrift(report.Drift())
	})

	return c
}
