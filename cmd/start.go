package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blob-manager/core/config"
	"blob-manager/core/loader"
	"blob-manager/core/logger"
	"blob-manager/core/metrics"
	"blob-manager/core/middleware/auth"
	"blob-manager/core/middleware/rayid"
	"blob-manager/core/server"
	"blob-manager/core/storage"
	"blob-manager/core/storage/factory"
	"blob-manager/feature/blob"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the blob manager server",
	Long:  `Starts the HTTP server exposing the container and blob API.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Initialize Storage
		backend, err := factory.NewBackend(cmd.Context(), cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage backend", zap.Error(err))
		}
		logg = logg.With(zap.String("provider", cfg.Storage.Provider))

		reg := prometheus.NewRegistry()
		if cfg.Server.MetricsEnabled {
			reg.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
			backend = metrics.NewBackend(backend, reg)
		}

		app, err := newApp(cfg.Server, logg, backend, reg)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 4. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 5. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			logg.Error("Shutdown failed", zap.Error(err))
		}
	},
}

// newApp builds the Fiber application around backend. reg is exposed on
// /metrics when metrics are enabled.
func newApp(cfg server.Config, logg *zap.Logger, backend storage.Backend, reg *prometheus.Registry) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             256 * 1024 * 1024,
	})

	// RayID first so every later log line carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		l.Info("Request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	// Public endpoints
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	app.Use(auth.New(auth.Config{
		ApiKey: cfg.ApiKey,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
	}))

	mgr := loader.NewManager(logg)
	mgr.Register(blob.NewFeature(blob.NewService(backend, logg)))
	if err := mgr.LoadAll(app); err != nil {
		return nil, fmt.Errorf("failed to load features: %w", err)
	}
	return app, nil
}

func init() {
	RootCmd.AddCommand(startCmd)
}
