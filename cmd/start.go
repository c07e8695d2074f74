package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vessel-manager/core/loader"
	"vessel-manager/core/logger"
	"vessel-manager/core/middleware/auth"
	"vessel-manager/core/middleware/rayid"
	"vessel-manager/core/reconcile"

	"vessel-manager/feature/integrity"
	"vessel-manager/feature/vessel"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "vessel-manager/docs/swagger"
)

// @title Vessel Manager API
// @version 1.0
// @description API for reconciling vessel records against external data sources.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the vessel manager server",
	Long:  `Starts the HTTP server, migrates the vessel tables and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load configuration, logger, database and storage
		rt, err := setup()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 2. Migrate vessel tables
		if err := rt.store.Migrate(context.Background()); err != nil {
			logg.Fatal("Failed to migrate database", zap.Error(err))
		}
		logg.Info("Connected to vessel database", zap.String("driver", rt.cfg.Database.Driver))

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
			ReadTimeout:           time.Duration(rt.cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		// 4. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(vessel.NewFeature(rt.service))
		mgr.Register(integrity.NewFeature(rt.client, rt.cfg.Storage.Bucket, rt.candidateFolders(), rt.db, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request handled", fields...)
			return nil
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		if !rt.cfg.Server.AuthEnabled() {
			logg.Warn("API key not set; the API is unauthenticated")
		}
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Candidate cache housekeeping
		stop := make(chan struct{})
		if rt.cache != nil {
			go purgeCache(rt.cache, logg, stop)
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("address", rt.cfg.Server.Address()),
				zap.Strings("sources", rt.cfg.Enhance.Sources),
			)
			if err := app.Listen(rt.cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		close(stop)
		_ = app.Shutdown()
	},
}

// purgeCache drops expired candidates once per TTL until stop closes.
func purgeCache(cache *reconcile.CandidateCache, logg *zap.Logger, stop <-chan struct{}) {
	ticker := time.NewTicker(cache.TTL())
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := cache.Purge(); n > 0 {
				logg.Debug("Purged expired candidates", zap.Int("count", n), zap.Int("remaining", cache.Len()))
			}
		case <-stop:
			return
		}
	}
}

// migrateCmd creates or updates the vessel tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the vessel tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup()
		if err != nil {
			return err
		}
		if err := rt.store.Migrate(cmd.Context()); err != nil {
			return err
		}
		rt.logger.Info("Vessel tables migrated")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(startCmd, migrateCmd)
}
