package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"catalog-sync/core/loader"
	"catalog-sync/core/logger"
	"catalog-sync/core/middleware/auth"
	"catalog-sync/core/middleware/rayid"
	"catalog-sync/core/scheduler"
	"catalog-sync/feature/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-sync/docs/swagger"
)

// @title Catalog Sync API
// @version 1.0
// @description Resumable synchronisation of the trading card catalog.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the HTTP server exposing the sync endpoints and, when enabled, the periodic sync scheduler.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		a, err := bootstrap(ctx)
		if err != nil {
			return err
		}
		logg := a.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		server := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             a.cfg.Server.BodyLimit(),
		})

		feature := catalog.NewFeature(a.orchestrator, logg)
		mgr := loader.NewManager()
		mgr.Register(feature)

		// RayID first so every later log line carries it
		server.Use(rayid.New())

		server.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		server.Get("/swagger/*", swagger.HandlerDefault)

		server.Use(auth.New(auth.Config{
			ApiKey: a.cfg.Server.ApiKey,
			Skip:   []string{"/swagger"},
		}))

		loaded, err := mgr.LoadAll(server)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		if a.cfg.Sync.ScheduleEnabled {
			jobs, err := feature.Service().Jobs(a.cfg.Sync.ScheduleModes)
			if err != nil {
				return err
			}
			trigger := scheduler.NewTrigger(a.cfg.Sync.ScheduleInterval, logg, jobs)
			go func() {
				_ = trigger.Run(ctx)
			}()
			logg.Info("Sync scheduler started",
				zap.Duration("interval", a.cfg.Sync.ScheduleInterval),
				zap.Strings("modes", a.cfg.Sync.ScheduleModes),
			)
		}

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := server.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		cancel()
		return server.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
