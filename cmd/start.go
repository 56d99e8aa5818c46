package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patron-manager/core/loader"
	"patron-manager/core/logger"
	"patron-manager/core/middleware/auth"
	"patron-manager/core/middleware/rayid"
	"patron-manager/core/scheduler"
	"patron-manager/feature/history"
	"patron-manager/feature/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "patron-manager/docs/swagger"
)

const shutdownTimeout = 10 * time.Second

// @title Patron Manager API
// @version 1.0
// @description Patreon and Ko-Fi membership reconciled against the Dragonite inventory.
// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the patron manager server",
	Long:  `Starts the HTTP server, the webhook receiver and the periodic sync jobs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()
		logg := a.logger
		cfg := a.cfg

		if !cfg.Server.WebhookEnabled() {
			logg.Warn("Webhook secret not set, every webhook delivery will be rejected")
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager()
		mgr.Register(a.patreon)
		mgr.Register(a.dragonite)
		mgr.Register(reconcile.NewFeature(a.reconcile))
		mgr.Register(history.NewFeature(a.history, logger.ForComponent(logg, "history")))

		// RayID must be first so every log line carries it.
		app.Use(rayid.New())

		httpLog := logger.ForComponent(logg, "http")
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(httpLog, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("took", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Debug("Request handled", fields...)
			return nil
		})

		// Public routes
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendString("Patron Manager is running!")
		})
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Patreon signs webhook deliveries itself.
		app.Use(auth.New(auth.Config{
			ApiKey: cfg.Server.ApiKey,
			Next:   auth.SkipPaths("/webhook"),
		}))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		sched := scheduler.New(logger.ForComponent(logg, "scheduler"))
		if cfg.Patreon.Configured() {
			if err := sched.Add("patreon-sync", cfg.Scheduler.PatreonSchedule, func(ctx context.Context) error {
				_, err := a.patreon.Service().Sync(ctx)
				return err
			}); err != nil {
				return err
			}
		} else {
			logg.Warn("Patreon credentials not set, periodic member sync disabled")
		}
		if cfg.Dragonite.Configured() {
			if err := sched.Add("dragonite-sync", cfg.Scheduler.DragoniteSchedule, func(ctx context.Context) error {
				_, err := a.dragonite.Sync().Sync(ctx)
				return err
			}); err != nil {
				return err
			}
		} else {
			logg.Warn("Dragonite credentials not set, periodic area sync disabled")
		}
		sched.Start(cfg.Scheduler.RunOnStart)

		listenErr := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			listenErr <- app.Listen(cfg.Server.Address())
		}()

		select {
		case <-ctx.Done():
		case err = <-listenErr:
			logg.Error("Server stopped", zap.Error(err))
		}

		logg.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		sched.Stop(shutdownCtx)
		if serr := app.ShutdownWithContext(shutdownCtx); serr != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(serr))
		}
		return err
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
