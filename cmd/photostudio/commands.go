package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"photostudio/internal/app"
	"photostudio/internal/config"
	"photostudio/internal/lib/logger/handlers/slogpretty"
	"photostudio/internal/lib/logger/sl"
	"photostudio/internal/repository"
	"photostudio/internal/services/auth"
	"photostudio/internal/storage/postgresql"

	"github.com/spf13/cobra"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "photostudio",
		Short:         "Photo studio site, admin panel and client proofing backend",
		SilenceUsage:  true,
	}

	root.AddCommand(serveCmd(), migrateCmd(), createAdminCmd())

	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.MustLoad()
			log := setupLogger(cfg.Env)

			log.Info("starting photostudio", slog.String("env", cfg.Env))

			application, err := app.New(cmd.Context(), log, cfg)
			if err != nil {
				log.Error("failed to init application", sl.Err(err))
				return err
			}

			go application.HTTPServer.MustRun()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)

			sign := <-stop
			log.Info("stopping application", slog.String("signal", sign.String()))

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := application.Stop(ctx); err != nil {
				log.Error("shutdown finished with errors", sl.Err(err))
			}

			log.Info("gracefully stopped")

			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg := config.MustLoad()
			log := setupLogger(cfg.Env)

			if err := postgresql.MigrateUp(cfg.DSN); err != nil {
				log.Error("migrate up failed", sl.Err(err))
				return err
			}

			log.Info("migrations applied")

			return nil
		},
	}

	down := &cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations, one step by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("invalid steps %q", args[0])
				}
				steps = n
			}

			cfg := config.MustLoad()
			log := setupLogger(cfg.Env)

			if err := postgresql.MigrateDown(cfg.DSN, steps); err != nil {
				log.Error("migrate down failed", sl.Err(err))
				return err
			}

			log.Info("migrations rolled back", slog.Int("steps", steps))

			return nil
		},
	}

	cmd.AddCommand(up, down)

	return cmd
}

func createAdminCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.MustLoad()
			log := setupLogger(cfg.Env)

			storage, err := postgresql.New(cmd.Context(), cfg.DSN)
			if err != nil {
				return err
			}
			defer storage.Stop()

			repo := repository.NewRepository(storage.Pool())
			a := auth.New(log, repo.Admins, repo.Clients, cfg.Auth)

			id, err := a.RegisterAdmin(cmd.Context(), email, password, name)
			if err != nil {
				log.Error("failed to create admin", sl.Err(err))
				return err
			}

			log.Info("admin created", slog.String("id", id.String()), slog.String("email", email))

			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&name, "name", "Studio Admin", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	return slog.New(opts.NewPrettyHandler(os.Stdout))
}
