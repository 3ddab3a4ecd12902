// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"github.com/inventra/inventra-backend/internal/config"
	"github.com/inventra/inventra-backend/internal/database"
	"github.com/inventra/inventra-backend/internal/middleware"
	"github.com/inventra/inventra-backend/internal/router"
)

func main() {
	cmd := &cli.Command{
		Name:  "inventra",
		Usage: "Inventory management backend",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve()
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, c *cli.Command) error {
					_, db, err := setup()
					if err != nil {
						return err
					}
					defer database.Close(db)
					if err := database.RunMigrations(db); err != nil {
						return err
					}
					logrus.Info("Migrations complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed initial data (sentinel category and admin account)",
				Action: func(ctx context.Context, c *cli.Command) error {
					_, db, err := setup()
					if err != nil {
						return err
					}
					defer database.Close(db)
					if err := database.SeedInitialData(db); err != nil {
						return err
					}
					logrus.Info("Seeding complete")
					return nil
				},
			},
		},
		// Running without a subcommand starts the server.
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve()
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logrus.Fatalf("Command failed: %v", err)
	}
}

func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	configureLogging(cfg)

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func serve() error {
	cfg, db, err := setup()
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db); err != nil {
		return err
	}
	if err := database.SeedInitialData(db); err != nil {
		return err
	}

	engine := router.Initialize(db, cfg)

	// CSRF protection wraps the whole handler stack.
	protect := middleware.CSRFProtect(cfg.Security.CSRFKey, cfg.Environment == "production")

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      protect(engine),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Server stopped")
	return nil
}

func configureLogging(cfg *config.Config) {
	if cfg.Environment == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logrus.SetLevel(logrus.DebugLevel)
	}
}
