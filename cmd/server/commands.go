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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/zaqqye/agency_backend/internal/config"
	"github.com/zaqqye/agency_backend/internal/content"
	"github.com/zaqqye/agency_backend/internal/database"
	"github.com/zaqqye/agency_backend/internal/logging"
	"github.com/zaqqye/agency_backend/internal/mailer"
	"github.com/zaqqye/agency_backend/internal/routes"
	"github.com/zaqqye/agency_backend/internal/ws"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "agency",
		Short:        "Agency site API: CMS sections, blog, team, pricing and contact leads",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

// bootstrap loads configuration and opens the logger and database.
func bootstrap() (*config.Config, *zap.Logger, *gorm.DB, error) {
	// .env is optional in production
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Connect(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer database.Close(db)
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("database migration failed: %w", err)
			}
			logger.Info("migration complete")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var withDefaults bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the initial admin and optionally store default sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Sync()
			defer database.Close(db)
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("database migration failed: %w", err)
			}
			if err := database.SeedAdmin(db, cfg, logger); err != nil {
				return fmt.Errorf("admin seed failed: %w", err)
			}
			if !withDefaults {
				return nil
			}

			ctx := cmd.Context()
			svc, store, err := openContent(ctx, cfg, db, logger)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())
			return seedSections(ctx, svc, logger)
		},
	}
	cmd.Flags().BoolVar(&withDefaults, "sections", false, "store default content for sections that were never saved")
	return cmd
}

// seedSections writes the default fields of every section absent from the store.
func seedSections(ctx context.Context, svc *content.Service, logger *zap.Logger) error {
	for _, section := range svc.Defaults().Sections() {
		rec, err := svc.Find(ctx, section)
		if err != nil {
			return err
		}
		if rec != nil {
			continue
		}
		if _, err := svc.Upsert(ctx, section, svc.Defaults().For(section)); err != nil {
			return fmt.Errorf("seed section %s: %w", section, err)
		}
		logger.Info("seeded section", zap.String("section", section))
	}
	return nil
}

func openContent(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *zap.Logger) (*content.Service, content.Store, error) {
	defaults := content.BuiltinDefaults()
	if cfg.DefaultsFile != "" {
		d, err := content.LoadDefaultsFile(cfg.DefaultsFile)
		if err != nil {
			return nil, nil, err
		}
		defaults = d
	}
	store, err := database.OpenContentStore(ctx, cfg, db, logger)
	if err != nil {
		return nil, nil, err
	}
	svc := content.NewService(store, content.WithDefaults(defaults), content.WithLogger(logger))
	return svc, store, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	if err := database.SeedAdmin(db, cfg, logger); err != nil {
		return fmt.Errorf("admin seed failed: %w", err)
	}

	svc, store, err := openContent(ctx, cfg, db, logger)
	if err != nil {
		return err
	}

	hubs := ws.NewHubs(logger)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hubs.Preview.Run(hubCtx)

	gin.SetMode(cfg.GinMode)
	r := routes.NewEngine(routes.Deps{
		DB:       db,
		Cfg:      cfg,
		Content:  svc,
		Hubs:     hubs,
		Notifier: mailer.NewSMTPMailer(mailer.ConfigFrom(cfg), logger),
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("content_store", cfg.ContentStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case serveErr = <-errCh:
		logger.Error("http server failed", zap.Error(serveErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	stopHub()
	if err := store.Close(shutdownCtx); err != nil {
		logger.Warn("content store close", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		logger.Warn("database close", zap.Error(err))
	}
	return serveErr
}
