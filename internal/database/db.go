package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zaqqye/agency_backend/internal/config"
	"github.com/zaqqye/agency_backend/internal/content"
	"github.com/zaqqye/agency_backend/internal/models"
)

const (
	connectInitialInterval = 2 * time.Second
	connectMaxInterval     = 30 * time.Second
	connectMaxElapsed      = 2 * time.Minute
)

func dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
		)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// Connect opens the SQL database, retrying with exponential backoff until
// the server answers or connectMaxElapsed passes.
func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = connectInitialInterval
	bo.MaxInterval = connectMaxInterval
	bo.MaxElapsedTime = connectMaxElapsed

	var db *gorm.DB
	err = backoff.RetryNotify(func() error {
		conn, err := gorm.Open(dial, &gorm.Config{
			Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
			TranslateError: true,
		})
		if err != nil {
			return err
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			_ = sqlDB.Close()
			return err
		}
		db = conn
		return nil
	}, bo, func(err error, next time.Duration) {
		logger.Warn("database not ready, retrying",
			zap.String("driver", cfg.DBDriver),
			zap.Duration("next", next),
			zap.Error(err),
		)
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}
	if cfg.DBDriver == "sqlite" {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	logger.Info("database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.ContentSection{},
		&models.BlogPost{},
		&models.TeamMember{},
		&models.PricingPlan{},
		&models.ContactLead{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// OpenContentStore returns the content store selected by CONTENT_STORE. The
// sql store shares db.
func OpenContentStore(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *zap.Logger) (content.Store, error) {
	switch cfg.ContentStore {
	case "sql", "":
		return content.NewSQLStore(db), nil
	case "memory":
		logger.Warn("content store is in-memory; edits are lost on restart")
		return content.NewMemoryStore(), nil
	case "mongo":
		var store *content.MongoStore
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = connectInitialInterval
		bo.MaxInterval = connectMaxInterval
		bo.MaxElapsedTime = connectMaxElapsed
		err := backoff.RetryNotify(func() error {
			s, err := content.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
			if err != nil {
				return err
			}
			store = s
			return nil
		}, backoff.WithContext(bo, ctx), func(err error, next time.Duration) {
			logger.Warn("mongo not ready, retrying", zap.Duration("next", next), zap.Error(err))
		})
		if err != nil {
			return nil, err
		}
		logger.Info("content store connected", zap.String("backend", "mongo"), zap.String("database", cfg.MongoDatabase))
		return store, nil
	}
	return nil, fmt.Errorf("unsupported CONTENT_STORE %q", cfg.ContentStore)
}
