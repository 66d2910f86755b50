package database

import (
	"context"
	"fmt"
	"time"

	"VidTube.com/cmd/model"
	"VidTube.com/config"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"
)

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
	PrepareStmt     bool
	AutoMigrate     bool
}

// OpenMysql opens the production store described by cfg.
func OpenMysql(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.Log.Level == "debug" {
		level = logger.Info
	}
	return Open(mysql.Open(cfg.MysqlDSN()), Options{
		MaxOpenConns:    cfg.Mysql.MaxOpenConns,
		MaxIdleConns:    cfg.Mysql.MaxIdleConns,
		ConnMaxLifetime: cfg.Mysql.ConnMaxLifetime,
		LogLevel:        level,
		PrepareStmt:     true,
		AutoMigrate:     cfg.Mysql.AutoMigrate,
	})
}

// Open builds the single *gorm.DB handle that every dao receives through its constructor.
func Open(dialector gorm.Dialector, opts Options) (*gorm.DB, error) {
	if opts.LogLevel == 0 {
		opts.LogLevel = logger.Warn
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(opts.LogLevel),
		PrepareStmt:            opts.PrepareStmt,
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().Local()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, fmt.Errorf("failed to register tracing plugin: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if opts.AutoMigrate {
		if err = Migrate(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	hlog.Info("Starting tables migration...")
	if err := db.AutoMigrate(model.Tables()...); err != nil {
		hlog.Errorf("Failed to migrate tables: %v", err)
		return err
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}

func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		hlog.Errorf("Failed to close database: %v", err)
	}
}

// Exists reports whether at least one row of value's table matches the condition.
func Exists(tx *gorm.DB, value interface{}, query interface{}, args ...interface{}) (bool, error) {
	var found int
	res := tx.Model(value).Select("1").Where(query, args...).Limit(1).Scan(&found)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ShareLock makes the reads of tx take shared row locks (FOR SHARE). SQLite has no row locks and
// drops the clause; its write lock already serializes transactions.
func ShareLock(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "SHARE"})
}

// ExistsForShare is Exists holding a shared lock on the matched row until tx ends, so a
// concurrent delete of that row waits for tx to commit.
func ExistsForShare(tx *gorm.DB, value interface{}, query interface{}, args ...interface{}) (bool, error) {
	return Exists(ShareLock(tx), value, query, args...)
}
