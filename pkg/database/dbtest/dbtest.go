// Package dbtest opens throwaway SQLite stores for package tests.
package dbtest

import (
	"path/filepath"
	"sync"
	"testing"

	"VidTube.com/pkg/database"
	"VidTube.com/pkg/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// New returns a migrated store backed by a file in t.TempDir(). A single connection keeps
// SQLite from reporting SQLITE_BUSY when tests run transactions from many goroutines.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "vidtube.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err := database.Open(sqlite.Open(dsn), database.Options{
		MaxOpenConns: 1,
		LogLevel:     logger.Silent,
		AutoMigrate:  true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

// IDs returns a generator for test fixtures.
func IDs(t testing.TB) utils.IDGenerator {
	t.Helper()
	sf, err := utils.NewSnowflake(1, 1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}
	return sf
}

// Locks records the lock strength ("UPDATE", "SHARE") of every locking read against table.
// SQLite drops the clause when building SQL, so this is the way to see what a dao asks for.
func Locks(t testing.TB, db *gorm.DB, table string) func() []string {
	t.Helper()
	var (
		mu   sync.Mutex
		seen []string
	)
	record := func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		c, ok := tx.Statement.Clauses["FOR"]
		if !ok {
			return
		}
		if locking, ok := c.Expression.(clause.Locking); ok {
			mu.Lock()
			seen = append(seen, locking.Strength)
			mu.Unlock()
		}
	}
	name := "dbtest:locks:" + table
	if err := db.Callback().Query().Before("gorm:query").Register(name, record); err != nil {
		t.Fatalf("register query callback: %v", err)
	}
	if err := db.Callback().Row().Before("gorm:row").Register(name, record); err != nil {
		t.Fatalf("register row callback: %v", err)
	}
	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), seen...)
	}
}
