// Package dbtest opens throwaway SQLite stores for tests.
package dbtest

import (
	"context"
	"path/filepath"
	"testing"

	"streammusic/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns a migrated, seeded database in t.TempDir.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=off&_busy_timeout=5000"
	gdb, err := gorm.Open(sqlite.Open(dsn), db.GormConfig("error"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.SeedPlans(context.Background(), gdb); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return gdb
}
