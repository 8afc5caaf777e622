package repository

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"homekeeper/internal/model"
)

// BudgetModels are the tables of a budget tracker database file.
var BudgetModels = []any{&model.Budget{}, &model.Transaction{}}

// ToDoModels are the tables of the to-do database file.
var ToDoModels = []any{&model.User{}, &model.Task{}}

// NewDB opens a SQLite database and creates any missing tables for the given models.
func NewDB(dsn string, models ...any) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("open db: empty path")
	}

	if err := ensureDirForSQLite(dsn); err != nil {
		return nil, err
	}

	dbLogger := logger.New(
		slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(withForeignKeys(dsn)), &gorm.Config{
		Logger: dbLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Single writer.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(models...); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}

	slog.Debug("database opened", "component", "storage", "path", dsn)
	return db, nil
}

// OpenBudgetDB opens a budget tracker database file.
func OpenBudgetDB(path string) (*gorm.DB, error) {
	return NewDB(path, BudgetModels...)
}

// OpenToDoDB opens the to-do database file.
func OpenToDoDB(path string) (*gorm.DB, error) {
	return NewDB(path, ToDoModels...)
}

// Close releases the connection behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// withForeignKeys adds the driver's foreign_keys pragma to the DSN so every pooled connection enforces it.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// ensureDirForSQLite creates parent dir for SQLite file if needed.
func ensureDirForSQLite(dsn string) error {
	// Ignore DSNs with explicit mode=memory or network.
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return nil
	}
	// Strip file: prefix if present.
	clean := strings.TrimPrefix(dsn, "file:")
	clean = strings.Split(clean, "?")[0]
	dir := filepath.Dir(clean)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create db dir %q: %w", dir, err)
	}
	return nil
}
