package repository

import (
	"fmt"

	"shift-leave-bot/internal/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// StoredLedger - книга отпусков со всеми дополнительными операциями
type StoredLedger interface {
	Ledger
	RosterWriter
	AuditReader
}

// OpenLedger открывает книгу отпусков выбранного хранилища.
// Закрывать книгу должен вызывающий через возвращенную функцию.
func OpenLedger(cfg *config.Config) (StoredLedger, func() error, error) {
	switch cfg.LedgerBackend {
	case config.BackendSheets:
		srv, err := NewSheetsService(cfg.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		ledger := NewSheetsLedger(srv, cfg.SpreadsheetID, cfg.SheetName, cfg.AuditSheetName, cfg.PlanningYear)
		if err := ledger.EnsureAuditSheet(); err != nil {
			return nil, nil, fmt.Errorf("failed to prepare audit sheet: %w", err)
		}
		logrus.Infof("Google Sheets ledger %s opened", cfg.SpreadsheetID)
		return ledger, func() error { return nil }, nil

	case config.BackendXLSX:
		ledger, err := OpenXLSXLedger(cfg.WorkbookPath, cfg.SheetName, cfg.AuditSheetName, cfg.PlanningYear)
		if err != nil {
			return nil, nil, err
		}
		logrus.Infof("Workbook ledger %s opened", cfg.WorkbookPath)
		return ledger, ledger.Close, nil

	case config.BackendSQLite:
		db, err := OpenDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		ledger, err := NewGormLedgerRepository(db, cfg.PlanningYear)
		if err != nil {
			return nil, nil, err
		}
		logrus.Infof("SQLite ledger %s opened", cfg.DatabaseURL)
		return ledger, ledger.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}

// OpenDatabase открывает SQLite базу через gorm
func OpenDatabase(url string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(url), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite ограничения
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Включаем поддержку внешних ключей (требуется для SQLite)
	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	return db, nil
}
