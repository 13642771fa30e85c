package db

import (
	"evbook/src/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open establishes the process-wide database handle. The caller owns the
// returned handle and passes it down; there is no package-level singleton.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()))
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	return db, nil
}
