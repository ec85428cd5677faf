package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"beyondbridge/internal/entities"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	return newDatabase(dbPath, logger.Default.LogMode(logger.Warn))
}

// NewDebugDatabase opens the database with query logging enabled.
func NewDebugDatabase(dbPath string) (*Database, error) {
	return newDatabase(dbPath, logger.Default.LogMode(logger.Info))
}

func newDatabase(dbPath string, gormLogger logger.Interface) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Compendium{},
		&entities.CompendiumDocument{},
		&entities.Actor{},
		&entities.Setting{},
		&entities.ImportRun{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
