package db

import (
	"fmt"

	"github.com/subfolio-dev/subfolio/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Open dials the configured driver. sqlite is used for local development and
// tests, with foreign keys switched on so cascades behave like postgres.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})

	if err != nil {
		return nil, err
	}

	if driver != "postgres" {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, err
		}

		// A single connection keeps ":memory:" databases and the pragma alive.
		sqlDB.SetMaxOpenConns(1)

		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	return conn, nil
}

func ConnectDatabase(driver, dsn string) error {
	conn, err := Open(driver, dsn)

	if err != nil {
		return err
	}

	DB = conn

	return nil
}

func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Subdomain{},
		&models.Profile{},
		&models.Contact{},
		&models.Social{},
		&models.Work{},
		&models.Project{},
		&models.Link{},
	}
}

func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(Models()...)
}

func MigrateDatabase() error {
	return Migrate(DB)
}
