package common

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ConnectDb opens the shared database. A postgres:// DSN selects the
// postgres driver; anything else is treated as a sqlite file path.
func ConnectDb(databaseURL string) *gorm.DB {
	if databaseURL == "" {
		log.Println("DATABASE_URL not set")
		return nil
	}

	var (
		db  *gorm.DB
		err error
	)
	if isPostgresDSN(databaseURL) {
		db, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(databaseURL), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	}
	if err != nil {
		log.Println("Error opening database: " + err.Error())
		return nil
	}
	log.Println("opened database at:", databaseURL)
	return db
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}
