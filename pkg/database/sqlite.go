package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDB opens the embedded store file. The store is single-user by
// design, so the connection pool is kept to one writer.
func ConnectDB() *gorm.DB {
	path := os.Getenv("STORE_PATH")
	if path == "" {
		path = "storefront.db"
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		log.Fatal("Failed to open store file. \n", err)
	}

	// SQLite allows one writer at a time; serializing through a single
	// connection avoids SQLITE_BUSY under concurrent requests.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Store opened at", path)
	return db
}
