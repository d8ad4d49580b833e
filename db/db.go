package db

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Init opens the database connection. PostgreSQL is used when DATABASE_URL
// is set; otherwise a local SQLite file keeps the server usable in
// development. The handle is returned to the caller rather than stored in a
// package global so request handlers receive it explicitly.
func Init() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file. Using environment variables directly.")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL != "" {
		conn, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		log.Println("✅ Connected to PostgreSQL")
		return conn, nil
	}

	path := os.Getenv("SQLITE_PATH")
	if path == "" {
		path = "parish.db"
	}
	conn, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	log.Println("✅ Connected to local SQLite")
	return conn, nil
}

// Ping reports whether the underlying connection is alive. Used by the
// health endpoint.
func Ping(conn *gorm.DB) bool {
	sqlDB, err := conn.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}
