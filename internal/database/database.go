package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// OpenDB creates and configures the connection pool backing the persisted
// visitor storage.
func OpenDB(dsn string) (*sql.DB, error) {
	// 1. Open a new connection pool.
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// 2. Configure the connection pool settings.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 3. Ping the database to verify the connection.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping visitor storage database: %w", err)
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}

const visitorStorageDDL = `
CREATE TABLE IF NOT EXISTS visitor_storage (
	visitor_id  VARCHAR(64)  NOT NULL,
	storage_key VARCHAR(64)  NOT NULL,
	value       MEDIUMTEXT   NOT NULL,
	updated_at  DATETIME     NOT NULL,
	PRIMARY KEY (visitor_id, storage_key)
)`

// Migrate creates the tables the storefront owns. It is safe to run on
// every start.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, visitorStorageDDL); err != nil {
		return fmt.Errorf("create visitor_storage: %w", err)
	}
	return nil
}
