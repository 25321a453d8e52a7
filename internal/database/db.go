package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/meeting-room-booking/internal/config"
)

// Open connects to MySQL, sizes the pool from cfg, and verifies the
// connection with a bounded ping before returning.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(cfg))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// dsn builds the driver connection string. parseTime makes DATETIME
// columns scan into time.Time, and loc=UTC pins them so interval
// comparisons never shift with the server timezone.
func dsn(cfg config.DBConfig) string {
	auth := cfg.User
	if cfg.Pass != "" {
		auth = cfg.User + ":" + cfg.Pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.Host, cfg.Port, cfg.Name)
}
