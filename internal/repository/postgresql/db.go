package postgresql

import (
	"database/sql"
	"fmt"

	"parking_booking/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewDB opens the catalog database. The pool stays small: the service only
// reads reference data and appends device event rows.
func NewDB(cfg *config.Config) (*sql.DB, error) {
	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSslMode)

	db, err := sql.Open("pgx", psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	configurePool(db, cfg)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s@%s:%d/%s: %w", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName, err)
	}
	return db, nil
}

func configurePool(db *sql.DB, cfg *config.Config) {
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		db.SetMaxIdleConns(cfg.DBMaxOpenConns / 2)
	}
	if cfg.DBConnMaxIdle > 0 {
		db.SetConnMaxIdleTime(cfg.DBConnMaxIdle)
	}
}
