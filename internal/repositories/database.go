package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/catalogkit/catalog-admin-service/internal/config"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB       *sql.DB
	Category CategoryRepository
	Product  ProductRepository
}

func New(cfg *config.Config) (*Repository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repository{
		DB:       db,
		Category: NewCategoryRepo(db),
		Product:  NewProductRepo(db),
	}, nil
}

func (r *Repository) Close() error {
	return r.DB.Close()
}
