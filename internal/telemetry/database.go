package telemetry

import (
	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDB opens a GORM connection whose database/sql pool is instrumented with
// otelsql, so every statement gets a client span.
func OpenDB(dsn string, config *gorm.Config) (*gorm.DB, error) {
	sqlDB, err := otelsql.Open("pgx", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), config)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}
