package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gomarket/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Service owns the database handles: the raw pgx connection used for
// migrations and health checks, and the GORM session layered on top of it.
type Service struct {
	sqlDB  *sql.DB
	gormDB *gorm.DB
}

// New opens the database connection pool and the ORM session over it
func New(cfg config.DatabaseConfig, development bool) (*Service, error) {
	sqlDB, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logLevel := gormlogger.Warn
	if development {
		logLevel = gormlogger.Info
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open orm session: %w", err)
	}

	return &Service{sqlDB: sqlDB, gormDB: gormDB}, nil
}

// DB returns the raw connection pool
func (s *Service) DB() *sql.DB {
	return s.sqlDB
}

// ORM returns the GORM session
func (s *Service) ORM() *gorm.DB {
	return s.gormDB
}

// Health reports the connectivity and pool state of the database
func (s *Service) Health(ctx context.Context) map[string]interface{} {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	health := map[string]interface{}{}

	if err := s.sqlDB.PingContext(ctx); err != nil {
		health["status"] = "down"
		health["error"] = err.Error()
		return health
	}

	stats := s.sqlDB.Stats()
	health["status"] = "up"
	health["open_connections"] = stats.OpenConnections
	health["in_use"] = stats.InUse
	health["idle"] = stats.Idle

	return health
}

// Close closes the connection pool
func (s *Service) Close() error {
	return s.sqlDB.Close()
}
