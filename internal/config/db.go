package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"account_service/internal/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// DBConfig holds database connection parameters
type DBConfig struct {
	DSN string
}

// LoadDBConfig reads DATABASE_URL, or builds a DSN from the DB_* variables.
func LoadDBConfig() (*DBConfig, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return &DBConfig{DSN: url}, nil
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		return nil, fmt.Errorf("database environment variables not set (DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME)")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPassword, dbName)

	return &DBConfig{DSN: dsn}, nil
}

var (
	connectMaxRetries    = 5
	connectRetryInterval = 5 * time.Second
)

// ConnectDB establishes a connection pool to PostgreSQL, retrying while the
// database comes up.
func ConnectDB(ctx context.Context, cfg *DBConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	var err error
	for i := 0; i < connectMaxRetries; i++ {
		var pool *pgxpool.Pool
		pool, err = pgxpool.New(ctx, cfg.DSN)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				logger.Info("connected to PostgreSQL")
				return pool, nil
			}
			pool.Close()
		}
		logger.Warn("failed to connect to database",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", connectMaxRetries),
			zap.Duration("retry_in", connectRetryInterval),
			zap.Error(err),
		)
		if i == connectMaxRetries-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(connectRetryInterval):
		}
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", connectMaxRetries, err)
}

// RunMigrations applies the embedded migrations through a database/sql
// handle borrowing connections from pool. The handle keeps no idle
// connections, so it is left open for the pool to own.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("unable to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}
	return nil
}
