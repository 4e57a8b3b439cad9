package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/iliyamo/oscar-explorer/internal/config"
	"github.com/iliyamo/oscar-explorer/internal/logging"
	"github.com/iliyamo/oscar-explorer/internal/metrics"
)

// Pool is the single shared PostgreSQL connection pool.  Every repository
// runs its statements through the embedded *sqlx.DB.
type Pool struct {
	*sqlx.DB
}

// DSN renders the lib/pq keyword/value connection string.
func DSN(cfg config.DBConfig) string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Name, cfg.SSLMode)
	if cfg.Password != "" {
		dsn += " password=" + cfg.Password
	}
	return dsn
}

// Open connects to PostgreSQL and verifies the connection.
func Open(cfg config.DBConfig) (*Pool, error) {
	db, err := sqlx.Open("postgres", DSN(cfg))
	if err != nil {
		return nil, err
	}

	// Pool settings
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 20
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxIdleTime(30 * time.Second)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Pool{DB: db}, nil
}

// NewPool wraps an existing handle.  Tests pass a sqlmock-backed *sqlx.DB.
func NewPool(db *sqlx.DB) *Pool {
	return &Pool{DB: db}
}

// Ping reports whether the database answers within two seconds.
func (p *Pool) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.PingContext(ctx)
}

// Watch pings the pool every interval until ctx is done.  The first
// unexpected failure is logged and handed to onFatal; the server passes a
// function that exits so a supervisor can restart the process.  Watch does
// not retry.
func (p *Pool) Watch(ctx context.Context, interval time.Duration, onFatal func(error)) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			stats := p.Stats()
			metrics.DBOpenConnections.Set(float64(stats.OpenConnections))
			metrics.DBIdleConnections.Set(float64(stats.Idle))

			if err := p.Ping(ctx); err != nil {
				if ctx.Err() != nil {
					return
				}
				logging.Error().Err(err).Msg("unexpected error on idle database connection")
				onFatal(err)
				return
			}
		}
	}
}
