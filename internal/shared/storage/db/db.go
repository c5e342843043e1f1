package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver

	"job-catalog/internal/shared/telemetry"
)

// Profile names the kind of process that owns a connection pool.
type Profile string

const (
	ProfileServer  Profile = "server"
	ProfileLambda  Profile = "lambda"
	ProfileMigrate Profile = "migrate"
)

// Pool holds the database/sql pool settings for the catalog store.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
	PingTimeout time.Duration
}

var profiles = map[Profile]Pool{
	// Every warm Lambda holds its own pool.
	ProfileLambda:  {MaxOpen: 2, MaxIdle: 1, MaxIdleTime: 30 * time.Second, MaxLifetime: 15 * time.Minute, PingTimeout: 3 * time.Second},
	ProfileServer:  {MaxOpen: 10, MaxIdle: 5, MaxIdleTime: 2 * time.Minute, MaxLifetime: time.Hour, PingTimeout: 5 * time.Second},
	ProfileMigrate: {MaxOpen: 1, MaxIdle: 1, MaxIdleTime: 2 * time.Minute, MaxLifetime: time.Hour, PingTimeout: 5 * time.Second},
}

var (
	openDB = sql.Open

	sharedMu sync.Mutex
	shared   *sql.DB
)

// ErrNoURL is returned when no connection string was configured.
var ErrNoURL = errors.New("DATABASE_URL is empty")

// IsLambdaRuntime reports whether the process runs inside AWS Lambda.
func IsLambdaRuntime() bool {
	return strings.TrimSpace(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")) != ""
}

// PoolFor returns the defaults for profile with DB_* overrides from the
// environment applied. Unknown profiles get the server defaults.
func PoolFor(profile Profile) Pool {
	pool, ok := profiles[profile]
	if !ok {
		pool = profiles[ProfileServer]
	}
	envInt("DB_MAX_OPEN_CONNS", &pool.MaxOpen)
	envInt("DB_MAX_IDLE_CONNS", &pool.MaxIdle)
	envDuration("DB_CONN_MAX_LIFETIME", &pool.MaxLifetime)
	envDuration("DB_CONN_MAX_IDLE_TIME", &pool.MaxIdleTime)
	envDuration("DB_PING_TIMEOUT", &pool.PingTimeout)
	return pool
}

// Open connects to the catalog database and pings it before returning.
func Open(ctx context.Context, url string, pool Pool) (*sql.DB, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrNoURL
	}
	conn, err := openDB("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	pool.apply(conn)

	timeout := pool.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}

	telemetry.Info("db.open", telemetry.Fields{
		"max_open":     conn.Stats().MaxOpenConnections,
		"max_lifetime": pool.MaxLifetime.String(),
	})
	return conn, nil
}

// Shared returns the process-wide pool, opening it on first use.
// Failures are not cached so the next invocation tries again.
func Shared(ctx context.Context, url string, pool Pool) (*sql.DB, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared != nil {
		return shared, nil
	}
	conn, err := Open(ctx, url, pool)
	if err != nil {
		return nil, err
	}
	shared = conn
	return shared, nil
}

func (p Pool) apply(conn *sql.DB) {
	fallback := profiles[ProfileServer]
	if p.MaxOpen <= 0 {
		p.MaxOpen = fallback.MaxOpen
	}
	if p.MaxIdle <= 0 {
		p.MaxIdle = fallback.MaxIdle
	}
	if p.MaxLifetime <= 0 {
		p.MaxLifetime = fallback.MaxLifetime
	}
	conn.SetMaxOpenConns(p.MaxOpen)
	conn.SetMaxIdleConns(p.MaxIdle)
	conn.SetConnMaxLifetime(p.MaxLifetime)
	if p.MaxIdleTime > 0 {
		conn.SetConnMaxIdleTime(p.MaxIdleTime)
	}
}

func envInt(key string, dst *int) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("db.env_invalid", telemetry.Fields{"key": key, "value": raw})
		return
	}
	*dst = v
}

func envDuration(key string, dst *time.Duration) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("db.env_invalid", telemetry.Fields{"key": key, "value": raw})
		return
	}
	*dst = v
}
