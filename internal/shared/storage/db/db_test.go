package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
)

// useSQLMock points openDB at a sqlmock connection registered under dsn.
func useSQLMock(t *testing.T, dsn string) {
	t.Helper()
	mockDB, _, err := sqlmock.NewWithDSN(dsn)
	if err != nil {
		t.Fatalf("sqlmock.NewWithDSN: %v", err)
	}
	t.Cleanup(func() { _ = mockDB.Close() })

	prev := openDB
	openDB = func(_, dsn string) (*sql.DB, error) {
		return sql.Open("sqlmock", dsn)
	}
	t.Cleanup(func() { openDB = prev })
}

func resetShared(t *testing.T) {
	t.Helper()
	sharedMu.Lock()
	shared = nil
	sharedMu.Unlock()
	t.Cleanup(func() {
		sharedMu.Lock()
		shared = nil
		sharedMu.Unlock()
	})
}

func TestOpenRequiresURL(t *testing.T) {
	_, err := Open(context.Background(), "  ", PoolFor(ProfileServer))
	if !errors.Is(err, ErrNoURL) {
		t.Fatalf("expected ErrNoURL, got %v", err)
	}
}

func TestSharedReusesPool(t *testing.T) {
	useSQLMock(t, "shared_reuse")
	resetShared(t)

	first, err := Shared(context.Background(), "shared_reuse", PoolFor(ProfileLambda))
	if err != nil {
		t.Fatalf("first Shared: %v", err)
	}
	second, err := Shared(context.Background(), "shared_reuse", PoolFor(ProfileLambda))
	if err != nil {
		t.Fatalf("second Shared: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same pool on both calls")
	}
}

func TestSharedRetriesAfterFailure(t *testing.T) {
	useSQLMock(t, "shared_retry")
	resetShared(t)

	calls := 0
	mocked := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		calls++
		if calls == 1 {
			return nil, driver.ErrBadConn
		}
		return mocked(name, dsn)
	}

	if _, err := Shared(context.Background(), "shared_retry", PoolFor(ProfileLambda)); err == nil {
		t.Fatalf("expected first call to fail")
	}
	conn, err := Shared(context.Background(), "shared_retry", PoolFor(ProfileLambda))
	if err != nil || conn == nil {
		t.Fatalf("expected retry to open a pool, got %v", err)
	}
}

func TestPoolForAppliesEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "bogus")

	want := Pool{
		MaxOpen:     7,
		MaxIdle:     3,
		MaxLifetime: 20 * time.Minute,
		MaxIdleTime: 45 * time.Second,
		PingTimeout: profiles[ProfileServer].PingTimeout,
	}
	if diff := cmp.Diff(want, PoolFor(ProfileServer)); diff != "" {
		t.Fatalf("pool mismatch (-want +got):\n%s", diff)
	}
}

func TestPoolForUnknownProfileUsesServerDefaults(t *testing.T) {
	if diff := cmp.Diff(profiles[ProfileServer], PoolFor("batch")); diff != "" {
		t.Fatalf("pool mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenAppliesPool(t *testing.T) {
	useSQLMock(t, "open_pool")

	conn, err := Open(context.Background(), "open_pool", Pool{MaxOpen: 4})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()
	if got := conn.Stats().MaxOpenConnections; got != 4 {
		t.Fatalf("expected MaxOpenConnections=4, got %d", got)
	}
}
