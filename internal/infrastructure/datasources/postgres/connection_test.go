package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"motes-generator.backend/internal/config"
)

func TestNewConnection_PingFailure(t *testing.T) {
	origPing := dbPing
	t.Cleanup(func() { dbPing = origPing })
	dbPing = func(*sql.DB) error { return errors.New("connection refused") }

	cfg := config.DatabaseConfig{
		Host:     "127.0.0.1",
		Port:     1,
		User:     "x",
		Password: "x",
		DBName:   "x",
		SSLMode:  "disable",
	}

	db, err := NewConnection(cfg)
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to ping database")
}

func TestNewConnection_OpenAndPingHooks(t *testing.T) {
	origOpen := sqlOpen
	origPing := dbPing
	t.Cleanup(func() {
		sqlOpen = origOpen
		dbPing = origPing
	})

	cfg := config.DatabaseConfig{
		Host: "localhost", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable",
	}

	sqlOpen = func(_, _ string) (*sql.DB, error) {
		return nil, errors.New("open failed")
	}
	db, err := NewConnection(cfg)
	require.Error(t, err)
	require.Nil(t, db)
	require.Contains(t, err.Error(), "failed to open database")

	var gotDriver, gotDSN string
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		gotDriver, gotDSN = driver, dsn
		return origOpen("postgres", dsn)
	}
	dbPing = func(*sql.DB) error { return nil }

	db, err = NewConnection(cfg)
	require.NoError(t, err)
	require.NotNil(t, db)
	require.Equal(t, "postgres", gotDriver)
	require.Equal(t, cfg.DSN(), gotDSN)
	require.NoError(t, Close(db))
}

func TestClose_Nil(t *testing.T) {
	require.NoError(t, Close(nil))
}
