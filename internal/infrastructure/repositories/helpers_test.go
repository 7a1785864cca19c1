package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

// newMigratedDB returns a database with every table the matchmaking flow uses
func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	ctx := context.Background()
	require.NoError(t, NewProfileRepository(db).EnsureSchema(ctx))
	require.NoError(t, NewMatchRepository(db).EnsureSchema(ctx))
	require.NoError(t, NewBlockRepository(db).EnsureSchema(ctx))
	require.NoError(t, NewMatchOptInRepository(db).EnsureSchema(ctx))
	return db
}
