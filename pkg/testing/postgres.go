package testing

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/2beens/stickynotes/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// GetDBPool connects to a real postgres, used by integration tests only.
func GetDBPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}
	t.Logf("using postgres: [%s:%s]", host, port)

	dbPool, err := db.NewDBPool(timeoutCtx, db.NewDBPoolParams{
		DBHost:         host,
		DBPort:         port,
		DBName:         "sticky_notes",
		TracingEnabled: false,
	})
	require.NoError(t, err)
	require.NoError(t, dbPool.Ping(timeoutCtx))
	t.Cleanup(dbPool.Close)

	return dbPool
}
