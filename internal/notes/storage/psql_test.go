//go:build integration_test || all_tests

package storage

import (
	"context"
	"testing"

	"github.com/2beens/stickynotes/internal/notes"
	testingpkg "github.com/2beens/stickynotes/pkg/testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPsql_SaveLoad(t *testing.T) {
	ctx := context.Background()
	dbPool := testingpkg.GetDBPool(t)

	p := NewPsql(dbPool, "tasks-integration-test")
	require.NoError(t, p.EnsureSchema(ctx))
	_, err := dbPool.Exec(ctx, `DELETE FROM kv_entry WHERE key = $1`, "tasks-integration-test")
	require.NoError(t, err)

	loaded, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, p.Save(ctx, testNotes()))
	loaded, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testNotes(), loaded)

	// second save overwrites the same row
	require.NoError(t, p.Save(ctx, testNotes()[:1]))
	loaded, err = p.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []notes.Note{testNotes()[0]}, loaded)
}

func TestRedis_SaveLoad_RealRedis(t *testing.T) {
	ctx, rdb := testingpkg.GetRedisClientAndCtx(t)

	r := NewRedis(rdb, "tasks-integration-test")
	require.NoError(t, rdb.Del(ctx, "tasks-integration-test").Err())

	loaded, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, r.Save(ctx, testNotes()))
	loaded, err = r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, testNotes(), loaded)
}
