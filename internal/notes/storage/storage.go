package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/stickynotes/internal/notes"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultKey is the name of the durable entry holding the notes collection.
const DefaultKey = "tasks"

type Backend string

const (
	BackendFile     Backend = "file"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
)

func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "file":
		return BackendFile, nil
	case "redis":
		return BackendRedis, nil
	case "postgres", "psql", "pg":
		return BackendPostgres, nil
	default:
		return "", fmt.Errorf("unknown storage backend: %s", s)
	}
}

type Params struct {
	Backend  Backend
	Key      string
	FilePath string
	Redis    *redis.Client
	DB       *pgxpool.Pool
}

// New builds the storage for the selected backend. Clients for redis and
// postgres are owned (and closed) by the caller.
func New(ctx context.Context, params Params) (notes.Storage, error) {
	key := params.Key
	if key == "" {
		key = DefaultKey
	}

	switch params.Backend {
	case BackendFile, "":
		return NewFile(params.FilePath)
	case BackendRedis:
		if params.Redis == nil {
			return nil, errors.New("redis storage: redis client not set")
		}
		return NewRedis(params.Redis, key), nil
	case BackendPostgres:
		if params.DB == nil {
			return nil, errors.New("postgres storage: db pool not set")
		}
		psql := NewPsql(params.DB, key)
		if err := psql.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return psql, nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", params.Backend)
	}
}
