package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/stickynotes/internal/notes"
	"github.com/2beens/stickynotes/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var _ notes.Storage = (*Redis)(nil)

// Redis keeps the notes entry under a single key.
type Redis struct {
	redisClient *redis.Client
	key         string
}

func NewRedis(redisClient *redis.Client, key string) *Redis {
	return &Redis{
		redisClient: redisClient,
		key:         key,
	}
}

func (r *Redis) Load(ctx context.Context) ([]notes.Note, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redisStorage.load")
	defer span.End()
	span.SetAttributes(attribute.String("storage.key", r.key))

	cmd := r.redisClient.Get(ctx, r.key)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			log.Debugf("notes key [%s] not found in redis, starting empty", r.key)
			return []notes.Note{}, nil
		}
		return nil, fmt.Errorf("redis get notes: %w", err)
	}

	return notes.UnmarshalNotes([]byte(cmd.Val()))
}

func (r *Redis) Save(ctx context.Context, list []notes.Note) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "redisStorage.save")
	defer span.End()
	span.SetAttributes(attribute.String("storage.key", r.key))

	data, err := notes.MarshalNotes(list)
	if err != nil {
		return err
	}

	if err := r.redisClient.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set notes: %w", err)
	}

	return nil
}
