package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/stickynotes/internal/notes"
	"github.com/2beens/stickynotes/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var _ notes.Storage = (*Psql)(nil)

const createKVTableSQL = `
CREATE TABLE IF NOT EXISTS kv_entry
(
    key        VARCHAR PRIMARY KEY,
    value      JSONB       NOT NULL DEFAULT '[]',
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// Psql keeps the notes entry as one row of a key-value table.
type Psql struct {
	db  *pgxpool.Pool
	key string
}

func NewPsql(db *pgxpool.Pool, key string) *Psql {
	return &Psql{
		db:  db,
		key: key,
	}
}

// EnsureSchema creates the key-value table if it does not exist yet.
func (p *Psql) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createKVTableSQL); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (p *Psql) Load(ctx context.Context) ([]notes.Note, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "psqlStorage.load")
	defer span.End()
	span.SetAttributes(attribute.String("storage.key", p.key))

	var value []byte
	err := p.db.QueryRow(
		ctx,
		`SELECT value FROM kv_entry WHERE key = $1;`,
		p.key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debugf("notes key [%s] not found in postgres, starting empty", p.key)
			return []notes.Note{}, nil
		}
		return nil, fmt.Errorf("select notes: %w", err)
	}

	return notes.UnmarshalNotes(value)
}

func (p *Psql) Save(ctx context.Context, list []notes.Note) error {
	ctx, span := tracing.GlobalTracer.Start(ctx, "psqlStorage.save")
	defer span.End()
	span.SetAttributes(attribute.String("storage.key", p.key))

	data, err := notes.MarshalNotes(list)
	if err != nil {
		return err
	}

	if _, err := p.db.Exec(
		ctx,
		`
			INSERT INTO kv_entry (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at;`,
		p.key, data,
	); err != nil {
		return fmt.Errorf("upsert notes: %w", err)
	}

	return nil
}
