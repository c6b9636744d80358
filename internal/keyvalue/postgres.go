package keyvalue

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittracker/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore persists fittracker values in a two column table:
//
//	CREATE TABLE fittracker_keyvalue (
//	    key   TEXT PRIMARY KEY,
//	    value TEXT NOT NULL
//	);
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "keyvalue.postgres.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	var value string
	err = s.db.
		QueryRow(ctx, `
			SELECT value
			FROM fittracker_keyvalue
			WHERE key = $1
		`, key).
		Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("postgres get %s: %w", key, err)
	}
	return value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "keyvalue.postgres.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("key", key))

	_, err = s.db.Exec(ctx, `
		INSERT INTO fittracker_keyvalue (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("postgres set %s: %w", key, err)
	}
	return nil
}
