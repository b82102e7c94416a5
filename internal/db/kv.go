package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/codr1/themesmith/internal/kv"
)

const kvQueryTimeout = 5 * time.Second

// KV is a kv.Storage over the kv_entries table. Query failures are reported
// as kv.ErrUnavailable so callers can degrade the same way they do for any
// other unreachable medium.
type KV struct {
	queries *Queries
	timeout time.Duration
}

var _ kv.Storage = (*KV)(nil)

func NewKV(database *DB) *KV {
	return &KV{queries: database.Queries, timeout: kvQueryTimeout}
}

func (s *KV) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	value, err := s.queries.GetEntry(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("get", key, err)
	}
	return value, true, nil
}

func (s *KV) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.queries.UpsertEntry(ctx, UpsertEntryParams{Key: key, Value: value}); err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

func (s *KV) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.queries.DeleteEntry(ctx, key); err != nil {
		return unavailable("remove", key, err)
	}
	return nil
}

// Keys lists every stored key in order.
func (s *KV) Keys(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	keys, err := s.queries.ListKeys(ctx)
	if err != nil {
		return nil, unavailable("list", "", err)
	}
	return keys, nil
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %v", kv.ErrUnavailable, op, key, err)
}
