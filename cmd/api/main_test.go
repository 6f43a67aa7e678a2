package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upgrad/stackoverflow/internal/pkg/config"
)

func TestOpenRepositories_ClosesStoreWhenRedisFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	path := filepath.Join(t.TempDir(), "qa.db")
	cfg := &config.Config{
		StoreBackend:   config.StoreSQLite,
		SessionBackend: config.SessionsInRedis,
		SQLite:         config.SQLiteConfig{Path: path},
		Redis:          config.RedisConfig{Addr: addr, Timeout: 200 * time.Millisecond},
	}

	repos, err := openRepositories(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, repos)

	// a cleanly closed WAL database removes its write-ahead log
	_, statErr := os.Stat(path + "-wal")
	assert.True(t, os.IsNotExist(statErr), "sqlite store left open: %v", statErr)
}

func TestRepositories_CloseReverseOrder(t *testing.T) {
	var order []string
	repos := &repositories{closers: []func(context.Context) error{
		func(context.Context) error { order = append(order, "store"); return nil },
		func(context.Context) error { order = append(order, "sessions"); return errors.New("boom") },
	}}

	err := repos.close()
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"sessions", "store"}, order)
}
