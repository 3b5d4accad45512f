// ABOUTME: Charm KV backend for cloud-synced storage.
// ABOUTME: Short-lived transactional Do calls avoid lock contention with other charm clients.

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	charmproto "github.com/charmbracelet/charm/proto"
	"github.com/dgraph-io/badger/v3"
)

// DefaultCharmDB is the name of the charm kv database for the notebook.
const DefaultCharmDB = "notebook"

// CharmBackend holds configuration for KV operations. It does not hold a
// connection: each call opens the database, runs, and closes it.
type CharmBackend struct {
	dbName         string
	autoSync       bool
	staleThreshold time.Duration
}

// CharmOption configures a CharmBackend.
type CharmOption func(*CharmBackend)

// WithCharmDB sets the database name.
func WithCharmDB(name string) CharmOption {
	return func(c *CharmBackend) {
		if name != "" {
			c.dbName = name
		}
	}
}

// WithAutoSync enables or disables sync after writes.
func WithAutoSync(enabled bool) CharmOption {
	return func(c *CharmBackend) {
		c.autoSync = enabled
	}
}

// WithCharmHost points the charm client at a self-hosted server.
func WithCharmHost(host string) CharmOption {
	return func(c *CharmBackend) {
		if host != "" {
			_ = os.Setenv("CHARM_HOST", host)
		}
	}
}

// WithStaleThreshold syncs before reads once the last sync is older than d.
// Zero disables the check.
func WithStaleThreshold(d time.Duration) CharmOption {
	return func(c *CharmBackend) {
		c.staleThreshold = d
	}
}

func NewCharmBackend(opts ...CharmOption) *CharmBackend {
	c := &CharmBackend{
		dbName:   DefaultCharmDB,
		autoSync: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CharmBackend) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.syncIfStale(); err != nil {
		return nil, err
	}
	var val []byte
	err := kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		var err error
		val, err = k.Get(key)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (c *CharmBackend) Set(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return kv.Do(c.dbName, func(k *kv.KV) error {
		if err := k.Set(key, value); err != nil {
			return err
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
}

func (c *CharmBackend) Delete(ctx context.Context, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return kv.Do(c.dbName, func(k *kv.KV) error {
		if err := k.Delete(key); err != nil {
			return err
		}
		if c.autoSync {
			return k.Sync()
		}
		return nil
	})
}

// Sync triggers a manual sync with the charm server.
func (c *CharmBackend) Sync() error {
	if err := kv.Do(c.dbName, func(k *kv.KV) error {
		return k.Sync()
	}); err != nil {
		return fmt.Errorf("charm sync: %w", err)
	}
	return nil
}

// LastSyncTime returns the timestamp of the last sync operation.
func (c *CharmBackend) LastSyncTime() time.Time {
	var lastSync time.Time
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		lastSync = k.LastSyncTime()
		return nil
	})
	return lastSync
}

func (c *CharmBackend) isStale() bool {
	if c.staleThreshold == 0 {
		return false
	}
	var stale bool
	_ = kv.DoReadOnly(c.dbName, func(k *kv.KV) error {
		stale = k.IsStale(c.staleThreshold)
		return nil
	})
	return stale
}

func (c *CharmBackend) syncIfStale() error {
	if !c.isStale() {
		return nil
	}
	return c.Sync()
}

// DBName returns the charm kv database name.
func (c *CharmBackend) DBName() string {
	return c.dbName
}

// User returns the charm account linked to this device.
func (c *CharmBackend) User() (*charmproto.User, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return nil, err
	}
	return cc.Bio()
}

// Link links this device to a charm account, creating one if needed.
func (c *CharmBackend) Link() (*charmproto.User, error) {
	user, err := c.User()
	if err != nil {
		return nil, fmt.Errorf("charm link: %w", err)
	}
	return user, nil
}

// Reset clears local charm data for this database. Cloud data is kept.
func (c *CharmBackend) Reset() error {
	return kv.Reset(c.dbName)
}

func (c *CharmBackend) Close() error {
	return nil
}
