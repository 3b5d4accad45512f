// ABOUTME: Backend selection for the configured storage kind.
// ABOUTME: Builds a Gateway over badger, sqlite, or charm.

package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	KindBadger = "badger"
	KindSQLite = "sqlite"
	KindCharm  = "charm"
)

// Options selects and configures a backend.
type Options struct {
	Kind          string
	DataDir       string
	Codec         string
	Key           string
	CharmDB       string
	CharmHost     string
	CharmAutoSync bool
	CharmStale    time.Duration
	Logger        zerolog.Logger
}

// OpenBackend opens the backend named by opts.Kind.
func OpenBackend(opts Options) (Backend, error) {
	switch opts.Kind {
	case "", KindBadger:
		return OpenBadger(filepath.Join(opts.DataDir, "badger"), opts.Logger)
	case KindSQLite:
		return OpenSQLite(filepath.Join(opts.DataDir, "notebook.db"))
	case KindCharm:
		return NewCharmBackend(
			WithCharmDB(opts.CharmDB),
			WithCharmHost(opts.CharmHost),
			WithAutoSync(opts.CharmAutoSync),
			WithStaleThreshold(opts.CharmStale),
		), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Kind)
	}
}

// Open opens the configured backend and wraps it in a Gateway.
func Open(opts Options) (*Gateway, error) {
	codec, err := CodecByName(opts.Codec)
	if err != nil {
		return nil, err
	}
	backend, err := OpenBackend(opts)
	if err != nil {
		return nil, err
	}
	return NewGateway(backend, WithCodec(codec), WithKey(opts.Key)), nil
}
