// ABOUTME: Persistence gateway saving and loading the whole page collection.
// ABOUTME: One fixed key holds the encoded collection; missing data loads as empty.

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/harper/notebook/internal/models"
)

// DefaultKey is the key the page collection is stored under.
const DefaultKey = "pages"

type Gateway struct {
	backend Backend
	codec   Codec
	key     []byte
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithCodec sets the blob codec.
func WithCodec(c Codec) GatewayOption {
	return func(g *Gateway) {
		if c != nil {
			g.codec = c
		}
	}
}

// WithKey sets the collection key.
func WithKey(key string) GatewayOption {
	return func(g *Gateway) {
		if key != "" {
			g.key = []byte(key)
		}
	}
}

func NewGateway(backend Backend, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		backend: backend,
		codec:   JSONCodec{},
		key:     []byte(DefaultKey),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Save writes the full collection under the gateway key.
func (g *Gateway) Save(ctx context.Context, pages []*models.Page) error {
	encoded, err := g.codec.Marshal(FromPages(pages))
	if err != nil {
		return fmt.Errorf("marshal pages: %w", err)
	}
	if err := g.backend.Set(ctx, g.key, encoded); err != nil {
		return fmt.Errorf("write pages: %w", err)
	}
	return nil
}

// Load reads the collection. A missing blob yields an empty collection and
// no error. A blob that cannot be decoded also yields an empty collection,
// along with an error wrapping ErrCorrupt so callers can flag degraded storage.
func (g *Gateway) Load(ctx context.Context) ([]*models.Page, error) {
	empty := []*models.Page{}

	raw, err := g.backend.Get(ctx, g.key)
	if errors.Is(err, ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("read pages: %w", err)
	}

	var data CollectionData
	if err := g.codec.Unmarshal(raw, &data); err != nil {
		return empty, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	pages, err := data.ToModels()
	if err != nil {
		return empty, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return pages, nil
}

// Clear deletes the stored collection.
func (g *Gateway) Clear(ctx context.Context) error {
	return g.backend.Delete(ctx, g.key)
}

// Backend returns the backend the gateway writes to.
func (g *Gateway) Backend() Backend {
	return g.backend
}

func (g *Gateway) Close() error {
	return g.backend.Close()
}
