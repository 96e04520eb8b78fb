// Package cache provides pluggable byte caches for rendered artwork.
//
// Rendering a full-size flow field takes seconds; encoding it to PNG takes
// more. Keys are derived from the complete render configuration, so a cache
// hit is guaranteed to be pixel-identical to a fresh render.
package cache

import (
	"context"
	"time"

	"github.com/SW-Perse/artkathon/pkg/flowfield"
)

// TTLs per artifact class.
const (
	// TTLRender bounds how long encoded artwork is kept. Renders are
	// deterministic, so expiry only reclaims disk space.
	TTLRender = 30 * 24 * time.Hour

	// TTLVector is zero: feature vectors are pure functions of the poem
	// and never go stale.
	TTLVector = time.Duration(0)
)

// Cache stores encoded render artifacts keyed by configuration hash.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (0 means no expiration).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer generates cache keys for the artifacts the pipeline produces.
type Keyer interface {
	// RenderKey generates a key for an encoded render of the given
	// configuration.
	RenderKey(cfg flowfield.Config) string

	// VectorKey generates a key for a poem's feature vector.
	VectorKey(title, text, poet, genre string) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// RenderKey generates a key covering every field of the configuration,
// including the color lookup table.
func (k *DefaultKeyer) RenderKey(cfg flowfield.Config) string {
	return hashKey("render", cfg)
}

// VectorKey generates a key for a poem's feature vector.
func (k *DefaultKeyer) VectorKey(title, text, poet, genre string) string {
	return hashKey("vector", title, text, poet, genre)
}
