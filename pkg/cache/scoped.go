package cache

import "github.com/SW-Perse/artkathon/pkg/flowfield"

// ScopedKeyer wraps a Keyer with a prefix so separate datasets or gallery
// runs get their own cache namespace.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey generates a prefixed key for an encoded render.
func (k *ScopedKeyer) RenderKey(cfg flowfield.Config) string {
	return k.prefix + k.inner.RenderKey(cfg)
}

// VectorKey generates a prefixed key for a poem's feature vector.
func (k *ScopedKeyer) VectorKey(title, text, poet, genre string) string {
	return k.prefix + k.inner.VectorKey(title, text, poet, genre)
}
