package cache

// ScopedKeyer wraps a Keyer with a prefix so that separate deployments can
// share one cache backend without key collisions.
//
// Example usage:
//
//	// Per-instance keys for a hosted server
//	srvKeyer := NewScopedKeyer(NewDefaultKeyer(), "srv:abc123:")
//
//	// Global keys for local CLI usage
//	cliKeyer := NewDefaultKeyer()
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

// GraphKey generates a prefixed key for solved state graphs.
func (k *ScopedKeyer) GraphKey(puzzle string) string {
	return k.prefix + k.inner.GraphKey(puzzle)
}

// LayoutKey generates a prefixed key for DOT documents.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
