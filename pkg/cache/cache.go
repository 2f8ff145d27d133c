// Package cache provides content-addressed caching for pipeline results.
//
// Cached blobs are opaque bytes with an optional TTL. Keys are generated
// through a [Keyer] so the CLI and the server agree on one key scheme, and
// key components are hashed with SHA-256 to keep keys filesystem-safe.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// TTLs for the pipeline stages. Solves are deterministic, so long lifetimes
// are safe; expiry mostly bounds disk usage for boards that are never
// solved again.
const (
	// TTLGraph is the lifetime of solved state graphs.
	TTLGraph = 30 * 24 * time.Hour

	// TTLLayout is the lifetime of generated DOT documents.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is the lifetime of rendered artifacts (SVG, PNG).
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores binary blobs with optional expiry.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// GraphKey generates a key for a solved state graph. The puzzle
	// argument is a content hash covering the board, the goal, and the
	// puzzle name.
	GraphKey(puzzle string) string

	// LayoutKey generates a key for a DOT document derived from a graph.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that affect DOT generation.
type LayoutKeyOpts struct {
	RankDir string
	Labels  bool
}

// ArtifactKeyOpts are the options that affect artifact rendering.
type ArtifactKeyOpts struct {
	Format string
}

// DefaultKeyer is the standard key scheme shared by the CLI and the server.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a solved state graph.
func (k *DefaultKeyer) GraphKey(puzzle string) string {
	return hashKey("graph", puzzle)
}

// LayoutKey generates a key for a DOT document.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Use full SHA-256 hash (64 hex chars / 256 bits) to prevent collisions
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
