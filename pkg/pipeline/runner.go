package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridlock/pkg/cache"
	gridio "github.com/matzehuels/gridlock/pkg/io"
	"github.com/matzehuels/gridlock/pkg/observability"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete solve → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		GraphHash: PuzzleHash(opts.Puzzle),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Solve
	solveStart := time.Now()
	g, solveHit, err := r.SolveWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.Graph = g
	result.Stats.SolveTime = time.Since(solveStart)
	result.Stats.StateCount = g.StateCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.CacheInfo.SolveHit = solveHit

	r.Logger.Info("solved state space",
		"puzzle", opts.Puzzle.Name,
		"states", g.StateCount(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.SolveTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	dot, layoutHit, err := r.GenerateDOTWithCacheInfo(ctx, g, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.DOT = dot
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("generated layout",
		"bytes", len(dot),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, dot, g, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveWithCacheInfo builds the state graph with caching and returns
// cache hit info.
func (r *Runner) SolveWithCacheInfo(ctx context.Context, opts Options) (*solver.Graph, bool, error) {
	if err := opts.ValidateForSolve(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.GraphKey(PuzzleHash(opts.Puzzle))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "graph")
			g, err := gridio.UnmarshalAnalysis(data)
			if err == nil {
				return g, true, nil // Cache hit
			}
			// If deserialization fails, fall through to re-solve
		} else {
			observability.Cache().OnCacheMiss(ctx, "graph")
		}
	}

	// Solve
	g, err := Solve(ctx, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if !opts.Refresh {
		if data, err := gridio.MarshalAnalysis(g); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	return g, false, nil // Cache miss
}

// Solve is a convenience wrapper that calls SolveWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Solve(ctx context.Context, opts Options) (*solver.Graph, error) {
	g, _, err := r.SolveWithCacheInfo(ctx, opts)
	return g, err
}

// GenerateDOTWithCacheInfo generates DOT source with caching and
// returns cache hit info.
func (r *Runner) GenerateDOTWithCacheInfo(ctx context.Context, g *solver.Graph, opts Options) (string, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return "", false, err
	}
	r.applyLogger(&opts)

	cacheKey := r.Keyer.LayoutKey(PuzzleHash(g.Puzzle()), opts.LayoutKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		observability.Cache().OnCacheHit(ctx, "layout")
		return string(data), true, nil // Cache hit
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	// Generate layout
	dot := GenerateDOT(g, opts)

	// Cache the result
	_ = r.Cache.Set(ctx, cacheKey, []byte(dot), cache.TTLLayout)
	observability.Cache().OnCacheSet(ctx, "layout", len(dot))

	return dot, false, nil // Cache miss
}

// GenerateDOT is a convenience wrapper that calls
// GenerateDOTWithCacheInfo and discards the cache hit info.
func (r *Runner) GenerateDOT(ctx context.Context, g *solver.Graph, opts Options) (string, error) {
	dot, _, err := r.GenerateDOTWithCacheInfo(ctx, g, opts)
	return dot, err
}

// RenderWithCacheInfo generates artifacts with caching and returns
// cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, dot string, g *solver.Graph, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Key artifacts on the DOT content they are rendered from
	dotHash := cache.Hash([]byte(dot))

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		} else {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil // All artifacts from cache
	}

	// Render all formats
	rendered, err := RenderFromDOT(ctx, dot, g, opts)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(dotHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, dot string, g *solver.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, dot, g, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
