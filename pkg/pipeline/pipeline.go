// Package pipeline provides the core analysis pipeline for Gridlock.
//
// This package implements the complete solve → layout → render pipeline
// that can be used by the CLI and the HTTP server. By centralizing this
// logic, both entry points share one cache key scheme and behave the same.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Solve: Explore the puzzle's state space and compute distances
//  2. Layout: Generate Graphviz DOT source from the solved graph
//  3. Render: Produce output in various formats (JSON, DOT, SVG, PNG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Puzzle:  board.Classic(),
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Solve only
//	g, err := runner.Solve(ctx, opts)
//
//	// Layout with an existing graph
//	dot, err := runner.GenerateDOT(ctx, g, opts)
//
//	// Render with existing DOT source
//	artifacts, err := runner.Render(ctx, dot, g, opts)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/cache"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// DefaultMaxStates caps state-space exploration when Options.MaxStates
// is zero. This is intentionally more conservative than
// solver.DefaultMaxStates to provide better UX for CLI users: boards in
// this puzzle family stay well below it, so hitting the cap almost
// always means a malformed board rather than a legitimately huge space.
const DefaultMaxStates = 1_000_000

// DefaultRankDir is the default Graphviz layout direction.
const DefaultRankDir = "TB"

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// ValidRankDirs is the set of supported layout directions.
var ValidRankDirs = map[string]bool{
	"TB": true,
	"LR": true,
}

// Options contains all configuration for the analysis pipeline.
// This struct supports JSON serialization for API requests; the puzzle
// itself travels separately because boards have their own wire forms.
type Options struct {
	// Solve options
	Puzzle    board.Puzzle `json:"-"`
	MaxStates int          `json:"max_states,omitempty"`
	Refresh   bool         `json:"refresh,omitempty"`

	// Layout options
	RankDir string `json:"rankdir,omitempty"`
	Labels  bool   `json:"labels,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the solved state graph.
	Graph *solver.Graph

	// GraphHash is the content hash of the puzzle the graph was built
	// from, usable as a stable identifier in URLs and cache keys.
	GraphHash string

	// DOT is the generated Graphviz source.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StateCount int
	EdgeCount  int
	SolveTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SolveHit  bool // Whether the solved graph came from cache
	LayoutHit bool // Whether the DOT source came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, dot, svg, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateRankDir checks that a layout direction is valid.
func ValidateRankDir(rankdir string) error {
	if !ValidRankDirs[rankdir] {
		return fmt.Errorf("invalid rankdir: %q (must be one of: TB, LR)", rankdir)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults for
// the full pipeline. This method is idempotent - calling it multiple
// times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForSolve(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateRankDir(o.RankDir); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForSolve checks required fields for solving.
func (o *Options) ValidateForSolve() error {
	if err := o.Puzzle.Validate(); err != nil {
		return fmt.Errorf("puzzle: %w", err)
	}

	// Solve defaults
	if o.MaxStates == 0 {
		o.MaxStates = DefaultMaxStates
	}

	// Logger default
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetLayoutDefaults sets default values for layout generation.
func (o *Options) SetLayoutDefaults() {
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout generation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return ValidateRankDir(o.RankDir)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateRankDir(o.RankDir); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout generation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		RankDir: o.RankDir,
		Labels:  o.Labels,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}
