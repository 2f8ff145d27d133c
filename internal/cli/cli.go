// Package cli implements the gridlock command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/board"
	"github.com/matzehuels/gridlock/pkg/buildinfo"
	"github.com/matzehuels/gridlock/pkg/cache"
	"github.com/matzehuels/gridlock/pkg/library"
	"github.com/matzehuels/gridlock/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "gridlock"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "gridlock",
		Short:        "Gridlock maps sliding-block puzzles into solution landscapes",
		Long:         `Gridlock explores every reachable position of a sliding-block puzzle, grades each position by its distance to a solution, and renders the resulting state graph as a navigable map.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.boardsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/gridlock/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadPuzzleArg resolves a command argument to a puzzle. A built-in
// name loads from the bundled library; anything that exists on disk or
// carries a .toml extension loads as a board definition file.
func loadPuzzleArg(arg string) (board.Puzzle, error) {
	if looksLikeFile(arg) {
		return board.LoadPuzzle(arg)
	}
	for _, doc := range library.Builtins() {
		if doc.Name == arg {
			return doc.Puzzle()
		}
	}
	return board.Puzzle{}, fmt.Errorf("no board named %q (known: %s, or pass a .toml file)", arg, builtinNames())
}

// looksLikeFile returns true if arg appears to be a board file rather
// than a built-in name.
func looksLikeFile(arg string) bool {
	if _, err := os.Stat(arg); err == nil {
		return true
	}
	return strings.HasSuffix(strings.ToLower(arg), ".toml")
}

func builtinNames() string {
	docs := library.Builtins()
	names := make([]string, len(docs))
	for i, doc := range docs {
		names[i] = doc.Name
	}
	return strings.Join(names, ", ")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
