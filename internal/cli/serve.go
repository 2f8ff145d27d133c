package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/internal/server"
	"github.com/matzehuels/gridlock/pkg/library"
	"github.com/matzehuels/gridlock/pkg/pipeline"
	"github.com/matzehuels/gridlock/pkg/session"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr       string        // listen address
	redisAddr  string        // session store backend, empty: in-memory
	sessionDir string        // file session store directory, empty: in-memory
	mongoURI   string        // puzzle library backend, empty: in-memory
	sessionTTL time.Duration // play session lifetime
	maxStates  int           // cap on API-triggered solves
	noCache    bool          // disable result caching
}

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:       ":8080",
		sessionTTL: session.DefaultTTL,
		maxStates:  pipeline.DefaultMaxStates,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		Long: `Run the HTTP API server.

The server exposes the puzzle library, solves, rendered state graphs
and play sessions over REST. Without backend flags everything runs
in-process: puzzles and sessions live in memory and are lost on
restart. Sessions can instead live on disk (--session-dir) or in
Redis (--redis); the puzzle library can live in MongoDB (--mongo).

  gridlock serve
  gridlock serve --addr :9000 --redis localhost:6379
  gridlock serve --session-dir ~/.config/gridlock/sessions
  gridlock serve --mongo mongodb://localhost:27017`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for session storage (host:port)")
	cmd.Flags().StringVar(&opts.sessionDir, "session-dir", "", "directory for file-backed session storage")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo", "", "MongoDB URI for the puzzle library")
	cmd.Flags().DurationVar(&opts.sessionTTL, "session-ttl", opts.sessionTTL, "play session lifetime")
	cmd.Flags().IntVar(&opts.maxStates, "max-states", opts.maxStates, "maximum states per solve")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

// runServe assembles the configured backends and runs the server until
// the context is canceled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	cfg := server.Config{
		Runner:     runner,
		Logger:     c.Logger,
		SessionTTL: opts.sessionTTL,
		MaxStates:  opts.maxStates,
	}

	switch {
	case opts.redisAddr != "" && opts.sessionDir != "":
		return fmt.Errorf("--redis and --session-dir are mutually exclusive")
	case opts.redisAddr != "":
		sessions, err := session.NewRedisStore(ctx, session.RedisConfig{Addr: opts.redisAddr})
		if err != nil {
			return err
		}
		cfg.Sessions = sessions
		c.Logger.Info("using redis session store", "addr", opts.redisAddr)
	case opts.sessionDir != "":
		sessions, err := session.NewFileStore(opts.sessionDir)
		if err != nil {
			return err
		}
		cfg.Sessions = sessions
		c.Logger.Info("using file session store", "dir", sessions.Path())
	}

	if opts.mongoURI != "" {
		lib, err := library.NewMongoStore(ctx, library.MongoConfig{URI: opts.mongoURI})
		if err != nil {
			return err
		}
		prog := newProgress(c.Logger)
		if err := library.SeedBuiltins(ctx, lib); err != nil {
			lib.Close()
			return fmt.Errorf("seed builtin boards: %w", err)
		}
		prog.done(fmt.Sprintf("Seeded %d built-in boards", len(library.Builtins())))
		cfg.Library = lib
		c.Logger.Info("using mongodb puzzle library", "uri", opts.mongoURI)
	}

	srv := server.New(cfg)
	defer srv.Close()

	c.Logger.Info("starting server", "addr", opts.addr)
	return srv.ListenAndServe(ctx, opts.addr)
}
