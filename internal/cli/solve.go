package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridlock/pkg/io"
	"github.com/matzehuels/gridlock/pkg/pipeline"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	maxStates int    // cap on explored states
	refresh   bool   // recompute even when cached
	noCache   bool   // disable caching entirely
	output    string // analysis JSON path (empty: summary only)
}

// solveCommand creates the solve command for exploring a puzzle's state
// space.
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{maxStates: pipeline.DefaultMaxStates}

	cmd := &cobra.Command{
		Use:   "solve <board>",
		Short: "Explore every reachable position of a board",
		Long: `Explore every reachable position of a board and grade each one by
its distance to a solution.

The board is a built-in name or a .toml definition file:

  gridlock solve classic
  gridlock solve puzzles/my_board.toml

Results are cached locally, so repeated solves of the same board are
instant. Use --output to write the full per-state analysis as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.maxStates, "max-states", opts.maxStates, "maximum states to explore")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write full analysis JSON to file")

	return cmd
}

// runSolve explores the state space and prints a summary.
func (c *CLI) runSolve(ctx context.Context, arg string, opts solveOpts) error {
	p, err := loadPuzzleArg(arg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Exploring %s...", p.Name))
	spinner.Start()

	g, cacheHit, err := runner.SolveWithCacheInfo(ctx, pipeline.Options{
		Puzzle:    p,
		MaxStates: opts.maxStates,
		Refresh:   opts.refresh,
		Logger:    c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Solved %s", p.Name)
	printStats(g.StateCount(), g.EdgeCount(), cacheHit)
	printSolveSummary(g)

	if opts.output != "" {
		if err := io.ExportAnalysis(g, opts.output); err != nil {
			return fmt.Errorf("write analysis %s: %w", opts.output, err)
		}
		printFile(opts.output)
	}

	printNewline()
	printNextStep("Render", "gridlock render "+arg)
	printNextStep("Play", "gridlock play "+arg)

	return nil
}

// printSolveSummary prints the solution-landscape figures for a graph.
func printSolveSummary(g *solver.Graph) {
	stats := g.Stats()
	printKeyValue("Solutions", fmt.Sprintf("%d", stats.Solutions))

	start, err := g.State(g.StartID())
	switch {
	case err != nil:
		// Empty graphs cannot leave Build, so this never prints.
		printKeyValue("Start", "missing")
	case start.Solved:
		printKeyValue("Start", StyleSuccess.Render("already solved"))
	case start.ToSolution.Reachable():
		printKeyValue("Min moves", StyleNumber.Render(fmt.Sprintf("%d", int(start.ToSolution))))
	default:
		printKeyValue("Start", StyleWarning.Render("unsolvable"))
	}

	if stats.Unreachable > 0 {
		printKeyValue("Dead ends", fmt.Sprintf("%d states", stats.Unreachable))
	}
	if stats.MaxToSolution.Reachable() {
		printKeyValue("Hardest", fmt.Sprintf("%d moves out (state %d)", int(stats.MaxToSolution), stats.Deepest))
	}
}
