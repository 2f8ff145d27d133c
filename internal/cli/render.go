package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	gridio "github.com/matzehuels/gridlock/pkg/io"
	"github.com/matzehuels/gridlock/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string   // output file (single format) or base path (multiple)
	formats   []string // output formats: svg, png, dot, json
	rankdir   string   // graph direction: TB or LR
	labels    bool     // annotate connections with move notation
	maxStates int      // cap on explored states
	refresh   bool     // recompute even when cached
	noCache   bool     // disable caching entirely
}

// renderCommand creates the render command for drawing the state graph.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		rankdir:   pipeline.DefaultRankDir,
		maxStates: pipeline.DefaultMaxStates,
	}

	cmd := &cobra.Command{
		Use:   "render <board|analysis.json>",
		Short: "Render a board's state graph",
		Long: `Render a board's full state graph as a solution landscape.

States are ranked by their distance to a solution: solved states sit on
the first rank, each following rank is one move deeper. Solved states
are green, the start is blue, dead ends are red.

The input is a built-in board name, a board TOML file, or an analysis
JSON previously written by 'solve --output'. Analysis input skips the
solve stage and goes straight to layout and rendering.

Formats: svg (default), png, dot (Graphviz source), json (full
analysis). Solve and layout results are cached locally.

  gridlock render classic
  gridlock render classic -f svg,png -o out/classic
  gridlock render puzzles/my_board.toml --rankdir LR --labels
  gridlock render classic.json -f png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateRankDir(opts.rankdir); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")
	cmd.Flags().StringVar(&opts.rankdir, "rankdir", opts.rankdir, "graph direction: TB (default), LR")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "annotate connections with move notation")
	cmd.Flags().IntVar(&opts.maxStates, "max-states", opts.maxStates, "maximum states to explore")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender solves the board and writes the requested artifacts. An
// analysis JSON input skips the solve stage.
func (c *CLI) runRender(ctx context.Context, arg string, opts renderOpts) error {
	if strings.EqualFold(filepath.Ext(arg), ".json") {
		return c.runRenderFromAnalysis(ctx, arg, opts)
	}

	p, err := loadPuzzleArg(arg)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", p.Name))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Puzzle:    p,
		MaxStates: opts.maxStates,
		Refresh:   opts.refresh,
		RankDir:   opts.rankdir,
		Labels:    opts.labels,
		Formats:   opts.formats,
		Logger:    c.Logger,
	})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Rendered %s", p.Name)
	printStats(result.Stats.StateCount, result.Stats.EdgeCount, result.CacheInfo.SolveHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.formats,
		input:     arg,
		output:    opts.output,
	})
}

// runRenderFromAnalysis renders from a previously exported analysis
// document. The state graph is reassembled from the file, so only the
// layout and render stages run.
func (c *CLI) runRenderFromAnalysis(ctx context.Context, path string, opts renderOpts) error {
	g, err := gridio.ImportAnalysis(path)
	if err != nil {
		return fmt.Errorf("load analysis %s: %w", path, err)
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	pOpts := pipeline.Options{
		RankDir: opts.rankdir,
		Labels:  opts.labels,
		Formats: opts.formats,
		Logger:  c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", g.Puzzle().Name))
	spinner.Start()

	dot, err := runner.GenerateDOT(ctx, g, pOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, dot, g, pOpts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	printSuccess("Rendered %s", g.Puzzle().Name)
	printStats(g.StateCount(), g.EdgeCount(), renderHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.formats,
		input:     path,
		output:    opts.output,
	})
}

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format next to the input, or to
// the explicit output path, and prints the written files.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeArtifact(path, data); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output flag and the
// input argument. A built-in name becomes the base directly; file
// inputs lose their extension; an output carrying a known format
// extension loses it so multiple formats do not stack suffixes.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifact writes one rendered artifact, creating parent
// directories as needed.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
