package pipeline

import (
	"github.com/matzehuels/gridlock/pkg/render"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// GenerateDOT generates Graphviz DOT source for a solved graph, ranking
// states by their distance to a solution. The DOT text is the layout
// stage's serializable output: it is what gets cached, and what the
// render stage turns into SVG or PNG.
func GenerateDOT(g *solver.Graph, opts Options) string {
	return render.ToDOT(g, render.Options{
		RankDir: opts.RankDir,
		Labels:  opts.Labels,
	})
}
