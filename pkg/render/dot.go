package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/gridlock/pkg/solver"
)

// Node fills, shared with the play UI's move classes: green for solved
// states, blue for the start, red for states that cannot reach a
// solution.
const (
	colorSolved      = "#009d77"
	colorStart       = "#4B7BFF"
	colorUnreachable = "#ff443a"
)

// Options configures state-graph DOT generation.
type Options struct {
	// RankDir sets the Graphviz layout direction, "TB" or "LR".
	// Empty means "TB".
	RankDir string

	// Labels annotates every connection with its move notation.
	Labels bool
}

// ToDOT converts a state graph to Graphviz DOT source. Every state sits
// on the rank matching its distance to a solution, so the rendered
// diagram reads as the solution landscape: solved states on one rank,
// each further rank one move deeper. Slides are reversible, so each
// connected state pair is drawn once without arrowheads.
//
// The result can be rendered with [RenderSVG] or [RenderPNG], or fed to
// external Graphviz tooling.
func ToDOT(g *solver.Graph, opts Options) string {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "TB"
	}

	var buf bytes.Buffer
	buf.WriteString("digraph states {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=10, margin=\"0.1,0.05\"];\n")
	buf.WriteString("  edge [dir=none];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	for i := range g.StateCount() {
		st, _ := g.State(solver.StateID(i))
		fmt.Fprintf(&buf, "  s%d [%s];\n", i, strings.Join(nodeAttrs(g, st), ", "))
	}

	writeRanks(&buf, g)

	buf.WriteString("\n")
	for i := range g.StateCount() {
		st, _ := g.State(solver.StateID(i))
		for _, e := range st.Edges {
			if e.To < st.ID {
				continue // the mirror slide already drew this pair
			}
			if opts.Labels {
				fmt.Fprintf(&buf, "  s%d -> s%d [label=%q, fontsize=8];\n", st.ID, e.To, e.Move)
			} else {
				fmt.Fprintf(&buf, "  s%d -> s%d;\n", st.ID, e.To)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeAttrs builds the attribute list for one state. The label carries
// the state ID and its distance; the tooltip carries the board art so
// hovering an SVG shows the position.
func nodeAttrs(g *solver.Graph, st *solver.State) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", fmt.Sprintf("%d\n%s", st.ID, st.ToSolution)),
		fmt.Sprintf("tooltip=%q", st.Board.String()),
	}
	switch {
	case st.Solved:
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorSolved), "fontcolor=white")
	case st.ID == g.StartID():
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorStart), "fontcolor=white")
	case !st.ToSolution.Reachable():
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", colorUnreachable), "fontcolor=white")
	}
	return attrs
}

// writeRanks pins each distance level to one rank. States that cannot
// reach a solution stay unranked and settle wherever the layout puts
// them.
func writeRanks(buf *bytes.Buffer, g *solver.Graph) {
	max := g.Stats().MaxToSolution
	if !max.Reachable() {
		return
	}

	levels := make([][]solver.StateID, int(max)+1)
	for i := range g.StateCount() {
		st, _ := g.State(solver.StateID(i))
		if st.ToSolution.Reachable() {
			levels[st.ToSolution] = append(levels[st.ToSolution], st.ID)
		}
	}

	buf.WriteString("\n")
	for _, ids := range levels {
		if len(ids) == 0 {
			continue
		}
		buf.WriteString("  { rank=same;")
		for _, id := range ids {
			fmt.Fprintf(buf, " s%d;", id)
		}
		buf.WriteString(" }\n")
	}
}
