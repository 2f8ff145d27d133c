// Package render turns solved state graphs into visual outputs.
//
// # Overview
//
// Two renderers live here:
//
//   - State-graph diagrams: the full solution landscape of a puzzle as a
//     Graphviz diagram, with states ranked by their distance to a solution.
//   - Board drawings: a single position as a standalone SVG.
//
// # State Graphs
//
// Convert a graph to DOT source, then render in-process:
//
//	dot := render.ToDOT(g, render.Options{})
//	svg, err := render.RenderSVG(dot)
//	png, err := render.RenderPNG(dot)
//
// The generated DOT places every state on the rank matching its distance
// to a solution, so a rendered diagram reads top-down as
// moves-remaining. Solved states are green, the start state blue, and
// states that cannot reach a solution red. Because slides are
// reversible, each connected state pair is drawn as a single line
// rather than a pair of arrows.
//
// # Board Drawings
//
// [BoardSVG] draws one position: the grid as light squares, pieces as
// rounded blocks colored by footprint, and the goal region as a dashed
// outline.
//
//	svg := render.BoardSVG(puzzle)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// and PNG rendering; no external Graphviz or conversion tools are
// required.
package render
