// Package pkg provides the core libraries for Gridlock sliding-block
// puzzle analysis.
//
// # Overview
//
// Gridlock explores every reachable position of a sliding-block puzzle,
// grades each position by its distance to a solution, and renders the
// resulting state graph as a navigable map. The pkg directory is
// organized into four main areas:
//
//  1. [board] / [solver] - Domain logic (positions, legal slides, state-space search)
//  2. [render] / [io] - Output (Graphviz diagrams, board drawings, analysis JSON)
//  3. [cache] / [library] / [session] - Storage (results, puzzle documents, play state)
//  4. [pipeline] - Orchestration (solve → layout → render)
//
// # Architecture
//
// The typical data flow through Gridlock:
//
//	TOML definition / built-in board
//	         ↓
//	    [board] package (positions, legal slides)
//	         ↓
//	    [solver] package (breadth-first state graph + distances)
//	         ↓
//	    [render] package (DOT layout + Graphviz rendering)
//	         ↓
//	    SVG/PNG/DOT/JSON output
//
// # Quick Start
//
// Solve a board and render its solution landscape:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/gridlock/pkg/board"
//	    "github.com/matzehuels/gridlock/pkg/render"
//	    "github.com/matzehuels/gridlock/pkg/solver"
//	)
//
//	// 1. Load a puzzle
//	p, _ := board.LoadPuzzle("classic.toml")
//
//	// 2. Explore the state space
//	g, _ := solver.Build(context.Background(), p, solver.Options{})
//
//	// 3. Render the state graph
//	dot := render.ToDOT(g, render.Options{})
//	svg, _ := render.RenderSVG(dot)
//
// # Main Packages
//
// ## Domain Logic
//
// [board] - Boards, pieces, and legal slides. Positions are canonical:
// interchangeable pieces of the same footprint map to one state. Puzzle
// definitions load from TOML (ASCII rows or explicit piece lists).
//
// [solver] - Breadth-first exploration of every reachable position into
// a [solver.Graph]. Backward propagation from the solved states grades
// each position with its exact distance to a solution; [solver.Classify]
// grades individual moves as positive, neutral, or negative.
//
// ## Output
//
// [render] - State-graph diagrams via in-process Graphviz (states ranked
// by distance to a solution) and standalone SVG board drawings.
//
// [io] - The analysis JSON format: a stable serialization of a solved
// graph for export, caching, and the HTTP API.
//
// ## Storage
//
// [cache] - Content-addressed result caching with file and null
// backends, keyed on puzzle hash plus stage options.
//
// [library] - Named puzzle documents with memory and MongoDB stores;
// ships the built-in boards.
//
// [session] - Interactive play sessions with memory and Redis stores.
//
// ## Orchestration
//
// [pipeline] - The solve → layout → render pipeline with per-stage
// caching, shared by the CLI and the HTTP server so both produce
// identical artifacts.
//
// [errors] - Structured error codes carried across package boundaries
// and onto the HTTP API.
//
// [observability] - Hook interfaces for instrumenting solves, renders,
// and cache traffic without binding a metrics backend.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/solver/...   # Specific package
//	go test -short ./pkg/...   # Skip full classic-board builds
//
// [board]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/board
// [solver]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/solver
// [render]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/cache
// [library]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/library
// [session]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/session
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/gridlock/pkg/observability
package pkg
