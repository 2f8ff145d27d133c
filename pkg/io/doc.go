// Package io provides JSON export and import for solved state graphs.
//
// # Overview
//
// An analysis document captures everything a build produced: the puzzle,
// every discovered state with its distances, every slide between states,
// and the summary statistics. The format is designed for:
//
//   - Inspecting a solve without re-running it
//   - Rendering cached graphs in other tools
//   - Round-trip preservation: export, re-import, and query identically
//
// # JSON Format
//
//	{
//	  "puzzle": "classic",
//	  "width": 4,
//	  "height": 5,
//	  "goal": {"size": "2x2", "cell": [1, 0]},
//	  "stats": {"states": 25955, "edges": 109260, ...},
//	  "states": [
//	    {
//	      "id": 0,
//	      "pieces": [{"size": "1x1", "cell": [0, 0]}, ...],
//	      "to_solution": 81,
//	      "from_start": 0,
//	      "edges": [{"size": "1x1", "cell": [0, 0], "dir": "right", "steps": 1, "to": 1}]
//	    },
//	    ...
//	  ]
//	}
//
// Pieces and the goal use the same size/cell encoding as puzzle TOML
// files. States that cannot reach any solution carry "reachable": false
// and no "to_solution" field; solved states carry "solved": true.
//
// # Import
//
// Use [ImportAnalysis] to read a document from a file path, or
// [ReadAnalysis] to read from any io.Reader. Both reassemble a full
// [solver.Graph], validating board legality and edge consistency, so a
// re-imported graph answers queries exactly like the original.
//
// # Export
//
// Use [ExportAnalysis] to write a graph to a file, or [WriteAnalysis] to
// write to any io.Writer. [MarshalAnalysis] and [UnmarshalAnalysis]
// convert to and from raw bytes for cache storage.
package io
