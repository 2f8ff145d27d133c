package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/gridlock/pkg/io"
	"github.com/matzehuels/gridlock/pkg/observability"
	"github.com/matzehuels/gridlock/pkg/render"
	"github.com/matzehuels/gridlock/pkg/solver"
)

// RenderFromDOT generates output artifacts in the requested formats.
// The SVG and PNG formats rasterize the DOT source with the in-process
// Graphviz engine; json serializes the full analysis; dot passes the
// source through unchanged.
func RenderFromDOT(ctx context.Context, dot string, g *solver.Graph, opts Options) (map[string][]byte, error) {
	observability.Render().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts := make(map[string][]byte)
	var err error
	for _, format := range opts.Formats {
		var data []byte

		switch format {
		case FormatJSON:
			data, err = io.MarshalAnalysis(g)
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = render.RenderSVG(dot)
		case FormatPNG:
			data, err = render.RenderPNG(dot)
		default:
			err = fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			break
		}
		artifacts[format] = data
	}

	observability.Render().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}
