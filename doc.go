// Package monument lays out a large body of proper names as justified text
// and prepares the resulting glyph geometry for GPU rendering under a
// perspective camera.
//
// # Overview
//
// The work is split across small packages, leaves first:
//
//   - panel: decodes the name dataset and orders it into a grid of lines
//   - text: decodes fonts and extracts glyph outlines (pluggable backends)
//   - layout: justifies each line of names to a fixed target width
//   - attrib: packs per-path colour and transform buffers
//   - camera: holds camera state and composes the view transform
//   - aa: selects the antialiasing strategy
//   - partition: contract for the geometry partitioner, plus a reference one
//   - render: contract for the render view, plus a recording one
//   - pipeline: the coordinator that sequences the asynchronous stages
//
// This package holds what every stage shares: the logger, the error kinds
// and the configuration.
//
// # Quick Start
//
//	cfg := monument.DefaultConfig()
//	p, err := pipeline.New(cfg, pipeline.Deps{
//	    Dataset:     fetch.File("names.json"),
//	    Font:        fetch.File("font.ttf"),
//	    Partitioner: partition.NewLocal(),
//	    View:        render.NewRecorder(800, 600),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := p.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coordinate System
//
// Layout works in font units with y pointing up: line i sits at
// y = -i * lineHeight, so lines stack downward. Pixel rects are derived
// from font units through the configured pixels-per-unit factor.
package monument

// Version is the current version of the module.
const Version = "0.1.0"
