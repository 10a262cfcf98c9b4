package pipeline

import (
	"context"

	"github.com/gogpu/monument"
	"github.com/gogpu/monument/fetch"
	"github.com/gogpu/monument/panel"
	"github.com/gogpu/monument/text"
)

type input int

const (
	inputDataset input = iota
	inputFont
)

// fetched is a completed fetch.
type fetched struct {
	input input
	data  []byte
	err   error
}

// awaitInputs fetches the dataset and the font concurrently and decodes each
// as it arrives. It returns when both are decoded or on the first failure.
func (p *Pipeline) awaitInputs(ctx context.Context) (grid *panel.Grid, font *text.FontSource, err error) {
	// Buffered for both fetches so neither goroutine blocks after a failure.
	events := make(chan fetched, 2)
	start := func(in input, src fetch.Source) {
		go func() {
			data, err := src.Fetch(ctx)
			events <- fetched{input: in, data: data, err: err}
		}()
	}
	start(inputDataset, p.deps.Dataset)
	start(inputFont, p.deps.Font)

	defer func() {
		if err != nil && font != nil {
			font.Close()
			font = nil
		}
	}()

	for pending := 2; pending > 0; pending-- {
		var ev fetched
		select {
		case ev = <-events:
		case <-ctx.Done():
			return nil, font, monument.NewError(monument.ErrCanceled, "await inputs", ctx.Err())
		}
		if ev.err != nil && ctx.Err() != nil {
			return nil, font, monument.NewError(monument.ErrCanceled, "await inputs", ctx.Err())
		}

		switch ev.input {
		case inputDataset:
			if grid, err = p.decodeDataset(ev); err != nil {
				return nil, font, err
			}
		case inputFont:
			if font, err = p.decodeFont(ev); err != nil {
				return nil, nil, err
			}
		}
	}
	return grid, font, nil
}

func (p *Pipeline) decodeDataset(ev fetched) (*panel.Grid, error) {
	if ev.err != nil {
		return nil, monument.NewError(monument.ErrDatasetFetch, "fetch dataset", ev.err)
	}
	ds, err := panel.DecodeBytes(ev.data)
	if err != nil {
		return nil, err
	}
	grid, err := panel.Parse(ds)
	if err != nil {
		return nil, err
	}
	p.log.Debug("pipeline: dataset parsed", "bytes", len(ev.data), "records", len(ds.Records), "lines", grid.Len())
	return grid, nil
}

func (p *Pipeline) decodeFont(ev fetched) (*text.FontSource, error) {
	if ev.err != nil {
		return nil, monument.NewError(monument.ErrFontFetch, "fetch font", ev.err)
	}
	font, err := text.NewFontSource(ev.data, text.WithParser(p.cfg.Font.Parser))
	if err != nil {
		return nil, monument.NewError(monument.ErrFontDecode, "decode font", err)
	}
	if err := font.Supported(); err != nil {
		font.Close()
		return nil, monument.NewError(monument.ErrUnsupportedFont, "check font", err)
	}
	p.log.Debug("pipeline: font decoded", "name", font.Name(), "parser", font.Parser(),
		"unitsPerEm", font.UnitsPerEm(), "lineHeight", font.LineHeight())
	return font, nil
}
