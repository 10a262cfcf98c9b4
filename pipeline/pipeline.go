package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gogpu/monument"
	"github.com/gogpu/monument/aa"
	"github.com/gogpu/monument/attrib"
	"github.com/gogpu/monument/camera"
	"github.com/gogpu/monument/fetch"
	"github.com/gogpu/monument/layout"
	"github.com/gogpu/monument/panel"
	"github.com/gogpu/monument/partition"
	"github.com/gogpu/monument/render"
	"github.com/gogpu/monument/text"
)

// Deps are the collaborators of a run.
type Deps struct {
	Dataset     fetch.Source
	Font        fetch.Source
	Partitioner partition.Partitioner
	View        render.View
}

// Pipeline runs the stages once. Accessors are safe for concurrent use
// with Run.
type Pipeline struct {
	cfg      monument.Config
	deps     Deps
	strategy aa.Strategy
	id       uuid.UUID
	log      *slog.Logger

	started atomic.Bool
	state   atomic.Int32

	mu          sync.Mutex
	grid        *panel.Grid
	font        *text.FontSource
	lines       []layout.LineLayout
	glyphs      []layout.PositionedGlyph
	attributes  *attrib.Set
	mesh        *partition.Mesh
	unsubscribe func()
}

// New validates cfg and deps and selects the antialiasing strategy.
// Nothing is fetched and the view is not touched until Run.
func New(cfg monument.Config, deps Deps) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := deps.validate(); err != nil {
		return nil, monument.NewError(monument.ErrInvalidConfig, "new pipeline", err)
	}
	if name := cfg.Font.Parser; name != "" && !slices.Contains(text.Parsers(), name) {
		return nil, monument.NewError(monument.ErrInvalidConfig, "new pipeline",
			fmt.Errorf("%w: %q", text.ErrUnknownParser, name))
	}

	strategy, err := aa.FromConfig(cfg.Antialiasing)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	return &Pipeline{
		cfg:      cfg,
		deps:     deps,
		strategy: strategy,
		id:       id,
		log:      monument.Logger().With("run", id.String()),
	}, nil
}

func (d Deps) validate() error {
	switch {
	case d.Dataset == nil:
		return errors.New("no dataset source")
	case d.Font == nil:
		return errors.New("no font source")
	case d.Partitioner == nil:
		return errors.New("no partitioner")
	case d.View == nil:
		return errors.New("no render view")
	}
	return nil
}

// ID returns the run id attached to every log record of the run.
func (p *Pipeline) ID() uuid.UUID {
	return p.id
}

// State returns the current state.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Strategy returns the selected antialiasing strategy.
func (p *Pipeline) Strategy() aa.Strategy {
	return p.strategy
}

// Grid returns the parsed panel grid, or nil before StateParsed.
func (p *Pipeline) Grid() *panel.Grid {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.grid
}

// Font returns the decoded font, or nil before StateParsed.
func (p *Pipeline) Font() *text.FontSource {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.font
}

// Lines returns the justified lines, or nil before StateJustified.
// The result must not be modified.
func (p *Pipeline) Lines() []layout.LineLayout {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lines
}

// Glyphs returns the flattened glyph list in submission order.
func (p *Pipeline) Glyphs() []layout.PositionedGlyph {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.glyphs
}

// Attributes returns the attribute set handed to the view, or nil before
// StateReady.
func (p *Pipeline) Attributes() *attrib.Set {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.attributes
}

// Mesh returns the expanded mesh handed to the view, or nil before
// StateReady.
func (p *Pipeline) Mesh() *partition.Mesh {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mesh
}

func (p *Pipeline) setState(s State) {
	prev := State(p.state.Swap(int32(s)))
	p.log.Debug("pipeline: state", "from", prev, "to", s)
}

// Run executes the stages. It returns once the view is ready or a stage
// failed. A Pipeline runs at most once; later calls return
// monument.ErrAlreadyStarted.
func (p *Pipeline) Run(ctx context.Context) (err error) {
	if !p.started.CompareAndSwap(false, true) {
		return monument.ErrAlreadyStarted
	}
	defer func() {
		if err != nil {
			p.setState(StateFailed)
			p.log.Error("pipeline: run failed", "kind", monument.KindOf(err), "err", err)
		}
	}()

	p.log.Info("pipeline: started", "strategy", p.strategy.Kind(), "parser", p.cfg.Font.Parser)
	p.setState(StateAwaitingInputs)

	grid, font, err := p.awaitInputs(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.grid, p.font = grid, font
	p.mu.Unlock()
	p.setState(StateParsed)

	lines, err := layout.Lines(grid, font, p.cfg.Layout)
	if err != nil {
		return monument.NewError(monument.ErrUnsupportedFont, "justify", err)
	}
	glyphs := layout.Flatten(lines)
	p.mu.Lock()
	p.lines, p.glyphs = lines, glyphs
	p.mu.Unlock()
	p.setState(StateJustified)

	p.setState(StateAwaitingPartition)
	mesh, err := p.partition(ctx, glyphs)
	if err != nil {
		return err
	}

	return p.present(glyphs, mesh)
}

// partition submits every glyph as one batch and waits for the result.
func (p *Pipeline) partition(ctx context.Context, glyphs []layout.PositionedGlyph) (*partition.Mesh, error) {
	type result struct {
		mesh *partition.Mesh
		err  error
	}
	done := make(chan result, 1)
	outlines := layout.Outlines(glyphs, p.cfg.Layout.PixelsPerUnit)
	go func() {
		mesh, err := p.deps.Partitioner.Partition(ctx, outlines)
		done <- result{mesh, err}
	}()

	var res result
	select {
	case res = <-done:
	case <-ctx.Done():
		return nil, monument.NewError(monument.ErrCanceled, "partition", ctx.Err())
	}

	switch {
	case res.err != nil && ctx.Err() != nil:
		return nil, monument.NewError(monument.ErrCanceled, "partition", ctx.Err())
	case res.err != nil:
		return nil, monument.NewError(monument.ErrPartition, "partition", res.err)
	case res.mesh == nil:
		return nil, monument.NewError(monument.ErrPartition, "partition", errors.New("no mesh"))
	case res.mesh.PathCount() != len(glyphs):
		return nil, monument.NewError(monument.ErrPartition, "partition",
			fmt.Errorf("%d paths for %d glyphs", res.mesh.PathCount(), len(glyphs)))
	}
	if err := res.mesh.Validate(); err != nil {
		return nil, monument.NewError(monument.ErrPartition, "partition", err)
	}

	p.log.Debug("pipeline: partitioned", "paths", res.mesh.PathCount(), "triangles", res.mesh.TriangleCount())
	return res.mesh, nil
}

// present builds the attributes and hands everything to the view in order:
// strategy, attributes, geometry, then the camera transform. All checks run
// before the first view call. If the view then rejects the geometry, the
// uploaded attributes stay until the next upload.
func (p *Pipeline) present(glyphs []layout.PositionedGlyph, mesh *partition.Mesh) error {
	expanded := p.deps.Partitioner.Expand(mesh)
	if expanded == nil || expanded.PathCount() != len(glyphs) {
		return monument.NewError(monument.ErrPartition, "expand",
			errors.New("expanded mesh does not match glyphs"))
	}
	if !expanded.Expanded() {
		return monument.NewError(monument.ErrPartition, "expand", errors.New("no cover geometry"))
	}
	if err := expanded.Validate(); err != nil {
		return monument.NewError(monument.ErrPartition, "expand", err)
	}
	attributes := attrib.Build(glyphs, p.cfg.Layout.PixelsPerUnit)
	if attributes.PathCount() != expanded.PathCount() {
		return monument.NewError(monument.ErrPartition, "expand",
			fmt.Errorf("%d attribute paths for %d mesh paths", attributes.PathCount(), expanded.PathCount()))
	}

	view := p.deps.View
	if err := view.SetAntialiasing(p.strategy); err != nil {
		return monument.NewError(monument.ErrView, "set antialiasing", err)
	}
	colors, transforms := attributes.Upload()
	if err := view.UploadPathAttributes(colors, transforms); err != nil {
		return monument.NewError(monument.ErrView, "upload attributes", err)
	}
	if err := view.AttachGeometry(expanded); err != nil {
		return monument.NewError(monument.ErrView, "attach geometry", err)
	}

	p.mu.Lock()
	p.attributes, p.mesh = attributes, expanded
	if cam := view.Camera(); cam != nil {
		p.unsubscribe = cam.Subscribe(p.pushTransform)
	}
	p.mu.Unlock()

	p.setState(StateReady)
	p.pushTransform()

	p.log.Info("pipeline: ready",
		"lines", len(p.Lines()), "paths", expanded.PathCount(),
		"colorBytes", colors.Size(), "transformBytes", transforms.Size())
	if font := p.Font(); font != nil {
		st := font.CacheStats()
		p.log.Debug("pipeline: outline cache",
			"outlines", st.Len, "hits", st.Hits, "misses", st.Misses, "evictions", st.Evictions)
	}
	return nil
}

// pushTransform recomposes the camera transform and requests a redraw.
func (p *Pipeline) pushTransform() {
	view := p.deps.View
	cam := view.Camera()
	if cam == nil {
		return
	}
	w, h := view.Viewport()
	aspect := float32(1)
	if w > 0 && h > 0 {
		aspect = float32(w) / float32(h)
	}
	view.SetTransform(camera.Compose(cam.State(), aspect, p.cfg.Camera))
	view.RequestRedraw()
}

// Close stops following camera changes and releases the font.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	if p.font != nil {
		return p.font.Close()
	}
	return nil
}
