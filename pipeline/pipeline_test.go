package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/monument"
	"github.com/gogpu/monument/attrib"
	"github.com/gogpu/monument/camera"
	"github.com/gogpu/monument/fetch"
	"github.com/gogpu/monument/partition"
	"github.com/gogpu/monument/render"
	"github.com/gogpu/monument/text"
)

const dataset = `{"monument": [
	{"side": "1", "panel": "upper", "row": "1", "number": "2", "name": "Grace"},
	{"side": "1", "panel": "upper", "row": "1", "number": "1", "name": "Ada"},
	{"side": "2", "panel": "upper", "row": "1", "number": "3", "name": "Hidden"},
	{"side": "1", "panel": "lower", "row": "1", "number": "1", "name": "Alan"}
]}`

var errBoom = errors.New("boom")

func failing(err error) fetch.Source {
	return fetch.SourceFunc(func(context.Context) ([]byte, error) { return nil, err })
}

func testDeps() (Deps, *render.Recorder) {
	view := render.NewRecorder(800, 600)
	return Deps{
		Dataset:     fetch.Bytes([]byte(dataset)),
		Font:        fetch.Bytes(goregular.TTF),
		Partitioner: partition.NewLocal(),
		View:        view,
	}, view
}

func mustNew(t *testing.T, cfg monument.Config, deps Deps) *Pipeline {
	t.Helper()
	p, err := New(cfg, deps)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestRun_Ready(t *testing.T) {
	deps, view := testDeps()
	p := mustNew(t, monument.DefaultConfig(), deps)

	if p.State() != StateIdle {
		t.Fatalf("State() = %v before Run", p.State())
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if p.State() != StateReady {
		t.Fatalf("State() = %v, want Ready", p.State())
	}

	want := []render.CallKind{
		render.CallSetAntialiasing,
		render.CallUploadPathAttributes,
		render.CallAttachGeometry,
		render.CallSetTransform,
		render.CallRequestRedraw,
	}
	if diff := cmp.Diff(want, view.Calls()); diff != "" {
		t.Errorf("view calls mismatch (-want +got):\n%s", diff)
	}

	lines := p.Lines()
	if len(lines) != 2 {
		t.Fatalf("len(Lines()) = %d, want 2", len(lines))
	}
	var names [][]string
	for _, l := range lines {
		var row []string
		for _, r := range l.Runs {
			row = append(row, r.Name)
		}
		names = append(names, row)
	}
	if diff := cmp.Diff([][]string{{"Ada", "Grace"}, {"Alan"}}, names); diff != "" {
		t.Errorf("line names mismatch (-want +got):\n%s", diff)
	}

	glyphs := p.Glyphs()
	if n := len("AdaGraceAlan"); len(glyphs) != n {
		t.Fatalf("len(Glyphs()) = %d, want %d", len(glyphs), n)
	}
	if got := p.Mesh().PathCount(); got != len(glyphs) {
		t.Errorf("mesh paths = %d, want %d", got, len(glyphs))
	}

	attrs := p.Attributes()
	if attrs.PathCount() != len(glyphs) {
		t.Errorf("attribute paths = %d, want %d", attrs.PathCount(), len(glyphs))
	}
	ppu := monument.DefaultConfig().Layout.PixelsPerUnit
	for i, g := range glyphs {
		rect := g.PixelRect(ppu)
		row := attrs.Transforms[i+1]
		if row.TranslateX != float32(rect.X) || row.TranslateY != float32(rect.Y) {
			t.Errorf("transform row %d = %+v, want origin (%d, %d)", i+1, row, rect.X, rect.Y)
		}
	}

	_, transforms := view.Attributes()
	if diff := cmp.Diff(attrs.Transforms, attrib.DecodeTransforms(transforms.Data)); diff != "" {
		t.Errorf("uploaded transforms mismatch (-built +uploaded):\n%s", diff)
	}
}

func TestRun_LogsOutlineCache(t *testing.T) {
	var out lockedBuffer
	monument.SetLogger(slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { monument.SetLogger(nil) })

	deps, _ := testDeps()
	p := mustNew(t, monument.DefaultConfig(), deps)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	var record string
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.Contains(line, `msg="pipeline: outline cache"`) {
			record = line
		}
	}
	if record == "" {
		t.Fatalf("no outline cache record in:\n%s", out.String())
	}
	st := p.Font().CacheStats()
	for _, want := range []string{
		"run=" + p.ID().String(),
		"hits=" + strconv.FormatUint(st.Hits, 10),
		"misses=" + strconv.FormatUint(st.Misses, 10),
		"outlines=" + strconv.Itoa(st.Len),
	} {
		if !strings.Contains(record, want) {
			t.Errorf("record %q lacks %q", record, want)
		}
	}
	if st.Hits == 0 {
		t.Error("repeated glyphs produced no cache hits")
	}
}

func TestRun_CameraChangesRedraw(t *testing.T) {
	cfg := monument.DefaultConfig()
	deps, view := testDeps()
	p := mustNew(t, cfg, deps)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	before := view.Snapshot()

	view.Camera().Translate(mgl32.Vec3{100, 0, 0})
	view.Camera().Rotate(0.1, mgl32.Vec3{0, 1, 0})

	after := view.Snapshot()
	if after.Redraws != before.Redraws+2 {
		t.Errorf("Redraws = %d, want %d", after.Redraws, before.Redraws+2)
	}
	want := camera.Compose(view.Camera().State(), 800.0/600.0, cfg.Camera)
	if !after.Transform.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("view transform is stale:\n%v\nwant\n%v", after.Transform, want)
	}

	view.Resize(1024, 512)
	want = camera.Compose(view.Camera().State(), 2, cfg.Camera)
	if got := view.Snapshot().Transform; !got.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("transform after resize is stale")
	}

	p.Close()
	n := len(view.Calls())
	view.Camera().Translate(mgl32.Vec3{1, 0, 0})
	if len(view.Calls()) != n {
		t.Error("camera change after Close reached the view")
	}
}

func TestRun_Once(t *testing.T) {
	deps, _ := testDeps()
	p := mustNew(t, monument.DefaultConfig(), deps)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if err := p.Run(context.Background()); !errors.Is(err, monument.ErrAlreadyStarted) {
		t.Errorf("second Run() = %v, want ErrAlreadyStarted", err)
	}
}

func TestNew_RejectsAntialiasing(t *testing.T) {
	cfg := monument.DefaultConfig()
	cfg.Antialiasing.Strategy = "ecaa"
	deps, view := testDeps()

	if _, err := New(cfg, deps); !errors.Is(err, monument.ErrUnsupportedAntialiasing) {
		t.Fatalf("New() = %v, want ErrUnsupportedAntialiasing", err)
	}
	if calls := view.Calls(); len(calls) != 0 {
		t.Errorf("view touched: %v", calls)
	}
}

func TestNew_Invalid(t *testing.T) {
	deps, _ := testDeps()

	noView := deps
	noView.View = nil
	if _, err := New(monument.DefaultConfig(), noView); !errors.Is(err, monument.ErrInvalidConfig) {
		t.Errorf("missing view: %v", err)
	}

	cfg := monument.DefaultConfig()
	cfg.Font.Parser = "freetype"
	_, err := New(cfg, deps)
	if !errors.Is(err, monument.ErrInvalidConfig) || !errors.Is(err, text.ErrUnknownParser) {
		t.Errorf("unknown parser: %v", err)
	}

	cfg = monument.DefaultConfig()
	cfg.Layout.TargetWidth = 0
	if _, err := New(cfg, deps); !errors.Is(err, monument.ErrInvalidConfig) {
		t.Errorf("zero target width: %v", err)
	}
}

func TestRun_Failures(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Deps)
		kind error
	}{
		{"dataset fetch", func(d *Deps) { d.Dataset = failing(errBoom) }, monument.ErrDatasetFetch},
		{"font fetch", func(d *Deps) { d.Font = failing(errBoom) }, monument.ErrFontFetch},
		{"dataset parse", func(d *Deps) { d.Dataset = fetch.Bytes([]byte(`{"monument": [{"side": 1, "panel": "upper", "row": "x", "number": 1, "name": "A"}]}`)) }, monument.ErrDatasetParse},
		{"dataset json", func(d *Deps) { d.Dataset = fetch.Bytes([]byte(`not json`)) }, monument.ErrDatasetParse},
		{"font decode", func(d *Deps) { d.Font = fetch.Bytes([]byte("not a font")) }, monument.ErrFontDecode},
		{"partition", func(d *Deps) { d.Partitioner = &stubPartitioner{err: errBoom} }, monument.ErrPartition},
		{"path count", func(d *Deps) { d.Partitioner = &stubPartitioner{mesh: &partition.Mesh{}} }, monument.ErrPartition},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, view := testDeps()
			tt.edit(&deps)
			p := mustNew(t, monument.DefaultConfig(), deps)

			err := p.Run(context.Background())
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Run() = %v, want kind %v", err, tt.kind)
			}
			if got := monument.KindOf(err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v", got, tt.kind)
			}
			if p.State() != StateFailed {
				t.Errorf("State() = %v, want Failed", p.State())
			}
			if calls := view.Calls(); len(calls) != 0 {
				t.Errorf("failed run reached the view: %v", calls)
			}
		})
	}
}

func TestRun_ViewRejection(t *testing.T) {
	deps, _ := testDeps()
	deps.View = &rejectingView{Recorder: render.NewRecorder(10, 10)}
	p := mustNew(t, monument.DefaultConfig(), deps)

	if err := p.Run(context.Background()); !errors.Is(err, monument.ErrView) {
		t.Errorf("Run() = %v, want ErrView", err)
	}
	if p.State() != StateFailed || p.Mesh() != nil {
		t.Errorf("State() = %v, Mesh() = %v after rejected geometry", p.State(), p.Mesh())
	}
}

func TestRun_WaitsForBothInputs(t *testing.T) {
	release := make(chan struct{})
	font := fetch.SourceFunc(func(ctx context.Context) ([]byte, error) {
		<-release
		return goregular.TTF, nil
	})

	datasetFetched := make(chan struct{})
	deps, _ := testDeps()
	deps.Font = font
	deps.Dataset = fetch.SourceFunc(func(context.Context) ([]byte, error) {
		defer close(datasetFetched)
		return []byte(dataset), nil
	})
	counter := &countingPartitioner{Local: partition.NewLocal()}
	deps.Partitioner = counter
	p := mustNew(t, monument.DefaultConfig(), deps)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	// The dataset is available immediately; the run must stay in
	// AwaitingInputs until the font arrives.
	<-datasetFetched
	if s := p.State(); s != StateAwaitingInputs {
		t.Fatalf("State() = %v while the font is pending", s)
	}
	if p.Lines() != nil || counter.calls.Load() != 0 {
		t.Fatal("layout started before the font arrived")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if got := counter.calls.Load(); got != 1 {
		t.Errorf("partitioner called %d times, want one batch", got)
	}
	if got := counter.outlines.Load(); int(got) != len(p.Glyphs()) {
		t.Errorf("batch held %d outlines, want %d", got, len(p.Glyphs()))
	}
}

func TestRun_Canceled(t *testing.T) {
	deps, view := testDeps()
	deps.Font = fetch.SourceFunc(func(ctx context.Context) ([]byte, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	p := mustNew(t, monument.DefaultConfig(), deps)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Run(ctx)
	if !errors.Is(err, monument.ErrCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want ErrCanceled wrapping context.Canceled", err)
	}
	if got := monument.KindOf(err); got != monument.ErrCanceled {
		t.Errorf("KindOf() = %v, want ErrCanceled", got)
	}
	if p.State() != StateFailed || len(view.Calls()) != 0 {
		t.Errorf("State() = %v, calls = %v", p.State(), view.Calls())
	}
}

func TestRun_CanceledDuringPartition(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps, view := testDeps()
	blocking := &blockingPartitioner{Local: partition.NewLocal(), entered: make(chan struct{})}
	deps.Partitioner = blocking
	p := mustNew(t, monument.DefaultConfig(), deps)

	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	<-blocking.entered
	cancel()

	err := <-done
	if got := monument.KindOf(err); got != monument.ErrCanceled {
		t.Fatalf("KindOf(%v) = %v, want ErrCanceled", err, got)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled cause", err)
	}
	if p.State() != StateFailed || len(view.Calls()) != 0 {
		t.Errorf("State() = %v, calls = %v", p.State(), view.Calls())
	}
}

func TestRun_InvalidExpansionNeverReachesView(t *testing.T) {
	tests := []struct {
		name   string
		expand func(*partition.Mesh) *partition.Mesh
	}{
		{"not expanded", func(m *partition.Mesh) *partition.Mesh { return m }},
		{"broken cover paths", func(m *partition.Mesh) *partition.Mesh {
			e := partition.NewLocal().Expand(m)
			e.CoverPaths = e.CoverPaths[:len(e.CoverPaths)-1]
			return e
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, view := testDeps()
			deps.Partitioner = &expandingPartitioner{Local: partition.NewLocal(), expand: tt.expand}
			p := mustNew(t, monument.DefaultConfig(), deps)

			err := p.Run(context.Background())
			if got := monument.KindOf(err); got != monument.ErrPartition {
				t.Fatalf("KindOf(%v) = %v, want ErrPartition", err, got)
			}
			if calls := view.Calls(); len(calls) != 0 {
				t.Errorf("invalid expansion reached the view: %v", calls)
			}
			if p.Attributes() != nil || p.Mesh() != nil {
				t.Error("failed run kept attributes or mesh")
			}
		})
	}
}

func TestState_String(t *testing.T) {
	for s, want := range map[State]string{
		StateIdle:              "Idle",
		StateAwaitingInputs:    "AwaitingInputs",
		StateParsed:            "Parsed",
		StateJustified:         "Justified",
		StateAwaitingPartition: "AwaitingPartition",
		StateReady:             "Ready",
		StateFailed:            "Failed",
		State(99):              "Unknown",
	} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
	if !StateReady.Terminal() || !StateFailed.Terminal() || StateParsed.Terminal() {
		t.Error("Terminal() mismatch")
	}
}

type stubPartitioner struct {
	mesh *partition.Mesh
	err  error
}

func (s *stubPartitioner) Partition(context.Context, []*text.GlyphOutline) (*partition.Mesh, error) {
	return s.mesh, s.err
}

func (s *stubPartitioner) Expand(m *partition.Mesh) *partition.Mesh { return m }

type countingPartitioner struct {
	*partition.Local
	calls    atomic.Int32
	outlines atomic.Int32
}

func (c *countingPartitioner) Partition(ctx context.Context, outlines []*text.GlyphOutline) (*partition.Mesh, error) {
	c.calls.Add(1)
	c.outlines.Add(int32(len(outlines)))
	return c.Local.Partition(ctx, outlines)
}

type rejectingView struct {
	*render.Recorder
}

func (v *rejectingView) AttachGeometry(*partition.Mesh) error {
	return errBoom
}

type blockingPartitioner struct {
	*partition.Local
	entered chan struct{}
}

func (b *blockingPartitioner) Partition(ctx context.Context, _ []*text.GlyphOutline) (*partition.Mesh, error) {
	close(b.entered)
	<-ctx.Done()
	return nil, ctx.Err()
}

type expandingPartitioner struct {
	*partition.Local
	expand func(*partition.Mesh) *partition.Mesh
}

func (e *expandingPartitioner) Expand(m *partition.Mesh) *partition.Mesh {
	return e.expand(m)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
