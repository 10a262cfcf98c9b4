package camera

import (
	"math"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/monument"
)

// Camera is a perspective camera with a cached transform.
// It is safe for concurrent use. Subscribers run on the goroutine that
// mutated the camera, after the camera lock is released.
type Camera struct {
	mu     sync.Mutex
	cfg    monument.CameraConfig
	state  State
	width  int
	height int

	transform mgl32.Mat4
	dirty     bool

	nextID      int
	subscribers map[int]func()
}

// New creates a camera in its initial state for the given viewport size.
func New(cfg monument.CameraConfig, width, height int) *Camera {
	return &Camera{
		cfg:         cfg,
		state:       InitialState(cfg),
		width:       width,
		height:      height,
		dirty:       true,
		subscribers: make(map[int]func()),
	}
}

// State returns the current camera state.
func (c *Camera) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Viewport returns the current viewport size in pixels.
func (c *Camera) Viewport() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

// Aspect returns width / height of the viewport, or 1 for an empty one.
func (c *Camera) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect()
}

func (c *Camera) aspect() float32 {
	if c.width <= 0 || c.height <= 0 {
		return 1
	}
	return float32(c.width) / float32(c.height)
}

// Transform returns the view transform, recomputing it if the camera
// changed since the last call.
func (c *Camera) Transform() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dirty {
		c.transform = Compose(c.state, c.aspect(), c.cfg)
		c.dirty = false
	}
	return c.transform
}

// Rotate applies a rotation of angle radians around axis. A zero or
// non-finite axis, or a non-finite angle, leaves the camera unchanged and
// notifies nobody.
func (c *Camera) Rotate(angle float32, axis mgl32.Vec3) {
	if n := axis.Len(); n == 0 || !finite(n) || !finite(angle) {
		return
	}
	c.mutate(func(s *State) {
		s.Rotation = mgl32.QuatRotate(angle, axis.Normalize()).Mul(s.Rotation).Normalize()
	})
}

// Translate moves the camera by delta.
func (c *Camera) Translate(delta mgl32.Vec3) {
	c.mutate(func(s *State) {
		s.Translation = s.Translation.Add(delta)
	})
}

// SetState replaces the camera state.
func (c *Camera) SetState(state State) {
	c.mutate(func(s *State) { *s = state })
}

// Reset returns the camera to its initial state.
func (c *Camera) Reset() {
	c.SetState(InitialState(c.cfg))
}

// SetViewport updates the viewport size.
func (c *Camera) SetViewport(width, height int) {
	c.mu.Lock()
	c.width, c.height = width, height
	c.dirty = true
	subs := c.snapshot()
	c.mu.Unlock()

	notify(subs)
}

// Subscribe registers fn to run after every camera change.
// The returned function removes the subscription.
func (c *Camera) Subscribe(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subscribers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subscribers, id)
			c.mu.Unlock()
		})
	}
}

func (c *Camera) mutate(f func(*State)) {
	c.mu.Lock()
	f(&c.state)
	c.dirty = true
	subs := c.snapshot()
	c.mu.Unlock()

	notify(subs)
}

// snapshot must be called with c.mu held.
func (c *Camera) snapshot() []func() {
	ids := make([]int, 0, len(c.subscribers))
	for id := range c.subscribers {
		ids = append(ids, id)
	}
	// Subscribers run in subscription order.
	slices.Sort(ids)
	subs := make([]func(), len(ids))
	for i, id := range ids {
		subs[i] = c.subscribers[id]
	}
	return subs
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
