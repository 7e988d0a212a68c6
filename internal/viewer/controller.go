package viewer

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/dentaview/internal/clock"
	"github.com/Faultbox/dentaview/internal/config"
	"github.com/Faultbox/dentaview/internal/loader"
	"github.com/Faultbox/dentaview/internal/logger"
)

// ErrClosed is returned by LoadModels after Close.
var ErrClosed = errors.New("viewer: controller closed")

// slot is one cancellable timer. Bumping seq invalidates any callback
// already queued for the previous timer.
type slot struct {
	timer clock.Timer
	seq   uint64
}

func (s *slot) cancel() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
}

func (s *slot) active() bool {
	return s.timer != nil
}

// Controller owns the viewer State. All methods are safe for concurrent use;
// guarded operations invoked in the wrong state are silent no-ops.
type Controller struct {
	cfg config.ViewerConfig
	cam config.CameraConfig
	ldr *loader.Loader
	clk clock.Clock
	log *zap.Logger

	mu     sync.Mutex
	st     State
	closed bool

	pending *loader.Batch

	load   slot
	labels slot
	axes   slot
	reveal slot
	glide  slot

	camera Camera
	motion *glideMotion

	subs    map[int]func(State)
	nextSub int

	idle       chan struct{}
	idleClosed bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithCamera sets the camera settings used for preset transitions.
func WithCamera(cfg config.CameraConfig) Option {
	return func(c *Controller) { c.cam = cfg }
}

// New creates a controller with an empty session.
func New(cfg config.ViewerConfig, ldr *loader.Loader, clk clock.Clock, opts ...Option) *Controller {
	idle := make(chan struct{})
	close(idle)

	c := &Controller{
		cfg:        cfg,
		cam:        config.Default().Camera,
		ldr:        ldr,
		clk:        clk,
		log:        logger.Named("viewer"),
		st:         initialState(),
		subs:       make(map[int]func(State)),
		idle:       idle,
		idleClosed: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.clone()
}

// Subscribe registers fn to receive a snapshot after every state change.
// fn runs outside the controller lock and may call back into it.
// With a real clock, timer-driven changes notify from their own goroutines,
// so snapshots may reach fn out of order. State always returns the latest.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// AwaitIdle blocks until no transition is in flight, ctx is done, or the
// controller is closed.
func (c *Controller) AwaitIdle(ctx context.Context) error {
	c.mu.Lock()
	ch := c.idle
	c.mu.Unlock()

	select {
	case <-ch:
		return nil
	default:
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears the session down: every timer is stopped and all current and
// pending model resources are released. Later operations are no-ops.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	for _, s := range []*slot{&c.load, &c.labels, &c.axes, &c.reveal, &c.glide} {
		s.cancel()
	}
	c.motion = nil
	c.camera = nil

	var models []loader.Model
	if c.pending != nil {
		models = append(models, c.pending.Models...)
		c.pending = nil
	}
	models = append(models, c.st.Models...)
	c.st.Models = nil

	if !c.idleClosed {
		close(c.idle)
		c.idleClosed = true
	}

	err := c.ldr.Release(models)
	if err != nil {
		c.log.Warn("releasing models on close", zap.Error(err))
	}
	c.subs = map[int]func(State){}
	return err
}

// update runs fn under the lock and notifies subscribers if it reports a change.
func (c *Controller) update(op string, fn func() bool) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.log.Debug("ignored after close", zap.String("op", op))
		return
	}
	if !fn() {
		c.mu.Unlock()
		return
	}
	st, subs := c.publishLocked()
	c.mu.Unlock()
	notify(st, subs)
}

// schedule arms s to run fn after d. A stale or post-close fire does nothing.
func (c *Controller) schedule(s *slot, d time.Duration, fn func() bool) {
	s.cancel()
	seq := s.seq
	s.timer = c.clk.AfterFunc(d, func() {
		c.mu.Lock()
		if c.closed || s.seq != seq {
			c.mu.Unlock()
			return
		}
		s.timer = nil
		if !fn() {
			c.refreshIdleLocked()
			c.mu.Unlock()
			return
		}
		st, subs := c.publishLocked()
		c.mu.Unlock()
		notify(st, subs)
	})
}

func (c *Controller) publishLocked() (State, []func(State)) {
	c.refreshIdleLocked()
	subs := make([]func(State), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	return c.st.clone(), subs
}

func (c *Controller) refreshIdleLocked() {
	busy := c.st.Busy() || c.motion != nil
	switch {
	case busy && c.idleClosed:
		c.idle = make(chan struct{})
		c.idleClosed = false
	case !busy && !c.idleClosed:
		close(c.idle)
		c.idleClosed = true
	}
}

func notify(st State, subs []func(State)) {
	for _, fn := range subs {
		fn(st)
	}
}

func (c *Controller) release(models []loader.Model, reason string) {
	if len(models) == 0 {
		return
	}
	if err := c.ldr.Release(models); err != nil {
		c.log.Warn("releasing models", zap.String("reason", reason), zap.Error(err))
	}
}

func (c *Controller) ignore(op, reason string) bool {
	c.log.Debug("operation ignored", zap.String("op", op), zap.String("reason", reason))
	return false
}
