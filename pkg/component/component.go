package component

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vellum-dev/vellum/pkg/dom"
	"github.com/vellum-dev/vellum/pkg/vdom"
)

// RenderFunc consumes a template output and a target root. The default
// is a vdom.Engine; any diffing/patching strategy with the same shape
// can be substituted.
type RenderFunc func(out *vdom.VNode, root *dom.Element) error

// Hooks are the override points of the lifecycle. Every field is
// optional; zero hooks produce a component that connects, warns about
// the missing template, and renders empty output.
type Hooks struct {
	// Pre runs before the first render. Connection proceeds only
	// after it returns nil.
	Pre func(ctx context.Context) error

	// Init runs after the first render.
	Init func(ctx context.Context) error

	// Template produces the component's output for a render pass.
	Template func(c *Component) *vdom.VNode

	// SetupError receives the error that aborted connection. The
	// default logs and swallows it.
	SetupError func(err error)
}

// Observer is notified of lifecycle transitions and render passes.
type Observer interface {
	StateChanged(c *Component, from, to State)
	Rendered(c *Component)
}

// Option configures a Component.
type Option func(*Component)

// WithLogger sets the component's logger. Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *Component) { c.log = log }
}

// WithRender sets the render strategy. Default: a dedicated
// vdom.Engine per component.
func WithRender(fn RenderFunc) Option {
	return func(c *Component) { c.render = fn }
}

// WithObserver registers a lifecycle observer. May be given multiple
// times.
func WithObserver(o Observer) Option {
	return func(c *Component) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithRenderRoot attaches an isolated render root to the element, so
// render passes target it instead of the element itself.
func WithRenderRoot() Option {
	return func(c *Component) { c.el.AttachRenderRoot() }
}

// Component orchestrates the lifecycle of one element.
type Component struct {
	el        *dom.Element
	hooks     Hooks
	render    RenderFunc
	log       *slog.Logger
	observers []Observer

	mu            sync.Mutex
	state         State
	renderEnabled bool
}

// New creates a component for el. The element keeps a single behavior
// for its lifetime; connecting it is the caller's (or the registry's)
// job.
func New(el *dom.Element, hooks Hooks, opts ...Option) *Component {
	c := &Component{
		el:    el,
		hooks: hooks,
		state: StateCreated,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.render == nil {
		c.render = vdom.NewEngine().Render
	}
	return c
}

// Element returns the component's element.
func (c *Component) Element() *dom.Element { return c.el }

// State returns the current lifecycle state.
func (c *Component) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RenderEnabled reports whether the first render gate has opened. It
// flips to true exactly once, after Pre settles, and never reverts.
func (c *Component) RenderEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.renderEnabled
}

// Connect runs the lifecycle: Pre, then the first render, then Init.
// Hooks run sequentially on the calling goroutine; a slow hook delays
// the next step, and nothing here aborts a hook already underway. Any
// hook or render error short-circuits the remaining steps and routes
// to the SetupError hook, leaving the component in the error state.
func (c *Component) Connect(ctx context.Context) {
	c.setState(StatePreRunning)
	if c.hooks.Pre != nil {
		if err := c.hooks.Pre(ctx); err != nil {
			c.fail(err)
			return
		}
	}

	c.mu.Lock()
	c.renderEnabled = true
	c.mu.Unlock()
	c.setState(StateRenderEnabled)

	if err := c.renderPass(); err != nil {
		c.fail(err)
		return
	}

	c.setState(StateInitRunning)
	if c.hooks.Init != nil {
		if err := c.hooks.Init(ctx); err != nil {
			c.fail(err)
			return
		}
	}
	c.setState(StateReady)
}

// Render performs a render pass. It is a no-op before Pre has settled.
// The base never re-renders on its own; overriding code calls this
// when its data changes. Errors are logged, matching the lifecycle's
// log-and-continue policy outside of Connect.
func (c *Component) Render() {
	if !c.RenderEnabled() {
		return
	}
	if err := c.renderPass(); err != nil {
		c.log.Error("render failed", "tag", c.el.Tag(), "err", err)
	}
}

func (c *Component) renderPass() error {
	var out *vdom.VNode
	if c.hooks.Template == nil {
		c.log.Warn("component has no template", "tag", c.el.Tag())
	} else {
		out = c.hooks.Template(c)
	}

	root := c.el.RenderRoot()
	if root == nil {
		root = c.el
	}
	if err := c.render(out, root); err != nil {
		return err
	}
	for _, o := range c.observers {
		o.Rendered(c)
	}
	return nil
}

// fail moves the component to the error state and routes err to the
// SetupError hook. The default logs and swallows: a broken component
// must not take the host down with it.
func (c *Component) fail(err error) {
	c.setState(StateError)
	if c.hooks.SetupError != nil {
		c.hooks.SetupError(err)
		return
	}
	c.log.Error("component setup failed", "tag", c.el.Tag(), "err", err)
}

func (c *Component) setState(to State) {
	c.mu.Lock()
	from := c.state
	c.state = to
	c.mu.Unlock()
	for _, o := range c.observers {
		o.StateChanged(c, from, to)
	}
}

// StopEvent stops an event's propagation, including listeners at the
// same level, and optionally prevents its default action. Pure
// delegation to the dom event API.
func StopEvent(e *dom.Event, preventDefault bool) {
	e.StopImmediatePropagation()
	if preventDefault {
		e.PreventDefault()
	}
}
