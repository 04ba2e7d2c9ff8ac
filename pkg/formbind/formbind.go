// Package formbind keeps a backing data map synchronized with the
// values of a component's descendant form controls, and coalesces
// bursts of input into a single settled-change notification.
package formbind

import (
	"sync"
	"time"

	"github.com/vellum-dev/vellum/pkg/component"
	"github.com/vellum-dev/vellum/pkg/dom"
)

// DefaultDebounce is the quiet period after the last qualifying event
// before the change handler fires.
const DefaultDebounce = 10 * time.Millisecond

// Observer is notified when a debounce window settles.
type Observer interface {
	Flushed(b *Binder, e *dom.Event)
}

// Option configures a Binder.
type Option func(*Binder)

// WithDebounce sets the debounce window. Values <= 0 fall back to
// DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(b *Binder) {
		if d > 0 {
			b.debounce = d
		}
	}
}

// WithChangeHandler replaces the settled-change handler. The default
// stops the triggering event and re-emits a bubbling "change" event
// from the component's element.
func WithChangeHandler(fn func(e *dom.Event)) Option {
	return func(b *Binder) { b.handleChange = fn }
}

// WithObserver registers a flush observer. May be given multiple
// times.
func WithObserver(o Observer) Option {
	return func(b *Binder) {
		if o != nil {
			b.observers = append(b.observers, o)
		}
	}
}

// Binder mirrors form-control changes into a data map. It listens for
// "change" and "input" events bubbling up to the component's element.
type Binder struct {
	c            *component.Component
	handleChange func(e *dom.Event)
	observers    []Observer
	debounce     time.Duration
	detach       []func()

	mu    sync.Mutex
	data  map[string]any
	timer *time.Timer
}

// Attach creates a binder for c and starts listening on its element.
// The backing map starts empty and is never nil afterwards.
func Attach(c *component.Component, opts ...Option) *Binder {
	b := &Binder{
		c:        c,
		data:     make(map[string]any),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.handleChange == nil {
		b.handleChange = b.emitChange
	}

	el := c.Element()
	b.detach = append(b.detach,
		el.AddEventListener("change", b.onControlEvent),
		el.AddEventListener("input", b.onControlEvent),
	)
	return b
}

// Component returns the component the binder is attached to.
func (b *Binder) Component() *component.Component { return b.c }

// Data returns the backing data map.
func (b *Binder) Data() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data
}

// SetData replaces the backing map wholesale and performs a render
// pass. Only map-typed values are accepted; anything else, including a
// nil map, is a silent no-op with no render.
func (b *Binder) SetData(v any) {
	m, ok := v.(map[string]any)
	if !ok || m == nil {
		return
	}
	b.mu.Lock()
	b.data = m
	b.mu.Unlock()
	b.c.Render()
}

// Close stops the pending debounce timer and detaches the binder's
// listeners. The data map remains readable.
func (b *Binder) Close() {
	b.mu.Lock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()
	for _, off := range b.detach {
		off()
	}
	b.detach = nil
}

// onControlEvent mirrors one control's value into the data map and
// restarts the debounce timer. Events from the component's own element
// or from anonymous controls are ignored.
func (b *Binder) onControlEvent(e *dom.Event) {
	target := e.Target()
	if target == nil || target == b.c.Element() {
		return
	}
	name := target.Name()
	if name == "" {
		return
	}

	b.mu.Lock()
	if target.Type() == "checkbox" {
		b.data[name] = target.Checked()
	} else {
		b.data[name] = target.Value()
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.debounce, func() { b.flush(e) })
	b.mu.Unlock()
}

// flush delivers the settled change: only the trailing event of a
// burst reaches the handler.
func (b *Binder) flush(e *dom.Event) {
	b.mu.Lock()
	b.timer = nil
	b.mu.Unlock()

	b.handleChange(e)
	for _, o := range b.observers {
		o.Flushed(b, e)
	}
}

// emitChange is the default settled-change handler: it stops the
// internal form event and re-brands it as a bubbling, non-cancelable
// "change" event from the component itself.
func (b *Binder) emitChange(e *dom.Event) {
	component.StopEvent(e, false)
	b.c.Element().DispatchEvent(dom.NewEvent("change", dom.WithBubbles(true)))
}
