package dom

// Event is a host-document event travelling through the element tree.
type Event struct {
	typ        string
	bubbles    bool
	cancelable bool

	target  *Element
	current *Element

	stopped          bool // no further bubbling
	stoppedImmediate bool // no further listeners at all
	defaultPrevented bool
}

// EventOption configures a new event.
type EventOption func(*Event)

// WithBubbles makes the event bubble up through ancestors.
func WithBubbles(bubbles bool) EventOption {
	return func(e *Event) { e.bubbles = bubbles }
}

// WithCancelable makes the event's default action preventable.
func WithCancelable(cancelable bool) EventOption {
	return func(e *Event) { e.cancelable = cancelable }
}

// NewEvent creates an event of the given type. Events default to
// non-bubbling and non-cancelable.
func NewEvent(typ string, opts ...EventOption) *Event {
	e := &Event{typ: typ}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Type returns the event type, e.g. "change".
func (e *Event) Type() string { return e.typ }

// Bubbles reports whether the event bubbles.
func (e *Event) Bubbles() bool { return e.bubbles }

// Cancelable reports whether the default action can be prevented.
func (e *Event) Cancelable() bool { return e.cancelable }

// Target returns the element the event was dispatched on.
func (e *Event) Target() *Element { return e.target }

// CurrentTarget returns the element whose listeners are currently
// being invoked. Nil outside of dispatch.
func (e *Event) CurrentTarget() *Element { return e.current }

// StopPropagation stops the event from bubbling further. Listeners on
// the current element still run.
func (e *Event) StopPropagation() { e.stopped = true }

// StopImmediatePropagation stops bubbling and skips any remaining
// listeners on the current element.
func (e *Event) StopImmediatePropagation() {
	e.stopped = true
	e.stoppedImmediate = true
}

// PreventDefault marks the default action as prevented. No-op on
// non-cancelable events.
func (e *Event) PreventDefault() {
	if e.cancelable {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault took effect.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Listener is a callback invoked during event dispatch.
type Listener func(*Event)

type listener struct {
	fn      Listener
	removed bool
}

// AddEventListener registers fn for events of the given type on the
// element. The returned function detaches the listener.
func (e *Element) AddEventListener(typ string, fn Listener) func() {
	l := &listener{fn: fn}
	e.listeners[typ] = append(e.listeners[typ], l)
	return func() {
		l.removed = true
		list := e.listeners[typ]
		for i, cand := range list {
			if cand == l {
				e.listeners[typ] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// DispatchEvent delivers the event to the element and, if it bubbles,
// to each ancestor in turn. It returns false if a listener prevented
// the default action, true otherwise.
func (e *Element) DispatchEvent(ev *Event) bool {
	if ev.target == nil {
		ev.target = e
	}
	for cur := e; cur != nil; cur = cur.parent {
		ev.current = cur
		// Snapshot so listeners added mid-dispatch do not run for
		// this event.
		list := make([]*listener, len(cur.listeners[ev.typ]))
		copy(list, cur.listeners[ev.typ])
		for _, l := range list {
			if l.removed {
				continue
			}
			l.fn(ev)
			if ev.stoppedImmediate {
				ev.current = nil
				return !ev.defaultPrevented
			}
		}
		if ev.stopped || !ev.bubbles {
			break
		}
	}
	ev.current = nil
	return !ev.defaultPrevented
}
