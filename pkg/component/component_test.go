package component

import (
	"context"
	"errors"
	"testing"

	"github.com/vellum-dev/vellum/pkg/dom"
	"github.com/vellum-dev/vellum/pkg/vdom"
)

// recorder captures lifecycle transitions and render passes.
type recorder struct {
	transitions []State
	renders     int
}

func (r *recorder) StateChanged(_ *Component, _, to State) {
	r.transitions = append(r.transitions, to)
}

func (r *recorder) Rendered(*Component) { r.renders++ }

func TestConnectRunsHooksInOrder(t *testing.T) {
	var order []string
	el := dom.NewElement("my-widget")

	c := New(el, Hooks{
		Pre: func(context.Context) error {
			order = append(order, "pre")
			return nil
		},
		Template: func(*Component) *vdom.VNode {
			order = append(order, "template")
			return vdom.Div(vdom.Text("ok"))
		},
		Init: func(context.Context) error {
			order = append(order, "init")
			return nil
		},
	})

	c.Connect(context.Background())

	want := []string{"pre", "template", "init"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
	if got := c.State(); got != StateReady {
		t.Errorf("State = %v, want ready", got)
	}
}

func TestRenderGateOpensAfterPre(t *testing.T) {
	el := dom.NewElement("my-widget")
	var duringPre bool

	var c *Component
	c = New(el, Hooks{
		Pre: func(context.Context) error {
			duringPre = c.RenderEnabled()
			return nil
		},
		Template: func(*Component) *vdom.VNode { return vdom.Div() },
	})

	if c.RenderEnabled() {
		t.Error("render enabled before Connect")
	}
	c.Connect(context.Background())

	if duringPre {
		t.Error("render enabled while Pre was running")
	}
	if !c.RenderEnabled() {
		t.Error("render not enabled after Connect")
	}
}

func TestRenderBeforeConnectIsNoop(t *testing.T) {
	el := dom.NewElement("my-widget")
	rec := &recorder{}
	c := New(el, Hooks{
		Template: func(*Component) *vdom.VNode { return vdom.Div() },
	}, WithObserver(rec))

	c.Render()
	if rec.renders != 0 {
		t.Errorf("renders = %d, want 0 before connect", rec.renders)
	}
	if len(el.Children()) != 0 {
		t.Error("render pass mutated the element before connect")
	}
}

func TestPreErrorShortCircuits(t *testing.T) {
	el := dom.NewElement("my-widget")
	boom := errors.New("boom")

	var setupErrs []error
	initRan := false
	rec := &recorder{}

	c := New(el, Hooks{
		Pre:        func(context.Context) error { return boom },
		Init:       func(context.Context) error { initRan = true; return nil },
		Template:   func(*Component) *vdom.VNode { return vdom.Div() },
		SetupError: func(err error) { setupErrs = append(setupErrs, err) },
	}, WithObserver(rec))

	c.Connect(context.Background())

	if len(setupErrs) != 1 || !errors.Is(setupErrs[0], boom) {
		t.Errorf("SetupError calls = %v, want exactly one with boom", setupErrs)
	}
	if initRan {
		t.Error("Init ran after Pre failed")
	}
	if rec.renders != 0 {
		t.Errorf("renders = %d, want 0 after Pre failure", rec.renders)
	}
	if got := c.State(); got != StateError {
		t.Errorf("State = %v, want error", got)
	}
	if c.RenderEnabled() {
		t.Error("render enabled despite Pre failure")
	}
}

func TestInitErrorRoutesToSetupError(t *testing.T) {
	el := dom.NewElement("my-widget")
	boom := errors.New("init failed")

	var setupErrs []error
	c := New(el, Hooks{
		Template:   func(*Component) *vdom.VNode { return vdom.Div() },
		Init:       func(context.Context) error { return boom },
		SetupError: func(err error) { setupErrs = append(setupErrs, err) },
	})

	c.Connect(context.Background())

	if len(setupErrs) != 1 || !errors.Is(setupErrs[0], boom) {
		t.Errorf("SetupError calls = %v, want exactly one with the init error", setupErrs)
	}
	if got := c.State(); got != StateError {
		t.Errorf("State = %v, want error", got)
	}
	// The first render already happened; the gate stays open.
	if !c.RenderEnabled() {
		t.Error("render gate closed by init failure")
	}
}

func TestMissingTemplateRendersEmpty(t *testing.T) {
	el := dom.NewElement("my-widget")
	c := New(el, Hooks{})

	c.Connect(context.Background())

	if got := c.State(); got != StateReady {
		t.Errorf("State = %v, want ready", got)
	}
	if len(el.Children()) != 0 {
		t.Errorf("children = %d, want 0 for empty output", len(el.Children()))
	}
}

func TestRenderTargetsRenderRootWhenPresent(t *testing.T) {
	el := dom.NewElement("my-widget")
	c := New(el, Hooks{
		Template: func(*Component) *vdom.VNode { return vdom.Span(vdom.Text("hi")) },
	}, WithRenderRoot())

	c.Connect(context.Background())

	root := el.RenderRoot()
	if root == nil {
		t.Fatal("no render root attached")
	}
	if len(root.Children()) != 1 || root.Children()[0].Tag() != "span" {
		t.Errorf("render root children = %v", root.Children())
	}
}

func TestObserverSeesTransitions(t *testing.T) {
	el := dom.NewElement("my-widget")
	rec := &recorder{}
	c := New(el, Hooks{
		Template: func(*Component) *vdom.VNode { return vdom.Div() },
	}, WithObserver(rec))

	c.Connect(context.Background())

	want := []State{StatePreRunning, StateRenderEnabled, StateInitRunning, StateReady}
	if len(rec.transitions) != len(want) {
		t.Fatalf("transitions = %v, want %v", rec.transitions, want)
	}
	for i := range want {
		if rec.transitions[i] != want[i] {
			t.Errorf("transitions[%d] = %v, want %v", i, rec.transitions[i], want[i])
		}
	}
	if rec.renders != 1 {
		t.Errorf("renders = %d, want 1", rec.renders)
	}
}

func TestStopEvent(t *testing.T) {
	parent := dom.NewElement("div")
	child := dom.NewElement("a")
	parent.AppendChild(child)

	var reachedParent, secondRan bool
	parent.AddEventListener("click", func(*dom.Event) { reachedParent = true })
	child.AddEventListener("click", func(e *dom.Event) { StopEvent(e, true) })
	child.AddEventListener("click", func(*dom.Event) { secondRan = true })

	ok := child.DispatchEvent(dom.NewEvent("click", dom.WithBubbles(true), dom.WithCancelable(true)))

	if ok {
		t.Error("default action not prevented")
	}
	if reachedParent {
		t.Error("event reached parent despite StopEvent")
	}
	if secondRan {
		t.Error("same-level listener ran despite StopEvent")
	}
}

func TestStopEventWithoutPreventDefault(t *testing.T) {
	el := dom.NewElement("a")
	el.AddEventListener("click", func(e *dom.Event) { StopEvent(e, false) })

	ok := el.DispatchEvent(dom.NewEvent("click", dom.WithBubbles(true), dom.WithCancelable(true)))
	if !ok {
		t.Error("default action suppressed without the prevent-default flag")
	}
}

func TestStateString(t *testing.T) {
	cases := []struct {
		state State
		want  string
	}{
		{StateCreated, "created"},
		{StatePreRunning, "pre-running"},
		{StateRenderEnabled, "render-enabled"},
		{StateInitRunning, "init-running"},
		{StateReady, "ready"},
		{StateError, "error"},
		{State(99), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}
