package formbind

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vellum-dev/vellum/pkg/component"
	"github.com/vellum-dev/vellum/pkg/dom"
	"github.com/vellum-dev/vellum/pkg/vdom"
)

// newForm builds a connected component whose element contains a text
// input named "title" and a checkbox named "agree".
func newForm(t *testing.T, opts ...Option) (*Binder, *dom.Element, *dom.Element) {
	t.Helper()

	el := dom.NewElement("contact-form")
	c := component.New(el, component.Hooks{
		Template: func(*component.Component) *vdom.VNode {
			return vdom.Form(
				vdom.Input(vdom.Name("title"), vdom.Type("text")),
				vdom.Input(vdom.Name("agree"), vdom.Type("checkbox")),
			)
		},
	})
	b := Attach(c, opts...)
	t.Cleanup(b.Close)
	c.Connect(context.Background())

	form := el.Children()[0]
	title, agree := form.Children()[0], form.Children()[1]
	return b, title, agree
}

// settle waits out the debounce window with margin.
func settle() { time.Sleep(60 * time.Millisecond) }

func TestCheckboxStoresBool(t *testing.T) {
	b, _, agree := newForm(t)

	agree.SetChecked(true)
	agree.DispatchEvent(dom.NewEvent("change", dom.WithBubbles(true)))
	settle()

	if got, ok := b.Data()["agree"].(bool); !ok || !got {
		t.Errorf("Data[agree] = %v, want true", b.Data()["agree"])
	}

	agree.SetChecked(false)
	agree.DispatchEvent(dom.NewEvent("change", dom.WithBubbles(true)))
	settle()

	if got, ok := b.Data()["agree"].(bool); !ok || got {
		t.Errorf("Data[agree] = %v, want false", b.Data()["agree"])
	}
}

func TestTextControlStoresValue(t *testing.T) {
	b, title, _ := newForm(t)

	title.SetValue("Hello")
	title.DispatchEvent(dom.NewEvent("input", dom.WithBubbles(true)))
	settle()

	if got := b.Data()["title"]; got != "Hello" {
		t.Errorf("Data[title] = %v, want Hello", got)
	}
}

func TestDebounceCoalescesBursts(t *testing.T) {
	var mu sync.Mutex
	count := 0
	b, title, _ := newForm(t, WithChangeHandler(func(*dom.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	}))

	for _, v := range []string{"H", "He", "Hel", "Hell", "Hello"} {
		title.SetValue(v)
		title.DispatchEvent(dom.NewEvent("input", dom.WithBubbles(true)))
	}
	settle()

	mu.Lock()
	got := count
	mu.Unlock()
	if got != 1 {
		t.Errorf("handler calls = %d, want 1 for a burst", got)
	}
	if v := b.Data()["title"]; v != "Hello" {
		t.Errorf("Data[title] = %v, want final value Hello", v)
	}
}

func TestSeparateBurstsNotifySeparately(t *testing.T) {
	var mu sync.Mutex
	count := 0
	_, title, _ := newForm(t, WithChangeHandler(func(*dom.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	}))

	title.SetValue("a")
	title.DispatchEvent(dom.NewEvent("input", dom.WithBubbles(true)))
	settle()
	title.SetValue("b")
	title.DispatchEvent(dom.NewEvent("input", dom.WithBubbles(true)))
	settle()

	mu.Lock()
	got := count
	mu.Unlock()
	if got != 2 {
		t.Errorf("handler calls = %d, want 2 for separated events", got)
	}
}

func TestAnonymousControlIgnored(t *testing.T) {
	b, title, _ := newForm(t)

	title.RemoveAttr("name")
	title.SetValue("ignored")
	title.DispatchEvent(dom.NewEvent("input", dom.WithBubbles(true)))
	settle()

	if len(b.Data()) != 0 {
		t.Errorf("Data = %v, want empty for anonymous control", b.Data())
	}
}

func TestSelfTargetIgnored(t *testing.T) {
	b, _, _ := newForm(t)
	el := b.Component().Element()
	el.SetAttr("name", "self")

	el.DispatchEvent(dom.NewEvent("input", dom.WithBubbles(true)))
	settle()

	if len(b.Data()) != 0 {
		t.Errorf("Data = %v, want empty for self-targeted event", b.Data())
	}
}

func TestDefaultHandlerEmitsComponentChange(t *testing.T) {
	b, title, _ := newForm(t)

	page := dom.NewElement("body")
	page.AppendChild(b.Component().Element())

	got := make(chan *dom.Event, 1)
	page.AddEventListener("change", func(e *dom.Event) {
		if e.Target() == b.Component().Element() {
			got <- e
		}
	})

	title.SetValue("x")
	title.DispatchEvent(dom.NewEvent("input", dom.WithBubbles(true)))

	select {
	case e := <-got:
		if !e.Bubbles() {
			t.Error("re-emitted change does not bubble")
		}
		if e.Cancelable() {
			t.Error("re-emitted change is cancelable")
		}
	case <-time.After(time.Second):
		t.Fatal("no change event re-emitted from component")
	}
}

func TestSetDataReplacesAndRenders(t *testing.T) {
	renders := 0
	el := dom.NewElement("contact-form")
	c := component.New(el, component.Hooks{
		Template: func(*component.Component) *vdom.VNode {
			renders++
			return vdom.Div()
		},
	})
	b := Attach(c)
	defer b.Close()
	c.Connect(context.Background())

	base := renders
	b.SetData(map[string]any{"title": "Hi"})

	if got := b.Data()["title"]; got != "Hi" {
		t.Errorf("Data[title] = %v, want Hi", got)
	}
	if renders != base+1 {
		t.Errorf("renders = %d, want %d after SetData", renders, base+1)
	}
}

func TestSetDataRejectsNonMap(t *testing.T) {
	renders := 0
	el := dom.NewElement("contact-form")
	c := component.New(el, component.Hooks{
		Template: func(*component.Component) *vdom.VNode {
			renders++
			return vdom.Div()
		},
	})
	b := Attach(c)
	defer b.Close()
	c.Connect(context.Background())
	b.SetData(map[string]any{"keep": true})

	base := renders
	b.SetData("a string")
	b.SetData(42)
	b.SetData(nil)
	b.SetData((map[string]any)(nil))

	if renders != base {
		t.Errorf("renders = %d, want %d (no render for rejected values)", renders, base)
	}
	if got := b.Data()["keep"]; got != true {
		t.Errorf("Data[keep] = %v, want true (mapping unchanged)", got)
	}
	if b.Data() == nil {
		t.Error("data map became nil")
	}
}

func TestCloseStopsPendingTimer(t *testing.T) {
	var mu sync.Mutex
	count := 0
	b, title, _ := newForm(t, WithChangeHandler(func(*dom.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	}))

	title.SetValue("x")
	title.DispatchEvent(dom.NewEvent("input", dom.WithBubbles(true)))
	b.Close()
	settle()

	mu.Lock()
	got := count
	mu.Unlock()
	if got != 0 {
		t.Errorf("handler calls = %d, want 0 after Close", got)
	}
}

type flushCounter struct {
	mu    sync.Mutex
	count int
}

func (f *flushCounter) Flushed(*Binder, *dom.Event) {
	f.mu.Lock()
	f.count++
	f.mu.Unlock()
}

func TestObserverSeesFlush(t *testing.T) {
	fc := &flushCounter{}
	_, title, _ := newForm(t, WithObserver(fc))

	title.SetValue("x")
	title.DispatchEvent(dom.NewEvent("input", dom.WithBubbles(true)))
	settle()

	fc.mu.Lock()
	got := fc.count
	fc.mu.Unlock()
	if got != 1 {
		t.Errorf("flushes = %d, want 1", got)
	}
}
