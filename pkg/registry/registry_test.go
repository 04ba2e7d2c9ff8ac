package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/vellum-dev/vellum/pkg/component"
	"github.com/vellum-dev/vellum/pkg/dom"
	"github.com/vellum-dev/vellum/pkg/vdom"
)

func widgetDef() *Definition {
	return &Definition{
		New: func(el *dom.Element) *component.Component {
			return component.New(el, component.Hooks{
				Template: func(*component.Component) *vdom.VNode {
					return vdom.Div(vdom.Text("widget"))
				},
			})
		},
	}
}

func TestDefineReturnsSameDefinition(t *testing.T) {
	r := New()
	def := widgetDef()

	got, err := r.Define("my-widget", def)
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if got != def {
		t.Error("Define did not return the definition unchanged")
	}
}

func TestDefineValidation(t *testing.T) {
	cases := []struct {
		name string
		tag  string
	}{
		{"empty", ""},
		{"no hyphen", "widget"},
		{"uppercase", "My-Widget"},
		{"leading digit", "1-widget"},
		{"bad rune", "my-widgét"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := New()
			if _, err := r.Define(tc.tag, widgetDef()); !errors.Is(err, ErrInvalidTag) {
				t.Errorf("Define(%q) err = %v, want ErrInvalidTag", tc.tag, err)
			}
		})
	}
}

func TestDefineDuplicateTag(t *testing.T) {
	r := New()
	if _, err := r.Define("my-widget", widgetDef()); err != nil {
		t.Fatalf("first Define: %v", err)
	}
	if _, err := r.Define("my-widget", widgetDef()); !errors.Is(err, ErrDuplicateTag) {
		t.Errorf("second Define err = %v, want ErrDuplicateTag", err)
	}
}

func TestDefineNilDefinition(t *testing.T) {
	r := New()
	if _, err := r.Define("my-widget", nil); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("Define(nil) err = %v, want ErrInvalidTag", err)
	}
}

func TestCreateElementUnknownTag(t *testing.T) {
	r := New()
	if _, _, err := r.CreateElement("no-such"); !errors.Is(err, ErrNotDefined) {
		t.Errorf("CreateElement err = %v, want ErrNotDefined", err)
	}
}

func TestUpgradeConnects(t *testing.T) {
	r := New()
	if _, err := r.Define("my-widget", widgetDef()); err != nil {
		t.Fatalf("Define: %v", err)
	}

	el, c, err := r.Upgrade(context.Background(), "my-widget")
	if err != nil {
		t.Fatalf("Upgrade: %v", err)
	}
	if got := c.State(); got != component.StateReady {
		t.Errorf("State = %v, want ready", got)
	}
	if el.OuterHTML() != "<my-widget><div>widget</div></my-widget>" {
		t.Errorf("OuterHTML = %q", el.OuterHTML())
	}
}

func TestLookupAndTags(t *testing.T) {
	r := New()
	def, _ := r.Define("my-widget", widgetDef())

	got, ok := r.Lookup("my-widget")
	if !ok || got != def {
		t.Error("Lookup did not return the registered definition")
	}
	if _, ok := r.Lookup("other-tag"); ok {
		t.Error("Lookup returned a definition for an unknown tag")
	}
	if tags := r.Tags(); len(tags) != 1 || tags[0] != "my-widget" {
		t.Errorf("Tags = %v", tags)
	}
}
