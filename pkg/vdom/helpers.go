package vdom

import (
	"fmt"

	"github.com/vellum-dev/vellum/pkg/dom"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates an unescaped HTML node.
// Use with caution - can lead to XSS if content is user-provided.
func Raw(html string) *VNode {
	return &VNode{
		Kind: KindRaw,
		Text: html,
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		}
	}
	return node
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// Class creates a class attribute.
func Class(name string) Attr {
	return Attr{Key: "class", Value: name}
}

// ID creates an id attribute.
func ID(id string) Attr {
	return Attr{Key: "id", Value: id}
}

// Name creates a name attribute.
func Name(name string) Attr {
	return Attr{Key: "name", Value: name}
}

// Type creates a type attribute.
func Type(t string) Attr {
	return Attr{Key: "type", Value: t}
}

// Value creates a value attribute.
func Value(v string) Attr {
	return Attr{Key: "value", Value: v}
}

// Checked creates a checked attribute when set is true and nothing
// otherwise.
func Checked(set bool) Attr {
	return Attr{Key: "checked", Value: set}
}

// Placeholder creates a placeholder attribute.
func Placeholder(text string) Attr {
	return Attr{Key: "placeholder", Value: text}
}

// Event handler helpers

func OnClick(fn dom.Listener) EventHandler  { return EventHandler{Event: "click", Handler: fn} }
func OnInput(fn dom.Listener) EventHandler  { return EventHandler{Event: "input", Handler: fn} }
func OnChange(fn dom.Listener) EventHandler { return EventHandler{Event: "change", Handler: fn} }
func OnSubmit(fn dom.Listener) EventHandler { return EventHandler{Event: "submit", Handler: fn} }
