package vdom

import (
	"errors"
	"fmt"

	"github.com/vellum-dev/vellum/pkg/dom"
)

// Sentinel errors for patch application.
var (
	// ErrBadPath is returned when a patch path does not resolve in the
	// target tree.
	ErrBadPath = errors.New("vdom: patch path out of range")

	// ErrBadPatch is returned for a structurally invalid patch.
	ErrBadPatch = errors.New("vdom: invalid patch")
)

// Mount materializes a template output under root, replacing any
// existing children.
func Mount(root *dom.Element, out *VNode) {
	root.RemoveChildren()
	for _, n := range topLevel(normalize(out)) {
		root.AppendChild(build(n))
	}
}

// Apply applies patches to the tree under root. Patches must target
// the tree a preceding Mount (plus earlier Apply calls) produced.
func Apply(root *dom.Element, patches []Patch) error {
	for _, p := range patches {
		if err := applyOne(root, p); err != nil {
			return fmt.Errorf("apply %s at %v: %w", p.Op, p.Path, err)
		}
	}
	return nil
}

func applyOne(root *dom.Element, p Patch) error {
	switch p.Op {
	case PatchSetText:
		el, err := resolve(root, p.Path)
		if err != nil {
			return err
		}
		el.SetText(p.Value)

	case PatchSetAttr:
		el, err := resolve(root, p.Path)
		if err != nil {
			return err
		}
		setControlAttr(el, p.Key, p.Value)

	case PatchRemoveAttr:
		el, err := resolve(root, p.Path)
		if err != nil {
			return err
		}
		el.RemoveAttr(p.Key)
		if p.Key == "value" {
			el.SetValue("")
		}

	case PatchInsertNode:
		parent, i, err := resolveParent(root, p.Path)
		if err != nil {
			return err
		}
		if p.Node == nil {
			return ErrBadPatch
		}
		parent.InsertChild(i, build(p.Node))

	case PatchRemoveNode:
		parent, i, err := resolveParent(root, p.Path)
		if err != nil {
			return err
		}
		if i >= len(parent.Children()) {
			return ErrBadPath
		}
		parent.RemoveChild(parent.Children()[i])

	case PatchReplaceNode:
		parent, i, err := resolveParent(root, p.Path)
		if err != nil {
			return err
		}
		if p.Node == nil {
			return ErrBadPatch
		}
		if i >= len(parent.Children()) {
			return ErrBadPath
		}
		parent.RemoveChild(parent.Children()[i])
		parent.InsertChild(i, build(p.Node))

	default:
		return ErrBadPatch
	}
	return nil
}

// resolve walks a child-index path from root.
func resolve(root *dom.Element, path []int) (*dom.Element, error) {
	el := root
	for _, i := range path {
		children := el.Children()
		if i < 0 || i >= len(children) {
			return nil, ErrBadPath
		}
		el = children[i]
	}
	return el, nil
}

// resolveParent resolves the parent element and final index of a path.
func resolveParent(root *dom.Element, path []int) (*dom.Element, int, error) {
	if len(path) == 0 {
		return nil, 0, ErrBadPath
	}
	parent, err := resolve(root, path[:len(path)-1])
	if err != nil {
		return nil, 0, err
	}
	return parent, path[len(path)-1], nil
}

// build constructs the dom subtree for a normalized node.
func build(n *VNode) *dom.Element {
	switch n.Kind {
	case KindText:
		el := dom.NewElement("#text")
		el.SetText(n.Text)
		return el
	case KindRaw:
		el := dom.NewElement("#raw")
		el.SetText(n.Text)
		return el
	}

	el := dom.NewElement(n.Tag)
	for key, v := range n.Props {
		if isEventProp(key) {
			if fn := listenerFor(v); fn != nil {
				el.AddEventListener(key[2:], fn)
			}
			continue
		}
		if s, ok := attrString(v); ok {
			setControlAttr(el, key, s)
		}
	}
	for _, c := range n.Children {
		el.AppendChild(build(c))
	}
	return el
}

// listenerFor extracts a dom listener from a prop value.
func listenerFor(v any) dom.Listener {
	switch fn := v.(type) {
	case dom.Listener:
		return fn
	case func(*dom.Event):
		return fn
	default:
		return nil
	}
}

// setControlAttr sets an attribute, keeping form-control state (live
// value, checked flag) in sync the way a host document would.
func setControlAttr(el *dom.Element, key, value string) {
	el.SetAttr(key, value)
	if key == "value" {
		el.SetValue(value)
	}
}

// normalize flattens fragments out of child lists, recursively. The
// node is mutated in place; template outputs are built fresh per
// render, so this never touches a tree a caller still holds.
func normalize(n *VNode) *VNode {
	if n == nil {
		return nil
	}
	n.Children = flatten(n.Children)
	for _, c := range n.Children {
		normalize(c)
	}
	return n
}

func flatten(children []*VNode) []*VNode {
	var out []*VNode
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Kind == KindFragment {
			out = append(out, flatten(c.Children)...)
			continue
		}
		out = append(out, c)
	}
	return out
}
