package vdom

import (
	"fmt"
	"strings"
)

// Diff compares two template outputs and returns the patches needed to
// transform prev into next. Both trees must be normalized (fragments
// flattened); Engine handles that for its callers.
func Diff(prev, next *VNode) []Patch {
	var patches []Patch
	diffChildren(topLevel(prev), topLevel(next), nil, &patches)
	return patches
}

// topLevel returns the root-level node list for an output value. A
// fragment contributes its children; nil contributes nothing.
func topLevel(node *VNode) []*VNode {
	if node == nil {
		return nil
	}
	if node.Kind == KindFragment {
		return node.Children
	}
	return []*VNode{node}
}

// diffChildren compares two child lists position by position. Removals
// are emitted highest-index first so earlier removals never shift the
// targets of later ones; inserts are emitted in ascending order.
func diffChildren(prev, next []*VNode, path []int, patches *[]Patch) {
	shared := min(len(prev), len(next))
	for i := 0; i < shared; i++ {
		diffNode(prev[i], next[i], childPath(path, i), patches)
	}
	for i := len(prev) - 1; i >= shared; i-- {
		*patches = append(*patches, Patch{
			Op:   PatchRemoveNode,
			Path: childPath(path, i),
		})
	}
	for i := shared; i < len(next); i++ {
		*patches = append(*patches, Patch{
			Op:   PatchInsertNode,
			Path: childPath(path, i),
			Node: next[i],
		})
	}
}

// diffNode compares two nodes occupying the same position.
func diffNode(prev, next *VNode, path []int, patches *[]Patch) {
	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		*patches = append(*patches, Patch{
			Op:   PatchReplaceNode,
			Path: path,
			Node: next,
		})
		return
	}

	switch prev.Kind {
	case KindText, KindRaw:
		if prev.Text != next.Text {
			*patches = append(*patches, Patch{
				Op:    PatchSetText,
				Path:  path,
				Value: next.Text,
			})
		}
	case KindElement:
		diffProps(prev.Props, next.Props, path, patches)
		diffChildren(prev.Children, next.Children, path, patches)
	}
}

// diffProps compares attribute maps. Event handler props are bound at
// mount time and are not diffable; they are skipped here.
func diffProps(prev, next Props, path []int, patches *[]Patch) {
	for key, pv := range prev {
		if isEventProp(key) {
			continue
		}
		pstr, pok := attrString(pv)
		if !pok {
			continue
		}
		nstr, nok := attrString(next[key])
		if !nok {
			*patches = append(*patches, Patch{
				Op:   PatchRemoveAttr,
				Path: path,
				Key:  key,
			})
			continue
		}
		if pstr != nstr {
			*patches = append(*patches, Patch{
				Op:    PatchSetAttr,
				Path:  path,
				Key:   key,
				Value: nstr,
			})
		}
	}
	for key, nv := range next {
		if isEventProp(key) {
			continue
		}
		nstr, nok := attrString(nv)
		if !nok {
			continue
		}
		if _, pok := attrString(prev[key]); !pok {
			*patches = append(*patches, Patch{
				Op:    PatchSetAttr,
				Path:  path,
				Key:   key,
				Value: nstr,
			})
		}
	}
}

// isEventProp reports whether a prop key names an event handler.
func isEventProp(key string) bool {
	return strings.HasPrefix(key, "on")
}

// attrString converts a prop value to its attribute string form. The
// second return is false when the value renders no attribute at all
// (nil, or a false boolean).
func attrString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case bool:
		if val {
			return "", true
		}
		return "", false
	case string:
		return val, true
	default:
		return fmt.Sprintf("%v", val), true
	}
}

// childPath returns path extended by i, without aliasing path's
// backing array.
func childPath(path []int, i int) []int {
	p := make([]int, len(path)+1)
	copy(p, path)
	p[len(path)] = i
	return p
}
