package vdom

import (
	"sync"

	"github.com/vellum-dev/vellum/pkg/dom"
)

// Engine is the default render function: it mounts the first output
// for a target and patches subsequent outputs in by diffing against
// the previous one. One engine can serve many targets; it keeps the
// previous output per render root.
type Engine struct {
	mu   sync.Mutex
	prev map[*dom.Element]*VNode
}

// NewEngine creates a render engine.
func NewEngine() *Engine {
	return &Engine{prev: make(map[*dom.Element]*VNode)}
}

// Render renders out into root. A nil output renders as empty. The
// signature matches component.RenderFunc.
func (en *Engine) Render(out *VNode, root *dom.Element) error {
	if out == nil {
		out = Fragment()
	}
	out = normalize(out)

	en.mu.Lock()
	prev, seen := en.prev[root]
	en.mu.Unlock()

	if !seen {
		root.RemoveChildren()
		for _, n := range topLevel(out) {
			root.AppendChild(build(n))
		}
	} else {
		if err := Apply(root, Diff(prev, out)); err != nil {
			return err
		}
	}

	en.mu.Lock()
	en.prev[root] = out
	en.mu.Unlock()
	return nil
}

// Forget drops the engine's memory of a target, so the next Render
// mounts from scratch. Use when a target is discarded.
func (en *Engine) Forget(root *dom.Element) {
	en.mu.Lock()
	delete(en.prev, root)
	en.mu.Unlock()
}
