// Package vellum provides the public API for the Vellum component
// toolkit.
//
// This is the recommended import for most applications:
//
//	import "github.com/vellum-dev/vellum"
//
// Usage:
//
//	reg := vellum.NewRegistry()
//	def, err := reg.Define("contact-form", &vellum.Definition{
//	    New: func(el *vellum.Element) *vellum.Component {
//	        var c *vellum.Component
//	        c = vellum.NewComponent(el, vellum.Hooks{
//	            Template: func(*vellum.Component) *vellum.VNode {
//	                return vdom.Form(vdom.Input(vdom.Name("title")))
//	            },
//	            Init: func(context.Context) error {
//	                vellum.BindForm(c)
//	                return nil
//	            },
//	        })
//	        return c
//	    },
//	})
package vellum

import (
	"time"

	"github.com/vellum-dev/vellum/pkg/component"
	"github.com/vellum-dev/vellum/pkg/dom"
	"github.com/vellum-dev/vellum/pkg/formbind"
	"github.com/vellum-dev/vellum/pkg/registry"
	"github.com/vellum-dev/vellum/pkg/vdom"
)

// =============================================================================
// Host document (re-export from pkg/dom)
// =============================================================================

// Element is a node in the host document tree.
type Element = dom.Element

// Event is a host-document event.
type Event = dom.Event

// NewElement creates a detached element.
var NewElement = dom.NewElement

// NewEvent creates an event.
var NewEvent = dom.NewEvent

// Event options.
var (
	WithBubbles    = dom.WithBubbles
	WithCancelable = dom.WithCancelable
)

// =============================================================================
// Registry (re-export from pkg/registry)
// =============================================================================

// Registry maps tag names to component definitions.
type Registry = registry.Registry

// Definition binds a constructor to a tag.
type Definition = registry.Definition

// NewRegistry creates an empty registry.
var NewRegistry = registry.New

// Registry errors.
var (
	ErrInvalidTag   = registry.ErrInvalidTag
	ErrDuplicateTag = registry.ErrDuplicateTag
	ErrNotDefined   = registry.ErrNotDefined
)

// =============================================================================
// Lifecycle (re-export from pkg/component)
// =============================================================================

// Component orchestrates the lifecycle of one element.
type Component = component.Component

// Hooks are the lifecycle override points.
type Hooks = component.Hooks

// State is the lifecycle state of a component instance.
type State = component.State

// Lifecycle states.
const (
	StateCreated       = component.StateCreated
	StatePreRunning    = component.StatePreRunning
	StateRenderEnabled = component.StateRenderEnabled
	StateInitRunning   = component.StateInitRunning
	StateReady         = component.StateReady
	StateError         = component.StateError
)

// NewComponent creates a component for an element.
var NewComponent = component.New

// Component options.
var (
	WithLogger     = component.WithLogger
	WithRender     = component.WithRender
	WithObserver   = component.WithObserver
	WithRenderRoot = component.WithRenderRoot
)

// StopEvent stops an event's propagation, including listeners at the
// same level, and optionally prevents its default action.
var StopEvent = component.StopEvent

// RenderFunc consumes a template output and a target root.
type RenderFunc = component.RenderFunc

// =============================================================================
// Templates (re-export from pkg/vdom)
// =============================================================================

// VNode is a node of template output.
type VNode = vdom.VNode

// Props holds attributes and event handlers.
type Props = vdom.Props

// NewEngine creates the default render engine.
var NewEngine = vdom.NewEngine

// =============================================================================
// Form binding (re-export from pkg/formbind)
// =============================================================================

// Binder mirrors form-control changes into a data map.
type Binder = formbind.Binder

// BindForm attaches a form binder to a component.
var BindForm = formbind.Attach

// DefaultDebounce is the default settled-change window.
const DefaultDebounce = formbind.DefaultDebounce

// WithDebounce sets the binder's debounce window.
func WithDebounce(d time.Duration) formbind.Option {
	return formbind.WithDebounce(d)
}

// WithChangeHandler replaces the binder's settled-change handler.
var WithChangeHandler = formbind.WithChangeHandler
