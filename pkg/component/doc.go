// Package component orchestrates the element lifecycle: a setup hook,
// a first render, and an init hook, run in that order on connection,
// with failures routed to a single error hook.
//
// Components are composed, not subclassed: a Component holds its
// element, a Hooks value supplying the override points, and a render
// strategy. Optional strategies (form binding, observers) attach at
// construction.
package component
