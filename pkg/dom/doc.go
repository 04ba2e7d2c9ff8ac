// Package dom provides the minimal host-document model the lifecycle
// and form-binding layers operate against: elements with attributes and
// children, an optional isolated render root per element, and
// synchronous event dispatch with bubbling.
//
// The model deliberately covers only what the rest of the toolkit
// observes. It is not a general-purpose DOM: no namespaces, no
// selectors, no style system. Elements are not safe for concurrent
// mutation; the intended execution model is a single goroutine per
// document, matching the cooperative event-loop the toolkit assumes.
package dom
