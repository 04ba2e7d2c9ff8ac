// Package vdom is the default templating engine for vellum components.
//
// Templates are trees of VNode values built with element constructors:
//
//	vdom.Form(
//	    vdom.Label(vdom.Attr{Key: "for", Value: "title"}, vdom.Text("Title")),
//	    vdom.Input(vdom.Attr{Key: "name", Value: "title"}),
//	)
//
// An Engine turns successive template outputs into mutations of a
// dom.Element target: the first render mounts the tree, later renders
// diff against the previous output and apply only the resulting
// patches. Components treat the engine as an opaque render function;
// any other implementation of component.RenderFunc can be substituted.
package vdom
