package dom

// Element is a node in the host document tree.
type Element struct {
	tag      string
	attrs    map[string]string
	text     string
	value    string
	parent   *Element
	children []*Element

	// renderRoot is the isolated subtree render output is patched
	// into, when attached. Nil means render targets the element itself.
	renderRoot *Element

	listeners map[string][]*listener
}

// NewElement creates a detached element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{
		tag:       tag,
		attrs:     make(map[string]string),
		listeners: make(map[string][]*listener),
	}
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Attr returns the value of the named attribute and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttr sets an attribute.
func (e *Element) SetAttr(name, value string) {
	e.attrs[name] = value
}

// RemoveAttr removes an attribute. Removing an absent attribute is a no-op.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// Name returns the element's name attribute, or "" if unset.
func (e *Element) Name() string { return e.attrs["name"] }

// Type returns the element's type attribute, or "" if unset.
func (e *Element) Type() string { return e.attrs["type"] }

// Value returns the element's current value. For form controls this is
// the live value, distinct from any value attribute.
func (e *Element) Value() string { return e.value }

// SetValue sets the element's current value.
func (e *Element) SetValue(v string) { e.value = v }

// Checked reports presence of the checked attribute.
func (e *Element) Checked() bool { return e.HasAttr("checked") }

// SetChecked sets or removes the checked attribute.
func (e *Element) SetChecked(checked bool) {
	if checked {
		e.attrs["checked"] = ""
	} else {
		delete(e.attrs, "checked")
	}
}

// Text returns the element's own text content.
func (e *Element) Text() string { return e.text }

// SetText sets the element's own text content.
func (e *Element) SetText(text string) { e.text = text }

// Parent returns the parent element, or nil for a detached root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's child list. The returned slice is the
// live backing slice; callers must not mutate it directly.
func (e *Element) Children() []*Element { return e.children }

// AppendChild appends child to the element, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

// InsertChild inserts child at index i, clamping i to the valid range.
func (e *Element) InsertChild(i int, child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	if i < 0 {
		i = 0
	}
	if i > len(e.children) {
		i = len(e.children)
	}
	child.parent = e
	e.children = append(e.children, nil)
	copy(e.children[i+1:], e.children[i:])
	e.children[i] = child
}

// RemoveChild detaches child from the element. Removing a non-child is
// a no-op.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// RemoveChildren detaches all children.
func (e *Element) RemoveChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// AttachRenderRoot creates and returns the element's isolated render
// root. Calling it again returns the existing root.
func (e *Element) AttachRenderRoot() *Element {
	if e.renderRoot == nil {
		root := NewElement("#root")
		root.parent = e
		e.renderRoot = root
	}
	return e.renderRoot
}

// RenderRoot returns the isolated render root, or nil if none was
// attached.
func (e *Element) RenderRoot() *Element { return e.renderRoot }
