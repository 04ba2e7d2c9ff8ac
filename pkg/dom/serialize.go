package dom

import (
	"io"
	"sort"
	"strings"
)

// voidTags are tags serialized without a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "source": true, "track": true,
	"wbr": true,
}

// OuterHTML serializes the element and its subtree to HTML. The render
// root, when present, is serialized in place of the element's own
// children, mirroring what a host would display.
func (e *Element) OuterHTML() string {
	var buf strings.Builder
	e.writeHTML(&buf)
	return buf.String()
}

func (e *Element) writeHTML(w io.StringWriter) {
	// Synthetic nodes used by render engines: #text carries escaped
	// text, #raw passes through untouched.
	switch e.tag {
	case "#text":
		w.WriteString(EscapeHTML(e.text))
		return
	case "#raw":
		w.WriteString(e.text)
		return
	}

	w.WriteString("<")
	w.WriteString(e.tag)

	// Deterministic attribute order for stable output.
	keys := make([]string, 0, len(e.attrs))
	for k := range e.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w.WriteString(" ")
		w.WriteString(k)
		if v := e.attrs[k]; v != "" {
			w.WriteString(`="`)
			w.WriteString(escapeAttr(v))
			w.WriteString(`"`)
		}
	}
	if voidTags[e.tag] {
		w.WriteString(">")
		return
	}
	w.WriteString(">")

	if e.text != "" {
		w.WriteString(EscapeHTML(e.text))
	}
	children := e.children
	if e.renderRoot != nil {
		children = e.renderRoot.children
	}
	for _, c := range children {
		c.writeHTML(w)
	}

	w.WriteString("</")
	w.WriteString(e.tag)
	w.WriteString(">")
}

// EscapeHTML escapes text for safe inclusion in HTML content.
func EscapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// escapeAttr escapes text for attribute values, additionally encoding
// whitespace that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
