package vdom

import (
	"sort"
	"strings"

	"github.com/vellum-dev/vellum/pkg/dom"
)

// RenderHTML serializes a template output to an HTML string, for the
// server-side rendering path. Event handler props are omitted; they
// only exist once the output is mounted into a dom tree.
func RenderHTML(out *VNode) string {
	var buf strings.Builder
	writeNode(&buf, normalize(out))
	return buf.String()
}

func writeNode(buf *strings.Builder, n *VNode) {
	if n == nil {
		return
	}
	switch n.Kind {
	case KindText:
		buf.WriteString(dom.EscapeHTML(n.Text))
	case KindRaw:
		buf.WriteString(n.Text)
	case KindFragment:
		for _, c := range n.Children {
			writeNode(buf, c)
		}
	case KindElement:
		writeElement(buf, n)
	}
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "source": true, "track": true,
	"wbr": true,
}

func writeElement(buf *strings.Builder, n *VNode) {
	buf.WriteString("<")
	buf.WriteString(n.Tag)

	keys := make([]string, 0, len(n.Props))
	for k := range n.Props {
		if !isEventProp(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, ok := attrString(n.Props[k])
		if !ok {
			continue
		}
		buf.WriteString(" ")
		buf.WriteString(k)
		if v != "" {
			buf.WriteString(`="`)
			buf.WriteString(dom.EscapeHTML(v))
			buf.WriteString(`"`)
		}
	}
	buf.WriteString(">")
	if voidTags[n.Tag] {
		return
	}
	for _, c := range n.Children {
		writeNode(buf, c)
	}
	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteString(">")
}
