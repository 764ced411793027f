package xmlutil

import (
	"strings"

	"github.com/beevik/etree"
)

// Child returns the first child element of parent whose local name is name.
// Namespace prefixes are ignored.
func Child(parent *etree.Element, name string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, c := range parent.ChildElements() {
		if c.Tag == name {
			return c
		}
	}
	return nil
}

// Children returns all child elements of parent whose local name is name.
func Children(parent *etree.Element, name string) []*etree.Element {
	if parent == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range parent.ChildElements() {
		if c.Tag == name {
			out = append(out, c)
		}
	}
	return out
}

// FirstElement returns the first element of elems, skipping nils.
func FirstElement(elems []*etree.Element) *etree.Element {
	for _, e := range elems {
		if e != nil {
			return e
		}
	}
	return nil
}

// Text returns the character content of el, including text that follows
// comments or processing instructions. Child element content is not included.
func Text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	for _, t := range el.Child {
		if cd, ok := t.(*etree.CharData); ok {
			b.WriteString(cd.Data)
		}
	}
	return b.String()
}

// TextContent returns the character content of el and all its descendants
// in document order, like DOM textContent.
func TextContent(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	appendText(&b, el)
	return b.String()
}

func appendText(b *strings.Builder, el *etree.Element) {
	for _, t := range el.Child {
		switch t := t.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			appendText(b, t)
		}
	}
}

// ChildText returns the text of the named child and whether the child exists.
func ChildText(parent *etree.Element, name string) (string, bool) {
	c := Child(parent, name)
	if c == nil {
		return "", false
	}
	return Text(c), true
}

// Attr returns the value of the attribute with the given local name,
// ignoring any namespace prefix.
func Attr(el *etree.Element, name string) (string, bool) {
	if el == nil {
		return "", false
	}
	for _, a := range el.Attr {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// InnerXML serializes the child elements of el. Text between child elements
// is dropped.
func InnerXML(el *etree.Element) string {
	if el == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range el.ChildElements() {
		doc := etree.NewDocument()
		doc.SetRoot(c.Copy())
		s, err := doc.WriteToString()
		if err != nil {
			continue
		}
		b.WriteString(s)
	}
	return b.String()
}
