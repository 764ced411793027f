package command

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/enum"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

var errNotBoolean = errors.New(`boolean must be "true" or "false"`)

// dateTimeLayouts are the accepted xs:dateTime forms, zoned first.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// fields reads the children of one element by local name. The first
// conversion or missing-element error is kept and later reads become no-ops,
// so a sub-parser can read all of its fields and check err once.
type fields struct {
	el  *etree.Element
	err error
}

func newFields(el *etree.Element) *fields {
	return &fields{el: el}
}

func (f *fields) fail(err error) {
	if f.err == nil {
		f.err = err
	}
}

func (f *fields) child(name string) *etree.Element {
	return xmlutil.Child(f.el, name)
}

func (f *fields) requiredChild(name string) *etree.Element {
	c := xmlutil.Child(f.el, name)
	if c == nil {
		f.fail(&MissingElementError{Parent: f.el.Tag, Name: name})
	}
	return c
}

// text returns the trimmed text of the named child, or ok=false when the
// child is absent or has no text.
func (f *fields) text(name string) (string, bool) {
	c := xmlutil.Child(f.el, name)
	if c == nil {
		return "", false
	}
	s := strings.TrimSpace(xmlutil.Text(c))
	return s, s != ""
}

// str returns the text of the named child, or nil when the child is absent
// or holds only whitespace.
func (f *fields) str(name string) *string {
	s := xmlutil.Text(xmlutil.Child(f.el, name))
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func (f *fields) requiredStr(name string) string {
	c := f.requiredChild(name)
	if c == nil {
		return ""
	}
	return xmlutil.Text(c)
}

func (f *fields) boolean(name string) *bool {
	s, ok := f.text(name)
	if !ok {
		return nil
	}
	b, err := parseBool(s)
	if err != nil {
		f.fail(&InvalidValueError{Element: name, Value: s, Err: err})
		return nil
	}
	return &b
}

func (f *fields) integer(name string) *int64 {
	s, ok := f.text(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f.fail(&InvalidValueError{Element: name, Value: s, Err: err})
		return nil
	}
	return &n
}

func (f *fields) dateTime(name string) *time.Time {
	s, ok := f.text(name)
	if !ok {
		return nil
	}
	t, err := parseDateTime(s)
	if err != nil {
		f.fail(&InvalidValueError{Element: name, Value: s, Err: err})
		return nil
	}
	return &t
}

func (f *fields) duration(name string) *time.Duration {
	s, ok := f.text(name)
	if !ok {
		return nil
	}
	d, err := ParseDuration(s)
	if err != nil {
		f.fail(&InvalidValueError{Element: name, Value: s, Err: err})
		return nil
	}
	return &d
}

func (f *fields) enumValue(set *enum.Set, name string) *enum.Value {
	s, ok := f.text(name)
	if !ok {
		return nil
	}
	v, err := set.Parse(s)
	if err != nil {
		f.fail(&InvalidValueError{Element: name, Value: s, Err: err})
		return nil
	}
	return &v
}

func (f *fields) objectReference(name string) *ObjectReference {
	c := xmlutil.Child(f.el, name)
	if c == nil {
		return nil
	}
	return ParseObjectReference(c.ChildElements())
}

func (f *fields) requiredObjectReference(name string) *ObjectReference {
	c := f.requiredChild(name)
	if c == nil {
		return nil
	}
	return ParseObjectReference(c.ChildElements())
}

// list returns the named children of the named wrapper element.
func (f *fields) list(wrapper, item string) []*etree.Element {
	return xmlutil.Children(xmlutil.Child(f.el, wrapper), item)
}

func parseBool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errNotBoolean
}

func parseDateTime(s string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}
