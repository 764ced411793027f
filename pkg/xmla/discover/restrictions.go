package discover

import (
	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// RestrictionMap flattens the RestrictionList child of a Restrictions element.
// Each element child of the list contributes {localName: text}; an empty
// element still contributes its key. Without a RestrictionList the map is
// empty.
func RestrictionMap(restrictions *etree.Element) *Map {
	return listMap(restrictions, "RestrictionList")
}

// PropertyMap flattens the PropertyList child of a Properties element.
func PropertyMap(properties *etree.Element) *Map {
	return listMap(properties, "PropertyList")
}

func listMap(parent *etree.Element, listName string) *Map {
	m := NewMap()
	list := xmlutil.Child(parent, listName)
	if list == nil {
		return m
	}
	for _, c := range list.ChildElements() {
		m.Set(c.Tag, xmlutil.TextContent(c))
	}
	return m
}
