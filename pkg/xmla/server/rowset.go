package server

import (
	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/engine"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// rowsetWriter renders engine rowsets as XMLA rowset XML.
type rowsetWriter struct {
	names *xmlutil.NameEncoder
}

// write adds a rowset root under parent:
//
//	<root xmlns="...:rowset">
//	  <xsd:schema>...</xsd:schema>
//	  <row><CATALOG_NAME>FoodMart</CATALOG_NAME></row>
//	</root>
//
// Null values are omitted. Numeric columns are written normalized.
func (w *rowsetWriter) write(parent *etree.Element, rs *engine.Rowset) {
	root := parent.CreateElement("root")
	root.CreateAttr("xmlns", RowsetNamespace)
	root.CreateAttr("xmlns:xsi", XSINamespace)
	root.CreateAttr("xmlns:xsd", XSDNamespace)

	encoded := make([]string, len(rs.Columns))
	for i, c := range rs.Columns {
		encoded[i] = w.names.Encode(c.Name)
	}

	w.schema(root, rs.Columns, encoded)

	for _, r := range rs.Rows {
		row := root.CreateElement("row")
		for i, c := range rs.Columns {
			v, ok := r[c.Name]
			if !ok {
				continue
			}
			if c.Type.Numeric() {
				v = xmlutil.NormalizeNumericString(v)
			}
			row.CreateElement(encoded[i]).SetText(v)
		}
	}
}

func (w *rowsetWriter) schema(root *etree.Element, columns []engine.Column, encoded []string) {
	s := root.CreateElement("xsd:schema")
	s.CreateAttr("targetNamespace", RowsetNamespace)
	s.CreateAttr("xmlns:sql", SQLNamespace)
	s.CreateAttr("elementFormDefault", "qualified")

	seq := s.CreateElement("xsd:element")
	seq.CreateAttr("name", "root")
	rows := seq.CreateElement("xsd:complexType").CreateElement("xsd:sequence")
	rows.CreateAttr("minOccurs", "0")
	rows.CreateAttr("maxOccurs", "unbounded")
	rowRef := rows.CreateElement("xsd:element")
	rowRef.CreateAttr("name", "row")
	rowRef.CreateAttr("type", "row")

	rowType := s.CreateElement("xsd:complexType")
	rowType.CreateAttr("name", "row")
	cols := rowType.CreateElement("xsd:sequence")
	for i, c := range columns {
		el := cols.CreateElement("xsd:element")
		el.CreateAttr("sql:field", c.Name)
		el.CreateAttr("name", encoded[i])
		typ := c.Type
		if typ == "" {
			typ = engine.TypeString
		}
		el.CreateAttr("type", string(typ))
		if c.Nullable {
			el.CreateAttr("minOccurs", "0")
		}
	}
}

// writeEmpty adds an empty root in the empty-result namespace.
func writeEmpty(parent *etree.Element) {
	parent.CreateElement("root").CreateAttr("xmlns", EmptyNamespace)
}
