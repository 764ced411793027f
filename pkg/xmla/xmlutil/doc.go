// Package xmlutil holds the XML text and name helpers shared by the XMLA
// protocol layer: element-name escaping for rowset columns, numeric string
// normalization, error cause unwrapping and local-name lookups over etree
// elements.
package xmlutil
