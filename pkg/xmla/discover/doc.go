// Package discover extracts the request parameters of an XMLA Discover call.
//
// RestrictionMap and PropertyMap flatten the Restrictions/RestrictionList and
// Properties/PropertyList fragments into ordered name to value maps; the
// metadata engine uses them to filter schema rowsets.
//
//	<Restrictions>
//	  <RestrictionList>
//	    <CATALOG_NAME>Foo</CATALOG_NAME>
//	  </RestrictionList>
//	</Restrictions>
//
// yields {CATALOG_NAME: "Foo"}.
package discover
