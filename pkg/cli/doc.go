// Package cli implements the xmlad command line.
//
// Commands:
//
//	xmlad serve        run the XMLA endpoint over a configured catalog
//	xmlad parse        decode an Execute or Discover request and print it as YAML
//	xmlad encode-name  show the XML element name written for a column name
//	xmlad version      print build information
package cli
