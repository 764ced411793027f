// Package server binds the XMLA core to HTTP.
//
// Handler accepts SOAP 1.1 POST requests whose body holds a Discover or
// Execute element, runs the session header rules, parses the method into a
// typed request, hands it to an engine and writes the response envelope.
// Every failure is reported as a SOAP Fault with HTTP status 500:
//
//	<SOAP-ENV:Fault>
//	  <faultcode>SOAP-ENV:Client.00HSBB07</faultcode>
//	  <faultstring>XMLA SOAP bad Execute Command element</faultstring>
//	  <faultactor>xmlad</faultactor>
//	  <detail>
//	    <XA:error xmlns:XA="http://mondrian.sourceforge.net">
//	      <code>00HSBB07</code>
//	      <desc>unsupported command Frobnicate</desc>
//	    </XA:error>
//	  </detail>
//	</SOAP-ENV:Fault>
//
// Rowset column names are encoded into legal XML names with an injected
// xmlutil.NameEncoder; the logical name is kept in the schema's sql:field
// attribute.
package server
