// Package session interprets the XMLA session headers of a SOAP request.
//
// A request may carry one of three header elements in the XMLA namespace:
//
//	<Session SessionId="..."/>      continue an existing session
//	<BeginSession/>                 ask the server to open a session
//	<EndSession SessionId="..."/>   close a session
//
// Manager checks them in that order and delegates the actual storage and
// expiry policy to a Service. A rejected or missing session is never an
// error: the request simply runs without one.
package session
