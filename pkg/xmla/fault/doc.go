// Package fault defines the SOAP fault taxonomy reported by the XMLA server.
//
// Every failure site in the protocol layer maps to a fixed Entry: a SOAP 1.1
// fault category, a short code unique to the site, and a human readable
// message. Entries are looked up by call site, never computed.
//
// # Usage
//
//	f := fault.New(fault.BadRequestType, err)
//	code := fault.FormatFaultCode(fault.DefaultPrefix, f.FaultCode, f.Code)
//	// "SOAP-ENV:Client.00HSBB04"
//
// Errors that are not already faults are wrapped under the unknown entry of the
// subsystem that caught them:
//
//	f := fault.Wrap(err, fault.BodyUnknown)
package fault
