// Package static implements engine.Engine from a declarative catalog.
//
// Discover requests are answered from configured rowsets filtered by the
// request restrictions. Statement commands are matched against canned
// answers, either by normalized text or by regular expression, and may
// return rows, fail with a taxonomy fault, or wait before answering. Other
// commands listed in the catalog are acknowledged with an empty result.
//
// The engine is safe for concurrent use; the catalog is immutable after New.
package static
