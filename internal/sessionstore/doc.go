// Package sessionstore is the in-memory session.Service used by xmlad serve.
//
// Sessions get random UUID identifiers, belong to the user that opened them
// and expire after a period without requests. Expired sessions are removed
// lazily on access and by the background sweep started with Run.
package sessionstore
