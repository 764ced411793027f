package session

import "context"

// Namespace is the XMLA namespace of the session header elements.
const Namespace = "urn:schemas-microsoft-com:xml-analysis"

// Header element and attribute names.
const (
	ElementSession      = "Session"
	ElementBeginSession = "BeginSession"
	ElementEndSession   = "EndSession"

	AttrSessionID      = "SessionId"
	AttrMustUnderstand = "mustUnderstand"
)

// Session correlates a sequence of requests into one logical connection.
// Values are never modified after creation.
type Session struct {
	SessionID      string
	MustUnderstand *int
}

// BeginSession is a request to open a session.
type BeginSession struct {
	MustUnderstand *int
}

// EndSession is a request to close a session.
type EndSession struct {
	SessionID      string
	MustUnderstand *int
}

// Caller identifies who sent a request. Fields are informational; the
// session layer does not authenticate.
type Caller struct {
	User string
	Addr string
}

// Service owns session storage and expiry. Implementations are called
// concurrently from request goroutines.
type Service interface {
	// BeginSession opens a session, or returns nil when none can be opened.
	BeginSession(ctx context.Context, req BeginSession, caller Caller) *Session
	// CheckSession reports whether s is still valid for caller.
	CheckSession(ctx context.Context, s Session, caller Caller) bool
	// EndSession closes a session. Unknown ids are ignored.
	EndSession(ctx context.Context, req EndSession, caller Caller)
}
