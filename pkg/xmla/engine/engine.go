// Package engine declares the ports through which the XMLA front end hands
// parsed requests to a metadata catalog and an execution engine.
package engine

import (
	"context"

	"github.com/getmockd/xmlad/pkg/xmla/command"
	"github.com/getmockd/xmlad/pkg/xmla/discover"
	"github.com/getmockd/xmlad/pkg/xmla/session"
)

// Discoverer answers Discover requests. Returned errors that are not a
// *fault.Fault are reported as DiscoverUnparse faults.
type Discoverer interface {
	Discover(ctx context.Context, req *discover.Request, s *session.Session) (*Rowset, error)
}

// Executor runs Execute commands. Returned errors that are not a
// *fault.Fault are reported as ExecuteQuery faults.
type Executor interface {
	Execute(ctx context.Context, req *command.Request, s *session.Session) (*Result, error)
}

// Engine is a backend that serves both methods.
type Engine interface {
	Discoverer
	Executor
}
