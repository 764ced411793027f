package session

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/logging"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// Manager applies the session header rules of one server.
type Manager struct {
	svc    Service
	logger *slog.Logger
}

// NewManager creates a manager that delegates to svc. A nil logger disables
// logging.
func NewManager(svc Service, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{svc: svc, logger: logger}
}

// ProcessHeaders returns the session the request runs in, or nil for a
// stateless request.
//
// A Session element wins over BeginSession, which wins over EndSession. A
// Session the service rejects yields nil, BeginSession yields whatever the
// service creates, and EndSession always yields nil after the service has
// closed the session.
func (m *Manager) ProcessHeaders(ctx context.Context, header *etree.Element, caller Caller) *Session {
	if header == nil {
		return nil
	}

	if el := xmlutil.Child(header, ElementSession); el != nil {
		s := Session{
			SessionID:      sessionID(el),
			MustUnderstand: mustUnderstand(el),
		}
		if !m.svc.CheckSession(ctx, s, caller) {
			m.logger.Debug("session rejected", "sessionId", s.SessionID, "user", caller.User)
			return nil
		}
		m.logger.Debug("session continued", "sessionId", s.SessionID)
		return &s
	}

	if el := xmlutil.Child(header, ElementBeginSession); el != nil {
		s := m.svc.BeginSession(ctx, BeginSession{MustUnderstand: mustUnderstand(el)}, caller)
		if s == nil {
			m.logger.Debug("session not created", "user", caller.User)
			return nil
		}
		m.logger.Debug("session created", "sessionId", s.SessionID, "user", caller.User)
		return s
	}

	if el := xmlutil.Child(header, ElementEndSession); el != nil {
		req := EndSession{
			SessionID:      sessionID(el),
			MustUnderstand: mustUnderstand(el),
		}
		m.svc.EndSession(ctx, req, caller)
		m.logger.Debug("session ended", "sessionId", req.SessionID)
	}

	return nil
}

// AddResponseHeader adds a Session element for s to header. With a nil
// session the header is left empty.
func (m *Manager) AddResponseHeader(header *etree.Element, s *Session) {
	if header == nil || s == nil {
		return
	}
	el := header.CreateElement(ElementSession)
	el.CreateAttr("xmlns", Namespace)
	el.CreateAttr(AttrSessionID, s.SessionID)
}

// CheckMustUnderstand returns a MustUnderstand fault for the first header
// element that is not a session header but is marked mustUnderstand="1".
func (m *Manager) CheckMustUnderstand(header *etree.Element) *fault.Fault {
	if header == nil {
		return nil
	}
	for _, el := range header.ChildElements() {
		switch el.Tag {
		case ElementSession, ElementBeginSession, ElementEndSession:
			continue
		}
		if mu := mustUnderstand(el); mu != nil && *mu == 1 {
			m.logger.Debug("header not understood", "element", el.Tag)
			return fault.Newf(fault.HeaderMustUnderstand, "header element %s not understood", el.Tag)
		}
	}
	return nil
}

func sessionID(el *etree.Element) string {
	v, _ := xmlutil.Attr(el, AttrSessionID)
	return strings.TrimSpace(v)
}

// mustUnderstand reads the attribute under any prefix. Values that are not
// integers are treated as absent.
func mustUnderstand(el *etree.Element) *int {
	v, ok := xmlutil.Attr(el, AttrMustUnderstand)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &n
}
