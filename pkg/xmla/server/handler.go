package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/logging"
	"github.com/getmockd/xmlad/pkg/metrics"
	"github.com/getmockd/xmlad/pkg/xmla/command"
	"github.com/getmockd/xmlad/pkg/xmla/discover"
	"github.com/getmockd/xmlad/pkg/xmla/engine"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/getmockd/xmlad/pkg/xmla/session"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// Interface compliance check.
var _ http.Handler = (*Handler)(nil)

// Handler serves XMLA over SOAP 1.1.
type Handler struct {
	engine      engine.Engine
	sessions    *session.Manager
	rows        rowsetWriter
	log         *slog.Logger
	metrics     *metrics.XMLA
	prefix      string
	actor       string
	maxBodySize int64
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithNameEncoder sets the encoder shared by every rowset the handler writes.
func WithNameEncoder(enc *xmlutil.NameEncoder) Option {
	return func(h *Handler) {
		if enc != nil {
			h.rows.names = enc
		}
	}
}

// WithMaxBodySize limits the request body. Larger requests are rejected
// with a RequestInput fault.
func WithMaxBodySize(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodySize = n
		}
	}
}

// WithFaultActor sets the faultactor written into faults.
func WithFaultActor(actor string) Option {
	return func(h *Handler) {
		if actor != "" {
			h.actor = actor
		}
	}
}

// WithMetrics records request counts, faults and latency into m.
func WithMetrics(m *metrics.XMLA) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// NewHandler creates a handler that answers from eng and keeps sessions
// through sessions.
func NewHandler(eng engine.Engine, sessions *session.Manager, opts ...Option) *Handler {
	h := &Handler{
		engine:      eng,
		sessions:    sessions,
		rows:        rowsetWriter{names: xmlutil.NewNameEncoder()},
		log:         logging.Nop(),
		prefix:      fault.DefaultPrefix,
		actor:       defaultFaultActor,
		maxBodySize: defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	start := time.Now()
	defer func() { _ = r.Body.Close() }()

	method, sess, out, f := h.handle(r)
	if f != nil {
		h.writeFault(r.Context(), w, f, sess)
		h.metrics.Observe(method, f.Code, time.Since(start))
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
	h.metrics.Observe(method, "", time.Since(start))
}

// handle runs one request through to the serialized response envelope. The
// returned method is the local name of the Body element, or "" when the
// envelope could not be read. The returned session is set once the headers
// have been processed, so a fault after that point still reports it.
func (h *Handler) handle(r *http.Request) (string, *session.Session, []byte, *fault.Fault) {
	ctx := r.Context()
	body, err := h.readBody(r.Body)
	if err != nil {
		return "", nil, nil, fault.Wrap(err, fault.RequestInput)
	}

	req, err := parseEnvelope(body)
	if err != nil {
		return "", nil, nil, fault.Wrap(err, fault.UnmarshalUnknown)
	}
	method := req.method.Tag

	if f := h.sessions.CheckMustUnderstand(req.header); f != nil {
		return method, nil, nil, f
	}
	sess := h.sessions.ProcessHeaders(ctx, req.header, callerOf(r))

	env := newEnvelope(h.prefix)
	h.sessions.AddResponseHeader(env.header, sess)

	if ns := req.method.NamespaceURI(); ns != XMLANamespace {
		return method, sess, nil, fault.Newf(fault.BadMethodNamespace, "method %s in namespace %q", method, ns)
	}

	var ferr *fault.Fault
	switch method {
	case "Discover":
		ferr = h.discover(ctx, req.method, sess, env)
	case "Execute":
		ferr = h.execute(ctx, req.method, sess, env)
	default:
		ferr = fault.Newf(fault.BadMethod, "unknown method %s", method)
	}
	if ferr != nil {
		return method, sess, nil, ferr
	}

	out, err := env.bytes()
	if err != nil {
		return method, sess, nil, fault.New(fault.MarshalUnknown, err)
	}
	h.log.DebugContext(ctx, "xmla request served",
		"method", method,
		"session", sessionID(sess),
		"bytes", len(out),
	)
	return method, sess, out, nil
}

func (h *Handler) discover(ctx context.Context, method *etree.Element, sess *session.Session, env *envelope) *fault.Fault {
	req, err := discover.ParseRequest(method)
	if err != nil {
		return fault.Wrap(err, fault.BodyProcess)
	}
	h.log.Debug("discover", "requestType", req.RequestType, "restrictions", req.Restrictions.Len())

	rs, err := h.engine.Discover(ctx, req, sess)
	if err != nil {
		return fault.Wrap(err, fault.DiscoverUnparse)
	}
	if rs == nil {
		rs = engine.NewRowset()
	}
	if err := rs.Validate(); err != nil {
		return fault.New(fault.DiscoverFormat, err)
	}

	h.rows.write(env.methodResponse("Discover"), rs)
	return nil
}

func (h *Handler) execute(ctx context.Context, method *etree.Element, sess *session.Session, env *envelope) *fault.Fault {
	req, err := command.ParseExecute(method)
	if err != nil {
		return fault.Wrap(err, fault.BodyProcess)
	}
	if req.Command == nil {
		return fault.Newf(fault.BadCommand, "unsupported command %s", req.CommandName)
	}
	h.log.Debug("execute", "command", req.Command.Kind(), "parameters", len(req.Parameters))

	res, err := h.engine.Execute(ctx, req, sess)
	if err != nil {
		return fault.Wrap(err, fault.ExecuteQuery)
	}

	ret := env.methodResponse("Execute")
	if res == nil || res.Rowset == nil {
		writeEmpty(ret)
		return nil
	}
	if err := res.Rowset.Validate(); err != nil {
		return fault.New(fault.ExecuteUnparse, err)
	}
	h.rows.write(ret, res.Rowset)
	return nil
}

var errBodyTooLarge = errors.New("request body too large")

func (h *Handler) readBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, h.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	if int64(len(body)) > h.maxBodySize {
		return nil, errBodyTooLarge
	}
	return body, nil
}

// writeFault answers with a fault envelope. An active session, including one
// opened by this request's BeginSession, is still returned in the header.
func (h *Handler) writeFault(ctx context.Context, w http.ResponseWriter, f *fault.Fault, sess *session.Session) {
	level := slog.LevelWarn
	if f.FaultCode == fault.Server {
		level = slog.LevelError
	}
	h.log.Log(ctx, level, "xmla fault", "code", f.Code, "faultcode", f.FaultCode, "error", f.Error())

	env := newEnvelope(h.prefix)
	h.sessions.AddResponseHeader(env.header, sess)
	env.fault(f, h.actor)
	out, err := env.bytes()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(out)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// callerOf identifies the sender. Basic auth credentials are read but not
// verified.
func callerOf(r *http.Request) session.Caller {
	user, _, _ := r.BasicAuth()
	return session.Caller{User: user, Addr: r.RemoteAddr}
}

func sessionID(s *session.Session) string {
	if s == nil {
		return ""
	}
	return s.SessionID
}
