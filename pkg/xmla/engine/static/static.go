package static

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/getmockd/xmlad/pkg/config"
	"github.com/getmockd/xmlad/pkg/logging"
	"github.com/getmockd/xmlad/pkg/xmla/command"
	"github.com/getmockd/xmlad/pkg/xmla/discover"
	"github.com/getmockd/xmlad/pkg/xmla/engine"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/getmockd/xmlad/pkg/xmla/session"
	"github.com/samber/lo"
)

// Engine answers requests from a catalog.
type Engine struct {
	rowsets    map[string]*rowset
	statements []*statement
	commands   map[command.Kind]bool
	clock      clock.Clock
	log        *slog.Logger
}

type rowset struct {
	columns  []engine.Column
	required []string
	rows     []engine.Row
}

type statement struct {
	match   string
	pattern *regexp.Regexp
	columns []engine.Column
	rows    []engine.Row
	fault   *fault.Fault
	delay   time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithClock sets the clock used for statement delays. A nil clock is ignored.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// New builds an engine from cfg. The catalog should have passed
// config.Validate; New still rejects patterns and fault codes it cannot use.
func New(cfg config.CatalogConfig, opts ...Option) (*Engine, error) {
	e := &Engine{
		rowsets:  make(map[string]*rowset, len(cfg.Rowsets)),
		commands: make(map[command.Kind]bool, len(cfg.Commands)),
		clock:    clock.New(),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, rc := range cfg.Rowsets {
		e.rowsets[rc.RequestType] = &rowset{
			columns:  columns(rc.Columns),
			required: rc.Required,
			rows:     rows(rc.Rows),
		}
	}

	for i, sc := range cfg.Statements {
		st := &statement{
			match:   normalize(sc.Match),
			columns: columns(sc.Columns),
			rows:    rows(sc.Rows),
			delay:   sc.Delay.Std(),
		}
		if sc.Pattern != "" {
			re, err := regexp.Compile(sc.Pattern)
			if err != nil {
				return nil, fmt.Errorf("statement %d: %w", i, err)
			}
			st.pattern = re
		}
		if sc.Fault != nil {
			entry, ok := fault.Lookup(sc.Fault.Code)
			if !ok {
				return nil, fmt.Errorf("statement %d: unknown fault code %q", i, sc.Fault.Code)
			}
			st.fault = fault.New(entry, errors.New(sc.Fault.Message))
		}
		e.statements = append(e.statements, st)
	}

	for _, k := range cfg.Commands {
		e.commands[command.Kind(k)] = true
	}
	return e, nil
}

// Discover returns the rowset configured for the request type, keeping the
// rows that match every restriction on a declared column.
func (e *Engine) Discover(ctx context.Context, req *discover.Request, _ *session.Session) (*engine.Rowset, error) {
	rs, ok := e.rowsets[req.RequestType]
	if !ok {
		if _, known := req.Known(); known {
			e.log.DebugContext(ctx, "no rowset configured", "requestType", req.RequestType)
			return engine.NewRowset(), nil
		}
		return nil, fault.Newf(fault.BadRequestType, "unsupported request type %s", req.RequestType)
	}

	for _, name := range rs.required {
		if _, ok := req.Restrictions.Get(name); !ok {
			return nil, fault.Newf(fault.BadNonNullableColumn, "restriction %s is required", name)
		}
	}

	restrictions := lo.PickBy(req.Restrictions.ToMap(), func(k, _ string) bool {
		return lo.ContainsBy(rs.columns, func(c engine.Column) bool { return c.Name == k })
	})
	out := engine.NewRowset(rs.columns...)
	out.Rows = lo.Filter(rs.rows, func(row engine.Row, _ int) bool {
		for k, want := range restrictions {
			if got, ok := row[k]; !ok || got != want {
				return false
			}
		}
		return true
	})
	return out, nil
}

// Execute answers Statement commands from the configured statements and
// acknowledges the configured command kinds.
func (e *Engine) Execute(ctx context.Context, req *command.Request, _ *session.Session) (*engine.Result, error) {
	if req.Command == nil {
		return nil, fault.Newf(fault.BadCommand, "unsupported command %s", req.CommandName)
	}

	stmt, ok := req.Command.(*command.Statement)
	if !ok {
		if e.commands[req.Command.Kind()] {
			return engine.Empty(), nil
		}
		return nil, fault.Newf(fault.BadCommand, "command %s is not supported", req.Command.Kind())
	}

	text := strings.TrimSpace(stmt.Text)
	if text == "" {
		return engine.Empty(), nil
	}

	st := e.lookup(text)
	if st == nil {
		return nil, fmt.Errorf("no answer for statement %q", text)
	}
	e.log.DebugContext(ctx, "statement matched", "statement", text)

	if st.delay > 0 {
		timer := e.clock.Timer(st.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		}
	}

	if st.fault != nil {
		return nil, st.fault
	}
	if len(st.columns) == 0 {
		return engine.Empty(), nil
	}
	rs := engine.NewRowset(st.columns...)
	rs.Rows = st.rows
	return &engine.Result{Rowset: rs}, nil
}

func (e *Engine) lookup(text string) *statement {
	norm := normalize(text)
	st, _ := lo.Find(e.statements, func(st *statement) bool {
		if st.pattern != nil {
			return st.pattern.MatchString(text)
		}
		return st.match == norm
	})
	return st
}

// normalize folds case and collapses runs of whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func columns(in []config.ColumnConfig) []engine.Column {
	return lo.Map(in, func(c config.ColumnConfig, _ int) engine.Column {
		t := engine.ColumnType(c.Type)
		if t == "" {
			t = engine.TypeString
		}
		return engine.Column{Name: c.Name, Type: t, Nullable: c.Nullable}
	})
}

func rows(in []map[string]string) []engine.Row {
	return lo.Map(in, func(r map[string]string, _ int) engine.Row { return engine.Row(r) })
}
