package config

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/getmockd/xmlad/pkg/xmla/command"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
)

// ValidationError reports an invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// validColumnTypes are the XML Schema types a column may declare.
var validColumnTypes = map[string]bool{
	"":             true,
	"xsd:string":   true,
	"xsd:int":      true,
	"xsd:long":     true,
	"xsd:double":   true,
	"xsd:decimal":  true,
	"xsd:boolean":  true,
	"xsd:dateTime": true,
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

var validLogFormats = map[string]bool{
	"text": true,
	"json": true,
}

// Validate checks the whole configuration and joins every problem found.
func (c *Config) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Server.Addr == "" {
		add("server.addr", "must not be empty")
	}
	if !strings.HasPrefix(c.Server.Path, "/") {
		add("server.path", "must start with '/', got %q", c.Server.Path)
	}
	if mp := c.Server.MetricsPath; mp != "" {
		if !strings.HasPrefix(mp, "/") {
			add("server.metricsPath", "must start with '/', got %q", mp)
		} else if mp == c.Server.Path {
			add("server.metricsPath", "must differ from server.path")
		}
	}
	if c.Server.MaxBodySize <= 0 {
		add("server.maxBodySize", "must be positive, got %d", c.Server.MaxBodySize)
	}
	if c.Session.TTL < 0 {
		add("session.ttl", "must not be negative")
	}
	if c.Session.MaxSessions < 0 {
		add("session.maxSessions", "must not be negative")
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		add("log.level", "must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if !validLogFormats[strings.ToLower(c.Log.Format)] {
		add("log.format", "must be text or json, got %q", c.Log.Format)
	}

	errs = append(errs, c.Catalog.validate()...)
	return errors.Join(errs...)
}

func (c *CatalogConfig) validate() []error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	seen := make(map[string]bool)
	for i, rs := range c.Rowsets {
		field := fmt.Sprintf("catalog.rowsets[%d]", i)
		if rs.RequestType == "" {
			add(field+".requestType", "must not be empty")
		} else if seen[rs.RequestType] {
			add(field+".requestType", "duplicate request type %s", rs.RequestType)
		}
		seen[rs.RequestType] = true
		errs = append(errs, validateTable(field, rs.Columns, rs.Rows)...)
		names := columnNames(rs.Columns)
		for _, r := range rs.Required {
			if !slices.Contains(names, r) {
				add(field+".required", "restriction %s is not a column", r)
			}
		}
	}

	for i, st := range c.Statements {
		field := fmt.Sprintf("catalog.statements[%d]", i)
		switch {
		case st.Match == "" && st.Pattern == "":
			add(field, "one of match or pattern is required")
		case st.Match != "" && st.Pattern != "":
			add(field, "match and pattern are mutually exclusive")
		case st.Pattern != "":
			if _, err := regexp.Compile(st.Pattern); err != nil {
				add(field+".pattern", "%v", err)
			}
		}
		if st.Fault != nil {
			if _, ok := fault.Lookup(st.Fault.Code); !ok {
				add(field+".fault.code", "unknown fault code %q", st.Fault.Code)
			}
			if len(st.Rows) > 0 {
				add(field, "rows and fault are mutually exclusive")
			}
		}
		if st.Delay < 0 {
			add(field+".delay", "must not be negative")
		}
		errs = append(errs, validateTable(field, st.Columns, st.Rows)...)
	}

	kinds := command.Kinds()
	for i, k := range c.Commands {
		if !slices.Contains(kinds, command.Kind(k)) {
			add(fmt.Sprintf("catalog.commands[%d]", i), "unknown command %q", k)
		}
	}
	return errs
}

func validateTable(field string, columns []ColumnConfig, rows []map[string]string) []error {
	var errs []error
	names := columnNames(columns)
	for j, col := range columns {
		if col.Name == "" {
			errs = append(errs, &ValidationError{Field: fmt.Sprintf("%s.columns[%d].name", field, j), Message: "must not be empty"})
		}
		if !validColumnTypes[col.Type] {
			errs = append(errs, &ValidationError{Field: fmt.Sprintf("%s.columns[%d].type", field, j), Message: fmt.Sprintf("unsupported type %q", col.Type)})
		}
	}
	for j, row := range rows {
		for k := range row {
			if !slices.Contains(names, k) {
				errs = append(errs, &ValidationError{Field: fmt.Sprintf("%s.rows[%d]", field, j), Message: fmt.Sprintf("undeclared column %q", k)})
			}
		}
	}
	return errs
}

func columnNames(columns []ColumnConfig) []string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return names
}
