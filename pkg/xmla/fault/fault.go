package fault

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// DefaultPrefix is the namespace prefix bound to the SOAP envelope namespace
// in responses written by this server.
const DefaultPrefix = "SOAP-ENV"

// FaultCode is a SOAP 1.1 fault category.
type FaultCode string

// SOAP 1.1 fault categories.
const (
	VersionMismatch FaultCode = "VersionMismatch"
	MustUnderstand  FaultCode = "MustUnderstand"
	Client          FaultCode = "Client"
	Server          FaultCode = "Server"
)

// Fault is an XMLA protocol error destined for a SOAP Fault element.
type Fault struct {
	FaultCode   FaultCode
	Code        string
	FaultString string
	Cause       error
}

// New creates a fault for a table entry, optionally wrapping the underlying error.
func New(e Entry, cause error) *Fault {
	return &Fault{
		FaultCode:   e.FaultCode,
		Code:        e.Code,
		FaultString: e.Message,
		Cause:       cause,
	}
}

// Newf creates a fault for a table entry whose cause is a formatted error.
func Newf(e Entry, format string, args ...any) *Fault {
	return New(e, fmt.Errorf(format, args...))
}

// Wrap returns err as a *Fault. Errors that already are (or wrap) a fault are
// returned as that fault; anything else is wrapped under fallback.
func Wrap(err error, fallback Entry) *Fault {
	if err == nil {
		return nil
	}
	var f *Fault
	if errors.As(err, &f) {
		return f
	}
	return New(fallback, err)
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Cause != nil {
		return fmt.Sprintf("%s.%s: %s: %v", f.FaultCode, f.Code, f.FaultString, f.Cause)
	}
	return fmt.Sprintf("%s.%s: %s", f.FaultCode, f.Code, f.FaultString)
}

// Unwrap returns the wrapped cause.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// Is reports whether target is a fault with the same category and code.
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	if !ok {
		return false
	}
	return t.FaultCode == f.FaultCode && t.Code == f.Code
}

// Matches reports whether the fault was raised for the given entry.
func (f *Fault) Matches(e Entry) bool {
	return f != nil && f.FaultCode == e.FaultCode && f.Code == e.Code
}

// FormatFaultCode builds the literal SOAP faultcode text "{prefix}:{faultCode}.{code}".
func FormatFaultCode(prefix string, fc FaultCode, code string) string {
	return prefix + ":" + string(fc) + "." + code
}

// Detail returns the text placed in the fault detail: the message of the
// innermost cause, or that cause's type name when it has no message.
func Detail(f *Fault) string {
	if f == nil {
		return ""
	}
	cause := xmlutil.RootCause(f)
	if msg := cause.Error(); msg != "" {
		return msg
	}
	return typeName(cause)
}

func typeName(err error) string {
	t := reflect.TypeOf(err)
	if t == nil {
		return "error"
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}
