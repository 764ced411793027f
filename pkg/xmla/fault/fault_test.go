package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFaultCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		fc     FaultCode
		code   string
		want   string
	}{
		{"SOAP-ENV", Client, "00HSBB04", "SOAP-ENV:Client.00HSBB04"},
		{"soap", Server, "00UE001", "soap:Server.00UE001"},
		{"SOAP-ENV", MustUnderstand, "00HSHA01", "SOAP-ENV:MustUnderstand.00HSHA01"},
		{"x", VersionMismatch, "", "x:VersionMismatch."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatFaultCode(tt.prefix, tt.fc, tt.code))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	f := New(BadRequestType, cause)

	assert.Equal(t, Client, f.FaultCode)
	assert.Equal(t, "00HSBB04", f.Code)
	assert.Equal(t, BadRequestType.Message, f.FaultString)
	assert.Same(t, cause, f.Unwrap())
	assert.True(t, f.Matches(BadRequestType))
	assert.False(t, f.Matches(BadRestrictions))
	assert.Contains(t, f.Error(), "boom")
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Wrap(nil, BodyUnknown))

	plain := errors.New("nil pointer")
	f := Wrap(plain, BodyUnknown)
	require.NotNil(t, f)
	assert.True(t, f.Matches(BodyUnknown))
	assert.Same(t, plain, f.Cause)

	inner := New(ConnectionDataSource, errors.New("no such datasource"))
	wrapped := fmt.Errorf("discover: %w", inner)
	assert.Same(t, inner, Wrap(wrapped, BodyUnknown))
}

func TestErrorsIs(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("parse: %w", New(BadCommand, nil))
	assert.ErrorIs(t, err, New(BadCommand, nil))
	assert.NotErrorIs(t, err, New(BadStatement, nil))
}

type emptyError struct{}

func (emptyError) Error() string { return "" }

func TestDetail(t *testing.T) {
	t.Parallel()

	t.Run("root cause message", func(t *testing.T) {
		root := errors.New("column [Foo] not found")
		f := New(ExecuteQuery, fmt.Errorf("execute: %w", root))
		assert.Equal(t, "column [Foo] not found", Detail(f))
	})

	t.Run("no cause uses fault text", func(t *testing.T) {
		f := New(BadCommand, nil)
		assert.Equal(t, f.Error(), Detail(f))
	})

	t.Run("empty message uses type name", func(t *testing.T) {
		f := New(Unknown, emptyError{})
		d := Detail(f)
		assert.NotEmpty(t, d)
		assert.Contains(t, d, "emptyError")
	})

	t.Run("nil fault", func(t *testing.T) {
		assert.Equal(t, "", Detail(nil))
	})
}

func TestEntriesAreUnique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, e := range Entries() {
		assert.False(t, seen[e.Code], "duplicate code %s", e.Code)
		seen[e.Code] = true
		assert.NotEmpty(t, e.Message)
		assert.Contains(t, []FaultCode{VersionMismatch, MustUnderstand, Client, Server}, e.FaultCode)
	}
	assert.GreaterOrEqual(t, len(seen), 40)

	e, ok := Lookup("00HSBB07")
	assert.True(t, ok)
	assert.Equal(t, BadCommand, e)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}
