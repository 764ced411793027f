package command

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

// elements parses s and returns the children of its root element.
func elements(t *testing.T, s string) []*etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString("<Command>"+s+"</Command>"))
	return doc.Root().ChildElements()
}

func mustParse[T Command](t *testing.T, s string) T {
	t.Helper()
	cmd, err := Parse(elements(t, s))
	require.NoError(t, err)
	require.NotNil(t, cmd)
	c, ok := cmd.(T)
	require.True(t, ok, "got %T", cmd)
	return c
}

func ptr[T any](v T) *T { return &v }
