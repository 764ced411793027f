package static

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/getmockd/xmlad/pkg/config"
	"github.com/getmockd/xmlad/pkg/xmla/command"
	"github.com/getmockd/xmlad/pkg/xmla/discover"
	"github.com/getmockd/xmlad/pkg/xmla/engine"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalog() config.CatalogConfig {
	return config.CatalogConfig{
		Rowsets: []config.RowsetConfig{
			{
				RequestType: "MDSCHEMA_CUBES",
				Columns: []config.ColumnConfig{
					{Name: "CATALOG_NAME"},
					{Name: "CUBE_NAME"},
					{Name: "DESCRIPTION", Nullable: true},
				},
				Rows: []map[string]string{
					{"CATALOG_NAME": "FoodMart", "CUBE_NAME": "Sales"},
					{"CATALOG_NAME": "FoodMart", "CUBE_NAME": "Warehouse", "DESCRIPTION": "Inventory"},
					{"CATALOG_NAME": "SteelWheels", "CUBE_NAME": "Orders"},
				},
			},
			{
				RequestType: "DBSCHEMA_TABLES",
				Columns:     []config.ColumnConfig{{Name: "TABLE_CATALOG"}, {Name: "TABLE_NAME"}},
				Required:    []string{"TABLE_CATALOG"},
				Rows:        []map[string]string{{"TABLE_CATALOG": "FoodMart", "TABLE_NAME": "Sales"}},
			},
		},
		Statements: []config.StatementConfig{
			{
				Match:   "SELECT FROM [Sales]",
				Columns: []config.ColumnConfig{{Name: "[Measures].[Unit Sales]", Type: "xsd:double"}},
				Rows:    []map[string]string{{"[Measures].[Unit Sales]": "266773"}},
			},
			{
				Pattern: `(?i)^drillthrough\b`,
				Fault:   &config.FaultConfig{Code: "00HSBF01", Message: "drill-through disabled"},
			},
			{
				Match: "REFRESH CUBE [Sales]",
			},
		},
		Commands: []string{"ClearCache", "BeginTransaction"},
	}
}

func newEngine(t *testing.T, cfg config.CatalogConfig, opts ...Option) *Engine {
	t.Helper()
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e
}

func discoverRequest(requestType string, restrictions map[string]string) *discover.Request {
	m := discover.NewMap()
	for k, v := range restrictions {
		m.Set(k, v)
	}
	return &discover.Request{RequestType: requestType, Restrictions: m, Properties: discover.NewMap()}
}

func statementRequest(text string) *command.Request {
	return &command.Request{
		Command:     &command.Statement{Text: text},
		CommandName: "Statement",
		Properties:  discover.NewMap(),
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := New(config.CatalogConfig{Statements: []config.StatementConfig{{Pattern: "("}}})
	assert.Error(t, err)

	_, err = New(config.CatalogConfig{Statements: []config.StatementConfig{{
		Match: "x", Fault: &config.FaultConfig{Code: "bogus"},
	}}})
	assert.ErrorContains(t, err, "unknown fault code")
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	e := newEngine(t, catalog())
	tests := []struct {
		name         string
		restrictions map[string]string
		cubes        []string
	}{
		{"no restrictions", nil, []string{"Sales", "Warehouse", "Orders"}},
		{"by catalog", map[string]string{"CATALOG_NAME": "FoodMart"}, []string{"Sales", "Warehouse"}},
		{"by two columns", map[string]string{"CATALOG_NAME": "FoodMart", "CUBE_NAME": "Sales"}, []string{"Sales"}},
		{"nullable column", map[string]string{"DESCRIPTION": "Inventory"}, []string{"Warehouse"}},
		{"no match", map[string]string{"CATALOG_NAME": "Nope"}, nil},
		{"undeclared column ignored", map[string]string{"CUBE_SOURCE": "1"}, []string{"Sales", "Warehouse", "Orders"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rs, err := e.Discover(context.Background(), discoverRequest("MDSCHEMA_CUBES", tt.restrictions), nil)
			require.NoError(t, err)
			require.Len(t, rs.Columns, 3)
			assert.Equal(t, engine.TypeString, rs.Columns[0].Type)

			var got []string
			for _, row := range rs.Rows {
				got = append(got, row["CUBE_NAME"])
			}
			assert.Equal(t, tt.cubes, got)
			assert.NoError(t, rs.Validate())
		})
	}
}

func TestDiscover_Required(t *testing.T) {
	t.Parallel()

	e := newEngine(t, catalog())

	_, err := e.Discover(context.Background(), discoverRequest("DBSCHEMA_TABLES", nil), nil)
	var f *fault.Fault
	require.ErrorAs(t, err, &f)
	assert.True(t, f.Matches(fault.BadNonNullableColumn))

	rs, err := e.Discover(context.Background(), discoverRequest("DBSCHEMA_TABLES", map[string]string{"TABLE_CATALOG": "FoodMart"}), nil)
	require.NoError(t, err)
	assert.Len(t, rs.Rows, 1)
}

func TestDiscover_UnconfiguredRequestType(t *testing.T) {
	t.Parallel()

	e := newEngine(t, catalog())

	rs, err := e.Discover(context.Background(), discoverRequest("DISCOVER_KEYWORDS", nil), nil)
	require.NoError(t, err)
	assert.Empty(t, rs.Rows)

	_, err = e.Discover(context.Background(), discoverRequest("NOT_A_ROWSET", nil), nil)
	var f *fault.Fault
	require.ErrorAs(t, err, &f)
	assert.True(t, f.Matches(fault.BadRequestType))
}

func TestExecute_Statement(t *testing.T) {
	t.Parallel()

	e := newEngine(t, catalog())

	t.Run("match ignores case and whitespace", func(t *testing.T) {
		t.Parallel()
		res, err := e.Execute(context.Background(), statementRequest("  select\n\tFROM   [Sales] "), nil)
		require.NoError(t, err)
		require.NotNil(t, res.Rowset)
		assert.Equal(t, engine.TypeDouble, res.Rowset.Columns[0].Type)
		assert.Equal(t, "266773", res.Rowset.Rows[0]["[Measures].[Unit Sales]"])
	})

	t.Run("pattern fault", func(t *testing.T) {
		t.Parallel()
		_, err := e.Execute(context.Background(), statementRequest("DRILLTHROUGH SELECT FROM [Sales]"), nil)
		var f *fault.Fault
		require.ErrorAs(t, err, &f)
		assert.True(t, f.Matches(fault.DrillThroughNotAllowed))
		assert.Equal(t, "drill-through disabled", fault.Detail(f))
	})

	t.Run("no columns is empty", func(t *testing.T) {
		t.Parallel()
		res, err := e.Execute(context.Background(), statementRequest("refresh cube [Sales]"), nil)
		require.NoError(t, err)
		assert.Nil(t, res.Rowset)
	})

	t.Run("blank statement", func(t *testing.T) {
		t.Parallel()
		res, err := e.Execute(context.Background(), statementRequest("   "), nil)
		require.NoError(t, err)
		assert.Nil(t, res.Rowset)
	})

	t.Run("unmatched", func(t *testing.T) {
		t.Parallel()
		_, err := e.Execute(context.Background(), statementRequest("SELECT FROM [Budget]"), nil)
		require.Error(t, err)
		var f *fault.Fault
		assert.False(t, errors.As(err, &f))
		assert.ErrorContains(t, err, "[Budget]")
	})
}

func TestExecute_Commands(t *testing.T) {
	t.Parallel()

	e := newEngine(t, catalog())
	tests := []struct {
		name string
		req  *command.Request
		ok   bool
	}{
		{"listed", &command.Request{Command: &command.ClearCache{}, CommandName: "ClearCache"}, true},
		{"listed transaction", &command.Request{Command: &command.BeginTransaction{}, CommandName: "BeginTransaction"}, true},
		{"not listed", &command.Request{Command: &command.CommitTransaction{}, CommandName: "CommitTransaction"}, false},
		{"unknown kind", &command.Request{CommandName: "Frobnicate"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := e.Execute(context.Background(), tt.req, nil)
			if tt.ok {
				require.NoError(t, err)
				assert.Nil(t, res.Rowset)
				return
			}
			var f *fault.Fault
			require.ErrorAs(t, err, &f)
			assert.True(t, f.Matches(fault.BadCommand))
		})
	}
}

func TestExecute_Delay(t *testing.T) {
	t.Parallel()

	cfg := config.CatalogConfig{Statements: []config.StatementConfig{{
		Match:   "SLOW",
		Columns: []config.ColumnConfig{{Name: "n", Type: "xsd:int"}},
		Rows:    []map[string]string{{"n": "1"}},
		Delay:   config.Duration(5 * time.Second),
	}}}
	mock := clock.NewMock()
	e := newEngine(t, cfg, WithClock(mock))

	done := make(chan *engine.Result, 1)
	go func() {
		res, err := e.Execute(context.Background(), statementRequest("slow"), nil)
		assert.NoError(t, err)
		done <- res
	}()

	var res *engine.Result
	assert.Eventually(t, func() bool {
		mock.Add(5 * time.Second)
		select {
		case res = <-done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
	require.NotNil(t, res)
	assert.Len(t, res.Rowset.Rows, 1)
}

func TestExecute_DelayCancelled(t *testing.T) {
	t.Parallel()

	cfg := config.CatalogConfig{Statements: []config.StatementConfig{{
		Match: "SLOW",
		Delay: config.Duration(time.Hour),
	}}}
	e := newEngine(t, cfg, WithClock(clock.NewMock()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Execute(ctx, statementRequest("SLOW"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_NilOptionsKeepDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.CatalogConfig{Statements: []config.StatementConfig{{
		Match:   "SLOW",
		Columns: []config.ColumnConfig{{Name: "n", Type: "xsd:int"}},
		Rows:    []map[string]string{{"n": "1"}},
		Delay:   config.Duration(time.Millisecond),
	}}}
	e := newEngine(t, cfg, WithClock(nil), WithLogger(nil))

	res, err := e.Execute(context.Background(), statementRequest("SLOW"), nil)
	require.NoError(t, err)
	require.NotNil(t, res.Rowset)
	assert.Len(t, res.Rowset.Rows, 1)
}
