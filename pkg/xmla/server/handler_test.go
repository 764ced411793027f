package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/metrics"
	"github.com/getmockd/xmlad/pkg/xmla/command"
	"github.com/getmockd/xmlad/pkg/xmla/discover"
	"github.com/getmockd/xmlad/pkg/xmla/engine"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/getmockd/xmlad/pkg/xmla/session"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	mu        sync.Mutex
	rowset    *engine.Rowset
	result    *engine.Result
	err       error
	discovers []*discover.Request
	executes  []*command.Request
	sessions  []*session.Session
}

func (e *fakeEngine) Discover(_ context.Context, req *discover.Request, s *session.Session) (*engine.Rowset, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.discovers = append(e.discovers, req)
	e.sessions = append(e.sessions, s)
	return e.rowset, e.err
}

func (e *fakeEngine) Execute(_ context.Context, req *command.Request, s *session.Session) (*engine.Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.executes = append(e.executes, req)
	e.sessions = append(e.sessions, s)
	return e.result, e.err
}

type fakeSessions struct {
	known map[string]bool
	next  string
	ended []string
}

func (f *fakeSessions) BeginSession(context.Context, session.BeginSession, session.Caller) *session.Session {
	if f.next == "" {
		return nil
	}
	return &session.Session{SessionID: f.next}
}

func (f *fakeSessions) CheckSession(_ context.Context, s session.Session, _ session.Caller) bool {
	return f.known[s.SessionID]
}

func (f *fakeSessions) EndSession(_ context.Context, req session.EndSession, _ session.Caller) {
	f.ended = append(f.ended, req.SessionID)
}

func newTestHandler(eng *fakeEngine, svc *fakeSessions, opts ...Option) *Handler {
	if svc == nil {
		svc = &fakeSessions{}
	}
	return NewHandler(eng, session.NewManager(svc, nil), opts...)
}

const envelopeFmt = `<?xml version="1.0" encoding="UTF-8"?>
<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/">
  <SOAP-ENV:Header>%s</SOAP-ENV:Header>
  <SOAP-ENV:Body>%s</SOAP-ENV:Body>
</SOAP-ENV:Envelope>`

func soapRequest(header, body string) string {
	return fmt.Sprintf(envelopeFmt, header, body)
}

const discoverCubes = `<Discover xmlns="urn:schemas-microsoft-com:xml-analysis">
  <RequestType>MDSCHEMA_CUBES</RequestType>
  <Restrictions><RestrictionList><CATALOG_NAME>FoodMart</CATALOG_NAME></RestrictionList></Restrictions>
  <Properties><PropertyList><Format>Tabular</Format></PropertyList></Properties>
</Discover>`

func post(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, *etree.Document) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/xmla", strings.NewReader(body))
	req.Header.Set("Content-Type", ContentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	doc := etree.NewDocument()
	if rec.Code == http.StatusOK || rec.Code == http.StatusInternalServerError {
		require.NoError(t, doc.ReadFromBytes(rec.Body.Bytes()), rec.Body.String())
	}
	return rec, doc
}

// faultOf returns the faultcode and the detail code of a fault response.
func faultOf(t *testing.T, doc *etree.Document) (string, string) {
	t.Helper()
	f := doc.FindElement("//Fault")
	require.NotNil(t, f, "no Fault element")
	code, _ := xmlutil.ChildText(f, "faultcode")
	detail := f.FindElement("detail/error/code")
	require.NotNil(t, detail)
	return code, detail.Text()
}

func TestHandler_Discover(t *testing.T) {
	t.Parallel()

	rs := engine.NewRowset(
		engine.Column{Name: "CATALOG_NAME", Type: engine.TypeString},
		engine.Column{Name: "CUBE_NAME", Type: engine.TypeString},
		engine.Column{Name: "Store Sales", Type: engine.TypeDecimal, Nullable: true},
	)
	require.NoError(t, rs.Append(engine.Row{"CATALOG_NAME": "FoodMart", "CUBE_NAME": "Sales", "Store Sales": "565238.1300"}))
	require.NoError(t, rs.Append(engine.Row{"CATALOG_NAME": "FoodMart", "CUBE_NAME": "HR"}))
	eng := &fakeEngine{rowset: rs}

	rec, doc := post(t, newTestHandler(eng, nil), soapRequest("", discoverCubes))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))

	require.Len(t, eng.discovers, 1)
	req := eng.discovers[0]
	assert.Equal(t, "MDSCHEMA_CUBES", req.RequestType)
	catalog, _ := req.Restrictions.Get("CATALOG_NAME")
	assert.Equal(t, "FoodMart", catalog)
	assert.Nil(t, eng.sessions[0])

	root := doc.FindElement("//DiscoverResponse/return/root")
	require.NotNil(t, root)
	assert.Equal(t, RowsetNamespace, root.NamespaceURI())

	rows := root.SelectElements("row")
	require.Len(t, rows, 2)
	assert.Equal(t, "Sales", rows[0].SelectElement("CUBE_NAME").Text())
	assert.Equal(t, "565238.13", rows[0].SelectElement("Store_x0020_Sales").Text())
	assert.Nil(t, rows[1].SelectElement("Store_x0020_Sales"))

	field := root.FindElement("schema/complexType/sequence/element[@name='Store_x0020_Sales']")
	require.NotNil(t, field)
	assert.Equal(t, "Store Sales", field.SelectAttrValue("sql:field", ""))
	assert.Equal(t, "xsd:decimal", field.SelectAttrValue("type", ""))
}

func TestHandler_ExecuteEmptyResult(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{result: engine.Empty()}
	body := `<Execute xmlns="urn:schemas-microsoft-com:xml-analysis">
		<Command><ClearCache><Object><DatabaseID>FoodMart</DatabaseID></Object></ClearCache></Command>
		<Properties/>
	</Execute>`

	rec, doc := post(t, newTestHandler(eng, nil), soapRequest("", body))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Len(t, eng.executes, 1)
	cc, ok := eng.executes[0].Command.(*command.ClearCache)
	require.True(t, ok)
	assert.Equal(t, "FoodMart", *cc.Object.DatabaseID)

	root := doc.FindElement("//ExecuteResponse/return/root")
	require.NotNil(t, root)
	assert.Equal(t, EmptyNamespace, root.NamespaceURI())
	assert.Empty(t, root.ChildElements())
}

func TestHandler_ExecuteRowset(t *testing.T) {
	t.Parallel()

	rs := engine.NewRowset(engine.Column{Name: "[Measures].[Unit Sales]", Type: engine.TypeDouble})
	require.NoError(t, rs.Append(engine.Row{"[Measures].[Unit Sales]": "266773.0"}))
	eng := &fakeEngine{result: &engine.Result{Rowset: rs}}
	body := `<Execute xmlns="urn:schemas-microsoft-com:xml-analysis">
		<Command><Statement>SELECT FROM [Sales]</Statement></Command>
		<Properties><PropertyList><Format>Tabular</Format></PropertyList></Properties>
	</Execute>`

	rec, doc := post(t, newTestHandler(eng, nil), soapRequest("", body))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	row := doc.FindElement("//ExecuteResponse/return/root/row")
	require.NotNil(t, row)
	cells := row.ChildElements()
	require.Len(t, cells, 1)
	assert.Equal(t, "_x005B_Measures_x005D_._x005B_Unit_x0020_Sales_x005D_", cells[0].Tag)
	assert.Equal(t, "266773", cells[0].Text())
}

func TestHandler_BeginSessionAddsHeader(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{rowset: engine.NewRowset()}
	svc := &fakeSessions{next: "sess-1"}
	header := `<BeginSession xmlns="urn:schemas-microsoft-com:xml-analysis" mustUnderstand="1"/>`

	rec, doc := post(t, newTestHandler(eng, svc), soapRequest(header, discoverCubes))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	s := doc.FindElement("//Header/Session")
	require.NotNil(t, s)
	assert.Equal(t, "sess-1", s.SelectAttrValue("SessionId", ""))
	assert.Equal(t, session.Namespace, s.NamespaceURI())
	require.NotNil(t, eng.sessions[0])
	assert.Equal(t, "sess-1", eng.sessions[0].SessionID)
}

func TestHandler_UnknownSessionIsStateless(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{rowset: engine.NewRowset()}
	svc := &fakeSessions{known: map[string]bool{"live": true}}

	rec, doc := post(t, newTestHandler(eng, svc),
		soapRequest(`<Session xmlns="urn:schemas-microsoft-com:xml-analysis" SessionId="expired"/>`, discoverCubes))

	require.Equal(t, http.StatusOK, rec.Code)
	h := doc.FindElement("//Header")
	require.NotNil(t, h)
	assert.Empty(t, h.ChildElements())
	assert.Nil(t, eng.sessions[0])

	rec, doc = post(t, newTestHandler(eng, svc),
		soapRequest(`<Session xmlns="urn:schemas-microsoft-com:xml-analysis" SessionId="live"/>`, discoverCubes))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, doc.FindElement("//Header/Session[@SessionId='live']"))
}

func TestHandler_EndSession(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{rowset: engine.NewRowset()}
	svc := &fakeSessions{}

	rec, doc := post(t, newTestHandler(eng, svc),
		soapRequest(`<EndSession xmlns="urn:schemas-microsoft-com:xml-analysis" SessionId="s9"/>`, discoverCubes))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"s9"}, svc.ended)
	assert.Nil(t, doc.FindElement("//Header/Session"))
}

func TestHandler_Faults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		faultCode string
		code      string
	}{
		{
			name:      "not xml",
			body:      `<<<`,
			faultCode: "SOAP-ENV:Client.00USMC03",
			code:      "00USMC03",
		},
		{
			name:      "soap 1.2 envelope",
			body:      `<env:Envelope xmlns:env="http://www.w3.org/2003/05/soap-envelope"><env:Body><Discover/></env:Body></env:Envelope>`,
			faultCode: "SOAP-ENV:VersionMismatch.00USMD01",
			code:      "00USMD01",
		},
		{
			name:      "no body",
			body:      `<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"/>`,
			faultCode: "SOAP-ENV:Client.00HSBA01",
			code:      "00HSBA01",
		},
		{
			name:      "wrong method namespace",
			body:      soapRequest("", `<Discover xmlns="urn:other"><RequestType>X</RequestType></Discover>`),
			faultCode: "SOAP-ENV:Client.00HSBB03",
			code:      "00HSBB03",
		},
		{
			name:      "unknown method",
			body:      soapRequest("", `<Frobnicate xmlns="urn:schemas-microsoft-com:xml-analysis"/>`),
			faultCode: "SOAP-ENV:Client.00HSBB02",
			code:      "00HSBB02",
		},
		{
			name:      "missing request type",
			body:      soapRequest("", `<Discover xmlns="urn:schemas-microsoft-com:xml-analysis"><Restrictions/><Properties/></Discover>`),
			faultCode: "SOAP-ENV:Client.00HSBB04",
			code:      "00HSBB04",
		},
		{
			name:      "unsupported command",
			body:      soapRequest("", `<Execute xmlns="urn:schemas-microsoft-com:xml-analysis"><Command><Frobnicate/></Command><Properties/></Execute>`),
			faultCode: "SOAP-ENV:Client.00HSBB07",
			code:      "00HSBB07",
		},
		{
			name:      "header must understand",
			body:      soapRequest(`<Security xmlns="urn:x" SOAP-ENV:mustUnderstand="1"/>`, discoverCubes),
			faultCode: "SOAP-ENV:MustUnderstand.00HSHA01",
			code:      "00HSHA01",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			eng := &fakeEngine{rowset: engine.NewRowset()}
			rec, doc := post(t, newTestHandler(eng, nil), tt.body)

			require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
			faultCode, code := faultOf(t, doc)
			assert.Equal(t, tt.faultCode, faultCode)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, eng.discovers)
			assert.Empty(t, eng.executes)
		})
	}
}

func TestHandler_EngineErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		faultCode string
		desc      string
	}{
		{
			name:      "engine fault passes through",
			err:       fault.Newf(fault.ConnectionDataSource, "data source %s not found", "Provider=Mondrian"),
			faultCode: "SOAP-ENV:Client.00HSBC01",
			desc:      "data source Provider=Mondrian not found",
		},
		{
			name:      "plain error is wrapped",
			err:       errors.New("backend down"),
			faultCode: "SOAP-ENV:Server.00HSBE02",
			desc:      "backend down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			eng := &fakeEngine{err: tt.err}
			rec, doc := post(t, newTestHandler(eng, nil), soapRequest("", discoverCubes))

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			faultCode, _ := faultOf(t, doc)
			assert.Equal(t, tt.faultCode, faultCode)
			desc := doc.FindElement("//Fault/detail/error/desc")
			require.NotNil(t, desc)
			assert.Equal(t, tt.desc, desc.Text())
			actor, _ := xmlutil.ChildText(doc.FindElement("//Fault"), "faultactor")
			assert.Equal(t, "xmlad", actor)
		})
	}
}

func TestHandler_NonNullableColumn(t *testing.T) {
	t.Parallel()

	rs := engine.NewRowset(engine.Column{Name: "CATALOG_NAME", Type: engine.TypeString})
	rs.Rows = append(rs.Rows, engine.Row{})
	rec, doc := post(t, newTestHandler(&fakeEngine{rowset: rs}, nil), soapRequest("", discoverCubes))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	_, code := faultOf(t, doc)
	assert.Equal(t, fault.DiscoverFormat.Code, code)
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakeEngine{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/xmla", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestHandler_BodyTooLarge(t *testing.T) {
	t.Parallel()

	h := newTestHandler(&fakeEngine{}, nil, WithMaxBodySize(64))
	rec, doc := post(t, h, soapRequest("", discoverCubes))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	_, code := faultOf(t, doc)
	assert.Equal(t, fault.RequestInput.Code, code)
}

func TestHandler_Latin1Request(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{rowset: engine.NewRowset()}
	body := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		`<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://schemas.xmlsoap.org/soap/envelope/"><SOAP-ENV:Body>` +
		`<Discover xmlns="urn:schemas-microsoft-com:xml-analysis"><RequestType>MDSCHEMA_CUBES</RequestType>` +
		"<Restrictions><RestrictionList><CUBE_NAME>Caf\xe9</CUBE_NAME></RestrictionList></Restrictions>" +
		`<Properties/></Discover></SOAP-ENV:Body></SOAP-ENV:Envelope>`

	rec, _ := post(t, newTestHandler(eng, nil), body)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	cube, _ := eng.discovers[0].Restrictions.Get("CUBE_NAME")
	assert.Equal(t, "Café", cube)
}

func TestHandler_SharedNameEncoder(t *testing.T) {
	t.Parallel()

	enc := xmlutil.NewNameEncoder()
	rs := engine.NewRowset(engine.Column{Name: "Unit Sales", Type: engine.TypeInt})
	h := newTestHandler(&fakeEngine{rowset: rs}, nil, WithNameEncoder(enc))

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/xmla", strings.NewReader(soapRequest("", discoverCubes)))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			_, _ = io.Copy(io.Discard, rec.Body)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, enc.Len())
	assert.Equal(t, "Unit_x0020_Sales", enc.Encode("Unit Sales"))
}

func TestHandler_Metrics(t *testing.T) {
	t.Parallel()

	m := metrics.NewXMLA(metrics.NewRegistry())
	h := newTestHandler(&fakeEngine{result: engine.Empty()}, nil, WithMetrics(m))

	rec, _ := post(t, h, soapRequest("", `<Execute xmlns="urn:schemas-microsoft-com:xml-analysis">
  <Command><BeginTransaction/></Command><Properties/></Execute>`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = post(t, h, "<not-xml")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	assert.Equal(t, 1.0, m.Requests.Value("Execute", "ok"))
	assert.Equal(t, 1.0, m.Requests.Value("unknown", "fault"))
	assert.Equal(t, 1.0, m.Faults.Value(fault.DOMParse.Code))
}

func TestHandler_FaultKeepsNewSession(t *testing.T) {
	t.Parallel()

	eng := &fakeEngine{rowset: engine.NewRowset()}
	svc := &fakeSessions{next: "sess-2"}
	header := `<BeginSession xmlns="urn:schemas-microsoft-com:xml-analysis"/>`

	rec, doc := post(t, newTestHandler(eng, svc), soapRequest(header, `<Discover xmlns="urn:schemas-microsoft-com:xml-analysis"/>`))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	code, detail := faultOf(t, doc)
	assert.Equal(t, "SOAP-ENV:Client.00HSBB04", code)
	assert.Equal(t, fault.BadRequestType.Code, detail)

	s := doc.FindElement("//Header/Session")
	require.NotNil(t, s, "session opened by the request must be reported")
	assert.Equal(t, "sess-2", s.SelectAttrValue("SessionId", ""))
	assert.Empty(t, eng.discovers)
}

func TestHandler_FaultBeforeHeadersHasNoSession(t *testing.T) {
	t.Parallel()

	rec, doc := post(t, newTestHandler(&fakeEngine{}, &fakeSessions{next: "sess-3"}), "<not-xml")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Nil(t, doc.FindElement("//Header/Session"))
}
