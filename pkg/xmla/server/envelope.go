package server

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
	"golang.org/x/net/html/charset"
)

// Namespaces used in requests and responses.
const (
	SOAPNamespace       = "http://schemas.xmlsoap.org/soap/envelope/"
	SOAPEncoding        = "http://schemas.xmlsoap.org/soap/encoding/"
	XMLANamespace       = "urn:schemas-microsoft-com:xml-analysis"
	RowsetNamespace     = "urn:schemas-microsoft-com:xml-analysis:rowset"
	EmptyNamespace      = "urn:schemas-microsoft-com:xml-analysis:empty"
	XSDNamespace        = "http://www.w3.org/2001/XMLSchema"
	XSINamespace        = "http://www.w3.org/2001/XMLSchema-instance"
	SQLNamespace        = "urn:schemas-microsoft-com:xml-sql"
	ErrorNamespace      = "http://mondrian.sourceforge.net"
	ContentType         = "text/xml; charset=utf-8"
	defaultFaultActor   = "xmlad"
	defaultMaxBodyBytes = 10 << 20
)

var (
	errEmptyDocument = errors.New("empty document")
	errNoBody        = errors.New("envelope has no Body element")
	errNoMethod      = errors.New("no method element in Body")
)

// request is a parsed SOAP envelope.
type request struct {
	header *etree.Element
	method *etree.Element
}

// parseEnvelope reads body as a SOAP 1.1 envelope. Documents declaring a
// non-UTF-8 encoding are decoded through x/net/html/charset.
func parseEnvelope(body []byte) (*request, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(bytes.NewReader(body)); err != nil {
		return nil, fault.New(fault.DOMParse, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fault.New(fault.DOMParse, errEmptyDocument)
	}
	if root.Tag != "Envelope" || root.NamespaceURI() != SOAPNamespace {
		return nil, fault.Newf(fault.BadEnvelope, "root element %s in namespace %q is not a SOAP 1.1 Envelope", root.Tag, root.NamespaceURI())
	}

	b := xmlutil.Child(root, "Body")
	if b == nil {
		return nil, fault.New(fault.BadSOAPBody, errNoBody)
	}
	method := xmlutil.FirstElement(b.ChildElements())
	if method == nil {
		return nil, fault.New(fault.BadSOAPBody, errNoMethod)
	}

	return &request{
		header: xmlutil.Child(root, "Header"),
		method: method,
	}, nil
}

// envelope is a response under construction.
type envelope struct {
	doc    *etree.Document
	prefix string
	header *etree.Element
	body   *etree.Element
}

func newEnvelope(prefix string) *envelope {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement(prefix + ":Envelope")
	env.CreateAttr("xmlns:"+prefix, SOAPNamespace)
	env.CreateAttr(prefix+":encodingStyle", SOAPEncoding)

	return &envelope{
		doc:    doc,
		prefix: prefix,
		header: env.CreateElement(prefix + ":Header"),
		body:   env.CreateElement(prefix + ":Body"),
	}
}

// methodResponse adds {method}Response/return to the body and returns the
// return element.
func (e *envelope) methodResponse(method string) *etree.Element {
	resp := e.body.CreateElement(method + "Response")
	resp.CreateAttr("xmlns", XMLANamespace)
	return resp.CreateElement("return")
}

// fault fills the body with a SOAP 1.1 Fault for f.
func (e *envelope) fault(f *fault.Fault, actor string) {
	el := e.body.CreateElement(e.prefix + ":Fault")
	el.CreateElement("faultcode").SetText(fault.FormatFaultCode(e.prefix, f.FaultCode, f.Code))
	el.CreateElement("faultstring").SetText(f.FaultString)
	el.CreateElement("faultactor").SetText(actor)

	xa := el.CreateElement("detail").CreateElement("XA:error")
	xa.CreateAttr("xmlns:XA", ErrorNamespace)
	xa.CreateElement("code").SetText(f.Code)
	xa.CreateElement("desc").SetText(fault.Detail(f))
}

func (e *envelope) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing envelope: %w", err)
	}
	return buf.Bytes(), nil
}
