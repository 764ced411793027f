package discover

import (
	"errors"
	"strings"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/enum"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// Request is a parsed Discover call.
type Request struct {
	RequestType  string
	Restrictions *Map
	Properties   *Map
}

// Known returns the enumeration value for the request type, if it names a
// standard schema rowset.
func (r *Request) Known() (enum.Value, bool) {
	return RequestTypes.Lookup(r.RequestType)
}

var (
	errNoRequestType  = errors.New("missing RequestType element")
	errNoRestrictions = errors.New("missing Restrictions element")
	errNoProperties   = errors.New("missing Properties element")
)

// ParseRequest reads the RequestType, Restrictions and Properties children of
// a Discover element. Each is required; a missing or repeated element is a
// client fault.
func ParseRequest(discover *etree.Element) (*Request, error) {
	rt := xmlutil.Child(discover, "RequestType")
	if rt == nil {
		return nil, fault.New(fault.BadRequestType, errNoRequestType)
	}
	requestType := strings.TrimSpace(xmlutil.Text(rt))
	if requestType == "" {
		return nil, fault.Newf(fault.BadRequestType, "empty RequestType element")
	}

	restrictions := xmlutil.Child(discover, "Restrictions")
	if restrictions == nil {
		return nil, fault.New(fault.BadRestrictions, errNoRestrictions)
	}
	if n := len(xmlutil.Children(restrictions, "RestrictionList")); n > 1 {
		return nil, fault.Newf(fault.BadRestrictionList, "found %d RestrictionList elements", n)
	}

	properties := xmlutil.Child(discover, "Properties")
	if properties == nil {
		return nil, fault.New(fault.BadProperties, errNoProperties)
	}
	if n := len(xmlutil.Children(properties, "PropertyList")); n > 1 {
		return nil, fault.Newf(fault.BadPropertyList, "found %d PropertyList elements", n)
	}

	return &Request{
		RequestType:  requestType,
		Restrictions: RestrictionMap(restrictions),
		Properties:   PropertyMap(properties),
	}, nil
}
