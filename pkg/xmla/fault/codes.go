package fault

// Entry is one row of the fault taxonomy.
type Entry struct {
	FaultCode FaultCode
	Code      string
	Message   string
}

// Server initialization.
var (
	ServerInit = Entry{Server, "00SIA01", "Failure during initialization of XML/A server"}
)

// Unmarshalling the SOAP request.
var (
	RequestState     = Entry{Server, "00USMA01", "Request input method invoked at illegal time"}
	RequestInput     = Entry{Server, "00USMA02", "Request input Exception occurred"}
	XMLParser        = Entry{Client, "00USMB01", "XML Parser Exception occurred"}
	DOMFactory       = Entry{Server, "00USMC01", "XML Document Builder Factory Exception occurred"}
	DOMParseIO       = Entry{Client, "00USMC02", "DOM parse IO Exception occurred"}
	DOMParse         = Entry{Client, "00USMC03", "DOM parse Exception occurred"}
	BadEnvelope      = Entry{VersionMismatch, "00USMD01", "SOAP Envelope not recognized"}
	UnmarshalUnknown = Entry{Server, "00USMU01", "Unknown error unmarshalling soap message"}
)

// Callbacks around request handling.
var (
	PreAction  = Entry{Server, "00CPREA01", "Callback preAction"}
	PostAction = Entry{Server, "00CPOSTA01", "Callback postAction"}
)

// SOAP header handling.
var (
	HeaderMustUnderstand = Entry{MustUnderstand, "00HSHA01", "SOAP Header must understand element not recognized"}
	BadSessionID         = Entry{Client, "00HSHB01", "Bad session Id"}
	NoSessionID          = Entry{Client, "00HSHB02", "No session Id"}
	SessionIDType        = Entry{Client, "00HSHB03", "Session Id type"}
	HeaderUnknown        = Entry{Server, "00HSHU01", "Unknown error handle soap header"}
)

// SOAP body handling.
var (
	BadSOAPBody            = Entry{Client, "00HSBA01", "SOAP Body not correctly formed"}
	BodyProcess            = Entry{Server, "00HSBB01", "XMLA SOAP Body processing error"}
	BadMethod              = Entry{Client, "00HSBB02", "XMLA SOAP bad method"}
	BadMethodNamespace     = Entry{Client, "00HSBB03", "XMLA SOAP bad method namespace"}
	BadRequestType         = Entry{Client, "00HSBB04", "XMLA SOAP bad Discover RequestType element"}
	BadRestrictions        = Entry{Client, "00HSBB05", "XMLA SOAP bad Discover Restrictions element"}
	BadProperties          = Entry{Client, "00HSBB06", "XMLA SOAP bad Properties element"}
	BadCommand             = Entry{Client, "00HSBB07", "XMLA SOAP bad Execute Command element"}
	BadRestrictionList     = Entry{Client, "00HSBB08", "XMLA SOAP too many Discover RestrictionList element"}
	BadPropertyList        = Entry{Client, "00HSBB09", "XMLA SOAP bad Discover or Execute PropertyList element"}
	BadStatement           = Entry{Client, "00HSBB10", "XMLA SOAP bad Execute Statement element"}
	BadParameters          = Entry{Client, "00HSBB11", "XMLA SOAP bad Execute Parameters element"}
	BadNonNullableColumn   = Entry{Client, "00HSBB16", "XMLA SOAP non-nullable column"}
	ConnectionDataSource   = Entry{Client, "00HSBC01", "XMLA connection datasource not found"}
	AccessDenied           = Entry{Client, "00HSBC02", "XMLA connection with role must be authenticated"}
	ParseQuery             = Entry{Client, "00HSBD01", "XMLA MDX parse failed"}
	ExecuteQuery           = Entry{Server, "00HSBD02", "XMLA MDX execute failed"}
	DiscoverFormat         = Entry{Server, "00HSBE01", "XMLA Discover format error"}
	DiscoverUnparse        = Entry{Server, "00HSBE02", "XMLA Discover unparse results error"}
	ExecuteUnparse         = Entry{Server, "00HSBE03", "XMLA Execute unparse results error"}
	DrillThroughFormat     = Entry{Server, "00HSBE04", "XMLA Drill Through format error"}
	DrillThroughNotAllowed = Entry{Client, "00HSBF01", "XMLA Drill Through not allowed"}
	DrillThroughSQL        = Entry{Server, "00HSBF02", "XMLA Drill Through SQL error"}
	BodyUnknown            = Entry{Server, "00HSBU01", "Unknown error handle soap body"}
)

// Marshalling the SOAP response.
var (
	MarshalUnknown = Entry{Server, "00MSMU01", "Unknown error marshalling soap message"}
)

// Unclassified.
var (
	Unknown = Entry{Server, "00UE001", "Internal Error"}
)

// Entries returns the whole taxonomy in declaration order.
func Entries() []Entry {
	return []Entry{
		ServerInit,
		RequestState, RequestInput, XMLParser, DOMFactory, DOMParseIO, DOMParse, BadEnvelope, UnmarshalUnknown,
		PreAction, PostAction,
		HeaderMustUnderstand, BadSessionID, NoSessionID, SessionIDType, HeaderUnknown,
		BadSOAPBody, BodyProcess, BadMethod, BadMethodNamespace, BadRequestType, BadRestrictions,
		BadProperties, BadCommand, BadRestrictionList, BadPropertyList, BadStatement, BadParameters,
		BadNonNullableColumn, ConnectionDataSource, AccessDenied, ParseQuery, ExecuteQuery,
		DiscoverFormat, DiscoverUnparse, ExecuteUnparse, DrillThroughFormat,
		DrillThroughNotAllowed, DrillThroughSQL, BodyUnknown,
		MarshalUnknown,
		Unknown,
	}
}

// Lookup finds the entry registered under code.
func Lookup(code string) (Entry, bool) {
	for _, e := range Entries() {
		if e.Code == code {
			return e, true
		}
	}
	return Entry{}, false
}
