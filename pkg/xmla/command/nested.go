package command

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// Where restricts Delete, Drop and Update to dimension members by key.
type Where struct {
	Attributes []WhereAttribute `yaml:"attributes"`
}

// WhereAttribute matches members of one attribute by key.
type WhereAttribute struct {
	AttributeName string   `yaml:"attributeName"`
	Keys          []string `yaml:"keys,omitempty"`
}

// Translation is a localized caption.
type Translation struct {
	Language      int64   `yaml:"language"`
	Caption       *string `yaml:"caption,omitempty"`
	Description   *string `yaml:"description,omitempty"`
	DisplayFolder *string `yaml:"displayFolder,omitempty"`
}

// Attribute is a member attribute written by Insert or Update.
type Attribute struct {
	AttributeName string        `yaml:"attributeName"`
	Name          *string       `yaml:"name,omitempty"`
	Keys          []string      `yaml:"keys,omitempty"`
	Translations  []Translation `yaml:"translations,omitempty"`
	Value         *string       `yaml:"value,omitempty"`
	CustomRollup  *string       `yaml:"customRollup,omitempty"`
	UnaryOperator *string       `yaml:"unaryOperator,omitempty"`
	SkippedLevels *int64        `yaml:"skippedLevels,omitempty"`
}

// Location redirects a remote partition during Backup, Restore or Synchronize.
type Location struct {
	File             *string  `yaml:"file,omitempty"`
	DataSourceID     *string  `yaml:"dataSourceID,omitempty"`
	DataSourceType   *string  `yaml:"dataSourceType,omitempty"`
	ConnectionString *string  `yaml:"connectionString,omitempty"`
	Folders          []Folder `yaml:"folders,omitempty"`
}

// Folder maps an original storage folder to a new one.
type Folder struct {
	Original string `yaml:"original"`
	New      string `yaml:"new"`
}

// ErrorConfiguration controls key error handling during Process.
type ErrorConfiguration struct {
	KeyErrorLimit             *int64  `yaml:"keyErrorLimit,omitempty"`
	KeyErrorLogFile           *string `yaml:"keyErrorLogFile,omitempty"`
	KeyErrorAction            *string `yaml:"keyErrorAction,omitempty"`
	KeyErrorLimitAction       *string `yaml:"keyErrorLimitAction,omitempty"`
	KeyNotFound               *string `yaml:"keyNotFound,omitempty"`
	KeyDuplicate              *string `yaml:"keyDuplicate,omitempty"`
	NullKeyConvertedToUnknown *string `yaml:"nullKeyConvertedToUnknown,omitempty"`
	NullKeyNotAllowed         *string `yaml:"nullKeyNotAllowed,omitempty"`
}

// DataSource is an out-of-line data source binding supplied with Process.
type DataSource struct {
	ID                   *string        `yaml:"id,omitempty"`
	Name                 *string        `yaml:"name,omitempty"`
	ConnectionString     *string        `yaml:"connectionString,omitempty"`
	ManagedProvider      *string        `yaml:"managedProvider,omitempty"`
	Timeout              *time.Duration `yaml:"timeout,omitempty"`
	MaxActiveConnections *int64         `yaml:"maxActiveConnections,omitempty"`
	Isolation            *string        `yaml:"isolation,omitempty"`
	CreatedTimestamp     *time.Time     `yaml:"createdTimestamp,omitempty"`
	LastSchemaUpdate     *time.Time     `yaml:"lastSchemaUpdate,omitempty"`
}

// ObjectDefinition is the major object carried by Create and Alter. Traces
// are parsed; every other object kind is kept as raw XML for the binding
// layer of the engine.
type ObjectDefinition struct {
	Kind   string `yaml:"kind"`
	Trace  *Trace `yaml:"trace,omitempty"`
	RawXML string `yaml:"rawXML,omitempty"`
}

// Trace is a server trace definition.
type Trace struct {
	ID              *string      `yaml:"id,omitempty"`
	Name            *string      `yaml:"name,omitempty"`
	LogFileName     *string      `yaml:"logFileName,omitempty"`
	LogFileAppend   *bool        `yaml:"logFileAppend,omitempty"`
	LogFileSize     *int64       `yaml:"logFileSize,omitempty"`
	LogFileRollover *bool        `yaml:"logFileRollover,omitempty"`
	AutoRestart     *bool        `yaml:"autoRestart,omitempty"`
	StopTime        *time.Time   `yaml:"stopTime,omitempty"`
	Events          []TraceEvent `yaml:"events,omitempty"`
	Filter          *Predicate   `yaml:"filter,omitempty"`
}

// TraceEvent selects the columns captured for one event class.
type TraceEvent struct {
	EventID string   `yaml:"eventID"`
	Columns []string `yaml:"columns,omitempty"`
}

// SynchronizeSource names the database copied by Synchronize.
type SynchronizeSource struct {
	ConnectionString *string          `yaml:"connectionString,omitempty"`
	Object           *ObjectReference `yaml:"object,omitempty"`
}

func parseWhere(el *etree.Element) (*Where, error) {
	if el == nil {
		return nil, nil
	}
	w := &Where{}
	for _, a := range xmlutil.Children(el, "Attribute") {
		f := newFields(a)
		wa := WhereAttribute{
			AttributeName: f.requiredStr("AttributeName"),
			Keys:          texts(f.list("Keys", "Key")),
		}
		if f.err != nil {
			return nil, f.err
		}
		w.Attributes = append(w.Attributes, wa)
	}
	return w, nil
}

func parseTranslations(el *etree.Element) ([]Translation, error) {
	var out []Translation
	for _, t := range xmlutil.Children(el, "Translation") {
		f := newFields(t)
		tr := Translation{
			Caption:       f.str("Caption"),
			Description:   f.str("Description"),
			DisplayFolder: f.str("DisplayFolder"),
		}
		lang := f.integer("Language")
		if lang == nil {
			f.fail(&MissingElementError{Parent: t.Tag, Name: "Language"})
		} else {
			tr.Language = *lang
		}
		if f.err != nil {
			return nil, f.err
		}
		out = append(out, tr)
	}
	return out, nil
}

func parseAttributes(el *etree.Element) ([]Attribute, error) {
	var out []Attribute
	for _, a := range xmlutil.Children(el, "Attribute") {
		f := newFields(a)
		attr := Attribute{
			AttributeName: f.requiredStr("AttributeName"),
			Name:          f.str("Name"),
			Keys:          texts(f.list("Keys", "Key")),
			Value:         f.str("Value"),
			CustomRollup:  f.str("CustomRollup"),
			UnaryOperator: f.str("UnaryOperator"),
			SkippedLevels: f.integer("SkippedLevels"),
		}
		if f.err != nil {
			return nil, f.err
		}
		tr, err := parseTranslations(f.child("Translations"))
		if err != nil {
			return nil, err
		}
		attr.Translations = tr
		out = append(out, attr)
	}
	return out, nil
}

func parseLocations(el *etree.Element) []Location {
	var out []Location
	for _, l := range xmlutil.Children(el, "Location") {
		f := newFields(l)
		loc := Location{
			File:             f.str("File"),
			DataSourceID:     f.str("DataSourceID"),
			DataSourceType:   f.str("DataSourceType"),
			ConnectionString: f.str("ConnectionString"),
		}
		for _, folder := range f.list("Folders", "Folder") {
			orig, _ := xmlutil.ChildText(folder, "Original")
			nw, _ := xmlutil.ChildText(folder, "New")
			loc.Folders = append(loc.Folders, Folder{Original: orig, New: nw})
		}
		out = append(out, loc)
	}
	return out
}

func parseErrorConfiguration(el *etree.Element) (*ErrorConfiguration, error) {
	if el == nil {
		return nil, nil
	}
	f := newFields(el)
	ec := &ErrorConfiguration{
		KeyErrorLimit:             f.integer("KeyErrorLimit"),
		KeyErrorLogFile:           f.str("KeyErrorLogFile"),
		KeyErrorAction:            f.str("KeyErrorAction"),
		KeyErrorLimitAction:       f.str("KeyErrorLimitAction"),
		KeyNotFound:               f.str("KeyNotFound"),
		KeyDuplicate:              f.str("KeyDuplicate"),
		NullKeyConvertedToUnknown: f.str("NullKeyConvertedToUnknown"),
		NullKeyNotAllowed:         f.str("NullKeyNotAllowed"),
	}
	return ec, f.err
}

func parseDataSource(el *etree.Element) (*DataSource, error) {
	if el == nil {
		return nil, nil
	}
	f := newFields(el)
	ds := &DataSource{
		ID:                   f.str("ID"),
		Name:                 f.str("Name"),
		ConnectionString:     f.str("ConnectionString"),
		ManagedProvider:      f.str("ManagedProvider"),
		Timeout:              f.duration("Timeout"),
		MaxActiveConnections: f.integer("MaxActiveConnections"),
		Isolation:            f.str("Isolation"),
		CreatedTimestamp:     f.dateTime("CreatedTimestamp"),
		LastSchemaUpdate:     f.dateTime("LastSchemaUpdate"),
	}
	return ds, f.err
}

func parseObjectDefinition(el *etree.Element) (*ObjectDefinition, error) {
	if el == nil {
		return nil, nil
	}
	obj := xmlutil.FirstElement(el.ChildElements())
	if obj == nil {
		return nil, &MissingElementError{Parent: el.Tag, Name: "major object"}
	}
	def := &ObjectDefinition{Kind: obj.Tag}
	if obj.Tag == "Trace" {
		tr, err := parseTrace(obj)
		if err != nil {
			return nil, err
		}
		def.Trace = tr
		return def, nil
	}
	def.RawXML = xmlutil.InnerXML(el)
	return def, nil
}

func parseTrace(el *etree.Element) (*Trace, error) {
	f := newFields(el)
	tr := &Trace{
		ID:              f.str("ID"),
		Name:            f.str("Name"),
		LogFileName:     f.str("LogFileName"),
		LogFileAppend:   f.boolean("LogFileAppend"),
		LogFileSize:     f.integer("LogFileSize"),
		LogFileRollover: f.boolean("LogFileRollover"),
		AutoRestart:     f.boolean("AutoRestart"),
		StopTime:        f.dateTime("StopTime"),
	}
	for _, ev := range f.list("Events", "Event") {
		ef := newFields(ev)
		te := TraceEvent{
			EventID: strings.TrimSpace(ef.requiredStr("EventID")),
			Columns: texts(ef.list("Columns", "ColumnID")),
		}
		f.fail(ef.err)
		tr.Events = append(tr.Events, te)
	}
	if f.err != nil {
		return nil, f.err
	}
	if filter := f.child("Filter"); filter != nil {
		p, err := parseFilter(filter)
		if err != nil {
			return nil, err
		}
		tr.Filter = p
	}
	return tr, nil
}

func texts(elems []*etree.Element) []string {
	if len(elems) == 0 {
		return nil
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, xmlutil.Text(e))
	}
	return out
}
