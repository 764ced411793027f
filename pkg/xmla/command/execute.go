package command

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/discover"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// Request is a parsed Execute call.
type Request struct {
	// Command is nil when the command element is not a known kind.
	Command Command
	// CommandName is the local name of the command element.
	CommandName string
	Properties  *discover.Map
	Parameters  []Parameter
}

// Parameter is a named value bound into a statement.
type Parameter struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

var (
	errNoCommandElement = errors.New("missing Command element")
	errNoProperties     = errors.New("missing Properties element")
)

// ParseExecute reads the Command, Properties and Parameters children of an
// Execute element.
func ParseExecute(execute *etree.Element) (*Request, error) {
	cmdEl := xmlutil.Child(execute, "Command")
	if cmdEl == nil {
		return nil, fault.New(fault.BadCommand, errNoCommandElement)
	}
	children := cmdEl.ChildElements()
	cmd, err := Parse(children)
	if err != nil {
		return nil, err
	}

	props := xmlutil.Child(execute, "Properties")
	if props == nil {
		return nil, fault.New(fault.BadProperties, errNoProperties)
	}
	if n := len(xmlutil.Children(props, "PropertyList")); n > 1 {
		return nil, fault.Newf(fault.BadPropertyList, "found %d PropertyList elements", n)
	}

	params, err := parseParameters(xmlutil.Child(execute, "Parameters"))
	if err != nil {
		return nil, fault.New(fault.BadParameters, err)
	}

	return &Request{
		Command:     cmd,
		CommandName: xmlutil.FirstElement(children).Tag,
		Properties:  discover.PropertyMap(props),
		Parameters:  params,
	}, nil
}

func parseParameters(el *etree.Element) ([]Parameter, error) {
	var out []Parameter
	for i, p := range xmlutil.Children(el, "Parameter") {
		name, ok := xmlutil.ChildText(p, "Name")
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %d has no Name", i+1)
		}
		value, _ := xmlutil.ChildText(p, "Value")
		out = append(out, Parameter{Name: name, Value: value})
	}
	return out, nil
}
