package command

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// ObjectReference is a path of identifiers into server metadata. Every
// identifier is optional and independent of the others.
type ObjectReference struct {
	ServerID                    *string `yaml:"serverID,omitempty"`
	DatabaseID                  *string `yaml:"databaseID,omitempty"`
	RoleID                      *string `yaml:"roleID,omitempty"`
	TraceID                     *string `yaml:"traceID,omitempty"`
	AssemblyID                  *string `yaml:"assemblyID,omitempty"`
	DimensionID                 *string `yaml:"dimensionID,omitempty"`
	DimensionPermissionID       *string `yaml:"dimensionPermissionID,omitempty"`
	DataSourceID                *string `yaml:"dataSourceID,omitempty"`
	DataSourcePermissionID      *string `yaml:"dataSourcePermissionID,omitempty"`
	DatabasePermissionID        *string `yaml:"databasePermissionID,omitempty"`
	DataSourceViewID            *string `yaml:"dataSourceViewID,omitempty"`
	CubeID                      *string `yaml:"cubeID,omitempty"`
	MiningStructureID           *string `yaml:"miningStructureID,omitempty"`
	MeasureGroupID              *string `yaml:"measureGroupID,omitempty"`
	PerspectiveID               *string `yaml:"perspectiveID,omitempty"`
	CubePermissionID            *string `yaml:"cubePermissionID,omitempty"`
	MdxScriptID                 *string `yaml:"mdxScriptID,omitempty"`
	PartitionID                 *string `yaml:"partitionID,omitempty"`
	AggregationDesignID         *string `yaml:"aggregationDesignID,omitempty"`
	MiningModelID               *string `yaml:"miningModelID,omitempty"`
	MiningModelPermissionID     *string `yaml:"miningModelPermissionID,omitempty"`
	MiningStructurePermissionID *string `yaml:"miningStructurePermissionID,omitempty"`
}

// objectReferenceFields maps each identifier tag to its field.
var objectReferenceFields = map[string]func(*ObjectReference) **string{
	"ServerID":                    func(o *ObjectReference) **string { return &o.ServerID },
	"DatabaseID":                  func(o *ObjectReference) **string { return &o.DatabaseID },
	"RoleID":                      func(o *ObjectReference) **string { return &o.RoleID },
	"TraceID":                     func(o *ObjectReference) **string { return &o.TraceID },
	"AssemblyID":                  func(o *ObjectReference) **string { return &o.AssemblyID },
	"DimensionID":                 func(o *ObjectReference) **string { return &o.DimensionID },
	"DimensionPermissionID":       func(o *ObjectReference) **string { return &o.DimensionPermissionID },
	"DataSourceID":                func(o *ObjectReference) **string { return &o.DataSourceID },
	"DataSourcePermissionID":      func(o *ObjectReference) **string { return &o.DataSourcePermissionID },
	"DatabasePermissionID":        func(o *ObjectReference) **string { return &o.DatabasePermissionID },
	"DataSourceViewID":            func(o *ObjectReference) **string { return &o.DataSourceViewID },
	"CubeID":                      func(o *ObjectReference) **string { return &o.CubeID },
	"MiningStructureID":           func(o *ObjectReference) **string { return &o.MiningStructureID },
	"MeasureGroupID":              func(o *ObjectReference) **string { return &o.MeasureGroupID },
	"PerspectiveID":               func(o *ObjectReference) **string { return &o.PerspectiveID },
	"CubePermissionID":            func(o *ObjectReference) **string { return &o.CubePermissionID },
	"MdxScriptID":                 func(o *ObjectReference) **string { return &o.MdxScriptID },
	"PartitionID":                 func(o *ObjectReference) **string { return &o.PartitionID },
	"AggregationDesignID":         func(o *ObjectReference) **string { return &o.AggregationDesignID },
	"MiningModelID":               func(o *ObjectReference) **string { return &o.MiningModelID },
	"MiningModelPermissionID":     func(o *ObjectReference) **string { return &o.MiningModelPermissionID },
	"MiningStructurePermissionID": func(o *ObjectReference) **string { return &o.MiningStructurePermissionID },
}

// ParseObjectReference reads the identifier elements among children in any
// order. Unrecognized elements are ignored; an empty input yields a reference
// with every identifier nil.
func ParseObjectReference(children []*etree.Element) *ObjectReference {
	ref := &ObjectReference{}
	for _, c := range children {
		if c == nil {
			continue
		}
		field, ok := objectReferenceFields[c.Tag]
		if !ok {
			continue
		}
		v := xmlutil.Text(c)
		if strings.TrimSpace(v) == "" {
			continue
		}
		*field(ref) = &v
	}
	return ref
}

// IsEmpty reports whether no identifier is set.
func (o *ObjectReference) IsEmpty() bool {
	if o == nil {
		return true
	}
	for _, field := range objectReferenceFields {
		if *field(o) != nil {
			return false
		}
	}
	return true
}
