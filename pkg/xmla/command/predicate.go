package command

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
)

// PredicateOp names a node of a trace filter tree.
type PredicateOp string

// Boolean connectives.
const (
	OpAnd PredicateOp = "And"
	OpOr  PredicateOp = "Or"
	OpNot PredicateOp = "Not"
)

// Leaf comparisons.
const (
	OpEqual          PredicateOp = "Equal"
	OpNotEqual       PredicateOp = "NotEqual"
	OpLess           PredicateOp = "Less"
	OpLessOrEqual    PredicateOp = "LessOrEqual"
	OpGreater        PredicateOp = "Greater"
	OpGreaterOrEqual PredicateOp = "GreaterOrEqual"
	OpLike           PredicateOp = "Like"
	OpNotLike        PredicateOp = "NotLike"
)

var leafOps = map[string]PredicateOp{
	"Equal":          OpEqual,
	"NotEqual":       OpNotEqual,
	"Less":           OpLess,
	"LessOrEqual":    OpLessOrEqual,
	"Greater":        OpGreater,
	"GreaterOrEqual": OpGreaterOrEqual,
	"Like":           OpLike,
	"NotLike":        OpNotLike,
}

var errEmptyFilter = errors.New("filter has no predicate")

// Predicate is a node of the boolean filter grammar used by traces.
// Connectives carry Operands; leaves carry ColumnID and Value.
type Predicate struct {
	Op       PredicateOp  `yaml:"op"`
	Operands []*Predicate `yaml:"operands,omitempty"`
	ColumnID string       `yaml:"columnID,omitempty"`
	Value    string       `yaml:"value,omitempty"`
}

// IsLeaf reports whether p is a comparison.
func (p *Predicate) IsLeaf() bool {
	_, ok := leafOps[string(p.Op)]
	return ok
}

// String renders the tree in prefix form, e.g. And(Equal(3,x),Not(Like(1,y))).
func (p *Predicate) String() string {
	if p == nil {
		return ""
	}
	if p.IsLeaf() {
		return fmt.Sprintf("%s(%s,%s)", p.Op, p.ColumnID, p.Value)
	}
	s := string(p.Op) + "("
	for i, o := range p.Operands {
		if i > 0 {
			s += ","
		}
		s += o.String()
	}
	return s + ")"
}

// parseFilter reads a Filter element holding exactly one predicate.
func parseFilter(filter *etree.Element) (*Predicate, error) {
	root := xmlutil.FirstElement(filter.ChildElements())
	if root == nil {
		return nil, errEmptyFilter
	}
	if n := len(filter.ChildElements()); n > 1 {
		return nil, fmt.Errorf("filter has %d root predicates, want 1", n)
	}
	return parsePredicate(root)
}

func parsePredicate(el *etree.Element) (*Predicate, error) {
	switch el.Tag {
	case string(OpAnd), string(OpOr):
		operands := el.ChildElements()
		if len(operands) == 0 {
			return nil, fmt.Errorf("%s has no operands", el.Tag)
		}
		p := &Predicate{Op: PredicateOp(el.Tag)}
		for _, c := range operands {
			o, err := parsePredicate(c)
			if err != nil {
				return nil, err
			}
			p.Operands = append(p.Operands, o)
		}
		return p, nil
	case string(OpNot):
		operands := el.ChildElements()
		if len(operands) != 1 {
			return nil, fmt.Errorf("Not has %d operands, want 1", len(operands))
		}
		o, err := parsePredicate(operands[0])
		if err != nil {
			return nil, err
		}
		return &Predicate{Op: OpNot, Operands: []*Predicate{o}}, nil
	}

	op, ok := leafOps[el.Tag]
	if !ok {
		return nil, fmt.Errorf("unknown predicate element %s", el.Tag)
	}
	f := newFields(el)
	p := &Predicate{
		Op:       op,
		ColumnID: f.requiredStr("ColumnID"),
	}
	if v := f.str("Value"); v != nil {
		p.Value = *v
	}
	if f.err != nil {
		return nil, f.err
	}
	return p, nil
}
