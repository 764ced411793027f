package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
	"github.com/getmockd/xmlad/pkg/cli/internal/output"
	"github.com/getmockd/xmlad/pkg/xmla/command"
	"github.com/getmockd/xmlad/pkg/xmla/discover"
	"github.com/getmockd/xmlad/pkg/xmla/fault"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
	"github.com/spf13/cobra"
	"golang.org/x/net/html/charset"
)

// parsedExecute is the printed form of an Execute request.
type parsedExecute struct {
	Method     string              `yaml:"method" json:"method"`
	Command    string              `yaml:"command" json:"command"`
	Known      bool                `yaml:"known" json:"known"`
	Body       command.Command     `yaml:"body,omitempty" json:"body,omitempty"`
	Properties map[string]string   `yaml:"properties,omitempty" json:"properties,omitempty"`
	Parameters []command.Parameter `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// parsedDiscover is the printed form of a Discover request.
type parsedDiscover struct {
	Method       string            `yaml:"method" json:"method"`
	RequestType  string            `yaml:"requestType" json:"requestType"`
	Known        bool              `yaml:"known" json:"known"`
	Restrictions map[string]string `yaml:"restrictions,omitempty" json:"restrictions,omitempty"`
	Properties   map[string]string `yaml:"properties,omitempty" json:"properties,omitempty"`
}

var errUnknownMethod = errors.New("document is neither an Execute nor a Discover request")

func newParseCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Decode an Execute or Discover request and print it",
		Long: `Decode an XMLA request and print the parsed form as YAML, or JSON with --json.

The input is a SOAP envelope or a bare Execute or Discover element, read from
FILE or standard input. Malformed requests print the SOAP fault they would
produce.`,
		Example: `  xmlad parse request.xml
  curl -s https://example.com/request.xml | xmlad parse --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			v, err := parseRequest(in)
			if err != nil {
				f := fault.Wrap(err, fault.BodyProcess)
				return fmt.Errorf("%s: %s", fault.FormatFaultCode(fault.DefaultPrefix, f.FaultCode, f.Code), fault.Detail(f))
			}
			if g.json {
				return output.JSON(cmd.OutOrStdout(), v)
			}
			return output.YAML(cmd.OutOrStdout(), v)
		},
	}
}

// parseRequest decodes a request document, unwrapping a SOAP envelope when
// present.
func parseRequest(r io.Reader) (any, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fault.New(fault.DOMParse, err)
	}

	method := doc.Root()
	if method != nil && method.Tag == "Envelope" {
		body := xmlutil.Child(method, "Body")
		if body == nil {
			return nil, fault.New(fault.BadSOAPBody, errors.New("envelope has no Body element"))
		}
		method = xmlutil.FirstElement(body.ChildElements())
	}
	if method == nil {
		return nil, fault.New(fault.BadSOAPBody, errUnknownMethod)
	}

	switch method.Tag {
	case "Execute":
		req, err := command.ParseExecute(method)
		if err != nil {
			return nil, err
		}
		return &parsedExecute{
			Method:     "Execute",
			Command:    req.CommandName,
			Known:      req.Command != nil,
			Body:       req.Command,
			Properties: req.Properties.ToMap(),
			Parameters: req.Parameters,
		}, nil
	case "Discover":
		req, err := discover.ParseRequest(method)
		if err != nil {
			return nil, err
		}
		_, known := req.Known()
		return &parsedDiscover{
			Method:       "Discover",
			RequestType:  req.RequestType,
			Known:        known,
			Restrictions: req.Restrictions.ToMap(),
			Properties:   req.Properties.ToMap(),
		}, nil
	}
	return nil, fault.Newf(fault.BadMethod, "%s: %w", method.Tag, errUnknownMethod)
}
