package cli

import (
	"fmt"

	"github.com/getmockd/xmlad/pkg/cli/internal/output"
	"github.com/getmockd/xmlad/pkg/xmla/xmlutil"
	"github.com/spf13/cobra"
)

type encodedName struct {
	Name    string `json:"name"`
	Element string `json:"element"`
}

func newEncodeNameCommand(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "encode-name NAME...",
		Short: "Show the XML element name written for a column name",
		Example: `  xmlad encode-name "[Measures].[Unit Sales]"
  xmlad encode-name "Store Sales" 1997`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := xmlutil.NewNameEncoder()
			names := make([]encodedName, len(args))
			for i, a := range args {
				names[i] = encodedName{Name: a, Element: enc.Encode(a)}
			}
			if g.json {
				return output.JSON(cmd.OutOrStdout(), names)
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n.Element)
			}
			return nil
		},
	}
}
