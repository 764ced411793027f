package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
	json       bool
}

// NewRootCommand builds the xmlad command tree.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "xmlad",
		Short: "xmlad is an XML for Analysis endpoint",
		Long: `xmlad speaks XML for Analysis over SOAP: it parses Discover and Execute
requests, manages XMLA sessions and writes rowset responses and SOAP faults.

Answers come from a declarative catalog in the configuration file. The file is
found through --config, XMLAD_CONFIG, or xmlad.yaml in the working directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to the configuration file")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "Log format (text, json)")
	root.PersistentFlags().BoolVar(&g.json, "json", false, "Output command results in JSON format")

	root.AddCommand(
		newServeCommand(g),
		newParseCommand(g),
		newEncodeNameCommand(g),
		newVersionCommand(g),
	)
	return root
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
