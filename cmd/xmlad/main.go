// xmlad serves XML for Analysis over SOAP.
package main

import "github.com/getmockd/xmlad/pkg/cli"

func main() {
	cli.Execute()
}
