// Package command parses the body of an XMLA Execute request into typed
// commands.
//
// Parse looks at the first element of the command body and dispatches on its
// local name through a fixed table, one entry per command kind. Each
// sub-parser reads its own children by name in any order:
//
//   - a missing required child is a malformed-input fault
//   - a missing optional child leaves the field nil
//   - booleans accept exactly "true" and "false"
//   - integers are base 10; dateTime and duration values are ISO-8601
//
// An unrecognized command name is not an error: Parse returns a nil command
// and the caller decides what to do with it.
//
//	cmd, err := command.Parse(commandElement.ChildElements())
//	switch c := cmd.(type) {
//	case *command.Statement:
//	    run(c.Text)
//	case *command.Cancel:
//	    cancel(c.SessionID)
//	}
package command
