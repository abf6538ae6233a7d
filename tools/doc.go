// Package tools provides the MCP tool handlers for the Taiga client.
//
// Each tool follows the same pattern:
//   - A struct holding its dependencies (the taiga.Client), injected via
//     its constructor
//   - Definition() returns the mcp.Tool schema
//   - Handle() processes the request and returns a result
//
// Handlers translate between MCP arguments and typed client calls. API
// failures become tool errors with the upstream detail preserved, never
// Go errors: a failed call is a result the model can read and react to,
// not a protocol failure.
package tools
