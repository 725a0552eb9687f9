// Package driving lists the operations the CLI, TUI and MCP front ends
// call. The services package implements every interface here.
package driving
