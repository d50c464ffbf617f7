// Package service wires the MCP protocol transport to the dice tools.
//
// It knows how to build the MCP server and run it over a transport; what the
// tools do lives in the domain package.
package service
