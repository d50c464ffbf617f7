// Package domain maps MCP tool calls onto the dice parser and evaluator.
//
// Handlers parse the requested notation, draw from either the server's shared
// source or a call-local seeded one, and return structured results that MCP
// clients can render.
package domain
