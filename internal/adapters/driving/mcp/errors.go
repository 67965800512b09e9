// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Factotum. It lets AI assistants search the local fact store, add
// facts, and resolve queries through the tiered response engine.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
