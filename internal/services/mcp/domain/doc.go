// Package domain defines the MCP tool schemas and handlers for the ledger.
package domain
