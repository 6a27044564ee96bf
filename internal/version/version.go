// Package version holds the build version of canvas-mcp.
package version

// Version is overridden at build time with
// -ldflags "-X github.com/hashicorp-forge/canvas-mcp/internal/version.Version=...".
var Version = "0.1.0-dev"
