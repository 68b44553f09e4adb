// Gmail inbox MCP server exposes sending mail and listing unread mail
// through Model Context Protocol.
package main

import (
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
