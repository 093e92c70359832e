// Package main is the entry point for the CMS API server.
package main

import (
	"context"
	"fmt"
	"os"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s)", version, commit)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
