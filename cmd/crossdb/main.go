// Package main provides the CrossDB command-line interface.
package main

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/crossdb/internal/cli"

	// Register dialect strategies.
	_ "github.com/leapstack-labs/crossdb/pkg/dialects/mysql"
	_ "github.com/leapstack-labs/crossdb/pkg/dialects/oracle"
	_ "github.com/leapstack-labs/crossdb/pkg/dialects/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
