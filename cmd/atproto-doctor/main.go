// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("subcommand required")
	}

	subcommand, rest := args[0], args[1:]
	switch subcommand {
	case "resolve":
		return runResolve(rest)
	case "get-record":
		return runGetRecord(rest)
	case "firehose":
		return runFirehose(rest)
	case "version":
		fmt.Println("atproto-doctor (dev)")
		return nil
	case "-h", "--help", "help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown subcommand: %q", subcommand)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: atproto-doctor <subcommand> [flags]

Subcommands:
  resolve     Resolve a handle or DID to its DID document and PDS endpoint
  get-record  Fetch a single record by AT-URI
  firehose    Print decoded events from a relay's subscribeRepos stream
  version     Print version information

Run 'atproto-doctor <subcommand> --help' for subcommand flags.
`)
}
