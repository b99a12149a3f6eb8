// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/atidentity"
	"github.com/atproto-go/sdk/lib/xrpc"
)

func runResolve(args []string) error {
	flagSet := pflag.NewFlagSet("resolve", pflag.ContinueOnError)
	plcDirectory := flagSet.String("plc-directory", "https://plc.directory", "PLC directory base URL")
	timeout := flagSet.Duration("timeout", 10*time.Second, "overall request timeout")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	rest := flagSet.Args()
	if len(rest) != 1 {
		return fmt.Errorf("resolve: expected exactly one handle or DID argument")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	executor := xrpc.NewExecutor()
	resolver := atidentity.NewCompositeResolver(
		atidentity.NewPLCResolver(*plcDirectory, executor),
		atidentity.NewWebResolver(executor),
	)

	did, err := resolveArgToDID(ctx, executor, rest[0])
	if err != nil {
		return err
	}

	doc, err := resolver.ResolveDID(ctx, did)
	if err != nil {
		return fmt.Errorf("resolving DID document: %w", err)
	}

	pdsURL, pdsErr := atidentity.DiscoverPDS(ctx, resolver, did)

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding DID document: %w", err)
	}
	fmt.Println(string(encoded))

	if pdsErr != nil {
		fmt.Fprintf(os.Stderr, "pds: %v\n", pdsErr)
	} else {
		fmt.Printf("pds: %s\n", pdsURL)
	}
	return nil
}

// resolveArgToDID accepts either a bare DID or a handle, resolving a
// handle through the HTTP well-known endpoint.
func resolveArgToDID(ctx context.Context, executor xrpc.Executor, arg string) (atid.DID, error) {
	if did, err := atid.ParseDID(arg); err == nil {
		return did, nil
	}

	handle, err := atid.ParseHandle(arg)
	if err != nil {
		return atid.DID{}, fmt.Errorf("%q is neither a valid DID nor a valid handle", arg)
	}
	return atidentity.NewHandleResolver(executor).ResolveHandle(ctx, handle)
}
