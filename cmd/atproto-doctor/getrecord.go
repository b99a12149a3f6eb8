// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/pflag"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/atidentity"
	"github.com/atproto-go/sdk/lib/xrpc"
)

func runGetRecord(args []string) error {
	flagSet := pflag.NewFlagSet("get-record", pflag.ContinueOnError)
	pdsURL := flagSet.String("pds", "", "PDS base URL (skips identity resolution if set)")
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
		return fmt.Errorf("get-record: expected exactly one at:// URI argument")
	}

	uri, err := atid.ParseATURI(rest[0])
	if err != nil {
		return fmt.Errorf("get-record: %w", err)
	}
	if uri.AuthorityKind() != atid.AuthorityDID {
		return fmt.Errorf("get-record: URI authority must be a DID, got a handle (resolve it first)")
	}
	if uri.Collection() == nil || uri.RKey() == "" {
		return fmt.Errorf("get-record: URI must include a collection and record key")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	executor := xrpc.NewExecutor()

	resolvedPDS := *pdsURL
	if resolvedPDS == "" {
		resolver := atidentity.NewCompositeResolver(
			atidentity.NewPLCResolver(*plcDirectory, executor),
			atidentity.NewWebResolver(executor),
		)
		resolvedPDS, err = atidentity.DiscoverPDS(ctx, resolver, uri.AuthorityDID())
		if err != nil {
			return fmt.Errorf("get-record: discovering PDS: %w", err)
		}
	}

	client := xrpc.NewClient(resolvedPDS)
	params := url.Values{
		"repo":       {uri.AuthorityDID().String()},
		"collection": {uri.Collection().String()},
		"rkey":       {uri.RKey()},
	}

	record, err := xrpc.Query[json.RawMessage](ctx, client, "com.atproto.repo.getRecord", params)
	if err != nil {
		return fmt.Errorf("get-record: %w", err)
	}

	var pretty map[string]any
	if err := json.Unmarshal(record, &pretty); err != nil {
		fmt.Println(string(record))
		return nil
	}
	encoded, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return fmt.Errorf("get-record: formatting response: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
