// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/atproto-go/sdk/lib/firehose"
)

func runFirehose(args []string) error {
	flagSet := pflag.NewFlagSet("firehose", pflag.ContinueOnError)
	relayURL := flagSet.String("relay", "wss://bsky.network", "WebSocket firehose endpoint")
	cursor := flagSet.Int64("cursor", 0, "resume cursor (sent only with --has-cursor; otherwise the live stream is used)")
	hasCursor := flagSet.Bool("has-cursor", false, "set when --cursor should be sent (distinguishes 0 from unset)")
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := firehose.NewFirehoseClient(*relayURL, firehose.NewWebSocketTransport())

	var cursorArg *int64
	if *hasCursor {
		cursorArg = cursor
	}

	events, errs := client.SubscribeRepos(ctx, cursorArg)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return waitForError(errs)
			}
			printEvent(event)
		case err, ok := <-errs:
			if ok && err != nil {
				return fmt.Errorf("firehose: %w", err)
			}
			return nil
		}
	}
}

func waitForError(errs <-chan error) error {
	if err := <-errs; err != nil {
		return fmt.Errorf("firehose: %w", err)
	}
	return nil
}

func printEvent(event firehose.Event) {
	switch e := event.(type) {
	case firehose.CommitEvent:
		fmt.Printf("commit seq=%d repo=%s rev=%s ops=%d\n", e.Seq, e.Repo, e.Rev, len(e.Ops))
		for _, op := range e.Ops {
			fmt.Printf("  %s %s/%s\n", op.Action, op.Collection(), op.Rkey())
		}
	case firehose.IdentityEvent:
		fmt.Printf("identity seq=%d did=%s handle=%s\n", e.Seq, e.DID, e.Handle)
	case firehose.HandleEvent:
		fmt.Printf("handle seq=%d did=%s handle=%s\n", e.Seq, e.DID, e.Handle)
	case firehose.AccountEvent:
		fmt.Printf("account seq=%d did=%s active=%t status=%s\n", e.Seq, e.DID, e.Active, e.Status)
	case firehose.InfoEvent:
		fmt.Printf("info name=%s message=%s\n", e.Name, e.Message)
	case firehose.UnknownEvent:
		fmt.Printf("unknown type=%s bytes=%d\n", e.Type, len(e.Raw))
	}
}
