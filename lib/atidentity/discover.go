// Copyright 2026 The atproto-go Authors
// SPDX-License-Identifier: Apache-2.0

package atidentity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/atproto-go/sdk/lib/atid"
	"github.com/atproto-go/sdk/lib/atperror"
	"github.com/atproto-go/sdk/lib/netutil"
	"github.com/atproto-go/sdk/lib/xrpc"
)

const pdsServiceID = "#atproto_pds"
const pdsServiceType = "AtprotoPersonalDataServer"

// DiscoverPDS resolves did's document and returns the endpoint URL of
// its first service entry with type AtprotoPersonalDataServer and id
// "#atproto_pds".
func DiscoverPDS(ctx context.Context, resolver DIDResolver, did atid.DID) (string, error) {
	doc, err := resolver.ResolveDID(ctx, did)
	if err != nil {
		return "", err
	}
	for _, svc := range doc.Service {
		if svc.Type == pdsServiceType && svc.ID == pdsServiceID {
			return svc.ServiceEndpoint, nil
		}
	}
	return "", atperror.New(atperror.KindPDSNotFound, "no AtprotoPersonalDataServer service entry in document for "+did.String())
}

// DiscoverPDSForHandle resolves handle to a DID, then to its PDS
// endpoint.
func DiscoverPDSForHandle(ctx context.Context, handles *HandleResolver, dids DIDResolver, handle atid.Handle) (string, error) {
	did, err := handles.ResolveHandle(ctx, handle)
	if err != nil {
		return "", err
	}
	return DiscoverPDS(ctx, dids, did)
}

type protectedResourceMetadata struct {
	AuthorizationServers []string `json:"authorization_servers"`
}

// DiscoverAuthServer fetches
// "<pdsURL>/.well-known/oauth-protected-resource" and returns the first
// entry of authorization_servers.
func DiscoverAuthServer(ctx context.Context, executor xrpc.Executor, pdsURL string) (string, error) {
	header := make(http.Header)
	header.Set("Accept", "application/json")
	resp, err := executor.Do(ctx, &xrpc.Request{
		Method: http.MethodGet,
		URL:    pdsURL + "/.well-known/oauth-protected-resource",
		Header: header,
	})
	if err != nil {
		return "", atperror.Wrap(atperror.KindPDSNotFound, "fetching oauth-protected-resource from "+pdsURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", atperror.New(atperror.KindPDSNotFound, "oauth-protected-resource fetch returned status "+strconv.Itoa(resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, netutil.MaxResponseSize))
	if err != nil {
		return "", atperror.Wrap(atperror.KindPDSNotFound, "reading oauth-protected-resource response", err)
	}
	var metadata protectedResourceMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return "", atperror.Wrap(atperror.KindPDSNotFound, "decoding oauth-protected-resource response", err)
	}
	if len(metadata.AuthorizationServers) == 0 {
		return "", atperror.New(atperror.KindPDSNotFound, "oauth-protected-resource has no authorization_servers")
	}
	return metadata.AuthorizationServers[0], nil
}
