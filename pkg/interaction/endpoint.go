package interaction

import (
	"context"

	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

// ClientIDHeader is the metadata key carrying the client identity.
const ClientIDHeader = "x-gropc-client-id"

// EndpointFromContext identifies the calling client. The client id header
// takes precedence over the transport peer address.
func EndpointFromContext(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(ClientIDHeader); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return "unknown"
}

// WithClientID attaches a client id to an outgoing call.
func WithClientID(ctx context.Context, id string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, ClientIDHeader, id)
}
