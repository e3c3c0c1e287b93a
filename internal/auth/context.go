package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

const SessionHeader = "x-session-token"

// GetSessionToken returns the caller's basket session: explicit when set,
// otherwise the x-session-token metadata header.
func GetSessionToken(ctx context.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(SessionHeader); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
