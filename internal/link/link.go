// Package link resolves local users to the remote identity the aggregation
// vendor uses for them, and drives the device-link handshake. The OAuth flow
// itself happens on the vendor's side; we only create remote users and hand
// out link tokens.
package link

import "context"

// Provider resolves and establishes remote identities. RemoteUserID returns
// "" (with a nil error) for users who never linked a device — a valid empty
// state that short-circuits all fetch work, not an error.
type Provider interface {
	RemoteUserID(ctx context.Context, localUserID string) (string, error)
	CreateRemoteUser(ctx context.Context, localUserID string) (string, error)
	GenerateLinkToken(ctx context.Context, remoteUserID string) (string, error)
}
