// Package models defines server-side data models persisted in the database.
package models

import "time"

// Account is the ledger's view of one chat-platform user.
type Account struct {
	// ID is the opaque chat-platform user identifier.
	ID string
	// DisplayName is an optional human label captured on first contact.
	DisplayName string
	// Credential is the opaque bearer token for the storage provider.
	// Empty until the user supplies one; never validated locally.
	Credential string
	// Points is the loyalty-point balance, +10 per committed upload.
	Points int64
	// UsedBytes caches the total size of committed file records. Only the
	// commit transaction writes it; with the live quota strategy it is
	// advisory.
	UsedBytes int64
	// CreatedAt is set on first contact.
	CreatedAt time.Time
}

// HasCredential reports whether a provider token has been stored.
func (a *Account) HasCredential() bool {
	return a != nil && a.Credential != ""
}
