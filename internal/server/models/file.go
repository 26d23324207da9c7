package models

import "time"

// FileRecord describes one committed upload. Records are append-only:
// they are created exactly once, at the commit step, and never mutated.
type FileRecord struct {
	// ID is a server-assigned opaque record id.
	ID string `json:"id"`
	// OwnerID is the owning account's identifier.
	OwnerID string `json:"owner_id"`
	// Name is the user-supplied filename (sanitized of path separators).
	Name string `json:"name"`
	// ContentID is the content-address returned by the storage provider.
	ContentID string `json:"content_id"`
	// Size is the byte size declared by the front-end at receipt time.
	Size int64 `json:"size"`
	// UploadedAt is the commit timestamp.
	UploadedAt time.Time `json:"uploaded_at"`
}
