// Package common defines shared constants and sentinel errors used across
// the FileBot components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Upload guard errors, one per terminal rejection.
	ErrorNoCredential      = errors.New("no credential stored")
	ErrorInvalidCredential = errors.New("invalid credential")
	ErrorFileTooLarge      = errors.New("file too large")
	ErrorQuotaExceeded     = errors.New("quota exceeded")
	ErrorTransferFailed    = errors.New("transfer failed")

	// ErrorUsageUnknown signals that a live usage query failed. It is
	// treated as quota-exceeded-safe: callers must reject, not pass.
	ErrorUsageUnknown = errors.New("usage unknown")
)
