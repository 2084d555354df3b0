package ai

import "errors"

var (
	// ErrUnavailable means the backend cannot be used at all
	// (no provider configured, missing credentials).
	ErrUnavailable = errors.New("ai backend unavailable")
	// ErrRequestFailed means the backend was reached but the call failed
	// (network error, quota, non-2xx status, unusable body).
	ErrRequestFailed = errors.New("ai request failed")
)
