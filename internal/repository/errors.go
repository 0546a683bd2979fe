// Package repository defines error types that are reused across the data
// access layer. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without inspecting
// driver-specific errors.
package repository

import "errors"

// ErrPresentNotFound is returned when no present row matches the requested
// ID. Handlers should translate this into an HTTP 404 response.
var ErrPresentNotFound = errors.New("present not found")

// ErrAlreadyReserved is returned when a reservation attempt targets a
// present whose flag is already set. The conditional update guarantees
// that of two concurrent attempts on the same present exactly one
// receives this error. Handlers should translate it into an HTTP 400.
var ErrAlreadyReserved = errors.New("present already reserved")
