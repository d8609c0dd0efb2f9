// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel errors reused across the
// collection repositories so that handlers can distinguish failure
// scenarios without inspecting driver-specific errors.
package repository

import "errors"

// ErrNotFound is returned when no document matches the requested
// identifier or filter.  Handlers translate this into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a registration attempts to reuse an
// email address that already belongs to a stored user.  Handlers
// translate this into an HTTP 409.
var ErrEmailExists = errors.New("email already exists")
