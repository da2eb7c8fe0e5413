// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/taibuivan/kinoteka/internal/platform/apperr"

// # Identity Snapshot

// Identity is the read-only view of the acting account that the domain layer
// depends on. It is resolved once per request from the session and never
// mutated afterwards.
type Identity struct {
	UserID        string
	Username      string
	Email         string
	Authenticated bool

	// Staff is the manager privilege flag carried by the account.
	Staff bool
}

// Anonymous is the identity of a visitor without a session.
var Anonymous = Identity{}

// # Capability Checks

// IsManager reports whether the identity may curate catalog content and the
// top list. Only authenticated staff accounts qualify.
func IsManager(identity Identity) bool {
	return identity.Authenticated && identity.Staff
}

// RequireManager returns a FORBIDDEN [apperr.AppError] unless the identity is a manager.
//
// Mutating services call it before touching any state.
func RequireManager(identity Identity) error {
	if !IsManager(identity) {
		return apperr.Forbidden("Only managers can change the catalog")
	}
	return nil
}

// RequireAuthenticated returns an UNAUTHORIZED [apperr.AppError] for anonymous visitors.
func RequireAuthenticated(identity Identity, message string) error {
	if !identity.Authenticated {
		return apperr.Unauthorized(message)
	}
	return nil
}
