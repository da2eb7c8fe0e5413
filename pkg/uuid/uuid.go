// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the string identifiers used for accounts.

Values are UUID version 7, so they sort by creation time and keep the
users_account primary key index append-only.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string.
func New() string {

	// entropy failure is an unrecoverable system-level error
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate v7 identifier: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
