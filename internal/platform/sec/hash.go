// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for new hashes. Existing hashes keep
// the cost they were created with.
var PasswordCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash stored in users.account.passwordhash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("sec: hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash.
//
// Accounts provisioned through OAuth have an empty hash and never match.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateSecureToken returns size random bytes, base64url-encoded without padding.
// Session ids and username suffixes are drawn from it.
func GenerateSecureToken(size int) (string, error) {
	buffer := make([]byte, size)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}
