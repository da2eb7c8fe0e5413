// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, signed tokens and the
// authorization gate.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing, capability
// checks) from the domain logic. Domain services depend only on [Identity] and
// the capability functions; transports depend on [StateService].
package sec

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// StateClaims is the payload of an OAuth "state" parameter.
//
// # Why a signed state?
//
// The provider echoes the state back on the callback. Signing it and binding
// it to the browser session lets the callback reject forged or replayed
// redirects without keeping server-side state for half-finished logins.
type StateClaims struct {
	jwt.RegisteredClaims

	// SessionID binds the state to the browser that started the flow.
	SessionID string `json:"sid"`
	// Next is the local path to return to after login.
	Next string `json:"nxt,omitempty"`
}

// StateService issues and verifies HS256-signed OAuth state tokens.
type StateService struct {
	secret     []byte
	issuer     string
	timeToLive time.Duration
	now        func() time.Time
}

// NewStateService creates a new StateService signing with the session secret.
func NewStateService(secret, issuer string, timeToLive time.Duration) (*StateService, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("sec: state secret must be at least 16 bytes")
	}

	return &StateService{
		secret:     []byte(secret),
		issuer:     issuer,
		timeToLive: timeToLive,
		now:        time.Now,
	}, nil
}

// Issue creates a signed state token for the given session.
func (service *StateService) Issue(sessionID, next string) (string, error) {
	currentTime := service.now()
	nonce, err := GenerateSecureToken(12)
	if err != nil {
		return "", err
	}

	claims := StateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        nonce,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.timeToLive)),
		},
		SessionID: sessionID,
		Next:      next,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign state: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature, expiry, issuer and session binding of a state token.
func (service *StateService) Verify(tokenString, sessionID string) (*StateClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &StateClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	},
		jwt.WithIssuer(service.issuer),
		jwt.WithTimeFunc(service.now),
	)

	if err != nil {
		return nil, fmt.Errorf("sec: invalid state: %w", err)
	}

	claims, ok := token.Claims.(*StateClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid state claims")
	}

	if claims.SessionID != sessionID {
		return nil, fmt.Errorf("sec: state issued for another session")
	}

	return claims, nil
}
