// Package model defines domain entities for the application.
package model

import "time"

// SessionContext carries the authenticated user through request handling.
// It has a single writer (login/logout) and many readers; handlers receive
// it via the request context, never via package globals.
type SessionContext struct {
	UserID      string
	Email       string
	FirstName   string
	LastName    string
	TokenPrefix string
	IssuedAt    time.Time
}
