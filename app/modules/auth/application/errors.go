package authservice

import "errors"

var (
	// ErrInvalidSession is returned when a presented token does not map to
	// a live stored session.
	ErrInvalidSession = errors.New("invalid or revoked session")

	// ErrCodeExchange is returned when Discord rejects the OAuth code.
	ErrCodeExchange = errors.New("oauth code exchange failed")
)
