package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrMalformedCredential    = errors.New("malformed credential summary")
	ErrAuthorizationCancelled = errors.New("authorization cancelled")
	ErrInvalidClientState     = errors.New("invalid client state")
	ErrLookupFailed           = errors.New("credential lookup failed")
	ErrArchiveFailed          = errors.New("snapshot archive failed")
)
