package auth

import "time"

// Strategy signs and verifies the token carried in the session cookie.
type Strategy interface {
	IssueToken(sessionID string) (string, error)
	ParseToken(token string) (string, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
