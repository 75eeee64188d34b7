package auth

import (
	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
)

// Authorize checks that a session exists and its role reaches required.
func Authorize(session *model.Session, required model.Role) error {
	if session == nil || session.UserID == "" {
		return domainErrors.ErrUnauthorized
	}
	if !session.Role.AtLeast(required) {
		return domainErrors.ErrForbidden
	}
	return nil
}
