package auth

import (
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/pontobip/internal/domain/errors"
	"github.com/polkiloo/pontobip/internal/domain/model"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name     string
		session  *model.Session
		required model.Role
		want     error
	}{
		{name: "no session", session: nil, required: model.RoleCollaborator, want: domainErrors.ErrUnauthorized},
		{name: "anonymous session", session: &model.Session{Role: model.RoleAdmin}, required: model.RoleCollaborator, want: domainErrors.ErrUnauthorized},
		{name: "collaborator", session: &model.Session{UserID: "u", Role: model.RoleCollaborator}, required: model.RoleCollaborator},
		{name: "collaborator on manager route", session: &model.Session{UserID: "u", Role: model.RoleCollaborator}, required: model.RoleManager, want: domainErrors.ErrForbidden},
		{name: "manager", session: &model.Session{UserID: "u", Role: model.RoleManager}, required: model.RoleManager},
		{name: "manager on admin route", session: &model.Session{UserID: "u", Role: model.RoleManager}, required: model.RoleAdmin, want: domainErrors.ErrForbidden},
		{name: "admin", session: &model.Session{UserID: "u", Role: model.RoleAdmin}, required: model.RoleManager},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.session, tc.required)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
