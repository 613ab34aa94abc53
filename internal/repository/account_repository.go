package repository

import (
	"context"
	"net/http"

	"unitip-client/internal/api"
	"unitip-client/internal/domain"
	"unitip-client/internal/observability"
)

// AccountRepository is the auth flow: it owns the session store's write half.
// Every other repository only ever reads the session it maintains.
type AccountRepository struct {
	client   *api.Client
	sessions domain.SessionStore
}

// NewAccountRepository creates an account repository backed by the given API
// client and session store.
func NewAccountRepository(client *api.Client, sessions domain.SessionStore) *AccountRepository {
	return &AccountRepository{client: client, sessions: sessions}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type logoutResponse struct {
	ID string `json:"id"`
}

type profileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type updateRolePayload struct {
	Role string `json:"role"`
}

type updateRoleResponse struct {
	Role string `json:"role"`
}

// Login authenticates with email and password and persists the returned
// session so subsequent operations carry its token.
func (r *AccountRepository) Login(ctx context.Context, email, password string) (domain.Session, *domain.Failure) {
	sess, failure := roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodPost,
		Path:      "/auth/login",
		Payload:   loginPayload{Email: email, Password: password},
		Operation: "account.login",
	}, rejectedEmptyBody, func(body *loginResponse) domain.Session {
		return domain.Session{
			UserID: body.ID,
			Name:   body.Name,
			Email:  body.Email,
			Role:   body.Role,
			Token:  body.Token,
		}
	})
	if failure != nil {
		return domain.Session{}, failure
	}

	if err := r.sessions.Save(sess); err != nil {
		observability.FromContext(ctx).Error("failed to persist session", "error", err)
		return domain.Session{}, domain.UnexpectedFailure()
	}
	return sess, nil
}

// Logout revokes the session remotely and clears the local store. The local
// clear happens even when the remote revoke is rejected; a stale token on the
// backend is preferable to a client stuck logged in.
func (r *AccountRepository) Logout(ctx context.Context) *domain.Failure {
	_, failure := roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodDelete,
		Path:      "/auth/logout",
		Operation: "account.logout",
	}, mappedEmptyBody, func(body *logoutResponse) string {
		return body.ID
	})

	if err := r.sessions.Clear(); err != nil {
		observability.FromContext(ctx).Error("failed to clear session", "error", err)
		return domain.UnexpectedFailure()
	}
	return failure
}

// GetProfile fetches the authenticated user's profile.
func (r *AccountRepository) GetProfile(ctx context.Context) (domain.Profile, *domain.Failure) {
	return roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodGet,
		Path:      "/accounts/profile",
		Operation: "account.get_profile",
	}, mappedEmptyBody, func(body *profileResponse) domain.Profile {
		return domain.Profile{
			ID:    body.ID,
			Name:  body.Name,
			Email: body.Email,
			Role:  body.Role,
		}
	})
}

// UpdateRole switches the account between customer and driver mode and
// updates the stored session to match.
func (r *AccountRepository) UpdateRole(ctx context.Context, role string) (string, *domain.Failure) {
	updated, failure := roundTrip(ctx, r.client, api.Request{
		Method:    http.MethodPatch,
		Path:      "/accounts/role",
		Payload:   updateRolePayload{Role: role},
		Operation: "account.update_role",
	}, mappedEmptyBody, func(body *updateRoleResponse) string {
		return body.Role
	})
	if failure != nil {
		return "", failure
	}

	if sess, ok := r.sessions.Read(); ok {
		sess.Role = updated
		if err := r.sessions.Save(sess); err != nil {
			observability.FromContext(ctx).Error("failed to persist session", "error", err)
			return "", domain.UnexpectedFailure()
		}
	}
	return updated, nil
}
