package testutil

import "unitip-client/internal/domain"

// TestSession is the canonical session used across tests.
func TestSession() domain.Session {
	return domain.Session{
		UserID: "u1",
		Name:   "Rani",
		Email:  "rani@unitip.test",
		Role:   domain.RoleCustomer,
		Token:  "test-token",
	}
}
