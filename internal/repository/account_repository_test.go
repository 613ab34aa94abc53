package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unitip-client/internal/api"
	"unitip-client/internal/domain"
	"unitip-client/internal/testutil"
)

func TestAccountRepository_Login(t *testing.T) {
	t.Run("persists_returned_session", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/login", r.URL.Path)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "rani@unitip.test", payload["email"])
			assert.Equal(t, "secret", payload["password"])

			w.Write([]byte(`{"id":"u1","name":"Rani","email":"rani@unitip.test","role":"customer","token":"fresh-token"}`))
		}))
		t.Cleanup(server.Close)

		sessions := &testutil.MemorySessionStore{}
		client := api.NewClient(server.URL, sessions)

		sess, failure := NewAccountRepository(client, sessions).Login(
			context.Background(), "rani@unitip.test", "secret")

		require.Nil(t, failure)
		assert.Equal(t, "fresh-token", sess.Token)

		stored, ok := sessions.Read()
		require.True(t, ok)
		assert.Equal(t, sess, stored)
	})

	t.Run("rejected_credentials_do_not_touch_the_store", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"invalid email or password"}`))
		}))
		t.Cleanup(server.Close)

		sessions := &testutil.MemorySessionStore{}
		client := api.NewClient(server.URL, sessions)

		_, failure := NewAccountRepository(client, sessions).Login(
			context.Background(), "rani@unitip.test", "wrong")

		require.NotNil(t, failure)
		assert.Equal(t, "invalid email or password", failure.Message)

		_, ok := sessions.Read()
		assert.False(t, ok)
	})

	t.Run("save_error_yields_generic_failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"u1","name":"Rani","email":"rani@unitip.test","role":"customer","token":"t"}`))
		}))
		t.Cleanup(server.Close)

		sessions := &testutil.MemorySessionStore{
			SaveFunc: func(domain.Session) error { return errors.New("disk full") },
		}
		client := api.NewClient(server.URL, sessions)

		_, failure := NewAccountRepository(client, sessions).Login(
			context.Background(), "rani@unitip.test", "secret")

		require.NotNil(t, failure)
		assert.Equal(t, domain.MsgUnexpectedError, failure.Message)
	})
}

func TestAccountRepository_Logout(t *testing.T) {
	t.Run("clears_session_on_success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/auth/logout", r.URL.Path)
			w.Write([]byte(`{"id":"u1"}`))
		}))
		t.Cleanup(server.Close)

		sessions := testutil.NewMemorySessionStore(testutil.TestSession())
		client := api.NewClient(server.URL, sessions)

		failure := NewAccountRepository(client, sessions).Logout(context.Background())

		require.Nil(t, failure)
		_, ok := sessions.Read()
		assert.False(t, ok)
	})

	t.Run("clears_session_even_when_remote_revoke_fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"token expired"}`))
		}))
		t.Cleanup(server.Close)

		sessions := testutil.NewMemorySessionStore(testutil.TestSession())
		client := api.NewClient(server.URL, sessions)

		failure := NewAccountRepository(client, sessions).Logout(context.Background())

		require.NotNil(t, failure)
		assert.Equal(t, "token expired", failure.Message)

		_, ok := sessions.Read()
		assert.False(t, ok, "local session must be gone regardless of the remote result")
	})
}

func TestAccountRepository_GetProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/profile", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":"u1","name":"Rani","email":"rani@unitip.test","role":"customer"}`))
	}))
	t.Cleanup(server.Close)

	sessions := testutil.NewMemorySessionStore(testutil.TestSession())
	client := api.NewClient(server.URL, sessions)

	profile, failure := NewAccountRepository(client, sessions).GetProfile(context.Background())

	require.Nil(t, failure)
	assert.Equal(t, domain.Profile{
		ID:    "u1",
		Name:  "Rani",
		Email: "rani@unitip.test",
		Role:  "customer",
	}, profile)
}

func TestAccountRepository_UpdateRole(t *testing.T) {
	t.Run("updates_stored_session_role", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/accounts/role", r.URL.Path)
			w.Write([]byte(`{"role":"driver"}`))
		}))
		t.Cleanup(server.Close)

		sessions := testutil.NewMemorySessionStore(testutil.TestSession())
		client := api.NewClient(server.URL, sessions)

		role, failure := NewAccountRepository(client, sessions).UpdateRole(context.Background(), "driver")

		require.Nil(t, failure)
		assert.Equal(t, "driver", role)

		stored, ok := sessions.Read()
		require.True(t, ok)
		assert.Equal(t, "driver", stored.Role)
	})

	t.Run("rejected_role_leaves_session_untouched", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"unknown role"}`))
		}))
		t.Cleanup(server.Close)

		sessions := testutil.NewMemorySessionStore(testutil.TestSession())
		client := api.NewClient(server.URL, sessions)

		_, failure := NewAccountRepository(client, sessions).UpdateRole(context.Background(), "pilot")

		require.NotNil(t, failure)
		assert.Equal(t, "unknown role", failure.Message)

		stored, ok := sessions.Read()
		require.True(t, ok)
		assert.Equal(t, domain.RoleCustomer, stored.Role)
	})
}
