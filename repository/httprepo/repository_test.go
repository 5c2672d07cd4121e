package httprepo_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/appquilar/go-auth"
	"github.com/appquilar/go-auth/repository/httprepo"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mintToken(t *testing.T, sub string, roles []string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   sub,
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	return token
}

func TestClientLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success decodes the returned token", func(t *testing.T) {
		token := mintToken(t, "user-1", []string{"REGULAR_USER"})

		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/auth/login", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			json.NewEncoder(w).Encode(map[string]string{"token": token})
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL)
		session, err := client.Login(ctx, auth.Credentials{
			Identifier: "ada@example.com",
			Password:   "secret",
		})

		require.NoError(t, err)
		assert.Equal(t, "user-1", session.UserID)
		assert.Equal(t, []auth.Role{auth.RoleUser}, session.Roles)
		assert.Equal(t, "ada@example.com", gotBody["identifier"])
	})

	t.Run("rejected credentials map to an authentication error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL)
		_, err := client.Login(ctx, auth.Credentials{Identifier: "ada@example.com", Password: "wrong"})

		assert.True(t, auth.IsAuthenticationError(err))
	})

	t.Run("bad request carries the backend message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]string{"message": "identifier is required"})
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL)
		_, err := client.Login(ctx, auth.Credentials{})

		require.Error(t, err)
		assert.True(t, auth.IsValidationError(err))
		assert.Contains(t, err.Error(), "identifier is required")
	})

	t.Run("unreachable backend is an operation error, not an auth error", func(t *testing.T) {
		client := httprepo.NewClient("http://127.0.0.1:1")
		_, err := client.Login(ctx, auth.Credentials{Identifier: "ada@example.com", Password: "secret"})

		require.Error(t, err)
		assert.False(t, auth.IsAuthenticationError(err))
	})
}

func TestClientRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns no session state", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/users/register", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL)
		err := client.Register(ctx, auth.Registration{
			FirstName:       "Ada",
			LastName:        "Lovelace",
			Email:           "ada@example.com",
			Password:        "valid-password-123",
			PasswordConfirm: "valid-password-123",
		})

		assert.NoError(t, err)
	})

	t.Run("conflict maps to the conflict error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL)
		err := client.Register(ctx, auth.Registration{})

		assert.True(t, auth.IsConflictError(err))
	})
}

func TestClientGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("maps the DTO including company and filters roles", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/users/6b1f8a52-0a5e-4f58-9c40-2f3f6f0c2a11", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]any{
				"id":         "6b1f8a52-0a5e-4f58-9c40-2f3f6f0c2a11",
				"email":      "ada@example.com",
				"username":   "ada",
				"first_name": "Ada",
				"last_name":  "Lovelace",
				"roles":      []string{"COMPANY_ADMIN", "BOGUS"},
				"company": map[string]any{
					"id":                  "7c2e9b63-1b6f-4a69-8d51-3a4a7b1d3b22",
					"name":                "Ada Rentals",
					"plan_type":           "starter",
					"is_founding_account": true,
					"subscription_status": "active",
				},
			})
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL)
		user, err := client.GetByID(ctx, "6b1f8a52-0a5e-4f58-9c40-2f3f6f0c2a11")

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, []auth.Role{auth.RoleCompanyAdmin}, user.Roles)
		require.NotNil(t, user.Company)
		assert.Equal(t, auth.PlanStarter, user.Company.Plan)
		assert.True(t, user.Company.IsFoundingAccount)

		plan, ok := user.EffectivePlan()
		require.True(t, ok)
		assert.Equal(t, auth.PlanEnterprise, plan)
	})

	t.Run("sends the Authorization header from the token source", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode(map[string]any{
				"id": "6b1f8a52-0a5e-4f58-9c40-2f3f6f0c2a11",
			})
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL, httprepo.WithTokenSource(func() string {
			return "Bearer tok-123"
		}))

		_, err := client.GetByID(ctx, "6b1f8a52-0a5e-4f58-9c40-2f3f6f0c2a11")
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL)
		_, err := client.GetByID(ctx, "6b1f8a52-0a5e-4f58-9c40-2f3f6f0c2a11")

		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("malformed user id surfaces as an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"id": "not-a-uuid"})
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL)
		_, err := client.GetByID(ctx, "whatever")

		assert.Error(t, err)
	})
}

func TestClientLogout(t *testing.T) {
	t.Run("posts with the current credential", func(t *testing.T) {
		var gotAuth string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/auth/logout", r.URL.Path)
			gotAuth = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		client := httprepo.NewClient(srv.URL, httprepo.WithTokenSource(func() string {
			return "Bearer tok-123"
		}))

		require.NoError(t, client.Logout(context.Background()))
		assert.Equal(t, "Bearer tok-123", gotAuth)
	})
}
