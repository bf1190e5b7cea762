package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"sandtable-catalog/core"
	"sandtable-catalog/handlers/auth"
	"sandtable-catalog/stores/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	svc := auth.NewService(memory.NewStore(), []byte("secret"))
	handler := AuthJWT(svc)(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/patterns", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthJWT_MalformedHeader(t *testing.T) {
	svc := auth.NewService(memory.NewStore(), []byte("secret"))
	handler := AuthJWT(svc)(okHandler())

	for _, header := range []string{"token-without-scheme", "Basic abc", "Bearer a b"} {
		req := httptest.NewRequest(http.MethodGet, "/patterns", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header: %s", header)
	}
}

func TestAuthJWT_ValidTokenReachesHandler(t *testing.T) {
	svc := auth.NewService(memory.NewStore(), []byte("secret"))
	token, err := svc.CreateJWT(&core.User{Email: "user@example.com"})
	require.NoError(t, err)

	var sawClaims *auth.AppClaims
	handler := AuthJWT(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawClaims, _ = r.Context().Value(ClaimsContextKey).(*auth.AppClaims)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/patterns", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, sawClaims)
	assert.Equal(t, "user@example.com", sawClaims.User.Email)
}

func TestRequireAdmin(t *testing.T) {
	svc := auth.NewService(memory.NewStore(), []byte("secret"))
	handler := AuthJWT(svc)(RequireAdmin(okHandler()))

	cases := []struct {
		name  string
		admin bool
		want  int
	}{
		{"admin allowed", true, http.StatusOK},
		{"non-admin forbidden", false, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := svc.CreateJWT(&core.User{Email: "user@example.com", Admin: tc.admin})
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/patterns", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
