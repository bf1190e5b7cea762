package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sandtable-catalog/core"
	"sandtable-catalog/stores/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func seedUsers(t *testing.T, objects core.ObjectStore, users []core.User) {
	t.Helper()
	data, err := json.Marshal(users)
	require.NoError(t, err)
	require.NoError(t, objects.Put(context.Background(), core.UsersKey, data))
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func postAuth(t *testing.T, svc *Service, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/auth", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	svc.HandleAuth()(w, req)
	return w
}

func TestHandleAuth_Success(t *testing.T) {
	objects := memory.NewStore()
	seedUsers(t, objects, []core.User{
		{Email: "admin@example.com", Name: "Admin", PasswordHash: hashPassword(t, "s3cret"), Admin: true},
	})
	svc := NewService(objects, []byte(testSecret))

	w := postAuth(t, svc, `{"email":"admin@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["token"])

	claims, err := svc.ParseJWT(resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.User.Email)
	assert.True(t, claims.User.Admin)
	// The hash must never travel inside the token.
	assert.Empty(t, claims.User.PasswordHash)
}

func TestHandleAuth_UnknownEmail(t *testing.T) {
	objects := memory.NewStore()
	seedUsers(t, objects, []core.User{
		{Email: "admin@example.com", PasswordHash: hashPassword(t, "s3cret"), Admin: true},
	})
	svc := NewService(objects, []byte(testSecret))

	w := postAuth(t, svc, `{"email":"ghost@example.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleAuth_WrongPassword(t *testing.T) {
	objects := memory.NewStore()
	seedUsers(t, objects, []core.User{
		{Email: "admin@example.com", PasswordHash: hashPassword(t, "s3cret"), Admin: true},
	})
	svc := NewService(objects, []byte(testSecret))

	w := postAuth(t, svc, `{"email":"admin@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleAuth_MissingFields(t *testing.T) {
	svc := NewService(memory.NewStore(), []byte(testSecret))

	for _, body := range []string{
		`{}`,
		`{"email":"admin@example.com"}`,
		`{"password":"s3cret"}`,
		`not json`,
	} {
		w := postAuth(t, svc, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}

func TestHandleAuth_MissingUserDatabase(t *testing.T) {
	svc := NewService(memory.NewStore(), []byte(testSecret))

	w := postAuth(t, svc, `{"email":"admin@example.com","password":"s3cret"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseJWT_RejectsTamperedToken(t *testing.T) {
	svc := NewService(memory.NewStore(), []byte(testSecret))
	other := NewService(memory.NewStore(), []byte("other-secret"))

	token, err := other.CreateJWT(&core.User{Email: "admin@example.com", Admin: true})
	require.NoError(t, err)

	_, err = svc.ParseJWT(token)
	assert.Error(t, err)
}
