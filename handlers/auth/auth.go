package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"sandtable-catalog/core"

	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// tokenTTL is deliberately long: tables in the field authenticate once and
// keep the token.
const tokenTTL = 10 * 365 * 24 * time.Hour

// AppClaims are the JWT claims issued on login. The user record is
// embedded whole (minus the password hash) so downstream handlers can read
// the admin flag without another store round trip.
type AppClaims struct {
	jwt.RegisteredClaims
	User core.User `json:"user"`
}

// Service issues and verifies bearer tokens against the credential
// records in users.json. The store handle and signing key are injected so
// tests can swap in doubles.
type Service struct {
	objects   core.ObjectStore
	jwtSecret []byte
}

// NewService creates the auth service.
func NewService(objects core.ObjectStore, jwtSecret []byte) *Service {
	if len(jwtSecret) == 0 {
		logrus.Warn("JWT secret is empty. Authentication will not work.")
	}
	return &Service{objects: objects, jwtSecret: jwtSecret}
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleAuth handles POST /auth: check the email/password pair against
// users.json and return a signed token. A missing or undecodable
// credential database is a 400, matching a request the deployment cannot
// serve yet; a bad credential is a 401.
func (s *Service) HandleAuth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]string{"error": "email and password are required"})
			return
		}

		user, err := s.lookupUser(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, core.ErrKeyNotFound) {
				logrus.WithError(err).Error("User database is missing")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]string{"error": "user database unavailable"})
				return
			}
			if !errors.Is(err, errUnknownUser) {
				logrus.WithError(err).Error("Failed to load user database")
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, map[string]string{"error": "user database unavailable"})
				return
			}
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"error": "invalid email or password"})
			return
		}

		if !user.CheckPassword(req.Password) {
			logrus.WithField("email", req.Email).Warn("Password mismatch")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, map[string]string{"error": "invalid email or password"})
			return
		}

		token, err := s.CreateJWT(user)
		if err != nil {
			logrus.WithError(err).Error("Failed to sign token")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]string{"error": "failed to create token"})
			return
		}

		logrus.WithField("email", user.Email).Info("User authenticated")
		render.JSON(w, r, map[string]string{"token": token})
	}
}

var errUnknownUser = errors.New("unknown user")

func (s *Service) lookupUser(ctx context.Context, email string) (*core.User, error) {
	data, err := s.objects.Get(ctx, core.UsersKey)
	if err != nil {
		return nil, err
	}

	var users []core.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode user database: %v", err)
	}

	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("no record for %s: %w", email, errUnknownUser)
}

// CreateJWT signs a token embedding the user record. The bcrypt hash is
// stripped first; the claims consumers need are the identity fields and
// the admin flag.
func (s *Service) CreateJWT(user *core.User) (string, error) {
	embedded := *user
	embedded.PasswordHash = ""

	claims := AppClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		User: embedded,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseJWT verifies a token and returns its claims.
func (s *Service) ParseJWT(tokenString string) (*AppClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AppClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AppClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
