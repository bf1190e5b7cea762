package core

import "golang.org/x/crypto/bcrypt"

type (
	// User is one credential record from users.json. Records are resolved
	// by email; the admin flag gates catalog writes.
	User struct {
		Email        string `json:"email"`
		Name         string `json:"name,omitempty"`
		PasswordHash string `json:"passwordHash"`
		Admin        bool   `json:"admin"`
	}
)

// CheckPassword compares a plaintext password against the record's bcrypt
// hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
