package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxUsernameLength bounds usernames in characters; the column is varchar(255).
const MaxUsernameLength = 255

// Role is the coarse permission level attached to a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ParseRole converts s to a Role. An empty string yields RoleUser.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleUser, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
	return r, nil
}

// User models an account that can log in and author advertisements.
type User struct {
	ID             int64
	Username       string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
}

// IsAdmin reports whether the user currently holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserPatch carries a partial update for a user. Password holds plaintext;
// Apply hashes it before storing.
type UserPatch struct {
	Username Optional[string]
	Password Optional[string]
	Role     Optional[Role]
}

// Empty reports whether no field is present.
func (p UserPatch) Empty() bool {
	return !p.Username.Set && !p.Password.Set && !p.Role.Set
}

// Validate rejects present fields that would leave the user invalid.
func (p UserPatch) Validate() error {
	if p.Username.Set && (p.Username.Null || strings.TrimSpace(p.Username.Value) == "") {
		return NewValidationError("username", "must not be empty")
	}
	if p.Username.Set && utf8.RuneCountInString(p.Username.Value) > MaxUsernameLength {
		return NewValidationError("username", fmt.Sprintf("must be at most %d characters", MaxUsernameLength))
	}
	if p.Password.Set && (p.Password.Null || p.Password.Value == "") {
		return NewValidationError("password", "must not be empty")
	}
	if p.Role.Set && (p.Role.Null || !p.Role.Value.Valid()) {
		return NewValidationError("role", "must be one of: user admin")
	}
	return nil
}

// Apply overwrites every present field of u. hash turns a plaintext
// password into its stored form.
func (p UserPatch) Apply(u *User, hash func(string) (string, error)) error {
	if p.Username.Set {
		u.Username = p.Username.Value
	}
	if p.Password.Set {
		hashed, err := hash(p.Password.Value)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		u.HashedPassword = hashed
	}
	if p.Role.Set {
		u.Role = p.Role.Value
	}
	return nil
}
