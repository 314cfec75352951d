package domain

import "time"

// Role is a closed set of user roles. Behavior branches on Role values with
// exhaustive switches; unknown strings are rejected at the boundary by
// ParseRole instead of leaking into comparisons.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleInstructor  Role = "instructor"
	RoleFieldWorker Role = "fieldworker"
)

// ParseRole converts a raw string into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleInstructor:
		return RoleInstructor, nil
	case RoleFieldWorker:
		return RoleFieldWorker, nil
	default:
		return "", ErrInvalidRole
	}
}

// CanManageHandouts reports whether the role may create or delete handouts.
func (r Role) CanManageHandouts() bool {
	switch r {
	case RoleAdmin, RoleInstructor:
		return true
	case RoleFieldWorker:
		return false
	default:
		return false
	}
}

// CanAdminister reports whether the role may manage sections, users and
// corpus ingestion.
func (r Role) CanAdminister() bool {
	return r == RoleAdmin
}

// User represents an account known to the service. Accounts are created by
// an admin; the plaintext access token is shown once at creation and only
// its hash is stored.
type User struct {
	ID        string
	FullName  string
	Email     string
	Role      Role
	TokenHash string // Never store plaintext tokens
	CreatedAt time.Time
}

// ValidateUser validates a User instance
func ValidateUser(u *User) error {
	if u == nil {
		return NewDomainError(ErrCodeValidation, "user cannot be nil")
	}
	if u.ID == "" {
		return NewDomainError(ErrCodeValidation, "user ID is required")
	}
	if u.FullName == "" {
		return NewDomainError(ErrCodeValidation, "user full name is required")
	}
	if u.Email == "" {
		return NewDomainError(ErrCodeValidation, "user email is required")
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	if u.TokenHash == "" {
		return NewDomainError(ErrCodeValidation, "user token hash is required")
	}
	return nil
}
