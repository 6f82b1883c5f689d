// Package models holds the persistent record types shared by repositories
// and services.
package models

import "time"

// Role tags carried by users. New registrations default to RoleGuest.
const (
	RoleGuest = "guest"
	RoleHost  = "host"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the recognized role tags.
func ValidRole(role string) bool {
	switch role {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName is the display name derived from the stored name fields.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
