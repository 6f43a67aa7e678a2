package domain

import "time"

// Role is the closed set of roles a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Profile holds the descriptive user fields. The auth core never inspects them.
type Profile struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Country       string `json:"country,omitempty"`
	AboutMe       string `json:"about_me,omitempty"`
	DOB           string `json:"dob,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
}

// User models a registered member of the site.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Role         Role      `json:"role"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// SignupCandidate carries the data submitted at signup, before hashing.
type SignupCandidate struct {
	Username string
	Email    string
	Password string
	Profile  Profile
}
