package models

// AuthProvider identifies how a customer "logged in".
// This is a demo tag only; no real authentication happens anywhere.
type AuthProvider string

const (
	ProviderEmail  AuthProvider = "email"
	ProviderApple  AuthProvider = "apple"
	ProviderGoogle AuthProvider = "google"
)

// IsValidProvider reports whether p is a recognized auth provider tag
func IsValidProvider(p AuthProvider) bool {
	switch p {
	case ProviderEmail, ProviderApple, ProviderGoogle:
		return true
	}
	return false
}

// CustomerUser is a demo customer account. Email is the unique lookup key
// (matched case-insensitively). Records are created lazily on first login.
type CustomerUser struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name,omitempty"`
	AuthProvider AuthProvider `json:"authProvider"`
}

// Tech roles
const (
	RoleAdmin = "admin"
	RoleTech  = "tech"
)

// TechUser is a technician or shop admin. The set is fixed at seed time;
// tech accounts are never created dynamically.
type TechUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the tech has admin access to the portal
func (t TechUser) IsAdmin() bool {
	return t.Role == RoleAdmin
}
