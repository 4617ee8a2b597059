package domain

const (
	// RoleAdmin and RoleUser are the role names seeded at startup.
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Role is a named grant attached to users through the user_roles join table.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User models an account in the system. Roles are always fully assembled
// from the join table before a User leaves the repository layer.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
	Active       bool   `json:"isActive"`
	Roles        []Role `json:"roles"`
}

// RoleNames returns the names of the user's roles, in stored order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// HasRole reports whether the user carries the named role.
func (u *User) HasRole(name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}
