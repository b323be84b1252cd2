package user

import "strings"

type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	BranchID     string `json:"branchId"`
	AvatarURL    string `json:"avatarUrl,omitempty"`
	PasswordHash string `json:"passwordHash,omitempty"`
}

// Role is a named set of module permissions. Users reference roles by name.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []Module `json:"permissions"`
	IsSystem    bool     `json:"isSystem,omitempty"`
}

// HasModule checks if the role grants access to module
func (r Role) HasModule(module Module) bool {
	for _, m := range r.Permissions {
		if m == module {
			return true
		}
	}
	return false
}

func FindByEmail(users []User, email string) (User, bool) {
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return User{}, false
}

func FindRoleByName(roles []Role, name string) (Role, bool) {
	for _, r := range roles {
		if r.Name == name {
			return r, true
		}
	}
	return Role{}, false
}
