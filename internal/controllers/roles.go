package controllers

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

var allowedRoles = map[string]struct{}{
	RoleAdmin:  {},
	RoleEditor: {},
}

func IsValidRole(role string) bool {
	_, ok := allowedRoles[role]
	return ok
}
