package common

// Account roles. Every account is created with RoleUser; RoleAdmin is never
// assignable through the public API.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
