package model

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the JWT claims of a signed-in user
type SessionClaims struct {
	UserID   string `json:"userId"`
	IDPortal string `json:"idPortal"`
	Rol      Role   `json:"rol"`
	jwt.RegisteredClaims
}

// Identity is the caller resolved for a request
type Identity struct {
	UserID string
	Rol    Role
}

// TokenResponse is printed by the token command
type TokenResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	IDPortal string `json:"idPortal"`
	Rol      Role   `json:"rol"`
}

// Anonymous reports a non-admin caller without a user id. Such callers
// cannot own quizzes or games.
func (i Identity) Anonymous() bool {
	return i.Rol != RoleAdmin && i.UserID == ""
}

// Owns reports whether the caller may act on something owned by ownerID
func (i Identity) Owns(ownerID string) bool {
	if i.Rol == RoleAdmin {
		return true
	}
	return i.UserID != "" && i.UserID == ownerID
}
