package middleware

import (
	"aulaquiz/internal/model"
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type contextKey string

const (
	IdentityKey     contextKey = "identity"
	RequestIDKey    contextKey = "requestId"
	UploadedFileKey contextKey = "uploadedFile"
)

// Header fallback used when no bearer token is sent
const (
	HeaderUserRole = "X-User-Role"
	HeaderUserID   = "X-User-Id"
)

// TokenValidator parses bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*model.SessionClaims, error)
}

// Identify resolves the caller of every request. A valid bearer token wins;
// an invalid one is rejected with 401. Without a token the X-User-* headers are used.
func Identify(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id model.Identity

			if token := extractBearerToken(r); token != "" {
				claims, err := tokens.ValidateToken(token)
				if err != nil {
					writeError(w, http.StatusUnauthorized, "token inválido o expirado")
					return
				}
				id = model.Identity{UserID: claims.UserID, Rol: model.ParseRole(string(claims.Rol))}
			} else {
				id = model.Identity{
					UserID: strings.TrimSpace(r.Header.Get(HeaderUserID)),
					Rol:    model.ParseRole(r.Header.Get(HeaderUserRole)),
				}
			}

			ctx := context.WithValue(r.Context(), IdentityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the caller from context
func GetIdentity(ctx context.Context) model.Identity {
	if v, ok := ctx.Value(IdentityKey).(model.Identity); ok {
		return v
	}
	return model.Identity{}
}

// GetRole extracts the caller role from context
func GetRole(ctx context.Context) model.Role {
	return GetIdentity(ctx).Rol
}

// GetUserID extracts the caller id from context
func GetUserID(ctx context.Context) string {
	return GetIdentity(ctx).UserID
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}
