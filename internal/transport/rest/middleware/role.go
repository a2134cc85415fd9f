package middleware

import (
	"aulaquiz/internal/model"
	"net/http"

	"github.com/gorilla/mux"
)

const (
	msgAdminRequired     = "Acceso denegado: se requiere rol de administrador"
	msgProfessorRequired = "Acceso denegado: se requiere rol de profesor o administrador"
	msgSelfRequired      = "Acceso denegado: solo puedes modificar tu propio perfil"
)

// RequireAdmin lets only admins through
func RequireAdmin(next http.Handler) http.Handler {
	return requireRole(msgAdminRequired, model.RoleAdmin)(next)
}

// RequireProfessorOrAdmin lets professors and admins through
func RequireProfessorOrAdmin(next http.Handler) http.Handler {
	return requireRole(msgProfessorRequired, model.RoleProfesor, model.RoleAdmin)(next)
}

// requireRole answers 403 unless the caller holds one of allowed.
// A missing role is rejected the same way as an unknown one.
func requireRole(message string, allowed ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rol := GetRole(r.Context())
			for _, a := range allowed {
				if rol != "" && rol == a {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, message)
		})
	}
}

// RequireSelfOrAdmin lets admins through, and any caller whose id matches the
// {param} route variable.
func RequireSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetIdentity(r.Context())
			target := mux.Vars(r)[param]
			if id.Rol == model.RoleAdmin || (id.UserID != "" && id.UserID == target) {
				next.ServeHTTP(w, r)
				return
			}
			writeError(w, http.StatusForbidden, msgSelfRequired)
		})
	}
}
