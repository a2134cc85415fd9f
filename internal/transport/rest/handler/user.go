package handler

import (
	"aulaquiz/internal/model"
	"aulaquiz/internal/service"
	"aulaquiz/internal/transport/rest/middleware"
	"net/http"

	"github.com/gorilla/mux"
)

// UserHandler handles /api/usuarios
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Produce      json
// @Success      200  {array}   model.User
// @Failure      500  {object}  ErrorResponse
// @Router       /api/usuarios [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Create godoc
// @Summary      Registrar usuario
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body      model.User  true  "idPortal, nombre, email, rol"
// @Success      201   {object}  model.User
// @Failure      400   {object}  ErrorResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if err := decodeJSON(r, &user); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.userSvc.Create(r.Context(), &user)
	if err != nil {
		// Any failure here is reported as a bad request, store errors included
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/usuarios/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.userSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Usuario eliminado"})
}

// UploadPhoto godoc
// @Summary      Subir foto de perfil
// @Tags         usuarios
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "id del usuario"
// @Param        foto  formData  file    true  "jpg, jpeg, png o webp (máx. 2 MB)"
// @Success      200   {object}  model.User
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      413   {object}  ErrorResponse
// @Router       /api/usuarios/{id}/foto [post]
func (h *UserHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	tmp := middleware.GetUploadedFile(r.Context())
	if tmp == "" {
		writeError(w, http.StatusBadRequest, "no se recibió ninguna imagen")
		return
	}

	user, err := h.userSvc.SetPhoto(r.Context(), mux.Vars(r)["id"], tmp)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
