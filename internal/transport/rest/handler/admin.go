package handler

import (
	"aulaquiz/internal/model"
	"aulaquiz/internal/service"
	"bytes"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminHandler handles /api/admin
type AdminHandler struct {
	adminSvc  *service.AdminService
	userSvc   *service.UserService
	gameSvc   *service.GameService
	exportSvc *service.ExportService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminSvc *service.AdminService, userSvc *service.UserService, gameSvc *service.GameService, exportSvc *service.ExportService) *AdminHandler {
	return &AdminHandler{
		adminSvc:  adminSvc,
		userSvc:   userSvc,
		gameSvc:   gameSvc,
		exportSvc: exportSvc,
	}
}

// Stats godoc
// @Summary      Panel de administración
// @Tags         admin
// @Produce      json
// @Success      200  {object}  model.AdminStats
// @Failure      403  {object}  ErrorResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminSvc.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// Users handles GET /api/admin/usuarios?rol=
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	rol := model.Role(r.URL.Query().Get("rol"))
	users, err := h.userSvc.ListByRole(r.Context(), rol)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// User handles GET /api/admin/usuarios/{id}
func (h *AdminHandler) User(w http.ResponseWriter, r *http.Request) {
	user, err := h.userSvc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ExportUsers godoc
// @Summary      Exportar usuarios a Excel
// @Tags         admin
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/admin/usuarios/export [get]
func (h *AdminHandler) ExportUsers(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.exportSvc.WriteUsers(r.Context(), &buf); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+service.UsersFilename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// Games handles GET /api/admin/partidas?estado=
func (h *AdminHandler) Games(w http.ResponseWriter, r *http.Request) {
	estado := model.GameState(r.URL.Query().Get("estado"))
	games, err := h.gameSvc.ListByState(r.Context(), estado)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// UpdateGame godoc
// @Summary      Editar partida
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "id de la partida"
// @Param        body  body      model.UpdatePartidaRequest  true  "titulo, estado, configuracion"
// @Success      200   {object}  model.Partida
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/admin/partidas/{id} [put]
func (h *AdminHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	var req model.UpdatePartidaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	game, err := h.gameSvc.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

// DeleteGame handles DELETE /api/admin/partidas/{id}
func (h *AdminHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := h.gameSvc.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Success: true, Message: "Partida eliminada"})
}
