package handler

import (
	"aulaquiz/internal/model"
	"aulaquiz/internal/service"
	"aulaquiz/internal/transport/rest/middleware"
	"net/http"

	"github.com/gorilla/mux"
)

// QuizHandler handles /api/cuestionarios
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// Create godoc
// @Summary      Crear cuestionario
// @Tags         cuestionarios
// @Accept       json
// @Produce      json
// @Param        body  body      model.Cuestionario  true  "titulo y preguntas"
// @Success      201   {object}  model.Cuestionario
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Router       /api/cuestionarios [post]
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	var quiz model.Cuestionario
	if err := decodeJSON(r, &quiz); err != nil {
		writeServiceError(w, err)
		return
	}

	created, err := h.quizSvc.Create(r.Context(), middleware.GetIdentity(r.Context()), &quiz)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// List handles GET /api/cuestionarios
func (h *QuizHandler) List(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizSvc.List(r.Context(), middleware.GetIdentity(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quizzes)
}

// Get handles GET /api/cuestionarios/{id}
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizSvc.Get(r.Context(), middleware.GetIdentity(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// GameHandler handles /api/partidas
type GameHandler struct {
	gameSvc *service.GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameSvc *service.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// Create godoc
// @Summary      Crear partida
// @Tags         partidas
// @Accept       json
// @Produce      json
// @Param        body  body      model.CreatePartidaRequest  true  "cuestionarioId, tipoLobby, configuracion"
// @Success      201   {object}  model.Partida
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /api/partidas [post]
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePartidaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	game, err := h.gameSvc.Create(r.Context(), middleware.GetIdentity(r.Context()), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

// List handles GET /api/partidas
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameSvc.List(r.Context(), middleware.GetIdentity(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// Lobby godoc
// @Summary      Buscar partida por PIN
// @Tags         partidas
// @Produce      json
// @Param        pin  path      string  true  "PIN de 6 caracteres"
// @Success      200  {object}  model.Lobby
// @Failure      404  {object}  ErrorResponse
// @Router       /api/partidas/pin/{pin} [get]
func (h *GameHandler) Lobby(w http.ResponseWriter, r *http.Request) {
	lobby, err := h.gameSvc.Lobby(r.Context(), mux.Vars(r)["pin"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lobby)
}

// ChangeStateRequest is the body of PATCH /api/partidas/{id}/estado
type ChangeStateRequest struct {
	Estado model.GameState `json:"estado"`
}

// ChangeState godoc
// @Summary      Cambiar el estado de una partida
// @Tags         partidas
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "id de la partida"
// @Param        body  body      ChangeStateRequest  true  "nuevo estado"
// @Success      200   {object}  model.Partida
// @Failure      403   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /api/partidas/{id}/estado [patch]
func (h *GameHandler) ChangeState(w http.ResponseWriter, r *http.Request) {
	var req ChangeStateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeServiceError(w, err)
		return
	}

	game, err := h.gameSvc.ChangeState(r.Context(), middleware.GetIdentity(r.Context()), mux.Vars(r)["id"], req.Estado)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}
