package rest

import (
	"aulaquiz/internal/docs"
	"aulaquiz/internal/logger"
	"aulaquiz/internal/metrics"
	"aulaquiz/internal/service"
	"aulaquiz/internal/transport/rest/handler"
	"aulaquiz/internal/transport/rest/middleware"
	"aulaquiz/internal/transport/ws"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/swaggo/swag"
)

// ProfilePhotoField is the multipart field carrying the profile image
const ProfilePhotoField = "foto"

// Container holds all dependencies for the router
type Container struct {
	AuthService   *service.AuthService
	UserService   *service.UserService
	QuizService   *service.QuizService
	GameService   *service.GameService
	AdminService  *service.AdminService
	ExportService *service.ExportService
	WSHub         *ws.Hub
	Metrics       *metrics.Metrics
	Logger        *logger.Logger

	CORSOrigins    string
	UploadDir      string
	UploadMaxBytes int64
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	userHandler := handler.NewUserHandler(c.UserService)
	adminHandler := handler.NewAdminHandler(c.AdminService, c.UserService, c.GameService, c.ExportService)
	quizHandler := handler.NewQuizHandler(c.QuizService)
	gameHandler := handler.NewGameHandler(c.GameService)

	r.Use(middleware.RequestID, middleware.Observe(c.Logger, c.Metrics))

	// Operational routes
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	if c.Metrics != nil {
		r.Handle("/metrics", c.Metrics.Handler()).Methods("GET")
	}
	r.HandleFunc("/swagger/doc.json", serveDoc).Methods("GET")

	// Room gateway
	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub, c.Logger, c.Metrics)
		r.HandleFunc("/ws", wsHandler.ServeWS).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Identify(c.AuthService))

	// Public routes
	api.HandleFunc("/usuarios", userHandler.List).Methods("GET")
	api.HandleFunc("/usuarios", userHandler.Create).Methods("POST")
	api.HandleFunc("/partidas/pin/{pin}", gameHandler.Lobby).Methods("GET")

	api.Handle("/usuarios/{id}", middleware.RequireAdmin(http.HandlerFunc(userHandler.Delete))).Methods("DELETE")
	api.Handle("/usuarios/{id}/foto", chain(http.HandlerFunc(userHandler.UploadPhoto),
		middleware.RequireSelfOrAdmin("id"),
		middleware.ProfileImageUpload(c.UploadDir, c.UploadMaxBytes, ProfilePhotoField),
	)).Methods("POST")

	// Professor routes
	professor := api.NewRoute().Subrouter()
	professor.Use(middleware.RequireProfessorOrAdmin)

	professor.HandleFunc("/cuestionarios", quizHandler.Create).Methods("POST")
	professor.HandleFunc("/cuestionarios", quizHandler.List).Methods("GET")
	professor.HandleFunc("/cuestionarios/{id}", quizHandler.Get).Methods("GET")
	professor.HandleFunc("/partidas", gameHandler.Create).Methods("POST")
	professor.HandleFunc("/partidas", gameHandler.List).Methods("GET")
	professor.HandleFunc("/partidas/{id}/estado", gameHandler.ChangeState).Methods("PATCH")

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/stats", adminHandler.Stats).Methods("GET")
	admin.HandleFunc("/usuarios", adminHandler.Users).Methods("GET")
	admin.HandleFunc("/usuarios/export", adminHandler.ExportUsers).Methods("GET")
	admin.HandleFunc("/usuarios/{id}", adminHandler.User).Methods("GET")
	admin.HandleFunc("/partidas", adminHandler.Games).Methods("GET")
	admin.HandleFunc("/partidas/{id}", adminHandler.UpdateGame).Methods("PUT")
	admin.HandleFunc("/partidas/{id}", adminHandler.DeleteGame).Methods("DELETE")

	return middleware.CORS(c.CORSOrigins)(r)
}

// chain applies mws so that the first one runs first
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func serveDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}
