package rest

import (
	"aulaquiz/internal/logger"
	"aulaquiz/internal/metrics"
	"aulaquiz/internal/model"
	"aulaquiz/internal/repository/memory"
	"aulaquiz/internal/service"
	"aulaquiz/internal/transport/ws"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	server  *httptest.Server
	users   *memory.UserRepo
	auth    *service.AuthService
	hub     *ws.Hub
	uploads string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	log := logger.Nop()
	m := metrics.New()
	users := memory.NewUserRepo()
	quizzes := memory.NewQuizRepo()
	games := memory.NewGameRepo()
	v := service.NewValidator()
	hub := ws.NewHub(log, m)

	authSvc := service.NewAuthService(users, "test-secret", time.Hour)
	userSvc := service.NewUserService(users, v)
	quizSvc := service.NewQuizService(quizzes, v)
	gameSvc := service.NewGameService(games, quizzes, nil, v)
	gameSvc.SetBroadcaster(hub)
	adminSvc := service.NewAdminService(users, games, quizzes, nil, hub, log)

	uploads := t.TempDir()
	server := httptest.NewServer(NewRouter(&Container{
		AuthService:    authSvc,
		UserService:    userSvc,
		QuizService:    quizSvc,
		GameService:    gameSvc,
		AdminService:   adminSvc,
		ExportService:  service.NewExportService(users),
		WSHub:          hub,
		Metrics:        m,
		Logger:         log,
		CORSOrigins:    "*",
		UploadDir:      uploads,
		UploadMaxBytes: 2 << 20,
	}))
	t.Cleanup(func() {
		server.Close()
		hub.Close()
	})
	return &testApp{server: server, users: users, auth: authSvc, hub: hub, uploads: uploads}
}

type caller struct {
	rol   model.Role
	id    string
	token string
}

func (a *testApp) do(t *testing.T, method, path string, as caller, body interface{}) *http.Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, rdr)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if as.token != "" {
		req.Header.Set("Authorization", "Bearer "+as.token)
	}
	if as.rol != "" {
		req.Header.Set("X-User-Role", string(as.rol))
	}
	if as.id != "" {
		req.Header.Set("X-User-Id", as.id)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func (a *testApp) listUsers(t *testing.T) []*model.User {
	t.Helper()
	resp := a.do(t, http.MethodGet, "/api/usuarios", caller{}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []*model.User
	decode(t, resp, &users)
	return users
}

var ana = map[string]string{"idPortal": "ana.g", "nombre": "Ana", "apellidos": "García", "email": "ana@aula.es"}

func TestCreateUserAddsExactlyOne(t *testing.T) {
	app := newTestApp(t)
	before := len(app.listUsers(t))
	requestTime := time.Now()

	resp := app.do(t, http.MethodPost, "/api/usuarios", caller{}, ana)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created model.User
	decode(t, resp, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.RoleAlumno, created.Rol)
	assert.False(t, created.CreadoEn.Before(requestTime.Truncate(time.Millisecond)))

	assert.Len(t, app.listUsers(t), before+1)
}

func TestCreateUserDuplicateIDPortal(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/usuarios", caller{}, ana).StatusCode)
	before := len(app.listUsers(t))

	resp := app.do(t, http.MethodPost, "/api/usuarios", caller{}, ana)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, model.ErrDuplicateIDPortal.Error(), body["message"])
	assert.Len(t, app.listUsers(t), before)
}

func TestCreateUserInvalidPayloads(t *testing.T) {
	app := newTestApp(t)
	for _, body := range []interface{}{
		map[string]string{"nombre": "Sin portal", "email": "x@aula.es"},
		map[string]string{"idPortal": "p", "nombre": "N", "email": "no-es-email"},
		map[string]string{"idPortal": "p", "nombre": "N", "email": "p@aula.es", "rol": "director"},
		"no es un objeto",
	} {
		resp := app.do(t, http.MethodPost, "/api/usuarios", caller{}, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
	assert.Empty(t, app.listUsers(t))
}

func TestListUsersStoreFailure(t *testing.T) {
	app := newTestApp(t)
	app.users.Err = errors.New("conexión rechazada")

	resp := app.do(t, http.MethodGet, "/api/usuarios", caller{}, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, "conexión rechazada", body["message"])
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	app := newTestApp(t)
	paths := []string{"/api/admin/stats", "/api/admin/usuarios", "/api/admin/partidas", "/api/admin/usuarios/export"}
	for _, p := range paths {
		for _, as := range []caller{{}, {rol: model.RoleAlumno}, {rol: model.RoleProfesor}} {
			resp := app.do(t, http.MethodGet, p, as, nil)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode, "%s as %q", p, as.rol)
		}
		resp := app.do(t, http.MethodGet, p, caller{rol: model.RoleAdmin}, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, p)
	}
}

func TestAdminUsersWithBearerToken(t *testing.T) {
	app := newTestApp(t)
	admin := &model.User{IDPortal: "root", Nombre: "Admin", Email: "root@aula.es", Rol: model.RoleAdmin}
	require.NoError(t, app.users.Create(context.Background(), admin))
	require.NoError(t, app.users.Create(context.Background(), &model.User{IDPortal: "p1", Nombre: "P", Email: "p@aula.es", Rol: model.RoleProfesor}))

	tok, err := app.auth.IssueForPortalID(context.Background(), "root")
	require.NoError(t, err)

	resp := app.do(t, http.MethodGet, "/api/admin/usuarios?rol=profesor", caller{token: tok.Token}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var users []*model.User
	decode(t, resp, &users)
	require.Len(t, users, 1)
	assert.Equal(t, "p1", users[0].IDPortal)

	resp = app.do(t, http.MethodGet, "/api/admin/usuarios/"+admin.ID, caller{token: tok.Token}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = app.do(t, http.MethodGet, "/api/admin/usuarios/nope", caller{token: tok.Token}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = app.do(t, http.MethodGet, "/api/admin/stats", caller{token: "forged"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminExportUsers(t *testing.T) {
	app := newTestApp(t)
	require.Equal(t, http.StatusCreated, app.do(t, http.MethodPost, "/api/usuarios", caller{}, ana).StatusCode)

	resp := app.do(t, http.MethodGet, "/api/admin/usuarios/export", caller{rol: model.RoleAdmin}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, xlsxType, resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "usuarios.xlsx")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("PK")), "xlsx is a zip archive")
}

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func TestDeleteUser(t *testing.T) {
	app := newTestApp(t)
	resp := app.do(t, http.MethodPost, "/api/usuarios", caller{}, ana)
	var created model.User
	decode(t, resp, &created)

	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodDelete, "/api/usuarios/"+created.ID, caller{rol: model.RoleProfesor}, nil).StatusCode)
	assert.Equal(t, http.StatusOK, app.do(t, http.MethodDelete, "/api/usuarios/"+created.ID, caller{rol: model.RoleAdmin}, nil).StatusCode)
	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodDelete, "/api/usuarios/"+created.ID, caller{rol: model.RoleAdmin}, nil).StatusCode)
}

func (a *testApp) uploadPhoto(t *testing.T, userID string, as caller, filename string, size int) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(ProfilePhotoField, filename)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{1}, size))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, a.server.URL+"/api/usuarios/"+userID+"/foto", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-Role", string(as.rol))
	req.Header.Set("X-User-Id", as.id)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestUploadProfilePhoto(t *testing.T) {
	app := newTestApp(t)
	resp := app.do(t, http.MethodPost, "/api/usuarios", caller{}, ana)
	var created model.User
	decode(t, resp, &created)
	self := caller{rol: model.RoleAlumno, id: created.ID}

	assert.Equal(t, http.StatusForbidden, app.uploadPhoto(t, created.ID, caller{rol: model.RoleAlumno, id: "otro"}, "a.png", 10).StatusCode)
	assert.Equal(t, http.StatusBadRequest, app.uploadPhoto(t, created.ID, self, "a.gif", 10).StatusCode)
	assert.Equal(t, http.StatusNotFound, app.uploadPhoto(t, "desconocido", caller{rol: model.RoleAdmin}, "a.png", 10).StatusCode)

	resp = app.uploadPhoto(t, created.ID, self, "Retrato.PNG", 1<<20)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated model.User
	decode(t, resp, &updated)
	assert.Equal(t, filepath.ToSlash(filepath.Join(app.uploads, created.ID+".png")), updated.FotoPerfil)

	matches, err := filepath.Glob(filepath.Join(app.uploads, "tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files are renamed or removed")
}

func dialRoom(t *testing.T, app *testApp, room string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(app.server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "join_room", "payload": room}))
	var ack ws.Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&ack))
	require.Equal(t, ws.MsgJoinedRoom, ack.Type)
	return conn
}

func TestGameLifecycleOverHTTPAndRoom(t *testing.T) {
	app := newTestApp(t)
	prof := caller{rol: model.RoleProfesor, id: "prof-1"}

	quizBody := map[string]interface{}{
		"titulo": "Redes",
		"preguntas": []map[string]interface{}{{
			"texto":    "¿Capa de IP?",
			"tipo":     "single_choice",
			"opciones": []map[string]interface{}{{"texto": "3", "correcta": true}, {"texto": "4", "correcta": false}},
		}},
	}
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodPost, "/api/cuestionarios", caller{rol: model.RoleAlumno}, quizBody).StatusCode)

	resp := app.do(t, http.MethodPost, "/api/cuestionarios", prof, quizBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var quiz model.Cuestionario
	decode(t, resp, &quiz)
	assert.Equal(t, "prof-1", quiz.ProfesorID)

	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, "/api/cuestionarios/"+quiz.ID, caller{rol: model.RoleProfesor, id: "prof-2"}, nil).StatusCode)

	resp = app.do(t, http.MethodPost, "/api/partidas", prof, map[string]interface{}{
		"cuestionarioId": quiz.ID,
		"configuracion":  map[string]int{"tiempoPorPregunta": 30},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var game model.Partida
	decode(t, resp, &game)
	assert.Len(t, game.Pin, 6)
	assert.Equal(t, model.GameWaiting, game.Estado)
	assert.Equal(t, 30, game.Configuracion.TiempoPorPregunta)
	assert.Equal(t, model.DefaultGameConfig().PuntosBase, game.Configuracion.PuntosBase)

	resp = app.do(t, http.MethodGet, "/api/partidas/pin/"+strings.ToLower(game.Pin), caller{}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var lobby model.Lobby
	decode(t, resp, &lobby)
	assert.Equal(t, game.Pin, lobby.Pin)
	assert.Equal(t, "Redes", lobby.Titulo)

	conn := dialRoom(t, app, game.Pin)

	resp = app.do(t, http.MethodPatch, "/api/partidas/"+game.ID+"/estado", prof, map[string]string{"estado": "active"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var event ws.Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, ws.MessageType(service.EventGameState), event.Type)
	assert.JSONEq(t, `{"partidaId":"`+game.ID+`","pin":"`+game.Pin+`","estado":"active"}`, string(event.Payload))

	resp = app.do(t, http.MethodPatch, "/api/partidas/"+game.ID+"/estado", prof, map[string]string{"estado": "waiting"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp = app.do(t, http.MethodPatch, "/api/partidas/"+game.ID+"/estado", caller{rol: model.RoleProfesor, id: "prof-2"}, map[string]string{"estado": "paused"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = app.do(t, http.MethodGet, "/api/admin/stats", caller{rol: model.RoleAdmin}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var stats model.AdminStats
	decode(t, resp, &stats)
	assert.Equal(t, int64(1), stats.Stats.PartidasActivas)
	assert.Equal(t, 1, stats.Stats.SalasActivas)

	resp = app.do(t, http.MethodDelete, "/api/admin/partidas/"+game.ID, caller{rol: model.RoleAdmin}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, ws.MessageType(service.EventGameDeleted), event.Type)

	assert.Equal(t, http.StatusNotFound, app.do(t, http.MethodGet, "/api/partidas/pin/"+game.Pin, caller{}, nil).StatusCode)
}

func TestOperationalEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp := app.do(t, http.MethodGet, "/health", caller{}, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = app.do(t, http.MethodGet, "/swagger/doc.json", caller{}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc map[string]interface{}
	decode(t, resp, &doc)
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/api/usuarios")

	resp = app.do(t, http.MethodGet, "/metrics", caller{}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "aulaquiz_http_requests_total")
}

func TestProfessorWithoutIDOwnsNothing(t *testing.T) {
	app := newTestApp(t)
	quizBody := map[string]interface{}{
		"titulo": "Sin dueño",
		"preguntas": []map[string]interface{}{{
			"texto":    "¿2+2?",
			"tipo":     "single_choice",
			"opciones": []map[string]interface{}{{"texto": "4", "correcta": true}, {"texto": "5", "correcta": false}},
		}},
	}
	anon := caller{rol: model.RoleProfesor}

	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodPost, "/api/cuestionarios", anon, quizBody).StatusCode)

	// An admin without an id still creates a quiz with an empty owner
	resp := app.do(t, http.MethodPost, "/api/cuestionarios", caller{rol: model.RoleAdmin}, quizBody)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var quiz model.Cuestionario
	decode(t, resp, &quiz)
	require.Empty(t, quiz.ProfesorID)

	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodGet, "/api/cuestionarios/"+quiz.ID, anon, nil).StatusCode)
	assert.Equal(t, http.StatusForbidden, app.do(t, http.MethodPost, "/api/partidas", anon, map[string]string{"cuestionarioId": quiz.ID}).StatusCode)

	resp = app.do(t, http.MethodGet, "/api/cuestionarios", anon, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []model.Cuestionario
	decode(t, resp, &listed)
	assert.Empty(t, listed)

	resp = app.do(t, http.MethodPost, "/api/partidas", caller{rol: model.RoleAdmin}, map[string]string{"cuestionarioId": quiz.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var game model.Partida
	decode(t, resp, &game)
	resp = app.do(t, http.MethodPatch, "/api/partidas/"+game.ID+"/estado", anon, map[string]string{"estado": "active"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
