// Package docs holds the OpenAPI document served at /swagger/doc.json.
// Regenerate with: swag init -g cmd/server/main.go -o internal/docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/usuarios": {
            "get": {
                "produces": ["application/json"],
                "tags": ["usuarios"],
                "summary": "Listar usuarios",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/model.User"}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["usuarios"],
                "summary": "Registrar usuario",
                "parameters": [
                    {"description": "idPortal, nombre, email, rol", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.User"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/usuarios/{id}/foto": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["usuarios"],
                "summary": "Subir foto de perfil",
                "parameters": [
                    {"type": "string", "description": "id del usuario", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "jpg, jpeg, png o webp (máx. 2 MB)", "name": "foto", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "413": {"description": "Request Entity Too Large", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/admin/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Panel de administración",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AdminStats"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/admin/usuarios/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["admin"],
                "summary": "Exportar usuarios a Excel",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/partidas/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Editar partida",
                "parameters": [
                    {"type": "string", "description": "id de la partida", "name": "id", "in": "path", "required": true},
                    {"description": "titulo, estado, configuracion", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.UpdatePartidaRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Partida"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/cuestionarios": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["cuestionarios"],
                "summary": "Crear cuestionario",
                "parameters": [
                    {"description": "titulo y preguntas", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.Cuestionario"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Cuestionario"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/partidas": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["partidas"],
                "summary": "Crear partida",
                "parameters": [
                    {"description": "cuestionarioId, tipoLobby, configuracion", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreatePartidaRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/model.Partida"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/partidas/pin/{pin}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["partidas"],
                "summary": "Buscar partida por PIN",
                "parameters": [
                    {"type": "string", "description": "PIN de 6 caracteres", "name": "pin", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Lobby"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/partidas/{id}/estado": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["partidas"],
                "summary": "Cambiar el estado de una partida",
                "parameters": [
                    {"type": "string", "description": "id de la partida", "name": "id", "in": "path", "required": true},
                    {"description": "nuevo estado", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ChangeStateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.Partida"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"}
            }
        },
        "handler.ChangeStateRequest": {
            "type": "object",
            "properties": {
                "estado": {"type": "string", "enum": ["waiting", "active", "paused", "finished"]}
            }
        },
        "model.User": {
            "type": "object",
            "required": ["idPortal", "nombre", "email"],
            "properties": {
                "_id": {"type": "string"},
                "idPortal": {"type": "string"},
                "nombre": {"type": "string"},
                "apellidos": {"type": "string"},
                "email": {"type": "string"},
                "rol": {"type": "string", "enum": ["alumno", "profesor", "admin"]},
                "fotoPerfil": {"type": "string"},
                "creadoEn": {"type": "string"}
            }
        },
        "model.GameConfig": {
            "type": "object",
            "properties": {
                "tiempoPorPregunta": {"type": "integer"},
                "puntosBase": {"type": "integer"},
                "mostrarRanking": {"type": "boolean"},
                "aleatorizarPreguntas": {"type": "boolean"},
                "aleatorizarRespuestas": {"type": "boolean"},
                "maxJugadores": {"type": "integer"}
            }
        },
        "model.Opcion": {
            "type": "object",
            "properties": {
                "texto": {"type": "string"},
                "correcta": {"type": "boolean"}
            }
        },
        "model.Pregunta": {
            "type": "object",
            "properties": {
                "texto": {"type": "string"},
                "tipo": {"type": "string", "enum": ["single_choice", "multiple_choice", "true_false", "short_answer"]},
                "opciones": {"type": "array", "items": {"$ref": "#/definitions/model.Opcion"}},
                "tiempoSeg": {"type": "integer"}
            }
        },
        "model.Cuestionario": {
            "type": "object",
            "required": ["titulo", "preguntas"],
            "properties": {
                "_id": {"type": "string"},
                "titulo": {"type": "string"},
                "descripcion": {"type": "string"},
                "profesorId": {"type": "string"},
                "centro": {"type": "string"},
                "codigoAsignatura": {"type": "string"},
                "preguntas": {"type": "array", "items": {"$ref": "#/definitions/model.Pregunta"}},
                "creadoEn": {"type": "string"},
                "actualizadoEn": {"type": "string"}
            }
        },
        "model.Partida": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "pin": {"type": "string"},
                "cuestionarioId": {"type": "string"},
                "titulo": {"type": "string"},
                "profesorId": {"type": "string"},
                "tipoLobby": {"type": "string", "enum": ["live", "scheduled"]},
                "estado": {"type": "string", "enum": ["waiting", "active", "paused", "finished"]},
                "configuracion": {"$ref": "#/definitions/model.GameConfig"},
                "inicioProgramado": {"type": "string"},
                "finProgramado": {"type": "string"},
                "creadaEn": {"type": "string"},
                "actualizadaEn": {"type": "string"}
            }
        },
        "model.CreatePartidaRequest": {
            "type": "object",
            "required": ["cuestionarioId"],
            "properties": {
                "cuestionarioId": {"type": "string"},
                "titulo": {"type": "string"},
                "tipoLobby": {"type": "string", "enum": ["live", "scheduled"]},
                "configuracion": {"$ref": "#/definitions/model.GameConfig"},
                "inicioProgramado": {"type": "string"},
                "finProgramado": {"type": "string"}
            }
        },
        "model.UpdatePartidaRequest": {
            "type": "object",
            "properties": {
                "titulo": {"type": "string"},
                "estado": {"type": "string", "enum": ["waiting", "active", "paused", "finished"]},
                "configuracion": {"$ref": "#/definitions/model.GameConfig"}
            }
        },
        "model.Lobby": {
            "type": "object",
            "properties": {
                "pin": {"type": "string"},
                "titulo": {"type": "string"},
                "tipoLobby": {"type": "string"},
                "estado": {"type": "string"}
            }
        },
        "model.DashboardStats": {
            "type": "object",
            "properties": {
                "totalUsuarios": {"type": "integer"},
                "alumnos": {"type": "integer"},
                "profesores": {"type": "integer"},
                "admins": {"type": "integer"},
                "totalPartidas": {"type": "integer"},
                "partidasActivas": {"type": "integer"},
                "partidasEnEspera": {"type": "integer"},
                "partidasFinalizadas": {"type": "integer"},
                "totalCuestionarios": {"type": "integer"},
                "salasActivas": {"type": "integer"},
                "conexionesActivas": {"type": "integer"},
                "generadoEn": {"type": "string"}
            }
        },
        "model.AdminStats": {
            "type": "object",
            "properties": {
                "stats": {"$ref": "#/definitions/model.DashboardStats"},
                "usuariosRecientes": {"type": "array", "items": {"$ref": "#/definitions/model.User"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AulaQuiz API",
	Description:      "Cuestionarios en el aula: usuarios, partidas en vivo y panel de administración",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
