package model

import "time"

// Partida is a playable instance of a cuestionario, joined by PIN
type Partida struct {
	ID               string     `json:"_id" bson:"_id,omitempty"`
	Pin              string     `json:"pin" bson:"pin"`
	CuestionarioID   string     `json:"cuestionarioId" bson:"cuestionarioId"`
	Titulo           string     `json:"titulo" bson:"titulo"`
	ProfesorID       string     `json:"profesorId" bson:"profesorId"`
	TipoLobby        LobbyType  `json:"tipoLobby" bson:"tipoLobby"`
	Estado           GameState  `json:"estado" bson:"estado"`
	Configuracion    GameConfig `json:"configuracion" bson:"configuracion"`
	InicioProgramado *time.Time `json:"inicioProgramado,omitempty" bson:"inicioProgramado,omitempty"`
	FinProgramado    *time.Time `json:"finProgramado,omitempty" bson:"finProgramado,omitempty"`
	CreadaEn         time.Time  `json:"creadaEn" bson:"creadaEn"`
	ActualizadaEn    time.Time  `json:"actualizadaEn" bson:"actualizadaEn"`
}

// Joinable reports whether players may still enter the lobby
func (p *Partida) Joinable() bool {
	return p.Estado != GameFinished
}

// Lobby is the public view of a game shown to a student who typed the PIN
type Lobby struct {
	Pin       string    `json:"pin"`
	Titulo    string    `json:"titulo"`
	TipoLobby LobbyType `json:"tipoLobby"`
	Estado    GameState `json:"estado"`
}

// LobbyView strips owner and quiz references
func (p *Partida) LobbyView() *Lobby {
	return &Lobby{
		Pin:       p.Pin,
		Titulo:    p.Titulo,
		TipoLobby: p.TipoLobby,
		Estado:    p.Estado,
	}
}

// CreatePartidaRequest is the payload for POST /api/partidas
type CreatePartidaRequest struct {
	CuestionarioID   string      `json:"cuestionarioId" validate:"required"`
	Titulo           string      `json:"titulo,omitempty" validate:"max=200"`
	TipoLobby        LobbyType   `json:"tipoLobby,omitempty" validate:"omitempty,oneof=live scheduled"`
	Configuracion    *GameConfig `json:"configuracion,omitempty"`
	InicioProgramado *time.Time  `json:"inicioProgramado,omitempty"`
	FinProgramado    *time.Time  `json:"finProgramado,omitempty"`
}

// UpdatePartidaRequest is the admin patch for a game. Nil fields are left as they are.
type UpdatePartidaRequest struct {
	Titulo        *string     `json:"titulo,omitempty"`
	Estado        *GameState  `json:"estado,omitempty"`
	Configuracion *GameConfig `json:"configuracion,omitempty"`
}
