package model

import "strings"

// Role is the access level of a user account
type Role string

const (
	RoleAlumno   Role = "alumno"
	RoleProfesor Role = "profesor"
	RoleAdmin    Role = "admin"
)

// DefaultRole is assigned when a user is created without one
const DefaultRole = RoleAlumno

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleAlumno, RoleProfesor, RoleAdmin:
		return true
	}
	return false
}

// ParseRole normalizes a raw header or claim value. Unknown values yield "".
func ParseRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return ""
	}
	return r
}

// GameState is the lifecycle state of a partida
type GameState string

const (
	GameWaiting  GameState = "waiting"
	GameActive   GameState = "active"
	GamePaused   GameState = "paused"
	GameFinished GameState = "finished"
)

func (s GameState) Valid() bool {
	switch s {
	case GameWaiting, GameActive, GamePaused, GameFinished:
		return true
	}
	return false
}

var gameTransitions = map[GameState][]GameState{
	GameWaiting: {GameActive, GameFinished},
	GameActive:  {GamePaused, GameFinished},
	GamePaused:  {GameActive, GameFinished},
}

// CanTransition reports whether a game may move from s to next.
// Setting the current state again is not a transition.
func (s GameState) CanTransition(next GameState) bool {
	for _, allowed := range gameTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// LobbyType distinguishes live games from scheduled exams
type LobbyType string

const (
	LobbyLive      LobbyType = "live"      // professor drives the game in real time
	LobbyScheduled LobbyType = "scheduled" // self-paced inside a time window
)

func (t LobbyType) Valid() bool {
	return t == LobbyLive || t == LobbyScheduled
}

// QuestionType is the answer format of a quiz question
type QuestionType string

const (
	QuestionSingleChoice   QuestionType = "single_choice"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionSingleChoice, QuestionMultipleChoice, QuestionTrueFalse, QuestionShortAnswer:
		return true
	}
	return false
}

// HasOptions reports whether the question is answered by picking options
func (t QuestionType) HasOptions() bool {
	return t == QuestionSingleChoice || t == QuestionMultipleChoice || t == QuestionTrueFalse
}

// Center is a teaching center users and quizzes can belong to
type Center struct {
	Code string `json:"codigo"`
	Name string `json:"nombre"`
}

var Centers = []Center{
	{Code: "CIFP-01", Name: "CIFP Politécnico"},
	{Code: "IES-02", Name: "IES Ciencias Aplicadas"},
	{Code: "IES-03", Name: "IES Humanidades"},
	{Code: "CEP-04", Name: "Centro de Educación Permanente"},
}

var CourseCodes = []string{"DAW", "DAM", "ASIR", "SMR", "BACH1", "BACH2", "ESO4"}

// IsCenter reports whether code names a known center
func IsCenter(code string) bool {
	for _, c := range Centers {
		if c.Code == code {
			return true
		}
	}
	return false
}

// IsCourseCode reports whether code names a known course
func IsCourseCode(code string) bool {
	for _, c := range CourseCodes {
		if c == code {
			return true
		}
	}
	return false
}

// GameConfig tunes how a partida is played
type GameConfig struct {
	TiempoPorPregunta     int  `json:"tiempoPorPregunta" bson:"tiempoPorPregunta" validate:"omitempty,min=5,max=600"`
	PuntosBase            int  `json:"puntosBase" bson:"puntosBase" validate:"omitempty,min=0"`
	MostrarRanking        bool `json:"mostrarRanking" bson:"mostrarRanking"`
	AleatorizarPreguntas  bool `json:"aleatorizarPreguntas" bson:"aleatorizarPreguntas"`
	AleatorizarRespuestas bool `json:"aleatorizarRespuestas" bson:"aleatorizarRespuestas"`
	MaxJugadores          int  `json:"maxJugadores" bson:"maxJugadores" validate:"omitempty,min=1,max=1000"`
}

// DefaultGameConfig returns the settings used when a game is created without overrides
func DefaultGameConfig() GameConfig {
	return GameConfig{
		TiempoPorPregunta:     20,
		PuntosBase:            1000,
		MostrarRanking:        true,
		AleatorizarPreguntas:  false,
		AleatorizarRespuestas: false,
		MaxJugadores:          200,
	}
}

// Merge fills zero numeric fields of c from def. Flags are taken from c as given.
func (c GameConfig) Merge(def GameConfig) GameConfig {
	if c.TiempoPorPregunta == 0 {
		c.TiempoPorPregunta = def.TiempoPorPregunta
	}
	if c.PuntosBase == 0 {
		c.PuntosBase = def.PuntosBase
	}
	if c.MaxJugadores == 0 {
		c.MaxJugadores = def.MaxJugadores
	}
	return c
}
