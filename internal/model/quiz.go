package model

import "time"

// Opcion is one selectable answer of a question
type Opcion struct {
	Texto    string `json:"texto" bson:"texto" validate:"required"`
	Correcta bool   `json:"correcta" bson:"correcta"`
}

// Pregunta is a question template inside a cuestionario
type Pregunta struct {
	Texto     string       `json:"texto" bson:"texto" validate:"required"`
	Tipo      QuestionType `json:"tipo" bson:"tipo" validate:"required"`
	Opciones  []Opcion     `json:"opciones,omitempty" bson:"opciones,omitempty" validate:"dive"`
	TiempoSeg int          `json:"tiempoSeg,omitempty" bson:"tiempoSeg,omitempty" validate:"omitempty,min=5,max=600"`
}

// Cuestionario is a reusable quiz owned by a professor
type Cuestionario struct {
	ID               string     `json:"_id" bson:"_id,omitempty"`
	Titulo           string     `json:"titulo" bson:"titulo" validate:"required,max=200"`
	Descripcion      string     `json:"descripcion,omitempty" bson:"descripcion,omitempty"`
	ProfesorID       string     `json:"profesorId" bson:"profesorId"`
	Centro           string     `json:"centro,omitempty" bson:"centro,omitempty"`
	CodigoAsignatura string     `json:"codigoAsignatura,omitempty" bson:"codigoAsignatura,omitempty"`
	Preguntas        []Pregunta `json:"preguntas" bson:"preguntas" validate:"required,min=1,dive"`
	CreadoEn         time.Time  `json:"creadoEn" bson:"creadoEn"`
	ActualizadoEn    time.Time  `json:"actualizadoEn" bson:"actualizadoEn"`
}
