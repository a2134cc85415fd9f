package model

import "time"

// User is a platform account identified by its portal id
type User struct {
	ID         string    `json:"_id" bson:"_id,omitempty"`
	IDPortal   string    `json:"idPortal" bson:"idPortal" validate:"required,max=64"`
	Nombre     string    `json:"nombre" bson:"nombre" validate:"required,max=120"`
	Apellidos  string    `json:"apellidos,omitempty" bson:"apellidos,omitempty" validate:"max=160"`
	Email      string    `json:"email" bson:"email" validate:"required,email"`
	Rol        Role      `json:"rol" bson:"rol" validate:"omitempty,oneof=alumno profesor admin"`
	FotoPerfil string    `json:"fotoPerfil,omitempty" bson:"fotoPerfil,omitempty"`
	CreadoEn   time.Time `json:"creadoEn" bson:"creadoEn"`
}
