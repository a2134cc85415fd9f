package model

import "time"

// DashboardStats holds the counters shown on the admin dashboard
type DashboardStats struct {
	// Users
	TotalUsuarios int64 `json:"totalUsuarios"`
	Alumnos       int64 `json:"alumnos"`
	Profesores    int64 `json:"profesores"`
	Admins        int64 `json:"admins"`

	// Games
	TotalPartidas       int64 `json:"totalPartidas"`
	PartidasActivas     int64 `json:"partidasActivas"` // active or paused
	PartidasEnEspera    int64 `json:"partidasEnEspera"`
	PartidasFinalizadas int64 `json:"partidasFinalizadas"`

	TotalCuestionarios int64 `json:"totalCuestionarios"`

	// Realtime gateway, read from the hub of this process
	SalasActivas      int `json:"salasActivas"`
	ConexionesActivas int `json:"conexionesActivas"`

	GeneradoEn time.Time `json:"generadoEn"`
}

// AdminStats is the payload of GET /api/admin/stats
type AdminStats struct {
	Stats             DashboardStats `json:"stats"`
	UsuariosRecientes []*User        `json:"usuariosRecientes"`
}

// RecentUsersLimit is how many users AdminStats lists
const RecentUsersLimit = 5
