package main

import (
	"aulaquiz/config"
	"aulaquiz/internal/app"
	"aulaquiz/internal/logger"
	"aulaquiz/internal/model"
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

var demoUsers = []model.User{
	{IDPortal: "admin.demo", Nombre: "Administración", Email: "admin@aulaquiz.local", Rol: model.RoleAdmin},
	{IDPortal: "prof.demo", Nombre: "Lucía", Apellidos: "Martín Ruiz", Email: "lucia.martin@aulaquiz.local", Rol: model.RoleProfesor},
	{IDPortal: "alu.demo", Nombre: "Pablo", Apellidos: "Sanz", Email: "pablo.sanz@aulaquiz.local", Rol: model.RoleAlumno},
}

func demoQuiz() *model.Cuestionario {
	return &model.Cuestionario{
		Titulo:           "Fundamentos de redes",
		Descripcion:      "Repaso de la unidad 2",
		Centro:           "CIFP-01",
		CodigoAsignatura: "SMR",
		Preguntas: []model.Pregunta{
			{
				Texto: "¿En qué capa del modelo OSI trabaja IP?",
				Tipo:  model.QuestionSingleChoice,
				Opciones: []model.Opcion{
					{Texto: "Enlace"},
					{Texto: "Red", Correcta: true},
					{Texto: "Transporte"},
				},
			},
			{
				Texto: "TCP es un protocolo orientado a conexión",
				Tipo:  model.QuestionTrueFalse,
				Opciones: []model.Opcion{
					{Texto: "Verdadero", Correcta: true},
					{Texto: "Falso"},
				},
			},
			{
				Texto: "Protocolos de la capa de aplicación",
				Tipo:  model.QuestionMultipleChoice,
				Opciones: []model.Opcion{
					{Texto: "HTTP", Correcta: true},
					{Texto: "DNS", Correcta: true},
					{Texto: "ARP"},
				},
			},
			{
				Texto:     "Puerto por defecto de HTTPS",
				Tipo:      model.QuestionShortAnswer,
				TiempoSeg: 30,
			},
		},
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "seed failed:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a, err := app.New(ctx, cfg, log, app.Options{WithoutHub: true})
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	var profesor model.Identity
	for _, u := range demoUsers {
		user := u
		created, err := a.UserService.Create(ctx, &user)
		if errors.Is(err, model.ErrDuplicateIDPortal) {
			log.Info().Str("idPortal", u.IDPortal).Msg("user already present")
			existing, err := a.UserRepo.GetByIDPortal(ctx, u.IDPortal)
			if err != nil || existing == nil {
				return fmt.Errorf("failed to load %s: %v", u.IDPortal, err)
			}
			created = existing
		} else if err != nil {
			return fmt.Errorf("failed to create %s: %w", u.IDPortal, err)
		} else {
			log.Info().Str("idPortal", created.IDPortal).Str("rol", string(created.Rol)).Msg("user created")
		}
		if created.Rol == model.RoleProfesor {
			profesor = model.Identity{UserID: created.ID, Rol: created.Rol}
		}
	}

	quiz, err := a.QuizService.Create(ctx, profesor, demoQuiz())
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	game, err := a.GameService.Create(ctx, profesor, &model.CreatePartidaRequest{CuestionarioID: quiz.ID})
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	fmt.Printf("Created quiz '%s' and game with PIN %s for %s\n", quiz.Titulo, game.Pin, profesor.UserID)
	return nil
}
