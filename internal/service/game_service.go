package service

import (
	"aulaquiz/internal/cache"
	"aulaquiz/internal/model"
	"aulaquiz/internal/repository"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	pinAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	pinLength      = 6
	maxPinAttempts = 10
	pendingGameID  = "pending"
)

// GameService handles partida lifecycle operations
type GameService struct {
	gameRepo    repository.GameRepo
	quizRepo    repository.QuizRepo
	pinCache    cache.PinCache // nil when Redis is not configured
	validator   *Validator
	broadcaster Broadcaster
	onChange    func(ctx context.Context)
	random      io.Reader
}

// NewGameService creates a new game service. pinCache may be nil.
func NewGameService(
	gameRepo repository.GameRepo,
	quizRepo repository.QuizRepo,
	pinCache cache.PinCache,
	validator *Validator,
) *GameService {
	return &GameService{
		gameRepo:    gameRepo,
		quizRepo:    quizRepo,
		pinCache:    pinCache,
		validator:   validator,
		broadcaster: noopBroadcaster{},
		onChange:    func(context.Context) {},
		random:      rand.Reader,
	}
}

// SetBroadcaster injects the realtime gateway
func (s *GameService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// OnChange registers a hook run after games are created, updated or deleted
func (s *GameService) OnChange(fn func(ctx context.Context)) {
	s.onChange = fn
}

// Create opens a new game for a quiz the caller may use
func (s *GameService) Create(ctx context.Context, caller model.Identity, req *model.CreatePartidaRequest) (*model.Partida, error) {
	if caller.Anonymous() {
		return nil, model.ErrForbidden
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(ctx, req.CuestionarioID)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	if quiz == nil {
		return nil, model.ErrNotFound
	}
	if !caller.Owns(quiz.ProfesorID) {
		return nil, model.ErrForbidden
	}

	game := &model.Partida{
		CuestionarioID: quiz.ID,
		Titulo:         strings.TrimSpace(req.Titulo),
		ProfesorID:     caller.UserID,
		TipoLobby:      req.TipoLobby,
		Estado:         model.GameWaiting,
		Configuracion:  model.DefaultGameConfig(),
	}
	if game.Titulo == "" {
		game.Titulo = quiz.Titulo
	}
	if game.TipoLobby == "" {
		game.TipoLobby = model.LobbyLive
	}
	if req.Configuracion != nil {
		if err := s.validator.Struct(req.Configuracion); err != nil {
			return nil, err
		}
		game.Configuracion = req.Configuracion.Merge(model.DefaultGameConfig())
	}

	if game.TipoLobby == model.LobbyScheduled {
		if req.InicioProgramado == nil || req.FinProgramado == nil {
			return nil, &model.ValidationError{Fields: []string{"una partida programada necesita inicioProgramado y finProgramado"}}
		}
		if !req.InicioProgramado.Before(*req.FinProgramado) {
			return nil, &model.ValidationError{Fields: []string{"inicioProgramado debe ser anterior a finProgramado"}}
		}
		game.InicioProgramado = req.InicioProgramado
		game.FinProgramado = req.FinProgramado
	}

	if err := s.insertWithPin(ctx, game); err != nil {
		return nil, err
	}
	s.onChange(ctx)
	return game, nil
}

// insertWithPin draws PINs until one is both reserved and accepted by the store
func (s *GameService) insertWithPin(ctx context.Context, game *model.Partida) error {
	for attempts := 0; attempts < maxPinAttempts; attempts++ {
		pin, err := newPin(s.random)
		if err != nil {
			return err
		}

		free, err := s.pinAvailable(ctx, pin)
		if err != nil {
			return err
		}
		if !free {
			continue
		}

		game.Pin = pin
		err = s.gameRepo.Create(ctx, game)
		if errors.Is(err, model.ErrDuplicatePIN) {
			s.releasePin(ctx, pin)
			continue
		}
		if err != nil {
			s.releasePin(ctx, pin)
			return fmt.Errorf("failed to create game: %w", err)
		}
		if s.pinCache != nil {
			_ = s.pinCache.Bind(ctx, pin, game.ID)
		}
		return nil
	}
	return fmt.Errorf("failed to generate unique pin")
}

func (s *GameService) pinAvailable(ctx context.Context, pin string) (bool, error) {
	if s.pinCache != nil {
		return s.pinCache.Reserve(ctx, pin, pendingGameID)
	}
	existing, err := s.gameRepo.GetByPin(ctx, pin)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

func (s *GameService) releasePin(ctx context.Context, pin string) {
	if s.pinCache != nil {
		_ = s.pinCache.Release(ctx, pin)
	}
}

// newPin creates a 6-char code from an alphabet without 0/O and 1/I
func newPin(r io.Reader) (string, error) {
	b := make([]byte, pinLength)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	code := make([]byte, pinLength)
	for i := range code {
		code[i] = pinAlphabet[int(b[i])%len(pinAlphabet)]
	}
	return string(code), nil
}

// List returns the caller's games, or all of them for admins
func (s *GameService) List(ctx context.Context, caller model.Identity) ([]*model.Partida, error) {
	if caller.Rol == model.RoleAdmin {
		return s.gameRepo.List(ctx, "")
	}
	if caller.Anonymous() {
		return []*model.Partida{}, nil
	}
	return s.gameRepo.ListByProfesor(ctx, caller.UserID)
}

// ListByState is the admin listing with an optional state filter
func (s *GameService) ListByState(ctx context.Context, estado model.GameState) ([]*model.Partida, error) {
	if estado != "" && !estado.Valid() {
		return nil, &model.ValidationError{Fields: []string{"estado debe ser uno de [waiting active paused finished]"}}
	}
	return s.gameRepo.List(ctx, estado)
}

// Lobby resolves a PIN typed by a student. Finished games are not found.
func (s *GameService) Lobby(ctx context.Context, pin string) (*model.Lobby, error) {
	pin = strings.ToUpper(strings.TrimSpace(pin))
	game, err := s.findByPin(ctx, pin)
	if err != nil {
		return nil, err
	}
	if game == nil || !game.Joinable() {
		return nil, model.ErrNotFound
	}
	return game.LobbyView(), nil
}

// findByPin resolves through the PIN reservation when Redis is available and
// falls back to the store index otherwise
func (s *GameService) findByPin(ctx context.Context, pin string) (*model.Partida, error) {
	if s.pinCache != nil {
		id, err := s.pinCache.Lookup(ctx, pin)
		if err == nil && id != "" && id != pendingGameID {
			game, err := s.gameRepo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if game != nil && game.Pin == pin {
				return game, nil
			}
		}
	}
	return s.gameRepo.GetByPin(ctx, pin)
}

// ChangeState moves a game through its lifecycle and notifies its room
func (s *GameService) ChangeState(ctx context.Context, caller model.Identity, id string, next model.GameState) (*model.Partida, error) {
	game, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(game.ProfesorID) {
		return nil, model.ErrForbidden
	}
	if !next.Valid() {
		return nil, &model.ValidationError{Fields: []string{"estado debe ser uno de [waiting active paused finished]"}}
	}
	if !game.Estado.CanTransition(next) {
		return nil, fmt.Errorf("%s -> %s: %w", game.Estado, next, model.ErrInvalidTransition)
	}

	game.Estado = next
	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastToRoom(game.Pin, EventGameState, map[string]interface{}{
		"partidaId": game.ID,
		"pin":       game.Pin,
		"estado":    game.Estado,
	})
	s.onChange(ctx)
	return game, nil
}

// Update applies an admin patch and sends the new game to its room
func (s *GameService) Update(ctx context.Context, id string, req *model.UpdatePartidaRequest) (*model.Partida, error) {
	game, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Titulo != nil {
		titulo := strings.TrimSpace(*req.Titulo)
		if titulo == "" {
			return nil, &model.ValidationError{Fields: []string{"titulo es obligatorio"}}
		}
		game.Titulo = titulo
	}
	if req.Estado != nil && *req.Estado != game.Estado {
		if !req.Estado.Valid() {
			return nil, &model.ValidationError{Fields: []string{"estado debe ser uno de [waiting active paused finished]"}}
		}
		if !game.Estado.CanTransition(*req.Estado) {
			return nil, fmt.Errorf("%s -> %s: %w", game.Estado, *req.Estado, model.ErrInvalidTransition)
		}
		game.Estado = *req.Estado
	}
	if req.Configuracion != nil {
		if err := s.validator.Struct(req.Configuracion); err != nil {
			return nil, err
		}
		game.Configuracion = req.Configuracion.Merge(game.Configuracion)
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}

	s.broadcaster.BroadcastToRoom(game.Pin, EventGameUpdated, game)
	s.onChange(ctx)
	return game, nil
}

// Delete removes a game, frees its PIN and tells the room
func (s *GameService) Delete(ctx context.Context, id string) error {
	game, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.gameRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if !ok {
		return model.ErrNotFound
	}
	s.releasePin(ctx, game.Pin)

	s.broadcaster.BroadcastToRoom(game.Pin, EventGameDeleted, map[string]string{
		"partidaId": game.ID,
		"pin":       game.Pin,
	})
	s.onChange(ctx)
	return nil
}

func (s *GameService) get(ctx context.Context, id string) (*model.Partida, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return nil, model.ErrNotFound
	}
	return game, nil
}
