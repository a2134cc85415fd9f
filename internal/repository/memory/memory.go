// Package memory holds in-process repositories for running without MongoDB.
package memory

import (
	"aulaquiz/internal/model"
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepo is a map-backed repository.UserRepo
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*model.User
	// Err makes every call fail when set
	Err error
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[string]*model.User)}
}

func (r *UserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, u := range r.users {
		if u.IDPortal == user.IDPortal {
			return model.ErrDuplicateIDPortal
		}
	}
	if user.ID == "" {
		user.ID = primitive.NewObjectID().Hex()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByIDPortal(_ context.Context, idPortal string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, u := range r.users {
		if u.IDPortal == idPortal {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*model.User, error) {
	return r.filter(func(*model.User) bool { return true }, 0)
}

func (r *UserRepo) ListByRole(_ context.Context, rol model.Role) ([]*model.User, error) {
	return r.filter(func(u *model.User) bool { return u.Rol == rol }, 0)
}

func (r *UserRepo) Recent(_ context.Context, limit int64) ([]*model.User, error) {
	return r.filter(func(*model.User) bool { return true }, int(limit))
}

// filter returns matches newest first
func (r *UserRepo) filter(keep func(*model.User) bool, limit int) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []*model.User{}
	for _, u := range r.users {
		if keep(u) {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreadoEn.After(out[j].CreadoEn) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *UserRepo) SetPhoto(_ context.Context, id, path string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	u.FotoPerfil = path
	cp := *u
	return &cp, nil
}

func (r *UserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return false, r.Err
	}
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	users, err := r.List(ctx)
	return int64(len(users)), err
}

func (r *UserRepo) CountByRole(ctx context.Context, rol model.Role) (int64, error) {
	users, err := r.ListByRole(ctx, rol)
	return int64(len(users)), err
}

// QuizRepo is a map-backed repository.QuizRepo
type QuizRepo struct {
	mu      sync.RWMutex
	quizzes map[string]*model.Cuestionario
}

func NewQuizRepo() *QuizRepo {
	return &QuizRepo{quizzes: make(map[string]*model.Cuestionario)}
}

func (r *QuizRepo) Create(_ context.Context, quiz *model.Cuestionario) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	quiz.ID = primitive.NewObjectID().Hex()
	quiz.CreadoEn = now
	quiz.ActualizadoEn = now
	cp := *quiz
	r.quizzes[quiz.ID] = &cp
	return nil
}

func (r *QuizRepo) GetByID(_ context.Context, id string) (*model.Cuestionario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if q, ok := r.quizzes[id]; ok {
		cp := *q
		return &cp, nil
	}
	return nil, nil
}

func (r *QuizRepo) ListByProfesor(_ context.Context, profesorID string) ([]*model.Cuestionario, error) {
	return r.filter(func(q *model.Cuestionario) bool { return q.ProfesorID == profesorID }), nil
}

func (r *QuizRepo) List(_ context.Context) ([]*model.Cuestionario, error) {
	return r.filter(func(*model.Cuestionario) bool { return true }), nil
}

func (r *QuizRepo) filter(keep func(*model.Cuestionario) bool) []*model.Cuestionario {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*model.Cuestionario{}
	for _, q := range r.quizzes {
		if keep(q) {
			cp := *q
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreadoEn.After(out[j].CreadoEn) })
	return out
}

func (r *QuizRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.quizzes)), nil
}

// GameRepo is a map-backed repository.GameRepo
type GameRepo struct {
	mu    sync.RWMutex
	games map[string]*model.Partida
}

func NewGameRepo() *GameRepo {
	return &GameRepo{games: make(map[string]*model.Partida)}
}

func (r *GameRepo) Create(_ context.Context, game *model.Partida) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, g := range r.games {
		if g.Pin == game.Pin {
			return model.ErrDuplicatePIN
		}
	}
	now := time.Now()
	game.ID = primitive.NewObjectID().Hex()
	game.CreadaEn = now
	game.ActualizadaEn = now
	cp := *game
	r.games[game.ID] = &cp
	return nil
}

func (r *GameRepo) GetByID(_ context.Context, id string) (*model.Partida, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if g, ok := r.games[id]; ok {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (r *GameRepo) GetByPin(_ context.Context, pin string) (*model.Partida, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, g := range r.games {
		if g.Pin == pin {
			cp := *g
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *GameRepo) List(_ context.Context, estado model.GameState) ([]*model.Partida, error) {
	return r.filter(func(g *model.Partida) bool { return estado == "" || g.Estado == estado }), nil
}

func (r *GameRepo) ListByProfesor(_ context.Context, profesorID string) ([]*model.Partida, error) {
	return r.filter(func(g *model.Partida) bool { return g.ProfesorID == profesorID }), nil
}

func (r *GameRepo) filter(keep func(*model.Partida) bool) []*model.Partida {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*model.Partida{}
	for _, g := range r.games {
		if keep(g) {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreadaEn.After(out[j].CreadaEn) })
	return out
}

func (r *GameRepo) Update(_ context.Context, game *model.Partida) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[game.ID]; !ok {
		return model.ErrNotFound
	}
	game.ActualizadaEn = time.Now()
	cp := *game
	r.games[game.ID] = &cp
	return nil
}

func (r *GameRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.games[id]; !ok {
		return false, nil
	}
	delete(r.games, id)
	return true, nil
}

func (r *GameRepo) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.games)), nil
}

func (r *GameRepo) CountByState(_ context.Context, states ...model.GameState) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, g := range r.games {
		for _, s := range states {
			if g.Estado == s {
				n++
				break
			}
		}
	}
	return n, nil
}
