package service

import (
	"aulaquiz/internal/model"
	"aulaquiz/internal/repository"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// UserService handles user accounts
type UserService struct {
	userRepo  repository.UserRepo
	validator *Validator
	onChange  func(ctx context.Context)
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepo, validator *Validator) *UserService {
	return &UserService{
		userRepo:  userRepo,
		validator: validator,
		onChange:  func(context.Context) {},
	}
}

// OnChange registers a hook run after users are created or deleted
func (s *UserService) OnChange(fn func(ctx context.Context)) {
	s.onChange = fn
}

// List returns every stored user
func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepo.List(ctx)
}

// ListByRole returns users of one role, or all of them when rol is empty
func (s *UserService) ListByRole(ctx context.Context, rol model.Role) ([]*model.User, error) {
	if rol == "" {
		return s.userRepo.List(ctx)
	}
	if !rol.Valid() {
		return nil, &model.ValidationError{Fields: []string{"rol debe ser uno de [alumno profesor admin]"}}
	}
	return s.userRepo.ListByRole(ctx, rol)
}

// Get returns the user or model.ErrNotFound
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.ErrNotFound
	}
	return user, nil
}

// Create validates and stores a new user. The id and creation time are
// always assigned here, whatever the payload carried.
func (s *UserService) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.ID = ""
	user.FotoPerfil = ""
	user.IDPortal = strings.TrimSpace(user.IDPortal)
	user.Email = strings.TrimSpace(user.Email)
	if user.Rol == "" {
		user.Rol = model.DefaultRole
	}

	if err := s.validator.Struct(user); err != nil {
		return nil, err
	}

	user.CreadoEn = time.Now()
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.onChange(ctx)
	return user, nil
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, id string) error {
	ok, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !ok {
		return model.ErrNotFound
	}
	s.onChange(ctx)
	return nil
}

// SetPhoto moves an uploaded temp file to <dir>/<id><ext> and records it on the user.
// The temp file is removed if the user does not exist, and a previous photo
// with another extension in the same directory is removed once the new one is recorded.
func (s *UserService) SetPhoto(ctx context.Context, id, tmpPath string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		_ = os.Remove(tmpPath)
		return nil, err
	}
	if user == nil {
		_ = os.Remove(tmpPath)
		return nil, model.ErrNotFound
	}

	ext := strings.ToLower(filepath.Ext(tmpPath))
	final := filepath.Join(filepath.Dir(tmpPath), id+ext)
	if err := os.Rename(tmpPath, final); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	updated, err := s.userRepo.SetPhoto(ctx, id, filepath.ToSlash(final))
	if err != nil {
		_ = os.Remove(final)
		return nil, err
	}
	if updated == nil {
		_ = os.Remove(final)
		return nil, model.ErrNotFound
	}

	if old := filepath.FromSlash(user.FotoPerfil); old != "" && old != final && filepath.Dir(old) == filepath.Dir(final) {
		_ = os.Remove(old)
	}
	return updated, nil
}
