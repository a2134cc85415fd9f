package service

import (
	"aulaquiz/internal/model"
	"aulaquiz/internal/repository"
	"context"
	"fmt"
)

// QuizService handles cuestionario CRUD
type QuizService struct {
	quizRepo  repository.QuizRepo
	validator *Validator
	onChange  func(ctx context.Context)
}

// NewQuizService creates a new quiz service
func NewQuizService(quizRepo repository.QuizRepo, validator *Validator) *QuizService {
	return &QuizService{
		quizRepo:  quizRepo,
		validator: validator,
		onChange:  func(context.Context) {},
	}
}

// OnChange registers a hook run after a quiz is created
func (s *QuizService) OnChange(fn func(ctx context.Context)) {
	s.onChange = fn
}

// Create stores a quiz owned by the caller
func (s *QuizService) Create(ctx context.Context, caller model.Identity, quiz *model.Cuestionario) (*model.Cuestionario, error) {
	if caller.Anonymous() {
		return nil, model.ErrForbidden
	}
	quiz.ProfesorID = caller.UserID
	if err := s.validator.Cuestionario(quiz); err != nil {
		return nil, err
	}
	if err := s.quizRepo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}
	s.onChange(ctx)
	return quiz, nil
}

// Get returns a quiz visible to the caller. Professors only see their own.
func (s *QuizService) Get(ctx context.Context, caller model.Identity, id string) (*model.Cuestionario, error) {
	quiz, err := s.quizRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, model.ErrNotFound
	}
	if !caller.Owns(quiz.ProfesorID) {
		return nil, model.ErrForbidden
	}
	return quiz, nil
}

// List returns the caller's quizzes, or all of them for admins
func (s *QuizService) List(ctx context.Context, caller model.Identity) ([]*model.Cuestionario, error) {
	if caller.Rol == model.RoleAdmin {
		return s.quizRepo.List(ctx)
	}
	if caller.Anonymous() {
		return []*model.Cuestionario{}, nil
	}
	return s.quizRepo.ListByProfesor(ctx, caller.UserID)
}
