package service

import (
	"aulaquiz/internal/cache"
	"aulaquiz/internal/logger"
	"aulaquiz/internal/model"
	"aulaquiz/internal/repository"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CacheRecorder counts stats cache hits and misses
type CacheRecorder interface {
	CacheHit()
	CacheMiss()
}

type nopRecorder struct{}

func (nopRecorder) CacheHit()  {}
func (nopRecorder) CacheMiss() {}

// AdminService builds the admin dashboard
type AdminService struct {
	userRepo repository.UserRepo
	gameRepo repository.GameRepo
	quizRepo repository.QuizRepo
	cache    cache.StatsCache // nil when Redis is not configured
	rooms    RoomReporter
	recorder CacheRecorder
	log      *logger.Logger

	sf  singleflight.Group
	gen atomic.Uint64 // bumped by Invalidate
	now func() time.Time
}

// NewAdminService creates a new admin service. statsCache may be nil.
func NewAdminService(
	userRepo repository.UserRepo,
	gameRepo repository.GameRepo,
	quizRepo repository.QuizRepo,
	statsCache cache.StatsCache,
	rooms RoomReporter,
	log *logger.Logger,
) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		gameRepo: gameRepo,
		quizRepo: quizRepo,
		cache:    statsCache,
		rooms:    rooms,
		recorder: nopRecorder{},
		log:      log,
		now:      time.Now,
	}
}

// SetRecorder injects cache metrics
func (s *AdminService) SetRecorder(r CacheRecorder) {
	s.recorder = r
}

// Stats returns the dashboard, served from cache while it is fresh.
// Concurrent misses share one computation, which outlives any single caller.
// A result is not cached if a write invalidated the dashboard meanwhile.
func (s *AdminService) Stats(ctx context.Context) (*model.AdminStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("stats cache read failed")
		}
		if cached != nil {
			s.recorder.CacheHit()
			return cached, nil
		}
	}
	s.recorder.CacheMiss()

	flightCtx := context.WithoutCancel(ctx)
	ch := s.sf.DoChan("stats", func() (interface{}, error) {
		gen := s.gen.Load()
		stats, err := s.compute(flightCtx)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && s.gen.Load() == gen {
			if err := s.cache.Set(flightCtx, stats); err != nil {
				s.log.Warn().Err(err).Msg("stats cache write failed")
			}
		}
		return stats, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.AdminStats), nil
	}
}

func (s *AdminService) compute(ctx context.Context) (*model.AdminStats, error) {
	var (
		st     model.DashboardStats
		recent []*model.User
	)

	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int64, fn func(context.Context) (int64, error)) {
		g.Go(func() error {
			n, err := fn(gctx)
			if err != nil {
				return err
			}
			*dst = n
			return nil
		})
	}

	count(&st.TotalUsuarios, s.userRepo.Count)
	count(&st.Alumnos, func(c context.Context) (int64, error) { return s.userRepo.CountByRole(c, model.RoleAlumno) })
	count(&st.Profesores, func(c context.Context) (int64, error) { return s.userRepo.CountByRole(c, model.RoleProfesor) })
	count(&st.Admins, func(c context.Context) (int64, error) { return s.userRepo.CountByRole(c, model.RoleAdmin) })
	count(&st.TotalPartidas, s.gameRepo.Count)
	count(&st.PartidasActivas, func(c context.Context) (int64, error) {
		return s.gameRepo.CountByState(c, model.GameActive, model.GamePaused)
	})
	count(&st.PartidasEnEspera, func(c context.Context) (int64, error) { return s.gameRepo.CountByState(c, model.GameWaiting) })
	count(&st.PartidasFinalizadas, func(c context.Context) (int64, error) { return s.gameRepo.CountByState(c, model.GameFinished) })
	count(&st.TotalCuestionarios, s.quizRepo.Count)
	g.Go(func() error {
		users, err := s.userRepo.Recent(gctx, model.RecentUsersLimit)
		if err != nil {
			return err
		}
		recent = users
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	if s.rooms != nil {
		st.SalasActivas = s.rooms.RoomCount()
		st.ConexionesActivas = s.rooms.ConnectionCount()
	}
	st.GeneradoEn = s.now()

	return &model.AdminStats{Stats: st, UsuariosRecientes: recent}, nil
}

// Invalidate drops the cached dashboard after a write
func (s *AdminService) Invalidate(ctx context.Context) {
	s.gen.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("stats cache invalidate failed")
	}
}
