// Package app wires stores, services and the realtime hub into one bundle.
package app

import (
	"aulaquiz/config"
	"aulaquiz/internal/cache"
	"aulaquiz/internal/logger"
	"aulaquiz/internal/metrics"
	"aulaquiz/internal/repository"
	"aulaquiz/internal/repository/memory"
	"aulaquiz/internal/service"
	"aulaquiz/internal/transport/rest"
	"aulaquiz/internal/transport/ws"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pingTimeout = 5 * time.Second

// Options tweak how the bundle is built
type Options struct {
	// Memory keeps every store in process and skips MongoDB and Redis
	Memory bool
	// WithoutHub skips the realtime hub, for one-shot commands
	WithoutHub bool
}

// App holds every long-lived dependency of the server
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics

	UserRepo repository.UserRepo
	QuizRepo repository.QuizRepo
	GameRepo repository.GameRepo

	AuthService   *service.AuthService
	UserService   *service.UserService
	QuizService   *service.QuizService
	GameService   *service.GameService
	AdminService  *service.AdminService
	ExportService *service.ExportService

	WSHub *ws.Hub

	closers []func(context.Context) error
}

// New connects the stores and builds the services. A failed MongoDB ping is
// logged and the server keeps going; Redis is optional.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts Options) (*App, error) {
	a := &App{
		Config:  cfg,
		Logger:  log,
		Metrics: metrics.New(),
	}

	var rdb *redis.Client
	if opts.Memory {
		log.Warn().Msg("running with in-memory stores, data is lost on exit")
		a.UserRepo = memory.NewUserRepo()
		a.QuizRepo = memory.NewQuizRepo()
		a.GameRepo = memory.NewGameRepo()
	} else {
		db, err := a.connectMongo(ctx)
		if err != nil {
			return nil, err
		}
		a.UserRepo = repository.NewUserRepo(db)
		a.QuizRepo = repository.NewQuizRepo(db)
		a.GameRepo = repository.NewGameRepo(db)
		rdb = a.connectRedis(ctx)
	}

	var (
		pinCache   cache.PinCache
		statsCache cache.StatsCache
	)
	if rdb != nil {
		pinCache = cache.NewPinCache(rdb)
		statsCache = cache.NewStatsCache(rdb, cfg.StatsCacheTTL)
	}

	validator := service.NewValidator()
	a.AuthService = service.NewAuthService(a.UserRepo, cfg.JWTSecret, cfg.JWTExpiration)
	a.UserService = service.NewUserService(a.UserRepo, validator)
	a.QuizService = service.NewQuizService(a.QuizRepo, validator)
	a.GameService = service.NewGameService(a.GameRepo, a.QuizRepo, pinCache, validator)
	a.ExportService = service.NewExportService(a.UserRepo)

	var rooms service.RoomReporter
	if !opts.WithoutHub {
		a.WSHub = ws.NewHub(log, a.Metrics)
		a.closers = append(a.closers, func(context.Context) error {
			a.WSHub.Close()
			return nil
		})
		rooms = a.WSHub

		// Inject broadcaster (wsHub implements service.Broadcaster)
		a.GameService.SetBroadcaster(a.WSHub)
	}

	a.AdminService = service.NewAdminService(a.UserRepo, a.GameRepo, a.QuizRepo, statsCache, rooms, log)
	a.AdminService.SetRecorder(a.Metrics)

	// Any write that changes a dashboard count drops the cached stats
	a.UserService.OnChange(a.AdminService.Invalidate)
	a.QuizService.OnChange(a.AdminService.Invalidate)
	a.GameService.OnChange(a.AdminService.Invalidate)

	return a, nil
}

func (a *App) connectMongo(ctx context.Context) (*mongo.Database, error) {
	if a.Config.MongoURIDefault {
		a.Logger.Warn().Str("uri", a.Config.MongoURI).Msg("MONGO_URI not set, using default")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.Config.MongoURI))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Disconnect)

	db := client.Database(a.Config.MongoDB)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		a.Logger.Error().Err(err).Msg("failed to ping MongoDB, requests touching storage will fail")
		return db, nil
	}
	a.Logger.Info().Str("database", a.Config.MongoDB).Msg("connected to MongoDB")

	if err := repository.EnsureIndexes(ctx, db); err != nil {
		a.Logger.Error().Err(err).Msg("failed to create indexes")
	}
	return db, nil
}

// connectRedis returns nil when Redis is not configured or not reachable
func (a *App) connectRedis(ctx context.Context) *redis.Client {
	if a.Config.RedisURI == "" {
		a.Logger.Info().Msg("REDIS_URI not set, stats cache and PIN reservations disabled")
		return nil
	}

	opts, err := redis.ParseURL(a.Config.RedisURI)
	if err != nil {
		a.Logger.Warn().Err(err).Msg("invalid REDIS_URI, continuing without Redis")
		return nil
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		a.Logger.Warn().Err(err).Msg("failed to ping Redis, continuing without it")
		rdb.Close()
		return nil
	}
	a.Logger.Info().Msg("connected to Redis")
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	return rdb
}

// Router builds the HTTP handler for this bundle
func (a *App) Router() http.Handler {
	return rest.NewRouter(&rest.Container{
		AuthService:    a.AuthService,
		UserService:    a.UserService,
		QuizService:    a.QuizService,
		GameService:    a.GameService,
		AdminService:   a.AdminService,
		ExportService:  a.ExportService,
		WSHub:          a.WSHub,
		Metrics:        a.Metrics,
		Logger:         a.Logger,
		CORSOrigins:    a.Config.CORSOrigins,
		UploadDir:      a.Config.UploadDir,
		UploadMaxBytes: a.Config.UploadMaxBytes,
	})
}

// Close releases connections in reverse order of creation
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
