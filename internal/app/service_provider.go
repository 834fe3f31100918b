package app

import (
	"context"

	authAPI "roulette_backend/internal/api/auth"
	rouletteAPI "roulette_backend/internal/api/roulette"
	"roulette_backend/internal/config"
	"roulette_backend/internal/config/env"
	"roulette_backend/internal/metrics"
	"roulette_backend/internal/middleware"
	"roulette_backend/internal/predictor"
	"roulette_backend/internal/repository"
	"roulette_backend/internal/repository/accuracy_repo"
	"roulette_backend/internal/repository/auth_repo"
	"roulette_backend/internal/repository/prediction_repo"
	"roulette_backend/internal/repository/spin_repo"
	"roulette_backend/internal/repository/user_repo"
	"roulette_backend/internal/service"
	"roulette_backend/internal/service/auth"
	"roulette_backend/internal/service/roulette"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

const configPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager
	ctxGetter *trmpgx.CtxGetter

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth bits
	jwtCfg   config.JWTConfig
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Roulette bits
	predictorCfg   config.PredictorConfig
	engine         *predictor.Engine
	spinRepo       repository.SpinRepository
	predictionRepo repository.PredictionRepository
	accuracyRepo   repository.AccuracyRepository
	rouletteServ   service.RouletteService
	rouletteHand   *rouletteAPI.Handler

	metrics *metrics.Registry

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

// CtxGetter достаёт транзакцию из контекста для репозиториев
func (sp *ServiceProvider) CtxGetter() *trmpgx.CtxGetter {
	if sp.ctxGetter == nil {
		sp.ctxGetter = trmpgx.DefaultCtxGetter
	}
	return sp.ctxGetter
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx), sp.CtxGetter())
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx), sp.CtxGetter())
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.AuthRepo(ctx), sp.JWTCfg())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) PredictorCfg() config.PredictorConfig {
	if sp.predictorCfg == nil {
		cfg, err := env.NewPredictorConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get predictor config: " + err.Error())
		}
		sp.predictorCfg = cfg
	}
	return sp.predictorCfg
}

func (sp *ServiceProvider) Engine() *predictor.Engine {
	if sp.engine == nil {
		sp.engine = predictor.New()
	}
	return sp.engine
}

func (sp *ServiceProvider) Metrics() *metrics.Registry {
	if sp.metrics == nil {
		sp.metrics = metrics.NewRegistry()
	}
	return sp.metrics
}

func (sp *ServiceProvider) SpinRepository(ctx context.Context) repository.SpinRepository {
	if sp.spinRepo == nil {
		sp.spinRepo = spin_repo.NewSpinRepository(sp.DBClient(ctx), sp.CtxGetter())
	}
	return sp.spinRepo
}

func (sp *ServiceProvider) PredictionRepository(ctx context.Context) repository.PredictionRepository {
	if sp.predictionRepo == nil {
		sp.predictionRepo = prediction_repo.NewPredictionRepository(sp.DBClient(ctx), sp.CtxGetter())
	}
	return sp.predictionRepo
}

// AccuracyRepository базовая точность = count / размер стола
func (sp *ServiceProvider) AccuracyRepository() repository.AccuracyRepository {
	if sp.accuracyRepo == nil {
		cfg := sp.PredictorCfg()
		baseline := float64(cfg.Count()) / float64(cfg.Variant().Size())
		if baseline > 1 {
			baseline = 1
		}
		sp.accuracyRepo = accuracy_repo.NewAccuracyRepository(cfg.StatsWindow(), baseline)
	}
	return sp.accuracyRepo
}

func (sp *ServiceProvider) RouletteService(ctx context.Context) service.RouletteService {
	if sp.rouletteServ == nil {
		sp.rouletteServ = roulette.NewRouletteService(
			sp.PredictorCfg(),
			sp.Engine(),
			sp.SpinRepository(ctx),
			sp.PredictionRepository(ctx),
			sp.AccuracyRepository(),
			sp.TXManager(ctx),
			sp.Metrics(),
		)
	}
	return sp.rouletteServ
}

func (sp *ServiceProvider) RouletteHandler(ctx context.Context) *rouletteAPI.Handler {
	if sp.rouletteHand == nil {
		sp.rouletteHand = rouletteAPI.NewHandler(rouletteAPI.HandlerDeps{Serv: sp.RouletteService(ctx)})
	}
	return sp.rouletteHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()

		r.Use(chimw.RequestID)
		r.Use(chimw.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Method("GET", "/metrics", sp.Metrics().Handler())

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Roulette endpoints
		rouletteHandler := sp.RouletteHandler(ctx)
		r.Route("/roulette", func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))

			rr.Post("/spins", rouletteHandler.AddSpin)
			rr.Post("/hot-numbers", rouletteHandler.AddHotNumbers)
			rr.Get("/predictions", rouletteHandler.Predictions)
			rr.Get("/history", rouletteHandler.History)
			rr.Get("/stats", rouletteHandler.Stats)
			rr.Delete("/", rouletteHandler.Reset)
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает пул соединений
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
