package app

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"talent-match/internal/config"
	"talent-match/internal/database"
	dbpostgres "talent-match/internal/database/postgres"
	"talent-match/internal/database/schema"
	"talent-match/internal/domain/ranking"
	"talent-match/internal/infrastructure/embedding"
	"talent-match/internal/infrastructure/vector"
	"talent-match/internal/pkg/jwt"
	"talent-match/internal/repository"
	"talent-match/internal/usecase"
	"talent-match/internal/ws"

	"github.com/redis/go-redis/v9"
)

// Container owns every long-lived dependency of the service. It is built
// once at startup and torn down via Close.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Redis *redis.Client

	Candidates repository.CandidateRepository
	Matches    repository.MatchRepository
	Users      *repository.PostgresUserRepository

	VectorIndex *vector.RedisIndex
	Embedder    *embedding.Client
	Graph       *ranking.Graph
	Engine      *ranking.Engine

	JWT jwt.Service
	Hub *ws.Hub

	Matching usecase.MatchingUsecase
	Ingest   usecase.IngestUsecase
	Auth     usecase.AuthUsecase
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := schema.Ensure(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	index := vector.NewRedisIndex(rdb, logger)
	if err := index.EnsureIndex(ctx, cfg.Embedding.Dimension); err != nil {
		rdb.Close()
		db.Close()
		return nil, fmt.Errorf("ensure vector index: %w", err)
	}

	embedder, err := embedding.NewClient(cfg.Embedding.ServiceURL, cfg.Embedding.Dimension, cfg.Embedding.Timeout, logger)
	if err != nil {
		rdb.Close()
		db.Close()
		return nil, fmt.Errorf("embedding client: %w", err)
	}

	graph := ranking.DefaultGraph()
	if cfg.Ranking.SkillGraphPath != "" {
		graph, err = ranking.LoadGraph(cfg.Ranking.SkillGraphPath)
		if err != nil {
			rdb.Close()
			db.Close()
			return nil, fmt.Errorf("load skill graph: %w", err)
		}
	}

	candidates := repository.NewPostgresCandidateRepository(db, logger)
	matches := repository.NewPostgresMatchRepository(db)
	users := repository.NewPostgresUserRepository(db)

	engine := ranking.NewEngine(candidates, index, embedder, graph, ranking.Options{
		MinSkillMatch: &cfg.Ranking.MinSkillMatch,
		SearchLimit:   cfg.Ranking.SearchLimit,
	}, logger)

	jwtSvc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Redis:       rdb,
		Candidates:  candidates,
		Matches:     matches,
		Users:       users,
		VectorIndex: index,
		Embedder:    embedder,
		Graph:       graph,
		Engine:      engine,
		JWT:         jwtSvc,
		Hub:         hub,
		Matching:    usecase.NewMatchingUsecase(engine, matches, logger),
		Ingest:      usecase.NewIngestUsecase(candidates, index, embedder, graph, logger),
		Auth:        usecase.NewAuthUsecase(users, jwtSvc),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Printf("[Container] redis close failed | err=%v", err)
		}
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
