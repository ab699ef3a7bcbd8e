package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-battle/internal/catalog"
	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
	"github.com/KirkDiggler/rpg-battle/internal/engine/opponent"
	"github.com/KirkDiggler/rpg-battle/internal/engine/random"
	battlev1alpha1 "github.com/KirkDiggler/rpg-battle/internal/handlers/battle/v1alpha1"
	"github.com/KirkDiggler/rpg-battle/internal/handlers/feed"
	battleorch "github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
	creatureorch "github.com/KirkDiggler/rpg-battle/internal/orchestrators/creature"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-battle/internal/redis"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/battles"
	"github.com/KirkDiggler/rpg-battle/internal/repositories/creatures"
)

// appConfig holds the settings the server is assembled from
type appConfig struct {
	// Store is redis or memory
	Store     string
	RedisURL  string
	BattleTTL time.Duration
	Seed      uint64
}

const (
	storeRedis  = "redis"
	storeMemory = "memory"
)

// app is the assembled service graph
type app struct {
	// redis is nil for the in-memory store
	redis     redisclient.Client
	bus       events.EventBus
	auditSubs []string

	hub             *feed.Hub
	battleHandler   *battlev1alpha1.BattleHandler
	creatureHandler *battlev1alpha1.CreatureHandler
}

// newRandomSource returns a reproducible source for a non zero seed
func newRandomSource(seed uint64) random.Source {
	if seed != 0 {
		return random.NewSeededSource(seed)
	}
	return random.NewSource()
}

func newApp(ctx context.Context, cfg *appConfig) (*app, error) {
	cat, err := catalog.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	slog.Info("Catalog loaded",
		"species", len(cat.SpeciesIDs()),
		"moves", len(cat.MoveIDs()),
		"zones", len(cat.ZoneIDs()),
	)

	src := newRandomSource(cfg.Seed)
	if cfg.Seed != 0 {
		slog.Warn("Using seeded random source", "seed", cfg.Seed)
	}

	engine, err := battle.NewEngine(&battle.Config{Random: src, Chart: cat.Chart()})
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	chooser, err := opponent.NewRandom(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create opponent chooser: %w", err)
	}

	creatureRepo, battleRepo, redisClient, err := newStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	bus := events.NewBus()
	auditSubs := battleorch.SubscribeAudit(bus)

	hub, err := feed.NewHub(&feed.Config{EventBus: bus})
	if err != nil {
		return nil, fmt.Errorf("failed to create feed hub: %w", err)
	}

	creatureService, err := creatureorch.NewOrchestrator(&creatureorch.Config{
		CreatureRepo: creatureRepo,
		BattleRepo:   battleRepo,
		Lookup:       cat,
		Random:       src,
		IDGenerator:  idgen.NewUUID("creature"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create creature service: %w", err)
	}

	battleService, err := battleorch.NewOrchestrator(&battleorch.Config{
		BattleRepo:   battleRepo,
		CreatureRepo: creatureRepo,
		Catalog:      cat,
		Engine:       engine,
		Random:       src,
		Chooser:      chooser,
		IDGenerator:  idgen.NewUUID("battle"),
		EventBus:     bus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create battle service: %w", err)
	}

	battleHandler, err := battlev1alpha1.NewBattleHandler(&battlev1alpha1.BattleHandlerConfig{
		BattleService: battleService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create battle handler: %w", err)
	}

	creatureHandler, err := battlev1alpha1.NewCreatureHandler(&battlev1alpha1.CreatureHandlerConfig{
		CreatureService: creatureService,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create creature handler: %w", err)
	}

	return &app{
		redis:           redisClient,
		bus:             bus,
		auditSubs:       auditSubs,
		hub:             hub,
		battleHandler:   battleHandler,
		creatureHandler: creatureHandler,
	}, nil
}

// Close releases the feed subscriptions and the redis connection
func (a *app) Close() {
	if err := a.hub.Close(); err != nil {
		slog.Warn("failed to close feed hub", "error", err)
	}
	for _, id := range a.auditSubs {
		if err := a.bus.Unsubscribe(id); err != nil {
			slog.Warn("failed to unsubscribe audit handler", "id", id, "error", err)
		}
	}
	if a.redis == nil {
		return
	}
	if err := a.redis.Close(); err != nil {
		slog.Warn("failed to close redis client", "error", err)
	}
}

// newStores builds the repositories for the configured store. The redis
// client is returned so the app can close it.
func newStores(ctx context.Context, cfg *appConfig) (creatures.Repository, battles.Repository, redisclient.Client, error) {
	switch cfg.Store {
	case storeMemory:
		slog.Warn("Using in-memory store, state is lost on restart")
		battleRepo, err := battles.NewInMemory(&battles.InMemoryConfig{
			Clock: clock.New(),
			TTL:   cfg.BattleTTL,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to create battle repository: %w", err)
		}
		return creatures.NewInMemory(clock.New()), battleRepo, nil, nil
	case storeRedis, "":
	default:
		return nil, nil, nil, fmt.Errorf("unknown store %q, expected %s or %s", cfg.Store, storeRedis, storeMemory)
	}

	redisClient, err := redisclient.NewClientFromURL(cfg.RedisURL, &redisclient.Options{
		PoolSize:        10,
		MinIdleConns:    2,
		ConnMaxIdleTime: 5 * time.Minute,
		MaxRetries:      3,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, nil, nil, fmt.Errorf("failed to reach redis: %w", err)
	}

	creatureRepo, err := creatures.NewRedis(&creatures.RedisConfig{
		Client: redisClient,
		Clock:  clock.New(),
	})
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, nil, fmt.Errorf("failed to create creature repository: %w", err)
	}

	battleRepo, err := battles.NewRedis(&battles.RedisConfig{
		Client: redisClient,
		Clock:  clock.New(),
		TTL:    cfg.BattleTTL,
	})
	if err != nil {
		_ = redisClient.Close()
		return nil, nil, nil, fmt.Errorf("failed to create battle repository: %w", err)
	}

	return creatureRepo, battleRepo, redisClient, nil
}
