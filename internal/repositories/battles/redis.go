package battles

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-battle/internal/redis"
)

const (
	battleKeyPrefix  = "battle:"
	activeKeyPrefix  = "battle:active:"
	defaultTTL       = time.Hour
	errBattleIDEmpty = "battle ID cannot be empty"
	errOwnerIDEmpty  = "owner ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	ttl    time.Duration
}

var _ Repository = (*redisRepository)(nil)

// RedisConfig configures the redis battle repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock

	// TTL defaults to one hour
	TTL time.Duration
}

// Validate validates the config
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	if cfg.TTL < 0 {
		vb.Field("TTL", "must not be negative")
	}
	return vb.Build()
}

// NewRedis creates a redis backed battle repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
		ttl:    ttl,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	record := input.Record
	if record == nil || record.Session == nil {
		return nil, errors.InvalidArgument("battle record with a session is required")
	}
	if record.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}
	if record.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	ttl := r.ttl
	if input.TTL > 0 {
		ttl = input.TTL
	}

	now := r.clock.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal battle")
	}

	activeKey := activeKeyPrefix + record.OwnerID
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, battleKeyPrefix+record.ID, data, ttl)
	if record.Session.State.Terminal() {
		// only clear the pointer if it still names this battle
		current, err := r.client.Get(ctx, activeKey).Result()
		if err != nil && err != redisclient.Nil {
			return nil, errors.Wrap(err, "failed to read active battle")
		}
		if current == record.ID {
			pipe.Del(ctx, activeKey)
		}
	} else {
		pipe.Set(ctx, activeKey, record.ID, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to save battle")
	}

	return &SaveOutput{Record: record}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	record, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Record: record}, nil
}

func (r *redisRepository) GetActiveByOwner(ctx context.Context, input GetActiveByOwnerInput) (*GetActiveByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	id, err := r.client.Get(ctx, activeKeyPrefix+input.OwnerID).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("owner %s has no active battle", input.OwnerID)
		}
		return nil, errors.Wrap(err, "failed to read active battle")
	}

	record, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GetActiveByOwnerOutput{Record: record}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	record, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	activeKey := activeKeyPrefix + record.OwnerID
	current, err := r.client.Get(ctx, activeKey).Result()
	if err != nil && err != redisclient.Nil {
		return nil, errors.Wrap(err, "failed to read active battle")
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, battleKeyPrefix+input.ID)
	if current == input.ID {
		pipe.Del(ctx, activeKey)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete battle")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*Record, error) {
	result, err := r.client.Get(ctx, battleKeyPrefix+id).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("battle %s not found", id)
		}
		return nil, errors.Wrap(err, "failed to get battle")
	}

	var record Record
	if err := json.Unmarshal([]byte(result), &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal battle")
	}
	return &record, nil
}
