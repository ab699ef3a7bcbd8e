package creatures

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/rpg-battle/internal/redis"
)

const (
	creatureKeyPrefix = "creature:"
	ownerIndexPrefix  = "creature:owner:"

	errCreatureNil     = "creature cannot be nil"
	errCreatureIDEmpty = "creature ID cannot be empty"
	errOwnerIDEmpty    = "owner ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

var _ Repository = (*redisRepository)(nil)

// RedisConfig configures the redis creature repository
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the config
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a redis backed creature repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument(errCreatureNil)
	}
	if input.Creature.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	key := creatureKeyPrefix + input.Creature.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExists("creature " + input.Creature.ID + " already exists")
	}

	now := r.clock.Now()
	record := &Record{
		OwnerID:   input.OwnerID,
		Creature:  input.Creature,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal creature")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, ownerIndexPrefix+input.OwnerID, input.Creature.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to create creature")
	}

	return &CreateOutput{Record: record}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	record, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Record: record}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument(errCreatureNil)
	}
	if input.Creature.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	existing, err := r.load(ctx, input.Creature.ID)
	if err != nil {
		return nil, err
	}

	record := &Record{
		OwnerID:   existing.OwnerID,
		Creature:  input.Creature,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: r.clock.Now(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal creature")
	}

	if err := r.client.Set(ctx, creatureKeyPrefix+input.Creature.ID, data, 0).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to update creature")
	}

	return &UpdateOutput{Record: record}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	existing, err := r.load(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, creatureKeyPrefix+input.ID)
	pipe.SRem(ctx, ownerIndexPrefix+existing.OwnerID, input.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to delete creature")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	indexKey := ownerIndexPrefix + input.OwnerID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read index %s", indexKey)
	}

	records := make([]*Record, 0, len(ids))
	for _, id := range ids {
		record, err := r.load(ctx, id)
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "creature missing, cleaning up index",
					"creature_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.Before(records[j].CreatedAt)
		}
		return records[i].Creature.ID < records[j].Creature.ID
	})

	slog.DebugContext(ctx, "listed creatures by owner",
		"owner_id", input.OwnerID,
		"count", len(records))

	return &ListByOwnerOutput{Records: records}, nil
}

func (r *redisRepository) load(ctx context.Context, id string) (*Record, error) {
	result, err := r.client.Get(ctx, creatureKeyPrefix+id).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("creature %s not found", id)
		}
		return nil, errors.Wrap(err, "failed to get creature")
	}

	var record Record
	if err := json.Unmarshal([]byte(result), &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal creature")
	}
	return &record, nil
}
