package battles

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
)

type storedBattle struct {
	data    []byte
	expires time.Time
}

type activeBattle struct {
	id      string
	expires time.Time
}

// InMemoryRepository implements Repository in process memory. Records are
// stored encoded so callers never share state with the store. Expired records
// disappear on read.
type InMemoryRepository struct {
	mu     sync.RWMutex
	clock  clock.Clock
	ttl    time.Duration
	store  map[string]storedBattle
	active map[string]activeBattle
}

var _ Repository = (*InMemoryRepository)(nil)

// InMemoryConfig configures the in-memory battle repository
type InMemoryConfig struct {
	Clock clock.Clock

	// TTL defaults to one hour
	TTL time.Duration
}

// NewInMemory creates a new in-memory repository
func NewInMemory(cfg *InMemoryConfig) (*InMemoryRepository, error) {
	if cfg == nil {
		cfg = &InMemoryConfig{}
	}
	if cfg.TTL < 0 {
		return nil, errors.InvalidArgument("TTL must not be negative")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultTTL
	}

	return &InMemoryRepository{
		clock:  c,
		ttl:    ttl,
		store:  make(map[string]storedBattle),
		active: make(map[string]activeBattle),
	}, nil
}

// Save stores a battle
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
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

	r.mu.Lock()
	defer r.mu.Unlock()

	expires := now.Add(ttl)
	r.store[record.ID] = storedBattle{data: data, expires: expires}
	if record.Session.State.Terminal() {
		if r.active[record.OwnerID].id == record.ID {
			delete(r.active, record.OwnerID)
		}
	} else {
		r.active[record.OwnerID] = activeBattle{id: record.ID, expires: expires}
	}

	return &SaveOutput{Record: record}, nil
}

// Get retrieves a battle by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, err := r.load(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Record: record}, nil
}

// GetActiveByOwner returns the owner's unfinished battle
func (r *InMemoryRepository) GetActiveByOwner(_ context.Context, input GetActiveByOwnerInput) (*GetActiveByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	active, ok := r.active[input.OwnerID]
	if !ok || !r.clock.Now().Before(active.expires) {
		return nil, errors.NotFoundf("owner %s has no active battle", input.OwnerID)
	}

	record, err := r.load(active.id)
	if err != nil {
		return nil, err
	}
	return &GetActiveByOwnerOutput{Record: record}, nil
}

// Delete removes a battle
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, err := r.load(input.ID)
	if err != nil {
		return nil, err
	}

	delete(r.store, input.ID)
	if r.active[record.OwnerID].id == input.ID {
		delete(r.active, record.OwnerID)
	}
	return &DeleteOutput{}, nil
}

// load decodes a live record; callers hold the lock
func (r *InMemoryRepository) load(id string) (*Record, error) {
	stored, ok := r.store[id]
	if !ok || !r.clock.Now().Before(stored.expires) {
		return nil, errors.NotFoundf("battle %s not found", id)
	}

	var record Record
	if err := json.Unmarshal(stored.data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal battle")
	}
	return &record, nil
}
