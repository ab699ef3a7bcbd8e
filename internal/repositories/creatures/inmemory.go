package creatures

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/pkg/clock"
)

// InMemoryRepository implements Repository in process memory. Records are
// stored encoded so callers never share state with the store.
type InMemoryRepository struct {
	mu     sync.RWMutex
	clock  clock.Clock
	store  map[string][]byte
	owners map[string]map[string]struct{}
}

var _ Repository = (*InMemoryRepository)(nil)

// NewInMemory creates a new in-memory repository. A nil clock uses the
// system clock.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock:  c,
		store:  make(map[string][]byte),
		owners: make(map[string]map[string]struct{}),
	}
}

// Create stores a new creature
func (r *InMemoryRepository) Create(_ context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument(errCreatureNil)
	}
	if input.Creature.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Creature.ID]; exists {
		return nil, errors.AlreadyExists("creature " + input.Creature.ID + " already exists")
	}

	now := r.clock.Now()
	record := &Record{
		OwnerID:   input.OwnerID,
		Creature:  input.Creature,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.put(record); err != nil {
		return nil, err
	}

	if r.owners[input.OwnerID] == nil {
		r.owners[input.OwnerID] = make(map[string]struct{})
	}
	r.owners[input.OwnerID][input.Creature.ID] = struct{}{}

	return &CreateOutput{Record: record}, nil
}

// Get retrieves a creature by ID
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, err := r.load(input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Record: record}, nil
}

// Update replaces the creature snapshot
func (r *InMemoryRepository) Update(_ context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Creature == nil {
		return nil, errors.InvalidArgument(errCreatureNil)
	}
	if input.Creature.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.load(input.Creature.ID)
	if err != nil {
		return nil, err
	}

	record := &Record{
		OwnerID:   existing.OwnerID,
		Creature:  input.Creature,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: r.clock.Now(),
	}
	if err := r.put(record); err != nil {
		return nil, err
	}

	return &UpdateOutput{Record: record}, nil
}

// Delete removes a creature and its index entry
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errCreatureIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.load(input.ID)
	if err != nil {
		return nil, err
	}

	delete(r.store, input.ID)
	delete(r.owners[existing.OwnerID], input.ID)
	return &DeleteOutput{}, nil
}

// ListByOwner returns an owner's creatures, oldest first
func (r *InMemoryRepository) ListByOwner(_ context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error) {
	if input.OwnerID == "" {
		return nil, errors.InvalidArgument(errOwnerIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*Record, 0, len(r.owners[input.OwnerID]))
	for id := range r.owners[input.OwnerID] {
		record, err := r.load(id)
		if err != nil {
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

	return &ListByOwnerOutput{Records: records}, nil
}

// put encodes and stores a record; callers hold the write lock
func (r *InMemoryRepository) put(record *Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "failed to marshal creature")
	}
	r.store[record.Creature.ID] = data
	return nil
}

// load decodes a stored record; callers hold the lock
func (r *InMemoryRepository) load(id string) (*Record, error) {
	data, ok := r.store[id]
	if !ok {
		return nil, errors.NotFoundf("creature %s not found", id)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal creature")
	}
	return &record, nil
}
