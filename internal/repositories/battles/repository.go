// Package battles persists battle sessions between rounds
package battles

//go:generate mockgen -destination=mock/mock_repository.go -package=battlesmock github.com/KirkDiggler/rpg-battle/internal/repositories/battles Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/engine/battle"
)

// Record is a stored battle
type Record struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`

	// ZoneID is set for wild battles started from a zone
	ZoneID    string              `json:"zone_id,omitempty"`
	Session   *battle.SessionData `json:"session"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Repository defines battle persistence. Records expire after a TTL so
// abandoned battles clean themselves up.
type Repository interface {
	// Save creates or replaces a battle and refreshes its TTL. While the
	// session is not terminal the battle is the owner's active battle.
	// Returns errors.InvalidArgument for missing ids or session
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a battle by id
	// Returns errors.NotFound if the battle doesn't exist or expired
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetActiveByOwner returns the owner's unfinished battle
	// Returns errors.NotFound if the owner has none
	GetActiveByOwner(ctx context.Context, input GetActiveByOwnerInput) (*GetActiveByOwnerOutput, error)

	// Delete removes a battle
	// Returns errors.NotFound if the battle doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the input for saving a battle
type SaveInput struct {
	Record *Record

	// TTL overrides the repository default when positive
	TTL time.Duration
}

// SaveOutput defines the output for saving a battle
type SaveOutput struct {
	Record *Record
}

// GetInput defines the input for getting a battle
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a battle
type GetOutput struct {
	Record *Record
}

// GetActiveByOwnerInput defines the input for finding an owner's battle
type GetActiveByOwnerInput struct {
	OwnerID string
}

// GetActiveByOwnerOutput defines the output for finding an owner's battle
type GetActiveByOwnerOutput struct {
	Record *Record
}

// DeleteInput defines the input for deleting a battle
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a battle
type DeleteOutput struct{}
