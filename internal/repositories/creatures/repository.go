// Package creatures persists owned creatures
package creatures

//go:generate mockgen -destination=mock/mock_repository.go -package=creaturesmock github.com/KirkDiggler/rpg-battle/internal/repositories/creatures Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-battle/internal/entities/pokemon"
)

// Record is a stored creature and who owns it
type Record struct {
	OwnerID   string                `json:"owner_id"`
	Creature  *pokemon.CreatureData `json:"creature"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// Repository defines creature persistence
type Repository interface {
	// Create stores a new creature
	// Returns errors.InvalidArgument for missing ids
	// Returns errors.AlreadyExists if the creature id is taken
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a creature by id
	// Returns errors.NotFound if the creature doesn't exist
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces the creature snapshot. The owner and creation time are
	// kept from the stored record.
	// Returns errors.NotFound if the creature doesn't exist
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a creature and its index entry
	// Returns errors.NotFound if the creature doesn't exist
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByOwner returns an owner's creatures, oldest first
	ListByOwner(ctx context.Context, input ListByOwnerInput) (*ListByOwnerOutput, error)
}

// CreateInput defines the input for creating a creature
type CreateInput struct {
	OwnerID  string
	Creature *pokemon.CreatureData
}

// CreateOutput defines the output for creating a creature
type CreateOutput struct {
	Record *Record
}

// GetInput defines the input for getting a creature
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a creature
type GetOutput struct {
	Record *Record
}

// UpdateInput defines the input for updating a creature
type UpdateInput struct {
	Creature *pokemon.CreatureData
}

// UpdateOutput defines the output for updating a creature
type UpdateOutput struct {
	Record *Record
}

// DeleteInput defines the input for deleting a creature
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a creature
type DeleteOutput struct{}

// ListByOwnerInput defines the input for listing an owner's creatures
type ListByOwnerInput struct {
	OwnerID string
}

// ListByOwnerOutput defines the output for listing an owner's creatures
type ListByOwnerOutput struct {
	Records []*Record
}
