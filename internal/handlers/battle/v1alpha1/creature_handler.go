package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/creature"
)

// CreatureHandlerConfig holds dependencies for the creature handler
type CreatureHandlerConfig struct {
	CreatureService creature.Service
}

// Validate ensures all required dependencies are present
func (c *CreatureHandlerConfig) Validate() error {
	if c.CreatureService == nil {
		return errors.InvalidArgument("creature service is required")
	}
	return nil
}

// CreatureHandler implements CreatureServiceServer
type CreatureHandler struct {
	creatureService creature.Service
}

var _ CreatureServiceServer = (*CreatureHandler)(nil)

// NewCreatureHandler creates a new creature handler with the given configuration
func NewCreatureHandler(cfg *CreatureHandlerConfig) (*CreatureHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &CreatureHandler{
		creatureService: cfg.CreatureService,
	}, nil
}

// CreateCreature adds a creature to an owner's collection
func (h *CreatureHandler) CreateCreature(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CreateCreatureRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.OwnerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("owner_id is required"))
	}
	if req.SpeciesID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("species_id is required"))
	}

	output, err := h.creatureService.CreateCreature(ctx, &creature.CreateCreatureInput{
		OwnerID:   req.OwnerID,
		SpeciesID: req.SpeciesID,
		Level:     req.Level,
		Nickname:  req.Nickname,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&CreatureResponse{Creature: output.Creature})
}

// GetCreature returns a creature
func (h *CreatureHandler) GetCreature(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req CreatureIDRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.CreatureID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("creature_id is required"))
	}

	output, err := h.creatureService.GetCreature(ctx, &creature.GetCreatureInput{CreatureID: req.CreatureID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&CreatureResponse{Creature: output.Creature})
}

// ListCreatures returns an owner's creatures
func (h *CreatureHandler) ListCreatures(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req OwnerRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.OwnerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("owner_id is required"))
	}

	output, err := h.creatureService.ListCreatures(ctx, &creature.ListCreaturesInput{OwnerID: req.OwnerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&CreaturesResponse{Creatures: output.Creatures})
}

// HealParty restores HP and PP of an owner's creatures
func (h *CreatureHandler) HealParty(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req OwnerRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.OwnerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("owner_id is required"))
	}

	output, err := h.creatureService.HealParty(ctx, &creature.HealPartyInput{OwnerID: req.OwnerID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&CreaturesResponse{Creatures: output.Creatures})
}

// LearnMove teaches a creature a move its species learns by its level
func (h *CreatureHandler) LearnMove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req LearnMoveRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.CreatureID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("creature_id is required"))
	}
	if req.MoveID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("move_id is required"))
	}

	slot := -1
	if req.Slot != nil {
		slot = *req.Slot
	}

	output, err := h.creatureService.LearnMove(ctx, &creature.LearnMoveInput{
		CreatureID: req.CreatureID,
		MoveID:     req.MoveID,
		Slot:       slot,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&CreatureResponse{Creature: output.Creature})
}
