package v1alpha1

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
	"github.com/KirkDiggler/rpg-battle/internal/orchestrators/battle"
)

// BattleHandlerConfig holds dependencies for the battle handler
type BattleHandlerConfig struct {
	BattleService battle.Service
}

// Validate ensures all required dependencies are present
func (c *BattleHandlerConfig) Validate() error {
	if c.BattleService == nil {
		return errors.InvalidArgument("battle service is required")
	}
	return nil
}

// BattleHandler implements BattleServiceServer
type BattleHandler struct {
	battleService battle.Service
}

var _ BattleServiceServer = (*BattleHandler)(nil)

// NewBattleHandler creates a new battle handler with the given configuration
func NewBattleHandler(cfg *BattleHandlerConfig) (*BattleHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &BattleHandler{
		battleService: cfg.BattleService,
	}, nil
}

// StartWildBattle starts a battle against a creature of a zone
func (h *BattleHandler) StartWildBattle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req StartWildBattleRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.OwnerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("owner_id is required"))
	}
	if req.ZoneID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("zone_id is required"))
	}

	output, err := h.battleService.StartWildBattle(ctx, &battle.StartWildBattleInput{
		OwnerID:       req.OwnerID,
		ZoneID:        req.ZoneID,
		PartyIDs:      req.PartyIDs,
		RollEncounter: req.RollEncounter,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&StartWildBattleResponse{
		Encountered: output.Encountered,
		Battle:      output.Battle,
	})
}

// StartTrainerBattle starts a battle against a trainer's party
func (h *BattleHandler) StartTrainerBattle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req StartTrainerBattleRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.OwnerID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("owner_id is required"))
	}

	opponent := make([]battle.OpponentCreature, len(req.Opponent))
	for i, oc := range req.Opponent {
		opponent[i] = battle.OpponentCreature{SpeciesID: oc.SpeciesID, Level: oc.Level}
	}

	output, err := h.battleService.StartTrainerBattle(ctx, &battle.StartTrainerBattleInput{
		OwnerID:  req.OwnerID,
		PartyIDs: req.PartyIDs,
		Opponent: opponent,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&BattleResponse{Battle: output.Battle})
}

// ResolveRound resolves the player's action for the next round
func (h *BattleHandler) ResolveRound(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ResolveRoundRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}
	if req.Action.Kind == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("action.kind is required"))
	}

	output, err := h.battleService.ResolveRound(ctx, &battle.ResolveRoundInput{
		BattleID: req.BattleID,
		Action:   req.Action,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ResolveRoundResponse{
		Result: output.Result,
		Battle: output.Battle,
	})
}

// ReplaceFainted sends in a creature after a faint
func (h *BattleHandler) ReplaceFainted(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req ReplaceFaintedRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.ReplaceFainted(ctx, &battle.ReplaceFaintedInput{
		BattleID: req.BattleID,
		Index:    req.Index,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&ReplaceFaintedResponse{
		Shift:  output.Shift,
		Battle: output.Battle,
	})
}

// Withdraw ends a battle that is waiting for a replacement
func (h *BattleHandler) Withdraw(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req BattleIDRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.Withdraw(ctx, &battle.WithdrawInput{BattleID: req.BattleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&BattleResponse{Battle: output.Battle})
}

// GetBattle returns a battle
func (h *BattleHandler) GetBattle(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req BattleIDRequest
	if err := FromStruct(in, &req); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if req.BattleID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("battle_id is required"))
	}

	output, err := h.battleService.GetBattle(ctx, &battle.GetBattleInput{BattleID: req.BattleID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(&BattleResponse{Battle: output.Battle})
}

func respond(v any) (*structpb.Struct, error) {
	s, err := ToStruct(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return s, nil
}
