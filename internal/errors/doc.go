// Package errors provides structured errors for the battle service.
//
// Every error carries a Code, a caller-facing message, an optional cause and
// optional metadata. Codes survive wrapping so a handler can map an error
// raised deep inside the engine to the right gRPC status.
//
// # Basic Usage
//
//	err := errors.NotFound("creature not found").WithCreature(id)
//	errors.MetaString(err, errors.MetaCreatureID) // id
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load battle")
//	}
//
// # Battle Errors
//
// Three codes belong to the battle domain:
//   - InvalidAction: the chosen action cannot be applied (no PP left, shift to
//     a fainted or already active creature, acting in the wrong battle state).
//     The battle is left untouched and the caller may prompt again.
//   - InvalidConfiguration: static species, move or type data is malformed.
//     Raised while the catalog loads; the process refuses to start.
//   - InvariantViolation: a creature was found with HP or stages out of
//     bounds. Never expected; reported as an internal error.
//
// A missed move or a failed escape is an ordinary battle outcome and is never
// reported as an error.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("species_id", input.SpeciesID, vb)
//	errors.ValidateRange("level", input.Level, 1, 100, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err); clients may recover the structured
// error with errors.FromGRPCError. Domain codes map onto the nearest gRPC
// code and also travel in a structpb detail, so INVALID_ACTION survives the
// round trip even though the status says FAILED_PRECONDITION.
package errors
