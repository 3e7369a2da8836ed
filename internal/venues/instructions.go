package venues

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/hookswap/route-engine/internal/common"
	"github.com/hookswap/route-engine/internal/domain"
	"github.com/hookswap/route-engine/internal/hooks"
)

// buildInstructionSteps orders the execution plan for a single-pool route.
// A hook step is emitted only when the hook validates for the venue;
// invalid hooks never make it into the plan because the aggregator blocks
// those routes before execution.
func buildInstructionSteps(route domain.Route, venue string, venueProgram solana.PublicKey, signer solana.PublicKey, registry *hooks.Registry) ([]domain.InstructionStep, error) {
	if len(route.Pools) == 0 {
		return nil, fmt.Errorf("%w: route has no pools", common.ErrInvalidArgument)
	}
	pool := route.Pools[0]
	source, dest := pool.SideTokens(route.AToB)

	steps := make([]domain.InstructionStep, 0, 3)
	if source.HasHook && source.HookProgramID != nil {
		if result := registry.Validate(*source.HookProgramID, venue); result.IsValid {
			steps = append(steps, domain.InstructionStep{
				Kind:      domain.StepPreHook,
				Venue:     venue,
				ProgramID: *source.HookProgramID,
				Pool:      pool.PoolID,
				Signer:    signer,
			})
		}
	}
	steps = append(steps, domain.InstructionStep{
		Kind:      domain.StepSwap,
		Venue:     venue,
		ProgramID: venueProgram,
		Pool:      pool.PoolID,
		Signer:    signer,
	})
	if dest.HasHook && dest.HookProgramID != nil {
		if result := registry.Validate(*dest.HookProgramID, venue); result.IsValid {
			steps = append(steps, domain.InstructionStep{
				Kind:      domain.StepPostHook,
				Venue:     venue,
				ProgramID: *dest.HookProgramID,
				Pool:      pool.PoolID,
				Signer:    signer,
			})
		}
	}
	return steps, nil
}
