// Package overlay decorates raw constant-product quotes with transfer-hook
// economics. It is the only place hook fees are applied; route blocking on
// invalid hooks is the aggregator's responsibility, so the overlay only
// annotates.
package overlay

import (
	"fmt"
	"math/bits"

	"github.com/gagliardetto/solana-go"

	"github.com/hookswap/route-engine/internal/domain"
	"github.com/hookswap/route-engine/internal/hooks"
)

// HookFeeBps is the flat fee convention applied per hooked leg. The hook's
// declared fee schedule is not introspected; every valid whitelisted hook is
// priced at 0.1% of the leg amount.
const HookFeeBps = 10

const bpsDenominator = 10_000

// ApplyHookAdjustment returns raw with hook fees and warnings folded in.
//
// Fees are computed per leg: a valid hook on the source token charges
// floor(amountIn * 10 / 10000), a valid hook on the destination token
// charges floor(amountOut * 10 / 10000). Only the destination-side fee
// reduces amountOut; the source-side fee is assumed to have been taken
// from amountIn before the swap and is reported, not re-subtracted.
func ApplyHookAdjustment(raw domain.SwapQuote, source, dest domain.TokenInfo, venue string, registry *hooks.Registry) domain.SwapQuote {
	adjusted := raw
	warnings := make([]string, 0, len(raw.Warnings))
	warnings = append(warnings, raw.Warnings...)

	var sourceHookFee, destHookFee uint64
	if source.HasHook && source.HookProgramID != nil {
		fee, w := validateLeg(*source.HookProgramID, venue, raw.AmountIn, registry)
		sourceHookFee = fee
		warnings = append(warnings, w...)
	}
	if dest.HasHook && dest.HookProgramID != nil {
		fee, w := validateLeg(*dest.HookProgramID, venue, raw.AmountOut, registry)
		destHookFee = fee
		warnings = append(warnings, w...)
	}

	adjusted.TransferHookFee = sourceHookFee + destHookFee
	if destHookFee > raw.AmountOut {
		adjusted.AmountOut = 0
	} else {
		adjusted.AmountOut = raw.AmountOut - destHookFee
	}
	adjusted.Warnings = warnings
	return adjusted
}

// validateLeg validates one hooked leg and returns the fee to charge on
// legAmount (zero when the hook does not validate) plus any warnings.
func validateLeg(programID solana.PublicKey, venue string, legAmount uint64, registry *hooks.Registry) (uint64, []string) {
	result := registry.Validate(programID, venue)
	if !result.IsValid {
		if result.Reason != "" {
			return 0, []string{result.Reason}
		}
		if result.Hook != nil {
			out := make([]string, 0, len(result.Warnings))
			for _, w := range result.Warnings {
				out = append(out, fmt.Sprintf("%s: %s", result.Hook.Name, w))
			}
			return 0, out
		}
		return 0, result.Warnings
	}
	hi, lo := bits.Mul64(legAmount, HookFeeBps)
	fee, _ := bits.Div64(hi, lo, bpsDenominator)
	return fee, result.Warnings
}
