package domain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"

	"github.com/hookswap/route-engine/internal/common"
)

// Well-known venue names. Venue adapters register under one of these; the
// hook registry keys venue compatibility on the same strings.
const (
	VenueRaydium = "Raydium"
	VenueOrca    = "Orca"
	VenueMeteora = "Meteora"
)

// TokenInfo describes one side of a trading pair as decoded from a mint
// account. HookProgramID is nil unless HasHook is set.
type TokenInfo struct {
	Mint          solana.PublicKey  `json:"mint"`
	Decimals      uint8             `json:"decimals"`
	HasHook       bool              `json:"hasHook"`
	HookProgramID *solana.PublicKey `json:"hookProgramId,omitempty"`
}

// PoolState is an immutable snapshot of a pool's on-chain liquidity. It is
// passed by value between components; a state transition (e.g. "after this
// swap") produces a new PoolState via ApplySwap, never an in-place mutation.
//
// The concentrated-liquidity fields (TickSpacing, CurrentTick, SqrtPriceX64,
// InRangeLiquidity) are zero for constant-product pools. SqrtPriceX64 is a
// Q64.64 fixed-point value held as a uint256.Int so the struct stays
// copyable by value.
type PoolState struct {
	PoolID              solana.PublicKey `json:"poolId"`
	Venue               string           `json:"venue"`
	TokenA              TokenInfo        `json:"tokenA"`
	TokenB              TokenInfo        `json:"tokenB"`
	ReserveA            uint64           `json:"reserveA"`
	ReserveB            uint64           `json:"reserveB"`
	TotalLiquidityUnits uint64           `json:"totalLiquidityUnits"`
	FeeRateBps          uint16           `json:"feeRateBps"`

	TickSpacing      uint16      `json:"tickSpacing,omitempty"`
	CurrentTick      int32       `json:"currentTick,omitempty"`
	SqrtPriceX64     uint256.Int `json:"-"`
	InRangeLiquidity uint64      `json:"inRangeLiquidity,omitempty"`
}

// Validate checks the structural invariants of a snapshot. A funded pool
// (TotalLiquidityUnits > 0) must have both reserves positive.
func (p *PoolState) Validate() error {
	if p.FeeRateBps >= 10000 {
		return fmt.Errorf("%w: fee rate %d bps out of range", common.ErrInvalidArgument, p.FeeRateBps)
	}
	if p.TotalLiquidityUnits > 0 && (p.ReserveA == 0 || p.ReserveB == 0) {
		return fmt.Errorf("%w: funded pool %s has an empty reserve", common.ErrInvalidArgument, p.PoolID)
	}
	if p.TokenA.HasHook && p.TokenA.HookProgramID == nil {
		return fmt.Errorf("%w: token A flagged with hook but no program id", common.ErrInvalidArgument)
	}
	if p.TokenB.HasHook && p.TokenB.HookProgramID == nil {
		return fmt.Errorf("%w: token B flagged with hook but no program id", common.ErrInvalidArgument)
	}
	return nil
}

// HasHookedSide reports whether either leg of the pair carries a transfer hook.
func (p *PoolState) HasHookedSide() bool {
	return p.TokenA.HasHook || p.TokenB.HasHook
}

// SideTokens returns the (source, destination) tokens for the given direction.
func (p *PoolState) SideTokens(aToB bool) (TokenInfo, TokenInfo) {
	if aToB {
		return p.TokenA, p.TokenB
	}
	return p.TokenB, p.TokenA
}

// ApplySwap returns the snapshot that would result from executing the swap.
// The receiver is left untouched.
func (p PoolState) ApplySwap(aToB bool, amountIn, amountOut uint64) PoolState {
	next := p
	if aToB {
		next.ReserveA += amountIn
		next.ReserveB -= amountOut
	} else {
		next.ReserveB += amountIn
		next.ReserveA -= amountOut
	}
	return next
}
