package venues

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"

	"github.com/hookswap/route-engine/internal/common"
	"github.com/hookswap/route-engine/internal/domain"
	"github.com/hookswap/route-engine/internal/hooks"
	"github.com/hookswap/route-engine/internal/overlay"
	"github.com/hookswap/route-engine/internal/pricing"
)

// WhirlpoolAdapter quotes against concentrated-liquidity pools by treating
// the active tick range as a constant-product curve over virtual reserves.
// The approximation holds for trades that stay inside the current range;
// crossing ticks would need the full tick-array walk, which the quoting
// path does not attempt.
type WhirlpoolAdapter struct {
	name      string
	programID solana.PublicKey
	source    PoolSource
	registry  *hooks.Registry
}

func NewWhirlpoolAdapter(name string, programID solana.PublicKey, source PoolSource, registry *hooks.Registry) *WhirlpoolAdapter {
	return &WhirlpoolAdapter{
		name:      name,
		programID: programID,
		source:    source,
		registry:  registry,
	}
}

func (a *WhirlpoolAdapter) Name() string { return a.name }

func (a *WhirlpoolAdapter) GetPoolState(ctx context.Context, poolID solana.PublicKey) (domain.PoolState, error) {
	return a.source.FetchPoolState(ctx, poolID)
}

// virtualReserves derives the in-range token amounts from the pool's
// liquidity and sqrt price:
//
//	reserveA = L * 2^64 / sqrtPriceX64
//	reserveB = L * sqrtPriceX64 / 2^64
//
// Results are clamped to uint64; a clamped reserve only makes the curve
// look deeper, which the downstream math tolerates.
func virtualReserves(liquidity uint64, sqrtPriceX64 uint256.Int) (uint64, uint64, error) {
	if liquidity == 0 {
		return 0, 0, fmt.Errorf("%w: pool has no in-range liquidity", common.ErrInvalidArgument)
	}
	if sqrtPriceX64.IsZero() {
		return 0, 0, fmt.Errorf("%w: pool sqrt price is zero", common.ErrInvalidArgument)
	}

	var liq, reserveA, reserveB uint256.Int
	liq.SetUint64(liquidity)

	reserveA.Lsh(&liq, 64)
	reserveA.Div(&reserveA, &sqrtPriceX64)

	reserveB.Mul(&liq, &sqrtPriceX64)
	reserveB.Rsh(&reserveB, 64)

	return clampUint64(&reserveA), clampUint64(&reserveB), nil
}

func clampUint64(v *uint256.Int) uint64 {
	if !v.IsUint64() {
		return ^uint64(0)
	}
	return v.Uint64()
}

func (a *WhirlpoolAdapter) GetQuote(ctx context.Context, poolID solana.PublicKey, amountIn uint64, aToB bool) (domain.SwapQuote, error) {
	pool, err := a.source.FetchPoolState(ctx, poolID)
	if err != nil {
		return domain.SwapQuote{}, err
	}
	if err := pool.Validate(); err != nil {
		return domain.SwapQuote{}, err
	}

	reserveA, reserveB, err := virtualReserves(pool.InRangeLiquidity, pool.SqrtPriceX64)
	if err != nil {
		return domain.SwapQuote{}, fmt.Errorf("%s pool %s: %w", a.name, poolID, err)
	}
	reserveIn, reserveOut := reserveA, reserveB
	if !aToB {
		reserveIn, reserveOut = reserveB, reserveA
	}

	raw, err := pricing.QuoteSwap(amountIn, reserveIn, reserveOut, pool.FeeRateBps)
	if err != nil {
		return domain.SwapQuote{}, fmt.Errorf("%s quote for pool %s: %w", a.name, poolID, err)
	}
	source, dest := pool.SideTokens(aToB)
	return overlay.ApplyHookAdjustment(raw, source, dest, a.name, a.registry), nil
}

func (a *WhirlpoolAdapter) ResolvePool(ctx context.Context, mintA, mintB solana.PublicKey) (domain.PoolState, error) {
	return a.source.PoolForPair(ctx, a.name, mintA, mintB)
}

func (a *WhirlpoolAdapter) IsHookSupported(programID solana.PublicKey) bool {
	return a.registry.IsCompatibleWithVenue(programID, a.name)
}

func (a *WhirlpoolAdapter) BuildRouteInstructions(route domain.Route, signer solana.PublicKey) ([]domain.InstructionStep, error) {
	return buildInstructionSteps(route, a.name, a.programID, signer, a.registry)
}
