package pricing

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/holiman/uint256"

	"github.com/hookswap/route-engine/internal/common"
	"github.com/hookswap/route-engine/internal/domain"
)

const bpsDenominator = 10_000

// mulDiv returns floor(a * b / den) with a 128-bit intermediate product,
// saturating to MaxUint64 when the quotient does not fit. Without the
// saturation a huge trade's price impact would wrap around and report as
// negligible. den must be non-zero.
func mulDiv(a, b, den uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi == 0 {
		return lo / den
	}
	if hi >= den {
		return math.MaxUint64
	}
	quo, _ := bits.Div64(hi, lo, den)
	return quo
}

// QuoteSwap prices an exact-in swap against a constant-product curve.
// All rounding is floor over integer arithmetic; no floats touch the
// amounts. priceImpactBps is the input size relative to the input-side
// reserve and is deliberately not clamped at 10000.
func QuoteSwap(amountIn, reserveIn, reserveOut uint64, feeRateBps uint16) (domain.SwapQuote, error) {
	if amountIn == 0 {
		return domain.SwapQuote{}, fmt.Errorf("%w: amountIn must be positive", common.ErrInvalidArgument)
	}
	if reserveIn == 0 || reserveOut == 0 {
		return domain.SwapQuote{}, fmt.Errorf("%w: pool reserves must be positive", common.ErrInvalidArgument)
	}
	if feeRateBps >= bpsDenominator {
		return domain.SwapQuote{}, fmt.Errorf("%w: feeRateBps %d out of range", common.ErrInvalidArgument, feeRateBps)
	}

	feeAmount := mulDiv(amountIn, uint64(feeRateBps), bpsDenominator)
	amountInAfterFee := amountIn - feeAmount

	// amountOut = floor(aif * reserveOut / (reserveIn + aif)). Both the
	// numerator and the denominator can exceed 64 bits, so compute in
	// 256-bit space.
	var num, den, out, tmp uint256.Int
	num.SetUint64(amountInAfterFee)
	tmp.SetUint64(reserveOut)
	num.Mul(&num, &tmp)
	den.SetUint64(reserveIn)
	tmp.SetUint64(amountInAfterFee)
	den.Add(&den, &tmp)
	out.Div(&num, &den)

	return domain.SwapQuote{
		AmountIn:       amountIn,
		AmountOut:      out.Uint64(),
		FeeAmount:      feeAmount,
		PriceImpactBps: mulDiv(amountIn, bpsDenominator, reserveIn),
		Warnings:       []string{},
	}, nil
}

// QuoteSwapForPool resolves the directional reserves from a pool snapshot
// and prices the swap with QuoteSwap.
func QuoteSwapForPool(pool domain.PoolState, amountIn uint64, aToB bool) (domain.SwapQuote, error) {
	if err := pool.Validate(); err != nil {
		return domain.SwapQuote{}, err
	}
	reserveIn, reserveOut := pool.ReserveA, pool.ReserveB
	if !aToB {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
	}
	return QuoteSwap(amountIn, reserveIn, reserveOut, pool.FeeRateBps)
}

// QuoteLiquidity prices a two-sided deposit. The first depositor mints
// floor(sqrt(amountA * amountB)) units and owns the whole pool; later
// depositors mint the minimum of the two proportional amounts, so an
// unbalanced deposit is bound by its scarcer side rather than rebalanced.
func QuoteLiquidity(pool domain.PoolState, amountA, amountB uint64) (domain.LiquidityQuote, error) {
	if amountA == 0 || amountB == 0 {
		return domain.LiquidityQuote{}, fmt.Errorf("%w: both deposit amounts must be positive", common.ErrInvalidArgument)
	}

	if pool.TotalLiquidityUnits == 0 {
		var prod, a, b uint256.Int
		a.SetUint64(amountA)
		b.SetUint64(amountB)
		prod.Mul(&a, &b)
		prod.Sqrt(&prod)
		return domain.LiquidityQuote{
			TokenAAmount:   amountA,
			TokenBAmount:   amountB,
			LpTokensToMint: prod.Uint64(),
			PoolSharePct:   100.0,
		}, nil
	}

	if pool.ReserveA == 0 || pool.ReserveB == 0 {
		return domain.LiquidityQuote{}, fmt.Errorf("%w: pool has liquidity units but empty reserves", common.ErrInvalidArgument)
	}

	lpFromA := mulDiv(amountA, pool.TotalLiquidityUnits, pool.ReserveA)
	lpFromB := mulDiv(amountB, pool.TotalLiquidityUnits, pool.ReserveB)
	lp := lpFromA
	if lpFromB < lp {
		lp = lpFromB
	}

	return domain.LiquidityQuote{
		TokenAAmount:   amountA,
		TokenBAmount:   amountB,
		LpTokensToMint: lp,
		PoolSharePct:   100.0 * float64(lp) / (float64(pool.TotalLiquidityUnits) + float64(lp)),
	}, nil
}

// QuoteWithdrawal prices a proportional redemption of lpTokens against the
// pool's current reserves.
func QuoteWithdrawal(pool domain.PoolState, lpTokens uint64) (domain.WithdrawalQuote, error) {
	if lpTokens == 0 {
		return domain.WithdrawalQuote{}, fmt.Errorf("%w: lpTokens must be positive", common.ErrInvalidArgument)
	}
	if pool.TotalLiquidityUnits == 0 {
		return domain.WithdrawalQuote{}, fmt.Errorf("%w: pool has no liquidity units", common.ErrInvalidArgument)
	}
	if lpTokens > pool.TotalLiquidityUnits {
		return domain.WithdrawalQuote{}, fmt.Errorf("%w: lpTokens %d exceeds total supply %d", common.ErrInvalidArgument, lpTokens, pool.TotalLiquidityUnits)
	}

	return domain.WithdrawalQuote{
		LpTokens:     lpTokens,
		TokenAAmount: mulDiv(lpTokens, pool.ReserveA, pool.TotalLiquidityUnits),
		TokenBAmount: mulDiv(lpTokens, pool.ReserveB, pool.TotalLiquidityUnits),
	}, nil
}

// PoolPrice returns the pool's spot reserve ratio reserveA / reserveB.
func PoolPrice(pool domain.PoolState) (float64, error) {
	if pool.ReserveB == 0 {
		return 0, fmt.Errorf("%w: reserveB is zero", common.ErrDivisionByZero)
	}
	return float64(pool.ReserveA) / float64(pool.ReserveB), nil
}

// MinAmountOut applies a slippage tolerance to a quoted output amount,
// rounding down. slippageBps of 10000 tolerates total loss.
func MinAmountOut(amountOut uint64, slippageBps uint16) (uint64, error) {
	if slippageBps > bpsDenominator {
		return 0, fmt.Errorf("%w: slippageBps %d out of range", common.ErrInvalidArgument, slippageBps)
	}
	return mulDiv(amountOut, uint64(bpsDenominator-slippageBps), bpsDenominator), nil
}
