package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/hookswap/route-engine/internal/common"
	"github.com/hookswap/route-engine/internal/domain"
)

func TestQuoteSwapKnownValues(t *testing.T) {
	tests := []struct {
		name           string
		amountIn       uint64
		reserveIn      uint64
		reserveOut     uint64
		feeRateBps     uint16
		wantOut        uint64
		wantFee        uint64
		wantImpactBps  uint64
	}{
		{
			name:          "30bps fee typical trade",
			amountIn:      1_000_000,
			reserveIn:     1_000_000_000,
			reserveOut:    100_000_000,
			feeRateBps:    30,
			wantOut:       99_600,
			wantFee:       3_000,
			wantImpactBps: 10,
		},
		{
			name:          "zero fee balanced pool",
			amountIn:      1_000,
			reserveIn:     1_000_000,
			reserveOut:    1_000_000,
			feeRateBps:    0,
			wantOut:       999,
			wantFee:       0,
			wantImpactBps: 10,
		},
		{
			name:          "dust input rounds to zero out",
			amountIn:      1,
			reserveIn:     10,
			reserveOut:    10,
			feeRateBps:    0,
			wantOut:       0,
			wantFee:       0,
			wantImpactBps: 1_000,
		},
		{
			name:          "trade larger than reserve",
			amountIn:      2_000_000,
			reserveIn:     1_000_000,
			reserveOut:    1_000_000,
			feeRateBps:    0,
			wantOut:       666_666,
			wantFee:       0,
			wantImpactBps: 20_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := QuoteSwap(tt.amountIn, tt.reserveIn, tt.reserveOut, tt.feeRateBps)
			if err != nil {
				t.Fatalf("QuoteSwap failed: %v", err)
			}
			if quote.AmountOut != tt.wantOut {
				t.Errorf("AmountOut = %d, want %d", quote.AmountOut, tt.wantOut)
			}
			if quote.FeeAmount != tt.wantFee {
				t.Errorf("FeeAmount = %d, want %d", quote.FeeAmount, tt.wantFee)
			}
			if quote.PriceImpactBps != tt.wantImpactBps {
				t.Errorf("PriceImpactBps = %d, want %d", quote.PriceImpactBps, tt.wantImpactBps)
			}
			if quote.Warnings == nil {
				t.Error("Warnings must be an empty slice, not nil")
			}
		})
	}
}

func TestQuoteSwapInvalidArguments(t *testing.T) {
	tests := []struct {
		name       string
		amountIn   uint64
		reserveIn  uint64
		reserveOut uint64
		feeRateBps uint16
	}{
		{"zero amountIn", 0, 1000, 1000, 30},
		{"zero reserveIn", 100, 0, 1000, 30},
		{"zero reserveOut", 100, 1000, 0, 30},
		{"fee rate at denominator", 100, 1000, 1000, 10_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := QuoteSwap(tt.amountIn, tt.reserveIn, tt.reserveOut, tt.feeRateBps)
			if !errors.Is(err, common.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestQuoteSwapDeterministic(t *testing.T) {
	first, err := QuoteSwap(123_456, 10_000_000, 20_000_000, 25)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		again, err := QuoteSwap(123_456, 10_000_000, 20_000_000, 25)
		if err != nil {
			t.Fatal(err)
		}
		if again.AmountOut != first.AmountOut || again.FeeAmount != first.FeeAmount || again.PriceImpactBps != first.PriceImpactBps {
			t.Fatalf("call %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestQuoteSwapBounds(t *testing.T) {
	amounts := []uint64{1, 500, 99_999, 1_000_000, 123_456_789, math.MaxUint64 / 4}
	for _, amountIn := range amounts {
		quote, err := QuoteSwap(amountIn, 50_000_000, 80_000_000, 30)
		if err != nil {
			t.Fatalf("amountIn=%d: %v", amountIn, err)
		}
		if quote.FeeAmount > amountIn {
			t.Errorf("amountIn=%d: feeAmount %d exceeds input", amountIn, quote.FeeAmount)
		}
		if quote.AmountOut >= 80_000_000 {
			t.Errorf("amountIn=%d: amountOut %d would drain the reserve", amountIn, quote.AmountOut)
		}
	}
}

func TestQuoteSwapMonotonicity(t *testing.T) {
	var lastImpact, lastFee uint64
	for _, amountIn := range []uint64{1_000, 10_000, 100_000, 1_000_000, 10_000_000} {
		quote, err := QuoteSwap(amountIn, 100_000_000, 100_000_000, 30)
		if err != nil {
			t.Fatal(err)
		}
		if quote.PriceImpactBps <= lastImpact && lastImpact != 0 {
			t.Errorf("amountIn=%d: price impact %d did not strictly increase from %d", amountIn, quote.PriceImpactBps, lastImpact)
		}
		if quote.FeeAmount < lastFee {
			t.Errorf("amountIn=%d: fee %d decreased from %d", amountIn, quote.FeeAmount, lastFee)
		}
		lastImpact = quote.PriceImpactBps
		lastFee = quote.FeeAmount
	}
}

func TestQuoteSwapForPoolDirections(t *testing.T) {
	pool := domain.PoolState{
		Venue:               domain.VenueRaydium,
		ReserveA:            1_000_000_000,
		ReserveB:            100_000_000,
		TotalLiquidityUnits: 1_000_000,
		FeeRateBps:          30,
	}

	aToB, err := QuoteSwapForPool(pool, 1_000_000, true)
	if err != nil {
		t.Fatal(err)
	}
	if aToB.AmountOut != 99_600 {
		t.Errorf("aToB AmountOut = %d, want 99600", aToB.AmountOut)
	}

	bToA, err := QuoteSwapForPool(pool, 1_000_000, false)
	if err != nil {
		t.Fatal(err)
	}
	// reserves swap roles: fee 3000, 997000*1e9/(1e8+997000)
	if bToA.AmountOut == aToB.AmountOut {
		t.Error("opposite directions must not produce identical quotes on an unbalanced pool")
	}
	if bToA.PriceImpactBps != 100 {
		t.Errorf("bToA PriceImpactBps = %d, want 100", bToA.PriceImpactBps)
	}
}

func TestQuoteLiquidityFirstDepositor(t *testing.T) {
	pool := domain.PoolState{}

	quote, err := QuoteLiquidity(pool, 100, 400)
	if err != nil {
		t.Fatal(err)
	}
	if quote.LpTokensToMint != 200 {
		t.Errorf("LpTokensToMint = %d, want 200", quote.LpTokensToMint)
	}
	if quote.PoolSharePct != 100.0 {
		t.Errorf("PoolSharePct = %f, want 100.0", quote.PoolSharePct)
	}

	if _, err := QuoteLiquidity(pool, 0, 400); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("zero-side bootstrap must be rejected, got %v", err)
	}
	if _, err := QuoteLiquidity(pool, 100, 0); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("zero-side bootstrap must be rejected, got %v", err)
	}
}

func TestQuoteLiquidityProportional(t *testing.T) {
	pool := domain.PoolState{
		TotalLiquidityUnits: 1_000,
		ReserveA:            500,
		ReserveB:            2_000,
	}

	quote, err := QuoteLiquidity(pool, 50, 300)
	if err != nil {
		t.Fatal(err)
	}
	// lpFromA=100, lpFromB=150, binding side is A
	if quote.LpTokensToMint != 100 {
		t.Errorf("LpTokensToMint = %d, want 100", quote.LpTokensToMint)
	}
	wantShare := 100.0 * 100.0 / 1_100.0
	if math.Abs(quote.PoolSharePct-wantShare) > 1e-9 {
		t.Errorf("PoolSharePct = %f, want %f", quote.PoolSharePct, wantShare)
	}
	if quote.TokenAAmount != 50 || quote.TokenBAmount != 300 {
		t.Errorf("deposit amounts not echoed back: %+v", quote)
	}
}

func TestQuoteWithdrawal(t *testing.T) {
	pool := domain.PoolState{
		TotalLiquidityUnits: 1_000,
		ReserveA:            500,
		ReserveB:            2_000,
	}

	quote, err := QuoteWithdrawal(pool, 100)
	if err != nil {
		t.Fatal(err)
	}
	if quote.TokenAAmount != 50 || quote.TokenBAmount != 200 {
		t.Errorf("got (%d, %d), want (50, 200)", quote.TokenAAmount, quote.TokenBAmount)
	}

	if _, err := QuoteWithdrawal(pool, 1_001); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("oversized redemption must be rejected, got %v", err)
	}
	if _, err := QuoteWithdrawal(pool, 0); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("zero redemption must be rejected, got %v", err)
	}
	if _, err := QuoteWithdrawal(domain.PoolState{}, 10); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("empty pool redemption must be rejected, got %v", err)
	}
}

func TestPoolPrice(t *testing.T) {
	pool := domain.PoolState{ReserveA: 500, ReserveB: 2_000}
	price, err := PoolPrice(pool)
	if err != nil {
		t.Fatal(err)
	}
	if price != 0.25 {
		t.Errorf("price = %f, want 0.25", price)
	}

	_, err = PoolPrice(domain.PoolState{ReserveA: 500})
	if !errors.Is(err, common.ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestMinAmountOut(t *testing.T) {
	tests := []struct {
		amountOut   uint64
		slippageBps uint16
		want        uint64
	}{
		{99_600, 50, 99_102},
		{10_000, 0, 10_000},
		{10_000, 10_000, 0},
		{3, 1, 2},
	}
	for _, tt := range tests {
		got, err := MinAmountOut(tt.amountOut, tt.slippageBps)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("MinAmountOut(%d, %d) = %d, want %d", tt.amountOut, tt.slippageBps, got, tt.want)
		}
	}

	if _, err := MinAmountOut(100, 10_001); !errors.Is(err, common.ErrInvalidArgument) {
		t.Errorf("out-of-range slippage must be rejected, got %v", err)
	}
}

func TestMulDivWideIntermediate(t *testing.T) {
	// product exceeds 64 bits, quotient does not
	got := mulDiv(1<<40, 1<<30, 1<<20)
	if got != 1<<50 {
		t.Errorf("mulDiv = %d, want %d", got, uint64(1)<<50)
	}
	if got := mulDiv(math.MaxUint64, math.MaxUint64, math.MaxUint64); got != math.MaxUint64 {
		t.Errorf("mulDiv identity = %d", got)
	}
}

func TestMulDivSaturatesOnOverflow(t *testing.T) {
	tests := []struct {
		a, b, den uint64
	}{
		{math.MaxUint64, 2, 1},
		{1 << 63, 4, 2},
		{1 << 63, 10_000, 1},
	}
	for _, tt := range tests {
		if got := mulDiv(tt.a, tt.b, tt.den); got != math.MaxUint64 {
			t.Errorf("mulDiv(%d, %d, %d) = %d, want MaxUint64", tt.a, tt.b, tt.den, got)
		}
	}
	// one below the boundary still computes exactly
	if got := mulDiv(1<<62, 4, 4); got != 1<<62 {
		t.Errorf("mulDiv below boundary = %d, want %d", got, uint64(1)<<62)
	}
}

func TestQuoteSwapPriceImpactSaturates(t *testing.T) {
	small, err := QuoteSwap(1_000, 1, 1_000_000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if small.PriceImpactBps != 10_000_000 {
		t.Fatalf("small trade impact = %d, want 10000000", small.PriceImpactBps)
	}

	huge, err := QuoteSwap(1<<63, 1, 1_000_000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if huge.PriceImpactBps != math.MaxUint64 {
		t.Errorf("overflowed impact = %d, want MaxUint64", huge.PriceImpactBps)
	}
	// a larger trade must never report a smaller impact
	if huge.PriceImpactBps <= small.PriceImpactBps {
		t.Errorf("larger trade reports smaller impact (%d <= %d)", huge.PriceImpactBps, small.PriceImpactBps)
	}
}

func TestQuoteLiquiditySaturatesOnOverflow(t *testing.T) {
	pool := domain.PoolState{
		TotalLiquidityUnits: 1 << 40,
		ReserveA:            1,
		ReserveB:            1,
	}

	quote, err := QuoteLiquidity(pool, 1<<40, 1<<40)
	if err != nil {
		t.Fatal(err)
	}
	if quote.LpTokensToMint != math.MaxUint64 {
		t.Errorf("LpTokensToMint = %d, want MaxUint64", quote.LpTokensToMint)
	}
	if quote.PoolSharePct > 100.0 {
		t.Errorf("PoolSharePct = %f, exceeds 100", quote.PoolSharePct)
	}
}

func TestPriceImpactSeverityBuckets(t *testing.T) {
	tests := []struct {
		bps  uint64
		want PriceImpactSeverity
	}{
		{0, SeverityNone},
		{99, SeverityNone},
		{100, SeverityLow},
		{299, SeverityLow},
		{300, SeverityModerate},
		{500, SeverityHigh},
		{999, SeverityHigh},
		{1_000, SeverityExtreme},
		{50_000, SeverityExtreme},
	}
	for _, tt := range tests {
		if got := GetPriceImpactSeverity(tt.bps); got != tt.want {
			t.Errorf("GetPriceImpactSeverity(%d) = %s, want %s", tt.bps, got, tt.want)
		}
	}
	if GetPriceImpactWarning(0) != "" {
		t.Error("no warning expected for negligible impact")
	}
	if GetPriceImpactWarning(2_000) == "" {
		t.Error("extreme impact must carry a warning")
	}
}

func BenchmarkQuoteSwap(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = QuoteSwap(1_000_000, 1_000_000_000, 100_000_000, 30)
	}
}

func BenchmarkQuoteLiquidity(b *testing.B) {
	pool := domain.PoolState{
		TotalLiquidityUnits: 1_000_000,
		ReserveA:            500_000_000,
		ReserveB:            2_000_000_000,
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = QuoteLiquidity(pool, 50_000, 300_000)
	}
}
