package overlay

import (
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"

	"github.com/hookswap/route-engine/internal/domain"
	"github.com/hookswap/route-engine/internal/hooks"
)

var (
	trustedHookID    = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	unlistedHookID   = solana.MustPublicKeyFromBase58("11111111111111111111111111111112")
	unverifiedHookID = solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111")
)

func testRegistry() *hooks.Registry {
	old := time.Now().Add(-365 * 24 * time.Hour)
	return hooks.NewRegistry([]hooks.WhitelistedHook{
		{
			ProgramID:       trustedHookID,
			Name:            "Fee Collection Hook",
			Verified:        true,
			CreatedAt:       old,
			SupportedVenues: []string{domain.VenueRaydium, domain.VenueOrca},
			RiskLevel:       hooks.RiskLow,
		},
		{
			ProgramID:       unverifiedHookID,
			Name:            "Unverified Hook",
			Verified:        false,
			CreatedAt:       old,
			SupportedVenues: []string{domain.VenueRaydium},
			RiskLevel:       hooks.RiskLow,
		},
	})
}

func plainToken() domain.TokenInfo {
	return domain.TokenInfo{Mint: solana.NewWallet().PublicKey(), Decimals: 6}
}

func hookedToken(programID solana.PublicKey) domain.TokenInfo {
	return domain.TokenInfo{
		Mint:          solana.NewWallet().PublicKey(),
		Decimals:      6,
		HasHook:       true,
		HookProgramID: &programID,
	}
}

func rawQuote() domain.SwapQuote {
	return domain.SwapQuote{
		AmountIn:       1_000_000,
		AmountOut:      99_600,
		FeeAmount:      3_000,
		PriceImpactBps: 10,
		Warnings:       []string{},
	}
}

func TestApplyHookAdjustmentNoHooks(t *testing.T) {
	raw := rawQuote()
	adjusted := ApplyHookAdjustment(raw, plainToken(), plainToken(), domain.VenueRaydium, testRegistry())

	if adjusted.AmountOut != raw.AmountOut {
		t.Errorf("AmountOut changed on a hook-free pair: %d", adjusted.AmountOut)
	}
	if adjusted.TransferHookFee != 0 {
		t.Errorf("TransferHookFee = %d, want 0", adjusted.TransferHookFee)
	}
	if len(adjusted.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", adjusted.Warnings)
	}
}

func TestApplyHookAdjustmentDestinationSide(t *testing.T) {
	raw := rawQuote()
	adjusted := ApplyHookAdjustment(raw, plainToken(), hookedToken(trustedHookID), domain.VenueRaydium, testRegistry())

	wantFee := raw.AmountOut * HookFeeBps / 10_000 // 99
	if adjusted.TransferHookFee != wantFee {
		t.Errorf("TransferHookFee = %d, want %d", adjusted.TransferHookFee, wantFee)
	}
	if adjusted.AmountOut != raw.AmountOut-wantFee {
		t.Errorf("AmountOut = %d, want %d", adjusted.AmountOut, raw.AmountOut-wantFee)
	}
	if len(adjusted.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", adjusted.Warnings)
	}
}

func TestApplyHookAdjustmentSourceSide(t *testing.T) {
	raw := rawQuote()
	adjusted := ApplyHookAdjustment(raw, hookedToken(trustedHookID), plainToken(), domain.VenueRaydium, testRegistry())

	wantFee := raw.AmountIn * HookFeeBps / 10_000 // 1000
	if adjusted.TransferHookFee != wantFee {
		t.Errorf("TransferHookFee = %d, want %d", adjusted.TransferHookFee, wantFee)
	}
	// The source-side fee is reported but never re-subtracted from the output.
	if adjusted.AmountOut != raw.AmountOut {
		t.Errorf("AmountOut = %d, want %d", adjusted.AmountOut, raw.AmountOut)
	}
}

func TestApplyHookAdjustmentBothSides(t *testing.T) {
	raw := rawQuote()
	adjusted := ApplyHookAdjustment(raw, hookedToken(trustedHookID), hookedToken(trustedHookID), domain.VenueRaydium, testRegistry())

	sourceFee := raw.AmountIn * HookFeeBps / 10_000
	destFee := raw.AmountOut * HookFeeBps / 10_000
	if adjusted.TransferHookFee != sourceFee+destFee {
		t.Errorf("TransferHookFee = %d, want %d", adjusted.TransferHookFee, sourceFee+destFee)
	}
	if adjusted.AmountOut != raw.AmountOut-destFee {
		t.Errorf("AmountOut = %d, want %d", adjusted.AmountOut, raw.AmountOut-destFee)
	}
}

func TestApplyHookAdjustmentUnlistedHook(t *testing.T) {
	raw := rawQuote()
	adjusted := ApplyHookAdjustment(raw, plainToken(), hookedToken(unlistedHookID), domain.VenueRaydium, testRegistry())

	if adjusted.TransferHookFee != 0 {
		t.Errorf("unlisted hook must not charge a fee, got %d", adjusted.TransferHookFee)
	}
	if adjusted.AmountOut != raw.AmountOut {
		t.Errorf("AmountOut = %d, want %d", adjusted.AmountOut, raw.AmountOut)
	}
	if len(adjusted.Warnings) != 1 || adjusted.Warnings[0] != "hook program is not in the whitelist" {
		t.Errorf("warnings = %v", adjusted.Warnings)
	}
}

func TestApplyHookAdjustmentUnverifiedHook(t *testing.T) {
	raw := rawQuote()
	adjusted := ApplyHookAdjustment(raw, hookedToken(unverifiedHookID), plainToken(), domain.VenueRaydium, testRegistry())

	if adjusted.TransferHookFee != 0 {
		t.Errorf("unverified hook must not charge a fee, got %d", adjusted.TransferHookFee)
	}
	if len(adjusted.Warnings) != 1 || adjusted.Warnings[0] != "hook program is not verified" {
		t.Errorf("warnings = %v", adjusted.Warnings)
	}
}

func TestApplyHookAdjustmentVenueMismatchWarns(t *testing.T) {
	raw := rawQuote()
	adjusted := ApplyHookAdjustment(raw, plainToken(), hookedToken(trustedHookID), domain.VenueMeteora, testRegistry())

	// A compatibility warning does not invalidate the hook; the fee still applies.
	wantFee := raw.AmountOut * HookFeeBps / 10_000
	if adjusted.TransferHookFee != wantFee {
		t.Errorf("TransferHookFee = %d, want %d", adjusted.TransferHookFee, wantFee)
	}
	if len(adjusted.Warnings) != 1 || adjusted.Warnings[0] != "hook may not be fully compatible with "+domain.VenueMeteora {
		t.Errorf("warnings = %v", adjusted.Warnings)
	}
}

func TestApplyHookAdjustmentTinyOutput(t *testing.T) {
	raw := domain.SwapQuote{AmountIn: 100, AmountOut: 5, Warnings: []string{}}
	adjusted := ApplyHookAdjustment(raw, plainToken(), hookedToken(trustedHookID), domain.VenueRaydium, testRegistry())

	// floor(5 * 10 / 10000) = 0; the output survives untouched.
	if adjusted.TransferHookFee != 0 || adjusted.AmountOut != 5 {
		t.Errorf("got fee=%d out=%d", adjusted.TransferHookFee, adjusted.AmountOut)
	}
}

func BenchmarkApplyHookAdjustment(b *testing.B) {
	registry := testRegistry()
	raw := rawQuote()
	source := hookedToken(trustedHookID)
	dest := hookedToken(trustedHookID)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = ApplyHookAdjustment(raw, source, dest, domain.VenueRaydium, registry)
	}
}
