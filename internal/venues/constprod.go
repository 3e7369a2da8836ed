package venues

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/hookswap/route-engine/internal/domain"
	"github.com/hookswap/route-engine/internal/hooks"
	"github.com/hookswap/route-engine/internal/overlay"
	"github.com/hookswap/route-engine/internal/pricing"
)

// ConstantProductAdapter quotes against full-range constant-product pools
// (Raydium-style AMMs and the generic venue use this curve directly).
type ConstantProductAdapter struct {
	name      string
	programID solana.PublicKey
	source    PoolSource
	registry  *hooks.Registry
}

func NewConstantProductAdapter(name string, programID solana.PublicKey, source PoolSource, registry *hooks.Registry) *ConstantProductAdapter {
	return &ConstantProductAdapter{
		name:      name,
		programID: programID,
		source:    source,
		registry:  registry,
	}
}

func (a *ConstantProductAdapter) Name() string { return a.name }

func (a *ConstantProductAdapter) GetPoolState(ctx context.Context, poolID solana.PublicKey) (domain.PoolState, error) {
	return a.source.FetchPoolState(ctx, poolID)
}

func (a *ConstantProductAdapter) GetQuote(ctx context.Context, poolID solana.PublicKey, amountIn uint64, aToB bool) (domain.SwapQuote, error) {
	pool, err := a.source.FetchPoolState(ctx, poolID)
	if err != nil {
		return domain.SwapQuote{}, err
	}
	raw, err := pricing.QuoteSwapForPool(pool, amountIn, aToB)
	if err != nil {
		return domain.SwapQuote{}, fmt.Errorf("%s quote for pool %s: %w", a.name, poolID, err)
	}
	source, dest := pool.SideTokens(aToB)
	return overlay.ApplyHookAdjustment(raw, source, dest, a.name, a.registry), nil
}

func (a *ConstantProductAdapter) ResolvePool(ctx context.Context, mintA, mintB solana.PublicKey) (domain.PoolState, error) {
	return a.source.PoolForPair(ctx, a.name, mintA, mintB)
}

func (a *ConstantProductAdapter) IsHookSupported(programID solana.PublicKey) bool {
	return a.registry.IsCompatibleWithVenue(programID, a.name)
}

func (a *ConstantProductAdapter) BuildRouteInstructions(route domain.Route, signer solana.PublicKey) ([]domain.InstructionStep, error) {
	return buildInstructionSteps(route, a.name, a.programID, signer, a.registry)
}
