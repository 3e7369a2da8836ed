// Package venues exposes liquidity venues behind a uniform adapter
// interface. Each adapter translates its venue's pool representation into
// the shared PoolState/SwapQuote vocabulary and applies the hook-fee
// overlay to every quote it hands out.
package venues

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/hookswap/route-engine/internal/domain"
)

// PoolSource supplies decoded pool snapshots for one or more venues.
// Implementations may block on network I/O and must honor ctx.
type PoolSource interface {
	// FetchPoolState returns the current snapshot for poolID, or an
	// error wrapping common.ErrNotFound when the source has no such
	// pool.
	FetchPoolState(ctx context.Context, poolID solana.PublicKey) (domain.PoolState, error)

	// PoolForPair returns the venue's pool for the given mint pair in
	// either orientation, or an error wrapping common.ErrNotFound.
	PoolForPair(ctx context.Context, venue string, mintA, mintB solana.PublicKey) (domain.PoolState, error)
}

// Adapter is the uniform quoting surface of one liquidity venue.
type Adapter interface {
	// Name returns the venue's display name, used as the registry's
	// venue key and in route ranking.
	Name() string

	// GetPoolState fetches the snapshot for poolID.
	GetPoolState(ctx context.Context, poolID solana.PublicKey) (domain.PoolState, error)

	// GetQuote prices an exact-in swap on poolID, hook adjustments
	// included.
	GetQuote(ctx context.Context, poolID solana.PublicKey, amountIn uint64, aToB bool) (domain.SwapQuote, error)

	// ResolvePool finds this venue's pool for a mint pair.
	ResolvePool(ctx context.Context, mintA, mintB solana.PublicKey) (domain.PoolState, error)

	// IsHookSupported reports whether a hook program may run on this
	// venue.
	IsHookSupported(programID solana.PublicKey) bool

	// BuildRouteInstructions orders the execution steps for a route:
	// source-side hook first, then the swap, then the destination-side
	// hook. Serialization of the steps belongs to the transaction
	// layer.
	BuildRouteInstructions(route domain.Route, signer solana.PublicKey) ([]domain.InstructionStep, error)
}
