package venues

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/time/rate"

	"github.com/hookswap/route-engine/internal/common"
	"github.com/hookswap/route-engine/internal/domain"
)

// ThrottledSource rate-limits an underlying PoolSource. Remote sources sit
// behind public RPC endpoints with strict request budgets, so the limiter
// is shared across all adapters that use the same source.
type ThrottledSource struct {
	inner   PoolSource
	limiter *rate.Limiter
}

// NewThrottledSource wraps inner with a token-bucket limiter of rps
// requests per second and the given burst.
func NewThrottledSource(inner PoolSource, rps float64, burst int) *ThrottledSource {
	return &ThrottledSource{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (s *ThrottledSource) FetchPoolState(ctx context.Context, poolID solana.PublicKey) (domain.PoolState, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return domain.PoolState{}, fmt.Errorf("%w: rate limit wait: %v", common.ErrVenueUnavailable, err)
	}
	return s.inner.FetchPoolState(ctx, poolID)
}

func (s *ThrottledSource) PoolForPair(ctx context.Context, venue string, mintA, mintB solana.PublicKey) (domain.PoolState, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return domain.PoolState{}, fmt.Errorf("%w: rate limit wait: %v", common.ErrVenueUnavailable, err)
	}
	return s.inner.PoolForPair(ctx, venue, mintA, mintB)
}
