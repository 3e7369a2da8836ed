package venues

import (
	"context"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/gagliardetto/solana-go"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/hookswap/route-engine/internal/common"
	"github.com/hookswap/route-engine/internal/domain"
)

// MemoryPoolSource is a PoolSource backed by a sharded in-process map. It
// stands in for the RPC-backed source in tests and local runs, and is the
// backing store the fixture loader fills.
type MemoryPoolSource struct {
	pools *shardedPoolMap
}

func NewMemoryPoolSource(pools ...domain.PoolState) *MemoryPoolSource {
	src := &MemoryPoolSource{pools: newShardedPoolMap()}
	for _, p := range pools {
		src.pools.Set(p.PoolID, p)
	}
	return src
}

// Upsert inserts or replaces a pool snapshot.
func (s *MemoryPoolSource) Upsert(pool domain.PoolState) {
	s.pools.Set(pool.PoolID, pool)
}

// Remove drops a pool snapshot if present.
func (s *MemoryPoolSource) Remove(poolID solana.PublicKey) {
	s.pools.Delete(poolID)
}

// Size returns the number of stored pools.
func (s *MemoryPoolSource) Size() int {
	return s.pools.Len()
}

func (s *MemoryPoolSource) FetchPoolState(ctx context.Context, poolID solana.PublicKey) (domain.PoolState, error) {
	if err := ctx.Err(); err != nil {
		return domain.PoolState{}, err
	}
	pool, ok := s.pools.Get(poolID)
	if !ok {
		return domain.PoolState{}, fmt.Errorf("%w: pool %s", common.ErrNotFound, poolID)
	}
	return pool, nil
}

func (s *MemoryPoolSource) PoolForPair(ctx context.Context, venue string, mintA, mintB solana.PublicKey) (domain.PoolState, error) {
	if err := ctx.Err(); err != nil {
		return domain.PoolState{}, err
	}
	var found *domain.PoolState
	s.pools.Range(func(_ solana.PublicKey, pool domain.PoolState) bool {
		if pool.Venue != venue {
			return true
		}
		direct := pool.TokenA.Mint.Equals(mintA) && pool.TokenB.Mint.Equals(mintB)
		reversed := pool.TokenA.Mint.Equals(mintB) && pool.TokenB.Mint.Equals(mintA)
		if direct || reversed {
			p := pool
			found = &p
			return false
		}
		return true
	})
	if found == nil {
		return domain.PoolState{}, fmt.Errorf("%w: no %s pool for pair %s/%s", common.ErrNotFound, venue, mintA, mintB)
	}
	return *found, nil
}

// poolFixture is the on-disk shape of one pool snapshot. Mints are base58
// and sqrtPriceX64 is a decimal string since it does not fit in 64 bits.
type poolFixture struct {
	PoolID              string       `json:"poolId"`
	Venue               string       `json:"venue"`
	TokenA              tokenFixture `json:"tokenA"`
	TokenB              tokenFixture `json:"tokenB"`
	ReserveA            uint64       `json:"reserveA"`
	ReserveB            uint64       `json:"reserveB"`
	TotalLiquidityUnits uint64       `json:"totalLiquidityUnits"`
	FeeRateBps          uint16       `json:"feeRateBps"`
	TickSpacing         uint16       `json:"tickSpacing"`
	CurrentTick         int32        `json:"currentTick"`
	SqrtPriceX64        string       `json:"sqrtPriceX64"`
	InRangeLiquidity    uint64       `json:"inRangeLiquidity"`
}

type tokenFixture struct {
	Mint          string `json:"mint"`
	Decimals      uint8  `json:"decimals"`
	HookProgramID string `json:"hookProgramId"`
}

func (f tokenFixture) toTokenInfo() (domain.TokenInfo, error) {
	mint, err := solana.PublicKeyFromBase58(f.Mint)
	if err != nil {
		return domain.TokenInfo{}, fmt.Errorf("bad mint %q: %w", f.Mint, err)
	}
	info := domain.TokenInfo{Mint: mint, Decimals: f.Decimals}
	if f.HookProgramID != "" {
		hook, err := solana.PublicKeyFromBase58(f.HookProgramID)
		if err != nil {
			return domain.TokenInfo{}, fmt.Errorf("bad hook program %q: %w", f.HookProgramID, err)
		}
		info.HasHook = true
		info.HookProgramID = &hook
	}
	return info, nil
}

func (f poolFixture) toPoolState() (domain.PoolState, error) {
	poolID, err := solana.PublicKeyFromBase58(f.PoolID)
	if err != nil {
		return domain.PoolState{}, fmt.Errorf("bad poolId %q: %w", f.PoolID, err)
	}
	tokenA, err := f.TokenA.toTokenInfo()
	if err != nil {
		return domain.PoolState{}, err
	}
	tokenB, err := f.TokenB.toTokenInfo()
	if err != nil {
		return domain.PoolState{}, err
	}
	pool := domain.PoolState{
		PoolID:              poolID,
		Venue:               f.Venue,
		TokenA:              tokenA,
		TokenB:              tokenB,
		ReserveA:            f.ReserveA,
		ReserveB:            f.ReserveB,
		TotalLiquidityUnits: f.TotalLiquidityUnits,
		FeeRateBps:          f.FeeRateBps,
		TickSpacing:         f.TickSpacing,
		CurrentTick:         f.CurrentTick,
		InRangeLiquidity:    f.InRangeLiquidity,
	}
	if f.SqrtPriceX64 != "" {
		sp, err := uint256.FromDecimal(f.SqrtPriceX64)
		if err != nil {
			return domain.PoolState{}, fmt.Errorf("bad sqrtPriceX64 %q: %w", f.SqrtPriceX64, err)
		}
		pool.SqrtPriceX64 = *sp
	}
	if err := pool.Validate(); err != nil {
		return domain.PoolState{}, err
	}
	return pool, nil
}

// ParsePoolJSON decodes a single pool snapshot in the fixture format.
func ParsePoolJSON(data []byte) (domain.PoolState, error) {
	var f poolFixture
	if err := sonic.Unmarshal(data, &f); err != nil {
		return domain.PoolState{}, fmt.Errorf("parse pool snapshot: %w", err)
	}
	return f.toPoolState()
}

// LoadPoolFixture reads a JSON array of pool snapshots into a new
// MemoryPoolSource.
func LoadPoolFixture(path string) (*MemoryPoolSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pool fixture %s: %w", path, err)
	}
	var fixtures []poolFixture
	if err := sonic.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse pool fixture %s: %w", path, err)
	}

	src := NewMemoryPoolSource()
	for i, f := range fixtures {
		pool, err := f.toPoolState()
		if err != nil {
			return nil, fmt.Errorf("pool fixture entry %d: %w", i, err)
		}
		src.Upsert(pool)
	}
	log.Info().Int("pools", src.Size()).Str("path", path).Msg("loaded pool fixture")
	return src, nil
}

// List returns all stored pools in unspecified order.
func (s *MemoryPoolSource) List() []domain.PoolState {
	return s.pools.GetAll()
}
