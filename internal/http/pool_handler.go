package http

import (
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/hookswap/route-engine/internal/aggregator"
	"github.com/hookswap/route-engine/internal/domain"
	"github.com/hookswap/route-engine/internal/http/httputil"
	"github.com/hookswap/route-engine/internal/venues"
)

type PoolHandler struct {
	aggregatorSvc *aggregator.Service
}

func NewPoolHandler(aggregatorSvc *aggregator.Service) *PoolHandler {
	return &PoolHandler{aggregatorSvc: aggregatorSvc}
}

func (h *PoolHandler) Root() string {
	return "/pools"
}

func (h *PoolHandler) SetRoutes(pub *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.listPools)
	pub.GET("/:poolId", h.getPool)
	admin.POST("", h.upsertPool)
	admin.DELETE("/:poolId", h.removePool)
}

type PoolView struct {
	PoolID              string `json:"poolId"`
	Venue               string `json:"venue"`
	TokenAMint          string `json:"tokenAMint"`
	TokenBMint          string `json:"tokenBMint"`
	ReserveA            uint64 `json:"reserveA"`
	ReserveB            uint64 `json:"reserveB"`
	TotalLiquidityUnits uint64 `json:"totalLiquidityUnits"`
	FeeRateBps          uint16 `json:"feeRateBps"`
	HasHookedSide       bool   `json:"hasHookedSide"`
}

func toPoolView(pool domain.PoolState) PoolView {
	return PoolView{
		PoolID:              pool.PoolID.String(),
		Venue:               pool.Venue,
		TokenAMint:          pool.TokenA.Mint.String(),
		TokenBMint:          pool.TokenB.Mint.String(),
		ReserveA:            pool.ReserveA,
		ReserveB:            pool.ReserveB,
		TotalLiquidityUnits: pool.TotalLiquidityUnits,
		FeeRateBps:          pool.FeeRateBps,
		HasHookedSide:       pool.HasHookedSide(),
	}
}

func (h *PoolHandler) listPools(c *gin.Context) {
	pools := h.aggregatorSvc.PoolSource().List()
	views := make([]PoolView, 0, len(pools))
	for _, p := range pools {
		views = append(views, toPoolView(p))
	}
	httputil.Success(c, gin.H{"pools": views})
}

func (h *PoolHandler) getPool(c *gin.Context) {
	poolID, err := solana.PublicKeyFromBase58(c.Param("poolId"))
	if err != nil {
		httputil.BadRequest(c, "invalid poolId address")
		return
	}
	pool, err := h.aggregatorSvc.PoolSource().FetchPoolState(c.Request.Context(), poolID)
	if err != nil {
		httputil.NotFound(c, "pool not found: "+poolID.String())
		return
	}
	httputil.Success(c, toPoolView(pool))
}

// upsertPool accepts a pool snapshot in the fixture JSON format.
func (h *PoolHandler) upsertPool(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		httputil.BadRequest(c, "cannot read request body")
		return
	}
	pool, err := venues.ParsePoolJSON(body)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	h.aggregatorSvc.PoolSource().Upsert(pool)
	httputil.Success(c, toPoolView(pool))
}

func (h *PoolHandler) removePool(c *gin.Context) {
	poolID, err := solana.PublicKeyFromBase58(c.Param("poolId"))
	if err != nil {
		httputil.BadRequest(c, "invalid poolId address")
		return
	}
	if _, err := h.aggregatorSvc.PoolSource().FetchPoolState(c.Request.Context(), poolID); err != nil {
		httputil.NotFound(c, "pool not found: "+poolID.String())
		return
	}
	h.aggregatorSvc.PoolSource().Remove(poolID)
	httputil.Success(c, gin.H{"poolId": poolID.String()})
}
