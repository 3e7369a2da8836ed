package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/hookswap/route-engine/internal/aggregator"
	"github.com/hookswap/route-engine/internal/http/httputil"
	"github.com/hookswap/route-engine/internal/metrics"
	"github.com/hookswap/route-engine/internal/overlay"
	"github.com/hookswap/route-engine/internal/pricing"
)

type QuoteHandler struct {
	aggregatorSvc *aggregator.Service
}

func NewQuoteHandler(aggregatorSvc *aggregator.Service) *QuoteHandler {
	return &QuoteHandler{aggregatorSvc: aggregatorSvc}
}

func (h *QuoteHandler) Root() string {
	return "/quote"
}

func (h *QuoteHandler) SetRoutes(pub *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("/swap", h.getSwapQuote)
	pub.GET("/liquidity", h.getLiquidityQuote)
	pub.GET("/withdrawal", h.getWithdrawalQuote)
	pub.GET("/price", h.getPoolPrice)
}

// SwapQuoteRequest asks for an exact-in quote against one specific pool.
type SwapQuoteRequest struct {
	PoolID string `form:"poolId" binding:"required"`
	// AmountIn in smallest token units.
	AmountIn string `form:"amountIn" binding:"required"`
	AToB     *bool  `form:"aToB" binding:"required"`
	// SlippageBps defaults to 50 (0.5%).
	SlippageBps uint16 `form:"slippageBps"`
}

type SwapQuoteResponse struct {
	PoolID              string   `json:"poolId"`
	Venue               string   `json:"venue"`
	AmountIn            uint64   `json:"amountIn"`
	AmountOut           uint64   `json:"amountOut"`
	MinAmountOut        uint64   `json:"minAmountOut"`
	FeeAmount           uint64   `json:"feeAmount"`
	TransferHookFee     uint64   `json:"transferHookFee,omitempty"`
	PriceImpactBps      uint64   `json:"priceImpactBps"`
	PriceImpactSeverity string   `json:"priceImpactSeverity"`
	PriceImpactWarning  string   `json:"priceImpactWarning,omitempty"`
	Warnings            []string `json:"warnings"`
}

func (h *QuoteHandler) getSwapQuote(c *gin.Context) {
	started := time.Now()
	var req SwapQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	amountIn, err := strconv.ParseUint(req.AmountIn, 10, 64)
	if err != nil || amountIn == 0 {
		httputil.BadRequest(c, "invalid amountIn: must be a positive integer")
		return
	}
	slippageBps := req.SlippageBps
	if slippageBps == 0 {
		slippageBps = 50
	}

	poolID, err := solana.PublicKeyFromBase58(req.PoolID)
	if err != nil {
		httputil.BadRequest(c, "invalid poolId address")
		return
	}

	pool, err := h.aggregatorSvc.PoolSource().FetchPoolState(c.Request.Context(), poolID)
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("swap", "not_found").Inc()
		httputil.NotFound(c, "pool not found: "+req.PoolID)
		return
	}

	raw, err := pricing.QuoteSwapForPool(pool, amountIn, *req.AToB)
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("swap", "invalid").Inc()
		httputil.BadRequest(c, err.Error())
		return
	}
	source, dest := pool.SideTokens(*req.AToB)
	quote := overlay.ApplyHookAdjustment(raw, source, dest, pool.Venue, h.aggregatorSvc.Registry())

	minOut, err := pricing.MinAmountOut(quote.AmountOut, slippageBps)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	severity := pricing.GetPriceImpactSeverity(quote.PriceImpactBps)
	metrics.QuoteRequests.WithLabelValues("swap", "ok").Inc()
	metrics.QuoteDuration.WithLabelValues("swap").Observe(time.Since(started).Seconds())
	metrics.PriceImpact.WithLabelValues(string(severity)).Observe(float64(quote.PriceImpactBps))

	httputil.Success(c, SwapQuoteResponse{
		PoolID:              pool.PoolID.String(),
		Venue:               pool.Venue,
		AmountIn:            quote.AmountIn,
		AmountOut:           quote.AmountOut,
		MinAmountOut:        minOut,
		FeeAmount:           quote.FeeAmount,
		TransferHookFee:     quote.TransferHookFee,
		PriceImpactBps:      quote.PriceImpactBps,
		PriceImpactSeverity: string(severity),
		PriceImpactWarning:  pricing.GetPriceImpactWarning(quote.PriceImpactBps),
		Warnings:            quote.Warnings,
	})
}

type LiquidityQuoteRequest struct {
	PoolID  string `form:"poolId" binding:"required"`
	AmountA string `form:"amountA" binding:"required"`
	AmountB string `form:"amountB" binding:"required"`
}

func (h *QuoteHandler) getLiquidityQuote(c *gin.Context) {
	started := time.Now()
	var req LiquidityQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	amountA, errA := strconv.ParseUint(req.AmountA, 10, 64)
	amountB, errB := strconv.ParseUint(req.AmountB, 10, 64)
	if errA != nil || errB != nil {
		httputil.BadRequest(c, "invalid deposit amounts: must be non-negative integers")
		return
	}

	poolID, err := solana.PublicKeyFromBase58(req.PoolID)
	if err != nil {
		httputil.BadRequest(c, "invalid poolId address")
		return
	}

	pool, err := h.aggregatorSvc.PoolSource().FetchPoolState(c.Request.Context(), poolID)
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("liquidity", "not_found").Inc()
		httputil.NotFound(c, "pool not found: "+req.PoolID)
		return
	}

	quote, err := pricing.QuoteLiquidity(pool, amountA, amountB)
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("liquidity", "invalid").Inc()
		httputil.BadRequest(c, err.Error())
		return
	}

	metrics.QuoteRequests.WithLabelValues("liquidity", "ok").Inc()
	metrics.QuoteDuration.WithLabelValues("liquidity").Observe(time.Since(started).Seconds())
	httputil.Success(c, quote)
}

type WithdrawalQuoteRequest struct {
	PoolID   string `form:"poolId" binding:"required"`
	LpTokens string `form:"lpTokens" binding:"required"`
}

func (h *QuoteHandler) getWithdrawalQuote(c *gin.Context) {
	started := time.Now()
	var req WithdrawalQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	lpTokens, err := strconv.ParseUint(req.LpTokens, 10, 64)
	if err != nil {
		httputil.BadRequest(c, "invalid lpTokens: must be a non-negative integer")
		return
	}

	poolID, err := solana.PublicKeyFromBase58(req.PoolID)
	if err != nil {
		httputil.BadRequest(c, "invalid poolId address")
		return
	}

	pool, err := h.aggregatorSvc.PoolSource().FetchPoolState(c.Request.Context(), poolID)
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("withdrawal", "not_found").Inc()
		httputil.NotFound(c, "pool not found: "+req.PoolID)
		return
	}

	quote, err := pricing.QuoteWithdrawal(pool, lpTokens)
	if err != nil {
		metrics.QuoteRequests.WithLabelValues("withdrawal", "invalid").Inc()
		httputil.BadRequest(c, err.Error())
		return
	}

	metrics.QuoteRequests.WithLabelValues("withdrawal", "ok").Inc()
	metrics.QuoteDuration.WithLabelValues("withdrawal").Observe(time.Since(started).Seconds())
	httputil.Success(c, quote)
}

func (h *QuoteHandler) getPoolPrice(c *gin.Context) {
	poolID, err := solana.PublicKeyFromBase58(c.Query("poolId"))
	if err != nil {
		httputil.BadRequest(c, "invalid poolId address")
		return
	}

	pool, err := h.aggregatorSvc.PoolSource().FetchPoolState(c.Request.Context(), poolID)
	if err != nil {
		httputil.NotFound(c, "pool not found: "+poolID.String())
		return
	}

	price, err := pricing.PoolPrice(pool)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	httputil.Success(c, gin.H{
		"poolId": pool.PoolID.String(),
		"price":  price,
		"pair":   fmt.Sprintf("%s/%s", pool.TokenA.Mint, pool.TokenB.Mint),
	})
}
