package http

import (
	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/hookswap/route-engine/internal/aggregator"
	"github.com/hookswap/route-engine/internal/domain"
	"github.com/hookswap/route-engine/internal/http/httputil"
)

type RouteHandler struct {
	aggregatorSvc *aggregator.Service
}

func NewRouteHandler(aggregatorSvc *aggregator.Service) *RouteHandler {
	return &RouteHandler{aggregatorSvc: aggregatorSvc}
}

func (h *RouteHandler) Root() string {
	return "/routes"
}

func (h *RouteHandler) SetRoutes(pub *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.findRoutes)
	pub.GET("/venues", h.venueStats)
	pub.POST("/instructions", h.buildInstructions)
	admin.POST("/venues/:venue", h.setVenueActive)
}

type FindRoutesRequest struct {
	InputMint  string `form:"inputMint" binding:"required"`
	OutputMint string `form:"outputMint" binding:"required"`
	AmountIn   uint64 `form:"amountIn" binding:"required"`
}

type RouteSummary struct {
	Venue           string   `json:"venue"`
	PoolID          string   `json:"poolId"`
	AmountIn        uint64   `json:"amountIn"`
	AmountOut       uint64   `json:"amountOut"`
	FeeAmount       uint64   `json:"feeAmount"`
	TransferHookFee uint64   `json:"transferHookFee,omitempty"`
	PriceImpactBps  uint64   `json:"priceImpactBps"`
	IsRecommended   bool     `json:"isRecommended"`
	Warnings        []string `json:"warnings"`
	BlockingIssues  []string `json:"blockingIssues"`
}

// findRoutes returns the ranked candidate routes for a pair. An empty
// list means no venue could serve the pair, which is a normal response,
// not an error.
func (h *RouteHandler) findRoutes(c *gin.Context) {
	var req FindRoutesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.BadRequest(c, "invalid query parameters: "+err.Error())
		return
	}
	inputMint, err := solana.PublicKeyFromBase58(req.InputMint)
	if err != nil {
		httputil.BadRequest(c, "invalid inputMint address")
		return
	}
	outputMint, err := solana.PublicKeyFromBase58(req.OutputMint)
	if err != nil {
		httputil.BadRequest(c, "invalid outputMint address")
		return
	}

	routes := h.aggregatorSvc.FindBestRoutes(c.Request.Context(), inputMint, outputMint, req.AmountIn)

	summaries := make([]RouteSummary, 0, len(routes))
	for _, r := range routes {
		summaries = append(summaries, RouteSummary{
			Venue:           r.VenueName,
			PoolID:          r.Pools[0].PoolID.String(),
			AmountIn:        r.Quote.AmountIn,
			AmountOut:       r.Quote.AmountOut,
			FeeAmount:       r.Quote.FeeAmount,
			TransferHookFee: r.Quote.TransferHookFee,
			PriceImpactBps:  r.Quote.PriceImpactBps,
			IsRecommended:   r.IsRecommended,
			Warnings:        r.Quote.Warnings,
			BlockingIssues:  r.BlockingIssues,
		})
	}
	httputil.Success(c, gin.H{"routes": summaries})
}

func (h *RouteHandler) venueStats(c *gin.Context) {
	httputil.Success(c, h.aggregatorSvc.VenueStats())
}

type InstructionsRequest struct {
	Venue  string `json:"venue" binding:"required"`
	PoolID string `json:"poolId" binding:"required"`
	AToB   *bool  `json:"aToB" binding:"required"`
	Signer string `json:"signer" binding:"required"`
}

type InstructionStepView struct {
	Kind      string `json:"kind"`
	Venue     string `json:"venue"`
	ProgramID string `json:"programId"`
	Pool      string `json:"pool"`
	Signer    string `json:"signer"`
}

func (h *RouteHandler) buildInstructions(c *gin.Context) {
	var req InstructionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	signer, err := solana.PublicKeyFromBase58(req.Signer)
	if err != nil {
		httputil.BadRequest(c, "invalid signer address")
		return
	}
	poolID, err := solana.PublicKeyFromBase58(req.PoolID)
	if err != nil {
		httputil.BadRequest(c, "invalid poolId address")
		return
	}

	pool, err := h.aggregatorSvc.PoolSource().FetchPoolState(c.Request.Context(), poolID)
	if err != nil {
		httputil.NotFound(c, "pool not found: "+req.PoolID)
		return
	}
	if pool.Venue != req.Venue {
		httputil.BadRequest(c, "pool does not belong to venue "+req.Venue)
		return
	}

	route := domain.Route{
		VenueName: req.Venue,
		AToB:      *req.AToB,
		Pools:     []domain.PoolState{pool},
	}
	steps, err := h.aggregatorSvc.InstructionPlan(route, signer)
	if err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	views := make([]InstructionStepView, 0, len(steps))
	for _, s := range steps {
		views = append(views, InstructionStepView{
			Kind:      s.Kind.String(),
			Venue:     s.Venue,
			ProgramID: s.ProgramID.String(),
			Pool:      s.Pool.String(),
			Signer:    s.Signer.String(),
		})
	}
	httputil.Success(c, gin.H{"steps": views})
}

type VenueToggleRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *RouteHandler) setVenueActive(c *gin.Context) {
	var req VenueToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	venue := c.Param("venue")
	if err := h.aggregatorSvc.SetVenueActive(venue, *req.Active); err != nil {
		httputil.NotFound(c, "unknown venue: "+venue)
		return
	}
	httputil.Success(c, gin.H{"venue": venue, "active": *req.Active})
}
