package http

import (
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gin-gonic/gin"

	"github.com/hookswap/route-engine/internal/aggregator"
	"github.com/hookswap/route-engine/internal/hooks"
	"github.com/hookswap/route-engine/internal/http/httputil"
	"github.com/hookswap/route-engine/internal/metrics"
)

type HooksHandler struct {
	aggregatorSvc *aggregator.Service
}

func NewHooksHandler(aggregatorSvc *aggregator.Service) *HooksHandler {
	return &HooksHandler{aggregatorSvc: aggregatorSvc}
}

func (h *HooksHandler) Root() string {
	return "/hooks"
}

func (h *HooksHandler) SetRoutes(pub *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.listHooks)
	pub.GET("/stats", h.getStats)
	pub.GET("/validate", h.validateHook)
	admin.POST("", h.addHook)
	admin.DELETE("/:programId", h.removeHook)
	admin.POST("/:programId/verify", h.setVerified)
}

type HookView struct {
	ProgramID       string    `json:"programId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Version         string    `json:"version"`
	Author          string    `json:"author"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"createdAt"`
	SupportedVenues []string  `json:"supportedVenues"`
	RiskLevel       string    `json:"riskLevel"`
}

func toHookView(hook hooks.WhitelistedHook) HookView {
	return HookView{
		ProgramID:       hook.ProgramID.String(),
		Name:            hook.Name,
		Description:     hook.Description,
		Version:         hook.Version,
		Author:          hook.Author,
		Verified:        hook.Verified,
		CreatedAt:       hook.CreatedAt,
		SupportedVenues: hook.SupportedVenues,
		RiskLevel:       string(hook.RiskLevel),
	}
}

// listHooks returns the whitelist, optionally filtered by venue or risk
// level.
func (h *HooksHandler) listHooks(c *gin.Context) {
	registry := h.aggregatorSvc.Registry()

	var list []hooks.WhitelistedHook
	switch {
	case c.Query("venue") != "":
		list = registry.HooksForVenue(c.Query("venue"))
	case c.Query("risk") != "":
		list = registry.HooksByRisk(hooks.RiskLevel(c.Query("risk")))
	default:
		list = registry.All()
	}

	views := make([]HookView, 0, len(list))
	for _, hook := range list {
		views = append(views, toHookView(hook))
	}
	httputil.Success(c, gin.H{"hooks": views})
}

func (h *HooksHandler) getStats(c *gin.Context) {
	httputil.Success(c, h.aggregatorSvc.Registry().GetStats())
}

func (h *HooksHandler) validateHook(c *gin.Context) {
	programID, err := solana.PublicKeyFromBase58(c.Query("programId"))
	if err != nil {
		httputil.BadRequest(c, "invalid programId address")
		return
	}
	venue := c.Query("venue")

	result := h.aggregatorSvc.Registry().Validate(programID, venue)
	resp := gin.H{
		"isValid":  result.IsValid,
		"warnings": result.Warnings,
	}
	if result.Reason != "" {
		resp["reason"] = result.Reason
	}
	if result.Hook != nil {
		resp["hook"] = toHookView(*result.Hook)
	}
	httputil.Success(c, resp)
}

type AddHookRequest struct {
	ProgramID       string   `json:"programId" binding:"required"`
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Version         string   `json:"version"`
	Author          string   `json:"author"`
	Verified        bool     `json:"verified"`
	SupportedVenues []string `json:"supportedVenues" binding:"required"`
	RiskLevel       string   `json:"riskLevel" binding:"required"`
}

func (h *HooksHandler) addHook(c *gin.Context) {
	var req AddHookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	programID, err := solana.PublicKeyFromBase58(req.ProgramID)
	if err != nil {
		httputil.BadRequest(c, "invalid programId address")
		return
	}
	risk := hooks.RiskLevel(req.RiskLevel)
	switch risk {
	case hooks.RiskLow, hooks.RiskMedium, hooks.RiskHigh:
	default:
		httputil.BadRequest(c, "invalid riskLevel: must be LOW, MEDIUM or HIGH")
		return
	}

	registry := h.aggregatorSvc.Registry()
	registry.Add(hooks.WhitelistedHook{
		ProgramID:       programID,
		Name:            req.Name,
		Description:     req.Description,
		Version:         req.Version,
		Author:          req.Author,
		Verified:        req.Verified,
		CreatedAt:       time.Now(),
		SupportedVenues: req.SupportedVenues,
		RiskLevel:       risk,
	})
	metrics.RegistrySize.Set(float64(registry.Size()))
	httputil.Success(c, gin.H{"programId": programID.String()})
}

func (h *HooksHandler) removeHook(c *gin.Context) {
	programID, err := solana.PublicKeyFromBase58(c.Param("programId"))
	if err != nil {
		httputil.BadRequest(c, "invalid programId address")
		return
	}

	registry := h.aggregatorSvc.Registry()
	if !registry.Remove(programID) {
		httputil.NotFound(c, "hook not found: "+programID.String())
		return
	}
	metrics.RegistrySize.Set(float64(registry.Size()))
	httputil.Success(c, gin.H{"programId": programID.String()})
}

type VerifyHookRequest struct {
	Verified *bool `json:"verified" binding:"required"`
}

func (h *HooksHandler) setVerified(c *gin.Context) {
	programID, err := solana.PublicKeyFromBase58(c.Param("programId"))
	if err != nil {
		httputil.BadRequest(c, "invalid programId address")
		return
	}
	var req VerifyHookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if !h.aggregatorSvc.Registry().SetVerified(programID, *req.Verified) {
		httputil.NotFound(c, "hook not found: "+programID.String())
		return
	}
	httputil.Success(c, gin.H{"programId": programID.String(), "verified": *req.Verified})
}
