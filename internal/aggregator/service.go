package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hookswap/route-engine/internal/common"
	"github.com/hookswap/route-engine/internal/config"
	"github.com/hookswap/route-engine/internal/domain"
	"github.com/hookswap/route-engine/internal/hooks"
	"github.com/hookswap/route-engine/internal/metrics"
	"github.com/hookswap/route-engine/internal/pricing"
	"github.com/hookswap/route-engine/internal/venues"
)

const AGGREGATOR_SERVICE = "aggregator-service"

var (
	RaydiumProgramID = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	OrcaProgramID    = solana.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc")
	MeteoraProgramID = solana.MustPublicKeyFromBase58("Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB")
)

// Service owns the venue adapters and the hook registry, and answers
// routing queries by fanning a pair out to every active venue.
type Service struct {
	container.BaseDIInstance
	logger *common.ServiceLogger

	mu       sync.RWMutex
	adapters []venues.Adapter
	active   map[string]bool

	registry *hooks.Registry
	source   *venues.MemoryPoolSource
	timeout  time.Duration

	config *config.AggregatorConfig
}

func (svc *Service) ID() string {
	return AGGREGATOR_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.logger = common.NewServiceLogger(svc)
	svc.config = c.GetConfig(config.AGGREGATOR_CONFIG_KEY).(*config.AggregatorConfig)
	svc.timeout = time.Duration(svc.config.VenueTimeoutMs) * time.Millisecond

	seed := hooks.DefaultHooks()
	if svc.config.HookSeedFile != "" {
		loaded, err := hooks.LoadSeedFile(svc.config.HookSeedFile)
		if err != nil {
			return err
		}
		seed = loaded
	}
	svc.registry = hooks.NewRegistry(seed)
	metrics.RegistrySize.Set(float64(svc.registry.Size()))

	svc.source = venues.NewMemoryPoolSource()
	if svc.config.PoolFixtureFile != "" {
		loaded, err := venues.LoadPoolFixture(svc.config.PoolFixtureFile)
		if err != nil {
			return err
		}
		svc.source = loaded
	}

	var quoteSource venues.PoolSource = svc.source
	if svc.config.VenueRPS > 0 {
		quoteSource = venues.NewThrottledSource(svc.source, float64(svc.config.VenueRPS), svc.config.VenueBurst)
	}

	svc.adapters = []venues.Adapter{
		venues.NewConstantProductAdapter(domain.VenueRaydium, RaydiumProgramID, quoteSource, svc.registry),
		venues.NewWhirlpoolAdapter(domain.VenueOrca, OrcaProgramID, quoteSource, svc.registry),
		venues.NewConstantProductAdapter(domain.VenueMeteora, MeteoraProgramID, quoteSource, svc.registry),
	}
	svc.active = make(map[string]bool, len(svc.adapters))
	for _, a := range svc.adapters {
		svc.active[a.Name()] = true
	}

	return nil
}

func (svc *Service) Start() error {
	svc.logger.Info().
		Int("venues", len(svc.adapters)).
		Int("hooks", svc.registry.Size()).
		Msg("aggregator ready")
	return nil
}

func (svc *Service) Stop() error {
	return nil
}

// Registry exposes the shared hook whitelist.
func (svc *Service) Registry() *hooks.Registry {
	return svc.registry
}

// PoolSource exposes the unthrottled pool store for admin and quote
// endpoints.
func (svc *Service) PoolSource() *venues.MemoryPoolSource {
	return svc.source
}

// SetVenueActive toggles a venue in or out of aggregation.
func (svc *Service) SetVenueActive(name string, active bool) error {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	if _, ok := svc.active[name]; !ok {
		return common.ErrNotFound
	}
	svc.active[name] = active
	svc.logger.Info().Str("venue", name).Bool("active", active).Msg("venue toggled")
	return nil
}

// VenueStats summarizes the adapter fleet: totals, active count, how many
// venues have at least one compatible whitelisted hook, and per-venue detail.
type VenueStats struct {
	TotalVenues       int                    `json:"totalVenues"`
	ActiveVenues      int                    `json:"activeVenues"`
	HookCapableVenues int                    `json:"hookCapableVenues"`
	Venues            map[string]VenueDetail `json:"venues"`
}

// VenueDetail is one venue's entry in VenueStats.
type VenueDetail struct {
	Active          bool `json:"active"`
	CompatibleHooks int  `json:"compatibleHooks"`
}

// VenueStats reports the fleet summary for the stats endpoint.
func (svc *Service) VenueStats() VenueStats {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	stats := VenueStats{
		TotalVenues: len(svc.adapters),
		Venues:      make(map[string]VenueDetail, len(svc.adapters)),
	}
	for _, a := range svc.adapters {
		active := svc.active[a.Name()]
		compatible := len(svc.registry.HooksForVenue(a.Name()))
		if active {
			stats.ActiveVenues++
		}
		if compatible > 0 {
			stats.HookCapableVenues++
		}
		stats.Venues[a.Name()] = VenueDetail{
			Active:          active,
			CompatibleHooks: compatible,
		}
	}
	return stats
}

func (svc *Service) activeAdapters() []venues.Adapter {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	out := make([]venues.Adapter, 0, len(svc.adapters))
	for _, a := range svc.adapters {
		if svc.active[a.Name()] {
			out = append(out, a)
		}
	}
	return out
}

// FindBestRoutes queries every active venue for the pair concurrently and
// returns the candidate routes ranked hook-safe first, then by ascending
// total fee. Venues that fail or time out are skipped; an empty result is
// a valid outcome, not an error.
func (svc *Service) FindBestRoutes(ctx context.Context, tokenA, tokenB solana.PublicKey, amountIn uint64) []domain.Route {
	adapters := svc.activeAdapters()
	results := make([]*domain.Route, len(adapters))

	var wg sync.WaitGroup
	for i, adapter := range adapters {
		wg.Add(1)
		go func(slot int, a venues.Adapter) {
			defer wg.Done()
			route, err := svc.queryVenue(ctx, a, tokenA, tokenB, amountIn)
			if err != nil {
				metrics.VenueFailures.WithLabelValues(a.Name(), failureReason(err)).Inc()
				svc.logger.Warn().
					Err(err).
					Str("venue", a.Name()).
					Str("tokenA", tokenA.String()).
					Str("tokenB", tokenB.String()).
					Msg("venue skipped")
				return
			}
			results[slot] = route
		}(i, adapter)
	}
	wg.Wait()

	// Compact in venue-query order so the stable sort's tie-break is
	// deterministic.
	routes := make([]domain.Route, 0, len(results))
	for _, r := range results {
		if r != nil {
			routes = append(routes, *r)
		}
	}

	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].IsRecommended != routes[j].IsRecommended {
			return routes[i].IsRecommended
		}
		return routes[i].Quote.TotalFee() < routes[j].Quote.TotalFee()
	})

	metrics.RoutesReturned.Observe(float64(len(routes)))
	return routes
}

func (svc *Service) queryVenue(ctx context.Context, a venues.Adapter, tokenA, tokenB solana.PublicKey, amountIn uint64) (*domain.Route, error) {
	venueCtx, cancel := context.WithTimeout(ctx, svc.timeout)
	defer cancel()

	started := time.Now()
	defer func() {
		metrics.VenueQuoteDuration.WithLabelValues(a.Name()).Observe(time.Since(started).Seconds())
	}()

	pool, err := a.ResolvePool(venueCtx, tokenA, tokenB)
	if err != nil {
		return nil, err
	}
	aToB := pool.TokenA.Mint.Equals(tokenA)

	quote, err := a.GetQuote(venueCtx, pool.PoolID, amountIn, aToB)
	if err != nil {
		return nil, err
	}
	metrics.PriceImpact.
		WithLabelValues(string(pricing.GetPriceImpactSeverity(quote.PriceImpactBps))).
		Observe(float64(quote.PriceImpactBps))
	if w := pricing.GetPriceImpactWarning(quote.PriceImpactBps); w != "" {
		quote.Warnings = append(quote.Warnings, w)
	}

	route := domain.Route{
		VenueName:      a.Name(),
		InputMint:      tokenA,
		OutputMint:     tokenB,
		AToB:           aToB,
		Pools:          []domain.PoolState{pool},
		Quote:          quote,
		IsRecommended:  quote.TransferHookFee == 0,
		BlockingIssues: []string{},
	}
	if validation := svc.ValidateRoute(route); !validation.IsValid {
		route.BlockingIssues = validation.BlockingIssues
	}
	return &route, nil
}

// ValidateRoute re-validates every hook referenced by the route's pools.
// Registry rejections become blocking issues; registry warnings pass
// through as warnings.
func (svc *Service) ValidateRoute(route domain.Route) domain.RouteValidation {
	validation := domain.RouteValidation{
		IsValid:        true,
		Warnings:       []string{},
		BlockingIssues: []string{},
	}
	for _, pool := range route.Pools {
		for _, token := range []domain.TokenInfo{pool.TokenA, pool.TokenB} {
			if !token.HasHook || token.HookProgramID == nil {
				continue
			}
			result := svc.registry.Validate(*token.HookProgramID, route.VenueName)
			if !result.IsValid {
				metrics.HookValidations.WithLabelValues("rejected").Inc()
				validation.BlockingIssues = append(validation.BlockingIssues, result.Reason)
				continue
			}
			metrics.HookValidations.WithLabelValues("accepted").Inc()
			validation.Warnings = append(validation.Warnings, result.Warnings...)
		}
	}
	validation.IsValid = len(validation.BlockingIssues) == 0
	return validation
}

// InstructionPlan orders the execution steps for a route via its venue's
// adapter. Routes with blocking issues are refused outright.
func (svc *Service) InstructionPlan(route domain.Route, signer solana.PublicKey) ([]domain.InstructionStep, error) {
	if validation := svc.ValidateRoute(route); !validation.IsValid {
		return nil, fmt.Errorf("%w: route blocked: %s", common.ErrInvalidArgument, strings.Join(validation.BlockingIssues, "; "))
	}
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	for _, a := range svc.adapters {
		if a.Name() == route.VenueName {
			return a.BuildRouteInstructions(route, signer)
		}
	}
	return nil, fmt.Errorf("%w: venue %s", common.ErrNotFound, route.VenueName)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		return "timeout"
	case errors.Is(err, common.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}
