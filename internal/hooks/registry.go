// Package hooks maintains the whitelist of Token-2022 transfer-hook
// programs and their risk posture. The registry asserts trust, it does not
// verify hook programs cryptographically: an entry means "reviewed and
// listed", nothing more.
package hooks

import (
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
)

// RiskLevel classifies a whitelisted hook program.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// newHookAge is the window below which validation attaches an early-stage
// warning to an otherwise valid hook.
const newHookAge = 30 * 24 * time.Hour

// WhitelistedHook is one registry entry, keyed by ProgramID.
type WhitelistedHook struct {
	ProgramID       solana.PublicKey `json:"programId"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Version         string           `json:"version"`
	Author          string           `json:"author"`
	Verified        bool             `json:"verified"`
	CreatedAt       time.Time        `json:"createdAt"`
	SupportedVenues []string         `json:"supportedVenues"`
	RiskLevel       RiskLevel        `json:"riskLevel"`
}

// SupportsVenue reports whether the hook lists the venue as compatible.
func (h *WhitelistedHook) SupportsVenue(venue string) bool {
	for _, v := range h.SupportedVenues {
		if v == venue {
			return true
		}
	}
	return false
}

// ValidationResult is the outcome of checking a hook program against the
// whitelist. "Not whitelisted" is an expected outcome, not an error: the
// registry never fails for an unknown program.
type ValidationResult struct {
	IsValid  bool             `json:"isValid"`
	Hook     *WhitelistedHook `json:"hook,omitempty"`
	Reason   string           `json:"reason,omitempty"`
	Warnings []string         `json:"warnings"`
}

// Stats summarizes registry contents for the admin surface.
type Stats struct {
	Total    int               `json:"total"`
	Verified int               `json:"verified"`
	ByRisk   map[RiskLevel]int `json:"byRisk"`
	ByVenue  map[string]int    `json:"byVenue"`
}

// Registry is the authoritative in-memory hook whitelist. Reads are
// lock-shared and safe from any goroutine; the admin mutators take the
// write lock (single-writer, many-reader discipline). There is no implicit
// expiry: entries live until removed.
type Registry struct {
	mu    sync.RWMutex
	hooks map[solana.PublicKey]WhitelistedHook

	// now is swappable so the age warning is testable.
	now func() time.Time
}

// NewRegistry seeds a registry from a static list of entries.
func NewRegistry(seed []WhitelistedHook) *Registry {
	r := &Registry{
		hooks: make(map[solana.PublicKey]WhitelistedHook, len(seed)),
		now:   time.Now,
	}
	for _, h := range seed {
		r.hooks[h.ProgramID] = h
	}
	log.Info().Int("hooks", len(seed)).Msg("hook registry seeded")
	return r
}

// Validate checks programID against the whitelist for an optional target
// venue (empty string skips the compatibility check). Warnings on a valid
// hook are ordered: venue compatibility, risk level, age.
func (r *Registry) Validate(programID solana.PublicKey, targetVenue string) ValidationResult {
	r.mu.RLock()
	hook, ok := r.hooks[programID]
	r.mu.RUnlock()

	if !ok {
		return ValidationResult{
			IsValid:  false,
			Reason:   "hook program is not in the whitelist",
			Warnings: []string{},
		}
	}

	if !hook.Verified {
		return ValidationResult{
			IsValid:  false,
			Hook:     &hook,
			Reason:   "hook program is not verified",
			Warnings: []string{},
		}
	}

	warnings := []string{}
	if targetVenue != "" && !hook.SupportsVenue(targetVenue) {
		warnings = append(warnings, "hook may not be fully compatible with "+targetVenue)
	}
	switch hook.RiskLevel {
	case RiskHigh:
		warnings = append(warnings, "this hook has a HIGH risk level - use with caution")
	case RiskMedium:
		warnings = append(warnings, "this hook has a MEDIUM risk level - review carefully")
	}
	if r.now().Sub(hook.CreatedAt) < newHookAge {
		warnings = append(warnings, "this is a relatively new hook program - exercise extra caution")
	}

	return ValidationResult{IsValid: true, Hook: &hook, Warnings: warnings}
}

// Hook returns the entry for programID, if present.
func (r *Registry) Hook(programID solana.PublicKey) (WhitelistedHook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hooks[programID]
	return h, ok
}

// All returns a copy of every entry.
func (r *Registry) All() []WhitelistedHook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]WhitelistedHook, 0, len(r.hooks))
	for _, h := range r.hooks {
		out = append(out, h)
	}
	return out
}

// HooksForVenue returns all entries listing the venue as supported.
func (r *Registry) HooksForVenue(venue string) []WhitelistedHook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []WhitelistedHook{}
	for _, h := range r.hooks {
		if h.SupportsVenue(venue) {
			out = append(out, h)
		}
	}
	return out
}

// HooksByRisk returns all entries at the given risk level.
func (r *Registry) HooksByRisk(level RiskLevel) []WhitelistedHook {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []WhitelistedHook{}
	for _, h := range r.hooks {
		if h.RiskLevel == level {
			out = append(out, h)
		}
	}
	return out
}

// IsCompatibleWithVenue is an existence + membership check; false for
// unknown programs.
func (r *Registry) IsCompatibleWithVenue(programID solana.PublicKey, venue string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hooks[programID]
	return ok && h.SupportsVenue(venue)
}

// Add inserts or replaces an entry. Trust is asserted, not verified: no
// on-chain validation of the hook program is performed.
func (r *Registry) Add(hook WhitelistedHook) {
	r.mu.Lock()
	r.hooks[hook.ProgramID] = hook
	r.mu.Unlock()
	log.Info().Str("hook", hook.Name).Str("programId", hook.ProgramID.String()).Msg("hook whitelisted")
}

// Remove deletes an entry, reporting whether it existed.
func (r *Registry) Remove(programID solana.PublicKey) bool {
	r.mu.Lock()
	_, ok := r.hooks[programID]
	delete(r.hooks, programID)
	r.mu.Unlock()
	if ok {
		log.Info().Str("programId", programID.String()).Msg("hook removed from whitelist")
	}
	return ok
}

// SetVerified flips the verification flag, reporting whether the entry exists.
func (r *Registry) SetVerified(programID solana.PublicKey, verified bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.hooks[programID]
	if !ok {
		return false
	}
	h.Verified = verified
	r.hooks[programID] = h
	log.Info().Str("programId", programID.String()).Bool("verified", verified).Msg("hook verification updated")
	return true
}

// GetStats counts entries by verification, risk level and venue.
func (r *Registry) GetStats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{
		Total:   len(r.hooks),
		ByRisk:  map[RiskLevel]int{RiskLow: 0, RiskMedium: 0, RiskHigh: 0},
		ByVenue: map[string]int{},
	}
	for _, h := range r.hooks {
		if h.Verified {
			s.Verified++
		}
		s.ByRisk[h.RiskLevel]++
		for _, v := range h.SupportedVenues {
			s.ByVenue[v]++
		}
	}
	return s
}

// Size returns the number of entries.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks)
}
