package domain

import "github.com/gagliardetto/solana-go"

// Route is one candidate path through a single venue for a given pair.
// Pools are held by value (copied, not aliased) so aggregation stays
// side-effect free. Multi-hop routing is not implemented; Pools always has
// length 1.
type Route struct {
	VenueName  string           `json:"venueName"`
	InputMint  solana.PublicKey `json:"inputMint"`
	OutputMint solana.PublicKey `json:"outputMint"`
	AToB       bool             `json:"aToB"`
	Pools      []PoolState      `json:"pools"`
	Quote      SwapQuote        `json:"quote"`

	// IsRecommended is true iff no hook fee was applied on this route.
	IsRecommended bool `json:"isRecommended"`

	// BlockingIssues non-empty means the route must not be executed.
	BlockingIssues []string `json:"blockingIssues"`
}

// RouteValidation is the outcome of re-validating every hook a route touches.
type RouteValidation struct {
	IsValid        bool     `json:"isValid"`
	Warnings       []string `json:"warnings"`
	BlockingIssues []string `json:"blockingIssues"`
}

// StepKind tags one entry of an assembled instruction sequence.
type StepKind uint8

const (
	StepPreHook StepKind = iota
	StepSwap
	StepPostHook
)

func (k StepKind) String() string {
	switch k {
	case StepPreHook:
		return "pre-hook"
	case StepSwap:
		return "swap"
	case StepPostHook:
		return "post-hook"
	default:
		return "unknown"
	}
}

// InstructionStep is one opaque entry of the ordered sequence a route
// executes: optional pre-hook, the swap itself, optional post-hook. The
// signing collaborator turns steps into serialized instructions; the core
// only guarantees the ordering.
type InstructionStep struct {
	Kind      StepKind         `json:"kind"`
	Venue     string           `json:"venue"`
	ProgramID solana.PublicKey `json:"programId"`
	Pool      solana.PublicKey `json:"pool"`
	Signer    solana.PublicKey `json:"signer"`
}
