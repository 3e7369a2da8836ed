package domain

// SwapQuote is the result of pricing a swap. The pricing engine fills the
// raw fields; TransferHookFee and Warnings are attached by the hook fee
// overlay and stay zero/empty for hook-free pairs.
type SwapQuote struct {
	AmountIn        uint64   `json:"amountIn"`
	AmountOut       uint64   `json:"amountOut"`
	FeeAmount       uint64   `json:"feeAmount"`
	PriceImpactBps  uint64   `json:"priceImpactBps"`
	TransferHookFee uint64   `json:"transferHookFee,omitempty"`
	Warnings        []string `json:"warnings"`
}

// TotalFee is the pool fee plus any hook fee, the secondary route sort key.
func (q *SwapQuote) TotalFee() uint64 {
	return q.FeeAmount + q.TransferHookFee
}

// LiquidityQuote is the result of pricing a deposit. The proposed amounts
// are echoed back; LpTokensToMint is the binding-constraint mint amount.
type LiquidityQuote struct {
	TokenAAmount   uint64  `json:"tokenAAmount"`
	TokenBAmount   uint64  `json:"tokenBAmount"`
	LpTokensToMint uint64  `json:"lpTokensToMint"`
	PoolSharePct   float64 `json:"poolSharePct"`
}

// WithdrawalQuote is the proportional redemption for burning LP tokens.
type WithdrawalQuote struct {
	LpTokens     uint64 `json:"lpTokens"`
	TokenAAmount uint64 `json:"tokenAAmount"`
	TokenBAmount uint64 `json:"tokenBAmount"`
}
