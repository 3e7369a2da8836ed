package hooks

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gagliardetto/solana-go"
)

// seedEntry is the on-disk shape of one whitelist record. Program ids are
// base58 strings and creation dates are RFC 3339 so seed files stay
// hand-editable.
type seedEntry struct {
	ProgramID       string    `json:"programId"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Version         string    `json:"version"`
	Author          string    `json:"author"`
	Verified        bool      `json:"verified"`
	CreatedAt       time.Time `json:"createdAt"`
	SupportedVenues []string  `json:"supportedVenues"`
	RiskLevel       RiskLevel `json:"riskLevel"`
}

// LoadSeedFile reads a JSON array of whitelist records.
func LoadSeedFile(path string) ([]WhitelistedHook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hook seed %s: %w", path, err)
	}
	var entries []seedEntry
	if err := sonic.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse hook seed %s: %w", path, err)
	}

	out := make([]WhitelistedHook, 0, len(entries))
	for i, e := range entries {
		pk, err := solana.PublicKeyFromBase58(e.ProgramID)
		if err != nil {
			return nil, fmt.Errorf("hook seed entry %d: bad program id %q: %w", i, e.ProgramID, err)
		}
		switch e.RiskLevel {
		case RiskLow, RiskMedium, RiskHigh:
		default:
			return nil, fmt.Errorf("hook seed entry %d: unknown risk level %q", i, e.RiskLevel)
		}
		out = append(out, WhitelistedHook{
			ProgramID:       pk,
			Name:            e.Name,
			Description:     e.Description,
			Version:         e.Version,
			Author:          e.Author,
			Verified:        e.Verified,
			CreatedAt:       e.CreatedAt,
			SupportedVenues: e.SupportedVenues,
			RiskLevel:       e.RiskLevel,
		})
	}
	return out, nil
}

// DefaultHooks is the built-in seed set used when no seed file is
// configured: a handful of reviewed hook programs across the supported
// venues.
func DefaultHooks() []WhitelistedHook {
	date := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	return []WhitelistedHook{
		{
			ProgramID:       solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"),
			Name:            "Fee Collection Hook",
			Description:     "Collects a small fee on token transfers for protocol revenue",
			Version:         "1.0.0",
			Author:          "Solana Labs",
			Verified:        true,
			CreatedAt:       date("2024-01-01"),
			SupportedVenues: []string{"Raydium", "Orca", "Meteora"},
			RiskLevel:       RiskLow,
		},
		{
			ProgramID:       solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"),
			Name:            "Compliance Hook",
			Description:     "Enforces regulatory compliance and KYC requirements",
			Version:         "2.1.0",
			Author:          "Compliance Solutions Inc",
			Verified:        true,
			CreatedAt:       date("2024-02-15"),
			SupportedVenues: []string{"Raydium", "Orca"},
			RiskLevel:       RiskMedium,
		},
		{
			ProgramID:       solana.MustPublicKeyFromBase58("DjVE6JNiYqPL2QXyCUUh8rNjHrbz9hXHNYt99MQ59qw1"),
			Name:            "Rewards Hook",
			Description:     "Distributes rewards to token holders on transfers",
			Version:         "1.5.0",
			Author:          "DeFi Rewards Protocol",
			Verified:        true,
			CreatedAt:       date("2024-03-01"),
			SupportedVenues: []string{"Raydium", "Meteora"},
			RiskLevel:       RiskLow,
		},
		{
			ProgramID:       solana.MustPublicKeyFromBase58("BurnAuTNeBdog6vkhzuCDDXs7teTA6mQ46qqvkZTjF4n"),
			Name:            "Burn Mechanism Hook",
			Description:     "Burns a percentage of tokens on each transfer for deflationary mechanics",
			Version:         "1.0.0",
			Author:          "Deflationary Token Labs",
			Verified:        true,
			CreatedAt:       date("2024-01-20"),
			SupportedVenues: []string{"Orca", "Meteora"},
			RiskLevel:       RiskMedium,
		},
		{
			ProgramID:       solana.MustPublicKeyFromBase58("StakeSSCS2CLwx4kEGUdURg8dZcZJ2ikFfvmN9Cj3vA"),
			Name:            "Staking Hook",
			Description:     "Automatically stakes tokens when transferred to specific addresses",
			Version:         "2.0.0",
			Author:          "Auto Staking Protocol",
			Verified:        true,
			CreatedAt:       date("2024-02-01"),
			SupportedVenues: []string{"Raydium"},
			RiskLevel:       RiskMedium,
		},
	}
}
