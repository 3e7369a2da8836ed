// Package token2022 parses Token-2022 mint accounts for the transfer-hook
// extension. Only the fields the pricing pipeline needs are decoded; full
// TLV extension walking is not required for hook detection.
package token2022

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/hookswap/route-engine/internal/common"
	"github.com/hookswap/route-engine/internal/domain"
)

const (
	// legacyMintLen is the size of a plain SPL-Token mint with no
	// extension data.
	legacyMintLen = 82

	// extendedMintLen is the minimum account size once the transfer-hook
	// extension block is present: the base mint, padding to the account
	// type discriminator, and the two 32-byte extension fields.
	extendedMintLen = 278

	hookProgramOffset   = 82
	hookAuthorityOffset = 114
	hookExtensionEnd    = 146
)

// TransferHook describes the transfer-hook extension of a Token-2022 mint.
type TransferHook struct {
	ProgramID solana.PublicKey
	Authority solana.PublicKey
}

// ParseTransferHook inspects raw mint account data and returns the
// transfer-hook extension if one is configured. A plain legacy mint or an
// extended mint whose hook program slot is all zeroes yields (nil, nil).
func ParseTransferHook(data []byte) (*TransferHook, error) {
	if len(data) < legacyMintLen {
		return nil, fmt.Errorf("%w: mint account data too short (%d bytes)", common.ErrInvalidArgument, len(data))
	}
	if len(data) == legacyMintLen {
		return nil, nil
	}
	if len(data) < extendedMintLen {
		return nil, fmt.Errorf("%w: extended mint account truncated (%d bytes)", common.ErrInvalidArgument, len(data))
	}

	var programID solana.PublicKey
	if err := bin.NewBinDecoder(data[hookProgramOffset:hookAuthorityOffset]).Decode(&programID); err != nil {
		return nil, fmt.Errorf("decode transfer-hook program id: %w", err)
	}
	if programID.IsZero() {
		return nil, nil
	}

	var authority solana.PublicKey
	if err := bin.NewBinDecoder(data[hookAuthorityOffset:hookExtensionEnd]).Decode(&authority); err != nil {
		return nil, fmt.Errorf("decode transfer-hook authority: %w", err)
	}

	return &TransferHook{ProgramID: programID, Authority: authority}, nil
}

// TokenInfoFromMint builds the pricing-side token descriptor for a mint.
func TokenInfoFromMint(mint solana.PublicKey, decimals uint8, data []byte) (domain.TokenInfo, error) {
	hook, err := ParseTransferHook(data)
	if err != nil {
		return domain.TokenInfo{}, err
	}
	info := domain.TokenInfo{Mint: mint, Decimals: decimals}
	if hook != nil {
		pid := hook.ProgramID
		info.HasHook = true
		info.HookProgramID = &pid
	}
	return info, nil
}
