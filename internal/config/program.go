package config

import (
	"fmt"

	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

const (
	DefaultTokenProgramID           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	DefaultAssociatedTokenProgramID = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	DefaultSystemProgramID          = "11111111111111111111111111111111"
)

// ProgramConfig holds the base58 ids of the stake program and the programs it
// talks to.
type ProgramConfig struct {
	ProgramID                string `mapstructure:"program-id"`
	TokenProgramID           string `mapstructure:"token-program-id"`
	AssociatedTokenProgramID string `mapstructure:"associated-token-program-id"`
	SystemProgramID          string `mapstructure:"system-program-id"`
}

// ProgramIDs is the parsed form of ProgramConfig.
type ProgramIDs struct {
	Program                types.PublicKey
	TokenProgram           types.PublicKey
	AssociatedTokenProgram types.PublicKey
	SystemProgram          types.PublicKey
}

func (cfg *ProgramConfig) Validate() error {
	if cfg.ProgramID == "" {
		return fmt.Errorf("program-id is required")
	}
	if cfg.TokenProgramID == "" {
		cfg.TokenProgramID = DefaultTokenProgramID
	}
	if cfg.AssociatedTokenProgramID == "" {
		cfg.AssociatedTokenProgramID = DefaultAssociatedTokenProgramID
	}
	if cfg.SystemProgramID == "" {
		cfg.SystemProgramID = DefaultSystemProgramID
	}

	_, err := cfg.Parse()
	return err
}

func (cfg *ProgramConfig) Parse() (*ProgramIDs, error) {
	program, err := types.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("program-id: %w", err)
	}
	tokenProgram, err := types.PublicKeyFromBase58(cfg.TokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("token-program-id: %w", err)
	}
	ataProgram, err := types.PublicKeyFromBase58(cfg.AssociatedTokenProgramID)
	if err != nil {
		return nil, fmt.Errorf("associated-token-program-id: %w", err)
	}
	systemProgram, err := types.PublicKeyFromBase58(cfg.SystemProgramID)
	if err != nil {
		return nil, fmt.Errorf("system-program-id: %w", err)
	}

	return &ProgramIDs{
		Program:                program,
		TokenProgram:           tokenProgram,
		AssociatedTokenProgram: ataProgram,
		SystemProgram:          systemProgram,
	}, nil
}
