package services

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-ledger/internal/clients/tokenclient"
	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

// StakeReceipt describes a committed stake.
type StakeReceipt struct {
	StakerAccount types.PublicKey `json:"staker_account"`
	Owner         types.PublicKey `json:"owner"`
	Mint          types.PublicKey `json:"mint"`
	Amount        uint64          `json:"amount"`
	NewTotal      uint64          `json:"new_total"`
	EventID       string          `json:"event_id"`
}

// Stake moves ix.Amount tokens from the participant's token account into the
// custody account of the mint and adds the amount to the participant's ledger
// entry, creating the entry on first use. The transfer, the ledger update and
// the audit event commit together or not at all.
func (s *Service) Stake(ctx context.Context, ix *StakeInstruction) (*StakeReceipt, error) {
	receipt, err := s.stake(ctx, ix)

	errorCode := ""
	if err != nil {
		var typedErr *types.Error
		if errors.As(err, &typedErr) {
			errorCode = typedErr.ErrorCode.String()
		} else {
			errorCode = types.InternalServiceError.String()
		}
	}
	var amount uint64
	if ix != nil {
		amount = ix.Amount
	}
	metrics.RecordStake(amount, errorCode)

	return receipt, err
}

func (s *Service) stake(ctx context.Context, ix *StakeInstruction) (*StakeReceipt, error) {
	if err := s.validateStakeInstruction(ctx, ix); err != nil {
		return nil, err
	}

	accounts := ix.Accounts
	log := log.Ctx(ctx).With().
		Stringer("staker", accounts.Staker).
		Stringer("user", accounts.User).
		Stringer("mint", accounts.Mint).
		Uint64("amount", ix.Amount).
		Logger()

	var receipt *StakeReceipt
	err := s.db.WithTransaction(ctx, func(ctx context.Context) error {
		// WithTransaction may run this more than once
		receipt = nil

		doc, err := s.db.GetOrCreateStaker(ctx, accounts.Staker.String(), accounts.User.String(), types.StakerAccountSpace)
		if err != nil {
			return types.NewInternalServiceError(fmt.Errorf("failed to load staker account: %w", err))
		}
		staker, err := doc.ToStakerAccount()
		if err != nil {
			return types.NewInternalServiceError(err)
		}

		if !staker.IsInitialized() {
			staker.Owner = accounts.User
			staker.Mint = accounts.Mint
			staker.Total = 0
			log.Info().Msg("Initializing staker account")
		}

		if staker.Owner != accounts.User {
			return types.NewStakeError(types.OwnerMismatch,
				"staker account %s belongs to %s", accounts.Staker, staker.Owner)
		}
		if staker.Mint != accounts.Mint {
			return types.NewStakeError(types.MintMismatch,
				"staker account %s tracks mint %s", accounts.Staker, staker.Mint)
		}

		newTotal, carry := bits.Add64(staker.Total, ix.Amount, 0)
		if carry != 0 {
			return types.NewStakeError(types.MathOverflow,
				"total %d of staker account %s cannot grow by %d", staker.Total, accounts.Staker, ix.Amount)
		}
		staker.Total = newTotal

		// ledger checks precede the transfer, an overflowing total surfaces as MathOverflow
		err = s.token.Transfer(ctx, accounts.UserATA, accounts.VaultATA, accounts.User, ix.Amount)
		if err != nil {
			if tokenclient.IsTransferError(err) {
				return types.NewStakeError(types.TransferFailed, "transfer from %s failed: %w", accounts.UserATA, err)
			}
			return types.NewInternalServiceError(fmt.Errorf("failed to transfer tokens: %w", err))
		}
		log.Debug().Msg("Transferred tokens from user to vault")

		if err := doc.ApplyStakerAccount(staker); err != nil {
			return types.NewInternalServiceError(err)
		}
		if err := s.db.SaveStaker(ctx, doc); err != nil {
			return types.NewInternalServiceError(fmt.Errorf("failed to save staker account: %w", err))
		}

		ev := types.StakeEvent{
			Staker:   staker.Owner,
			Mint:     staker.Mint,
			Amount:   ix.Amount,
			NewTotal: staker.Total,
		}
		eventID := uuid.NewString()
		if err := s.db.SaveStakeEvent(ctx, model.NewStakeEventDocument(eventID, accounts.Staker, ev)); err != nil {
			return types.NewInternalServiceError(fmt.Errorf("failed to save stake event: %w", err))
		}

		receipt = &StakeReceipt{
			StakerAccount: accounts.Staker,
			Owner:         staker.Owner,
			Mint:          staker.Mint,
			Amount:        ix.Amount,
			NewTotal:      staker.Total,
			EventID:       eventID,
		}
		return nil
	})
	if err != nil {
		var typedErr *types.Error
		if errors.As(err, &typedErr) {
			log.Warn().Err(err).Msg("Stake rejected")
			return nil, typedErr
		}
		log.Error().Err(err).Msg("Stake transaction failed")
		return nil, types.NewInternalServiceError(fmt.Errorf("stake transaction failed: %w", err))
	}

	log.Info().
		Uint64("new_total", receipt.NewTotal).
		Str("event_id", receipt.EventID).
		Msg("Stake committed")

	return receipt, nil
}

// validateStakeInstruction checks everything that can be checked before any
// state is touched.
func (s *Service) validateStakeInstruction(ctx context.Context, ix *StakeInstruction) error {
	if ix == nil {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "stake instruction is required")
	}
	accounts := ix.Accounts

	if !ix.IsSignedByUser() {
		return types.NewStakeError(types.MissingSignature, "instruction is not signed by %s", accounts.User)
	}

	programs := []struct {
		name     string
		got      types.PublicKey
		expected types.PublicKey
	}{
		{"token_program", accounts.TokenProgram, s.programIDs.TokenProgram},
		{"associated_token_program", accounts.AssociatedTokenProgram, s.programIDs.AssociatedTokenProgram},
		{"system_program", accounts.SystemProgram, s.programIDs.SystemProgram},
	}
	for _, p := range programs {
		if p.got != p.expected {
			return types.NewStakeError(types.InvalidProgramID, "%s is %s, expected %s", p.name, p.got, p.expected)
		}
	}

	vaultAuthority, _, err := s.deriver.VaultAuthority(accounts.Mint)
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	if accounts.VaultAuthority != vaultAuthority {
		return types.NewStakeError(types.ConstraintSeeds,
			"vault_authority %s is not derived from mint %s", accounts.VaultAuthority, accounts.Mint)
	}

	staker, _, err := s.deriver.Staker(accounts.User, accounts.Mint)
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	if accounts.Staker != staker {
		return types.NewStakeError(types.ConstraintSeeds,
			"staker %s is not derived from user %s and mint %s", accounts.Staker, accounts.User, accounts.Mint)
	}

	if err := s.validateAssociatedAccount(ctx, "user_ata", accounts.UserATA, accounts.User, accounts.Mint); err != nil {
		return err
	}
	return s.validateAssociatedAccount(ctx, "vault_ata", accounts.VaultATA, vaultAuthority, accounts.Mint)
}

func (s *Service) validateAssociatedAccount(
	ctx context.Context, name string, got, owner, mint types.PublicKey,
) error {
	expected, err := s.deriver.AssociatedTokenAddress(owner, mint)
	if err != nil {
		return types.NewInternalServiceError(err)
	}
	if got != expected {
		return types.NewStakeError(types.ConstraintAssociated,
			"%s %s is not the associated token account of %s for mint %s", name, got, owner, mint)
	}

	account, err := s.token.GetAccount(ctx, got)
	if err != nil {
		if db.IsNotFoundError(err) {
			return types.NewStakeError(types.ConstraintAssociated, "%s %s is not initialized", name, got)
		}
		return types.NewInternalServiceError(fmt.Errorf("failed to load %s: %w", name, err))
	}
	if account.Mint != mint || account.Owner != owner {
		return types.NewStakeError(types.ConstraintAssociated,
			"%s %s holds mint %s for %s, expected mint %s for %s", name, got, account.Mint, account.Owner, mint, owner)
	}

	return nil
}
