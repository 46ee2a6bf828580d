package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/sourcegraph/conc/pool"

	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

type StakerEntry struct {
	Address   types.PublicKey `json:"address"`
	Owner     types.PublicKey `json:"owner"`
	Mint      types.PublicKey `json:"mint"`
	Total     uint64          `json:"total"`
	Payer     string          `json:"payer"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type StakerPage struct {
	Stakers         []*StakerEntry `json:"stakers"`
	PaginationToken string         `json:"pagination_token,omitempty"`
}

// PoolSummary compares the ledger of a mint with its custody account.
type PoolSummary struct {
	Mint           types.PublicKey `json:"mint"`
	VaultAuthority types.PublicKey `json:"vault_authority"`
	VaultATA       types.PublicKey `json:"vault_ata"`
	StakerCount    uint64          `json:"staker_count"`
	TotalStaked    sdkmath.Int     `json:"total_staked"`
	CustodyBalance uint64          `json:"custody_balance"`
}

// Balanced reports whether the custody account holds exactly the sum of all
// ledger totals.
func (p *PoolSummary) Balanced() bool {
	return p.TotalStaked.Equal(sdkmath.NewIntFromUint64(p.CustodyBalance))
}

func newStakerEntry(doc *model.StakerDocument) (*StakerEntry, error) {
	address, err := types.PublicKeyFromBase58(doc.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid staker address: %w", err)
	}
	account, err := doc.ToStakerAccount()
	if err != nil {
		return nil, err
	}

	return &StakerEntry{
		Address:   address,
		Owner:     account.Owner,
		Mint:      account.Mint,
		Total:     account.Total,
		Payer:     doc.Payer,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

// GetStaker reads back the ledger entry of user for mint.
func (s *Service) GetStaker(ctx context.Context, user, mint types.PublicKey) (*StakerEntry, error) {
	address, _, err := s.deriver.Staker(user, mint)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}

	doc, err := s.db.GetStakerByAddress(ctx, address.String())
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, types.NewErrorWithMsg(http.StatusNotFound, types.NotFound,
				fmt.Sprintf("no staker account for %s and mint %s", user, mint))
		}
		return nil, types.NewInternalServiceError(err)
	}

	entry, err := newStakerEntry(doc)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	return entry, nil
}

func (s *Service) ListStakers(ctx context.Context, filter db.StakerFilter, paginationToken string) (*StakerPage, error) {
	result, err := s.db.GetStakers(ctx, filter, paginationToken)
	if err != nil {
		if db.IsInvalidPaginationTokenError(err) {
			return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid pagination token")
		}
		return nil, types.NewInternalServiceError(err)
	}

	page := &StakerPage{
		Stakers:         make([]*StakerEntry, 0, len(result.Data)),
		PaginationToken: result.PaginationToken,
	}
	for _, doc := range result.Data {
		entry, err := newStakerEntry(doc)
		if err != nil {
			return nil, types.NewInternalServiceError(err)
		}
		page.Stakers = append(page.Stakers, entry)
	}

	return page, nil
}

// GetPoolSummary loads the ledger totals and the custody balance of mint
// concurrently.
func (s *Service) GetPoolSummary(ctx context.Context, mint types.PublicKey) (*PoolSummary, error) {
	vaultAuthority, _, err := s.deriver.VaultAuthority(mint)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}
	vaultATA, err := s.deriver.AssociatedTokenAddress(vaultAuthority, mint)
	if err != nil {
		return nil, types.NewInternalServiceError(err)
	}

	summary := &PoolSummary{
		Mint:           mint,
		VaultAuthority: vaultAuthority,
		VaultATA:       vaultATA,
		TotalStaked:    sdkmath.ZeroInt(),
	}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		totals, err := s.db.GetStakerTotalsByMint(ctx, mint.String())
		if err != nil {
			if db.IsNotFoundError(err) {
				return nil
			}
			return fmt.Errorf("failed to sum staker totals: %w", err)
		}

		total, err := model.Decimal128ToBigInt(totals.TotalStaked)
		if err != nil {
			return err
		}
		summary.StakerCount = totals.StakerCount
		summary.TotalStaked = sdkmath.NewIntFromBigInt(total)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		account, err := s.token.GetAccount(ctx, vaultATA)
		if err != nil {
			if db.IsNotFoundError(err) {
				return nil
			}
			return fmt.Errorf("failed to load custody account: %w", err)
		}
		summary.CustodyBalance = account.Amount
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, types.NewInternalServiceError(err)
	}

	return summary, nil
}
