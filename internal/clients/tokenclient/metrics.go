package tokenclient

import (
	"context"
	"time"

	"github.com/babylonlabs-io/stake-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

type tokenClientWithMetrics struct {
	token TokenInterface
}

func NewTokenClientWithMetrics(token TokenInterface) *tokenClientWithMetrics {
	return &tokenClientWithMetrics{token: token}
}

func (t *tokenClientWithMetrics) Transfer(ctx context.Context, from, to, authority types.PublicKey, amount uint64) error {
	_, err := runTokenClientMethodWithMetrics("Transfer", func() (struct{}, error) {
		return struct{}{}, t.token.Transfer(ctx, from, to, authority, amount)
	})
	return err
}

func (t *tokenClientWithMetrics) GetAccount(ctx context.Context, address types.PublicKey) (*TokenAccount, error) {
	return runTokenClientMethodWithMetrics("GetAccount", func() (*TokenAccount, error) {
		return t.token.GetAccount(ctx, address)
	})
}

func (t *tokenClientWithMetrics) GetOrCreateAssociatedAccount(ctx context.Context, mint, owner types.PublicKey) (*TokenAccount, error) {
	return runTokenClientMethodWithMetrics("GetOrCreateAssociatedAccount", func() (*TokenAccount, error) {
		return t.token.GetOrCreateAssociatedAccount(ctx, mint, owner)
	})
}

func (t *tokenClientWithMetrics) MintTo(ctx context.Context, destination types.PublicKey, amount uint64) error {
	_, err := runTokenClientMethodWithMetrics("MintTo", func() (struct{}, error) {
		return struct{}{}, t.token.MintTo(ctx, destination, amount)
	})
	return err
}

func runTokenClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	result, err := f()
	duration := time.Since(startTime)

	metrics.RecordTokenClientLatency(duration, method, err != nil)
	return result, err
}
