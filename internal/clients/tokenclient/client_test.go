package tokenclient_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/stake-ledger/internal/address"
	"github.com/babylonlabs-io/stake-ledger/internal/clients/tokenclient"
	"github.com/babylonlabs-io/stake-ledger/internal/config"
	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
	"github.com/babylonlabs-io/stake-ledger/tests/mocks"
	"github.com/babylonlabs-io/stake-ledger/testutil"
)

func newDeriver(t *testing.T) *address.Deriver {
	return address.NewDeriver(
		testutil.RandomPublicKey(t),
		types.MustPublicKeyFromBase58(config.DefaultTokenProgramID),
		types.MustPublicKeyFromBase58(config.DefaultAssociatedTokenProgramID),
	)
}

func tokenAccount(address, mint, owner types.PublicKey, amount uint64) *model.TokenAccountDocument {
	doc := model.NewTokenAccountDocument(address.String(), mint.String(), owner.String())
	doc.Amount = model.Amount(amount)
	return doc
}

func TestTransfer(t *testing.T) {
	ctx := t.Context()

	mint := testutil.RandomPublicKey(t)
	user := testutil.RandomPublicKey(t)
	vault := testutil.RandomPublicKey(t)
	from := testutil.RandomPublicKey(t)
	to := testutil.RandomPublicKey(t)

	t.Run("ok", func(t *testing.T) {
		dbMock := mocks.NewDbInterface(t)
		dbMock.On("GetTokenAccount", ctx, from.String()).Return(tokenAccount(from, mint, user, 100), nil).Once()
		dbMock.On("GetTokenAccount", ctx, to.String()).Return(tokenAccount(to, mint, vault, 7), nil).Once()
		dbMock.On("UpdateTokenAccountAmount", ctx, from.String(), uint64(60)).Return(nil).Once()
		dbMock.On("UpdateTokenAccountAmount", ctx, to.String(), uint64(47)).Return(nil).Once()

		client := tokenclient.NewTokenClient(dbMock, newDeriver(t))
		err := client.Transfer(ctx, from, to, user, 40)
		require.NoError(t, err)
	})
	t.Run("whole balance", func(t *testing.T) {
		dbMock := mocks.NewDbInterface(t)
		dbMock.On("GetTokenAccount", ctx, from.String()).Return(tokenAccount(from, mint, user, 100), nil).Once()
		dbMock.On("GetTokenAccount", ctx, to.String()).Return(tokenAccount(to, mint, vault, 0), nil).Once()
		dbMock.On("UpdateTokenAccountAmount", ctx, from.String(), uint64(0)).Return(nil).Once()
		dbMock.On("UpdateTokenAccountAmount", ctx, to.String(), uint64(100)).Return(nil).Once()

		client := tokenclient.NewTokenClient(dbMock, newDeriver(t))
		require.NoError(t, client.Transfer(ctx, from, to, user, 100))
	})

	rejections := []struct {
		name        string
		source      *model.TokenAccountDocument
		destination *model.TokenAccountDocument
		amount      uint64
		code        tokenclient.TransferErrorCode
	}{
		{
			name:        "insufficient funds",
			source:      tokenAccount(from, mint, user, 10),
			destination: tokenAccount(to, mint, vault, 0),
			amount:      11,
			code:        tokenclient.InsufficientFunds,
		},
		{
			name:        "authority does not own source",
			source:      tokenAccount(from, mint, vault, 100),
			destination: tokenAccount(to, mint, vault, 0),
			amount:      1,
			code:        tokenclient.OwnerMismatch,
		},
		{
			name:        "different mints",
			source:      tokenAccount(from, mint, user, 100),
			destination: tokenAccount(to, testutil.RandomPublicKey(t), vault, 0),
			amount:      1,
			code:        tokenclient.MintMismatch,
		},
		{
			name:        "destination overflow",
			source:      tokenAccount(from, mint, user, 100),
			destination: tokenAccount(to, mint, vault, math.MaxUint64),
			amount:      1,
			code:        tokenclient.Overflow,
		},
	}
	for _, tc := range rejections {
		t.Run(tc.name, func(t *testing.T) {
			dbMock := mocks.NewDbInterface(t)
			dbMock.On("GetTokenAccount", ctx, from.String()).Return(tc.source, nil).Once()
			dbMock.On("GetTokenAccount", ctx, to.String()).Return(tc.destination, nil).Once()

			client := tokenclient.NewTokenClient(dbMock, newDeriver(t))
			err := client.Transfer(ctx, from, to, user, tc.amount)
			require.Error(t, err)
			assert.True(t, tokenclient.IsTransferError(err, tc.code), "unexpected error: %v", err)
			dbMock.AssertNotCalled(t, "UpdateTokenAccountAmount", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("missing source", func(t *testing.T) {
		dbMock := mocks.NewDbInterface(t)
		dbMock.On("GetTokenAccount", ctx, from.String()).Return(nil, &db.NotFoundError{Key: from.String()}).Once()

		client := tokenclient.NewTokenClient(dbMock, newDeriver(t))
		err := client.Transfer(ctx, from, to, user, 1)
		assert.True(t, tokenclient.IsTransferError(err, tokenclient.AccountNotFound))
	})
	t.Run("db error is not a rejection", func(t *testing.T) {
		dbErr := errors.New("connection reset")
		dbMock := mocks.NewDbInterface(t)
		dbMock.On("GetTokenAccount", ctx, from.String()).Return(nil, dbErr).Once()

		client := tokenclient.NewTokenClient(dbMock, newDeriver(t))
		err := client.Transfer(ctx, from, to, user, 1)
		require.ErrorIs(t, err, dbErr)
		assert.False(t, tokenclient.IsTransferError(err))
	})
}

func TestGetOrCreateAssociatedAccount(t *testing.T) {
	ctx := t.Context()
	deriver := newDeriver(t)

	mint := testutil.RandomPublicKey(t)
	owner := testutil.RandomPublicKey(t)
	ata, err := deriver.AssociatedTokenAddress(owner, mint)
	require.NoError(t, err)

	t.Run("existing", func(t *testing.T) {
		dbMock := mocks.NewDbInterface(t)
		dbMock.On("GetTokenAccount", ctx, ata.String()).Return(tokenAccount(ata, mint, owner, 5), nil).Once()

		account, err := tokenclient.NewTokenClient(dbMock, deriver).GetOrCreateAssociatedAccount(ctx, mint, owner)
		require.NoError(t, err)
		assert.Equal(t, ata, account.Address)
		assert.EqualValues(t, 5, account.Amount)
	})
	t.Run("created", func(t *testing.T) {
		dbMock := mocks.NewDbInterface(t)
		dbMock.On("GetTokenAccount", ctx, ata.String()).Return(nil, &db.NotFoundError{}).Once()
		dbMock.On("SaveNewTokenAccount", ctx, mock.MatchedBy(func(doc *model.TokenAccountDocument) bool {
			return doc.Address == ata.String() && doc.Mint == mint.String() && doc.Owner == owner.String() && doc.Amount == 0
		})).Return(nil).Once()

		account, err := tokenclient.NewTokenClient(dbMock, deriver).GetOrCreateAssociatedAccount(ctx, mint, owner)
		require.NoError(t, err)
		assert.Equal(t, &tokenclient.TokenAccount{Address: ata, Mint: mint, Owner: owner}, account)
	})
	t.Run("created concurrently", func(t *testing.T) {
		dbMock := mocks.NewDbInterface(t)
		dbMock.On("GetTokenAccount", ctx, ata.String()).Return(nil, &db.NotFoundError{}).Once()
		dbMock.On("SaveNewTokenAccount", ctx, mock.Anything).Return(&db.DuplicateKeyError{}).Once()
		dbMock.On("GetTokenAccount", ctx, ata.String()).Return(tokenAccount(ata, mint, owner, 9), nil).Once()

		account, err := tokenclient.NewTokenClient(dbMock, deriver).GetOrCreateAssociatedAccount(ctx, mint, owner)
		require.NoError(t, err)
		assert.EqualValues(t, 9, account.Amount)
	})
}

func TestMintTo(t *testing.T) {
	ctx := t.Context()
	mint := testutil.RandomPublicKey(t)
	owner := testutil.RandomPublicKey(t)
	destination := testutil.RandomPublicKey(t)

	t.Run("ok", func(t *testing.T) {
		dbMock := mocks.NewDbInterface(t)
		dbMock.On("GetTokenAccount", ctx, destination.String()).Return(tokenAccount(destination, mint, owner, 1), nil).Once()
		dbMock.On("UpdateTokenAccountAmount", ctx, destination.String(), uint64(1001)).Return(nil).Once()

		err := tokenclient.NewTokenClient(dbMock, newDeriver(t)).MintTo(ctx, destination, 1000)
		require.NoError(t, err)
	})
	t.Run("overflow", func(t *testing.T) {
		dbMock := mocks.NewDbInterface(t)
		dbMock.On("GetTokenAccount", ctx, destination.String()).
			Return(tokenAccount(destination, mint, owner, math.MaxUint64), nil).Once()

		err := tokenclient.NewTokenClient(dbMock, newDeriver(t)).MintTo(ctx, destination, 1)
		assert.True(t, tokenclient.IsTransferError(err, tokenclient.Overflow))
	})
}
