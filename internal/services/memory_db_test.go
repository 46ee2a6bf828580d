package services

import (
	"context"
	"maps"
	"math/big"
	"slices"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/babylonlabs-io/stake-ledger/internal/db"
	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

// memoryDB is an in-process db.DbInterface. Transactions are serialized and
// roll back every write made through the store when fn fails.
type memoryDB struct {
	txMu sync.Mutex
	mu   sync.Mutex

	stakers       map[string]model.StakerDocument
	tokenAccounts map[string]model.TokenAccountDocument
	events        map[string]model.StakeEventDocument

	// saveEventErr, when set, fails SaveStakeEvent
	saveEventErr error
}

var _ db.DbInterface = (*memoryDB)(nil)

func newMemoryDB() *memoryDB {
	return &memoryDB{
		stakers:       map[string]model.StakerDocument{},
		tokenAccounts: map[string]model.TokenAccountDocument{},
		events:        map[string]model.StakeEventDocument{},
	}
}

func (m *memoryDB) Ping(ctx context.Context) error {
	return nil
}

func (m *memoryDB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.Lock()
	stakers := maps.Clone(m.stakers)
	tokenAccounts := maps.Clone(m.tokenAccounts)
	events := maps.Clone(m.events)
	m.mu.Unlock()

	if err := fn(ctx); err != nil {
		m.mu.Lock()
		m.stakers = stakers
		m.tokenAccounts = tokenAccounts
		m.events = events
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memoryDB) GetOrCreateStaker(ctx context.Context, address, payer string, space int) (*model.StakerDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.stakers[address]
	if !ok {
		now := time.Now().UTC()
		doc = model.StakerDocument{
			Address:   address,
			Payer:     payer,
			Space:     space,
			CreatedAt: now,
			UpdatedAt: now,
		}
		m.stakers[address] = doc
	}
	return &doc, nil
}

func (m *memoryDB) SaveStaker(ctx context.Context, staker *model.StakerDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stakers[staker.Address]; !ok {
		return &db.NotFoundError{Key: staker.Address, Message: "staker account not found when saving"}
	}
	doc := *staker
	doc.UpdatedAt = time.Now().UTC()
	m.stakers[staker.Address] = doc
	return nil
}

func (m *memoryDB) GetStakerByAddress(ctx context.Context, address string) (*model.StakerDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.stakers[address]
	if !ok {
		return nil, &db.NotFoundError{Key: address, Message: "staker account not found"}
	}
	return &doc, nil
}

func (m *memoryDB) GetStakers(ctx context.Context, filter db.StakerFilter, paginationToken string) (*db.DbResultMap[*model.StakerDocument], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := &db.DbResultMap[*model.StakerDocument]{}
	for _, address := range slices.Sorted(maps.Keys(m.stakers)) {
		doc := m.stakers[address]
		if doc.Owner == "" {
			continue
		}
		if filter.Owner != "" && doc.Owner != filter.Owner {
			continue
		}
		if filter.Mint != "" && doc.Mint != filter.Mint {
			continue
		}
		result.Data = append(result.Data, &doc)
	}
	return result, nil
}

func (m *memoryDB) GetStakerTotalsByMint(ctx context.Context, mint string) (*model.StakerTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count uint64
	sum := new(big.Int)
	for _, doc := range m.stakers {
		if doc.Mint != mint {
			continue
		}
		count++
		sum.Add(sum, new(big.Int).SetUint64(doc.Total.Uint64()))
	}
	if count == 0 {
		return nil, &db.NotFoundError{Key: mint, Message: "no staker accounts found for mint"}
	}

	total, _ := primitive.ParseDecimal128FromBigInt(sum, 0)
	return &model.StakerTotals{Mint: mint, StakerCount: count, TotalStaked: total}, nil
}

func (m *memoryDB) GetStakedMints(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := map[string]struct{}{}
	for _, doc := range m.stakers {
		if doc.Mint != "" {
			seen[doc.Mint] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen)), nil
}

func (m *memoryDB) SaveNewTokenAccount(ctx context.Context, account *model.TokenAccountDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tokenAccounts[account.Address]; ok {
		return &db.DuplicateKeyError{Key: account.Address, Message: "token account already exists"}
	}
	m.tokenAccounts[account.Address] = *account
	return nil
}

func (m *memoryDB) GetTokenAccount(ctx context.Context, address string) (*model.TokenAccountDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.tokenAccounts[address]
	if !ok {
		return nil, &db.NotFoundError{Key: address, Message: "token account not found"}
	}
	return &doc, nil
}

func (m *memoryDB) UpdateTokenAccountAmount(ctx context.Context, address string, amount uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.tokenAccounts[address]
	if !ok {
		return &db.NotFoundError{Key: address, Message: "token account not found when updating amount"}
	}
	doc.Amount = model.Amount(amount)
	doc.UpdatedAt = time.Now().UTC()
	m.tokenAccounts[address] = doc
	return nil
}

func (m *memoryDB) SaveStakeEvent(ctx context.Context, event *model.StakeEventDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveEventErr != nil {
		return m.saveEventErr
	}
	if _, ok := m.events[event.ID]; ok {
		return &db.DuplicateKeyError{Key: event.ID, Message: "stake event already exists"}
	}
	m.events[event.ID] = *event
	return nil
}

func (m *memoryDB) GetPendingStakeEvents(ctx context.Context, limit uint64) ([]*model.StakeEventDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pending []*model.StakeEventDocument
	for _, ev := range m.events {
		if ev.Status == types.EventStatusPending {
			pending = append(pending, &ev)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if uint64(len(pending)) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (m *memoryDB) UpdateStakeEventStatus(
	ctx context.Context, id string, qualifiedPreviousStatuses []types.EventStatus, newStatus types.EventStatus, lastErr string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ev, ok := m.events[id]
	if !ok || !slices.Contains(qualifiedPreviousStatuses, ev.Status) {
		return &db.NotFoundError{Key: id, Message: "stake event not found or current status is not qualified"}
	}
	ev.Status = newStatus
	ev.Attempts++
	if lastErr != "" {
		ev.LastError = lastErr
	}
	if newStatus == types.EventStatusPublished {
		now := time.Now().UTC()
		ev.PublishedAt = &now
	}
	m.events[id] = ev
	return nil
}

// stakeEvents returns every stored event ordered by creation.
func (m *memoryDB) stakeEvents() []model.StakeEventDocument {
	m.mu.Lock()
	defer m.mu.Unlock()

	events := slices.Collect(maps.Values(m.events))
	sort.Slice(events, func(i, j int) bool {
		if !events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].CreatedAt.Before(events[j].CreatedAt)
		}
		return events[i].NewTotal < events[j].NewTotal
	})
	return events
}
