package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
)

const defaultPaginationLimit = 100

func (db *Database) GetOrCreateStaker(
	ctx context.Context, address, payer string, space int,
) (*model.StakerDocument, error) {
	now := time.Now().UTC()
	filter := bson.M{"_id": address}
	update := bson.M{
		"$setOnInsert": bson.M{
			"owner":      "",
			"mint":       "",
			"total":      model.Amount(0),
			"payer":      payer,
			"space":      space,
			"created_at": now,
			"updated_at": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var staker model.StakerDocument
	err := db.collection(model.StakersCollection).
		FindOneAndUpdate(ctx, filter, update, opts).
		Decode(&staker)
	if err != nil {
		return nil, err
	}

	return &staker, nil
}

func (db *Database) SaveStaker(ctx context.Context, staker *model.StakerDocument) error {
	filter := bson.M{"_id": staker.Address}
	update := bson.M{
		"$set": bson.M{
			"owner":      staker.Owner,
			"mint":       staker.Mint,
			"total":      staker.Total,
			"data":       staker.Data,
			"updated_at": time.Now().UTC(),
		},
	}

	res, err := db.collection(model.StakersCollection).
		UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     staker.Address,
			Message: "staker account not found when saving",
		}
	}

	return nil
}

func (db *Database) GetStakerByAddress(ctx context.Context, address string) (*model.StakerDocument, error) {
	filter := bson.M{"_id": address}

	var staker model.StakerDocument
	err := db.collection(model.StakersCollection).
		FindOne(ctx, filter).
		Decode(&staker)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     address,
				Message: "staker account not found",
			}
		}
		return nil, err
	}

	return &staker, nil
}

// GetStakers lists initialized ledger entries ordered by address.
func (db *Database) GetStakers(
	ctx context.Context, stakerFilter StakerFilter, paginationToken string,
) (*DbResultMap[*model.StakerDocument], error) {
	filter := bson.M{"owner": bson.M{"$ne": ""}}
	if stakerFilter.Owner != "" {
		filter["owner"] = stakerFilter.Owner
	}
	if stakerFilter.Mint != "" {
		filter["mint"] = stakerFilter.Mint
	}

	if paginationToken != "" {
		decoded, err := decodePaginationToken(paginationToken)
		if err != nil {
			return nil, err
		}
		filter["_id"] = bson.M{"$gt": decoded.Address}
	}

	limit := db.cfg.MaxPaginationLimit
	if limit <= 0 {
		limit = defaultPaginationLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit + 1)

	cursor, err := db.collection(model.StakersCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stakers []*model.StakerDocument
	if err := cursor.All(ctx, &stakers); err != nil {
		return nil, err
	}

	result := &DbResultMap[*model.StakerDocument]{Data: stakers}
	if int64(len(stakers)) > limit {
		result.Data = stakers[:limit]
		token, err := encodePaginationToken(stakerPagination{Address: result.Data[limit-1].Address})
		if err != nil {
			return nil, err
		}
		result.PaginationToken = token
	}

	return result, nil
}

// GetStakerTotalsByMint sums the totals of every ledger entry of the mint.
func (db *Database) GetStakerTotalsByMint(ctx context.Context, mint string) (*model.StakerTotals, error) {
	pipeline := bson.A{
		bson.M{"$match": bson.M{"mint": mint}},
		bson.M{
			"$group": bson.M{
				"_id":          "$mint",
				"staker_count": bson.M{"$sum": 1},
				"total_staked": bson.M{"$sum": "$total"},
			},
		},
	}

	cursor, err := db.collection(model.StakersCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, &NotFoundError{
			Key:     mint,
			Message: "no staker accounts found for mint",
		}
	}

	var totals model.StakerTotals
	if err := cursor.Decode(&totals); err != nil {
		return nil, err
	}

	return &totals, nil
}

func (db *Database) GetStakedMints(ctx context.Context) ([]string, error) {
	values, err := db.collection(model.StakersCollection).
		Distinct(ctx, "mint", bson.M{"mint": bson.M{"$ne": ""}})
	if err != nil {
		return nil, err
	}

	mints := make([]string, 0, len(values))
	for _, v := range values {
		if mint, ok := v.(string); ok {
			mints = append(mints, mint)
		}
	}
	return mints, nil
}
