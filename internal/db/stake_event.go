package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/stake-ledger/internal/db/model"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

func (db *Database) SaveStakeEvent(ctx context.Context, event *model.StakeEventDocument) error {
	_, err := db.collection(model.StakeEventsCollection).
		InsertOne(ctx, event)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     event.ID,
						Message: "stake event already exists",
					}
				}
			}
		}
		return err
	}

	return nil
}

// GetPendingStakeEvents returns the oldest events not yet delivered to the queue.
func (db *Database) GetPendingStakeEvents(ctx context.Context, limit uint64) ([]*model.StakeEventDocument, error) {
	filter := bson.M{"status": types.EventStatusPending}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := db.collection(model.StakeEventsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*model.StakeEventDocument
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (db *Database) UpdateStakeEventStatus(
	ctx context.Context,
	id string,
	qualifiedPreviousStatuses []types.EventStatus,
	newStatus types.EventStatus,
	lastErr string,
) error {
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": qualifiedPreviousStatuses},
	}

	set := bson.M{"status": newStatus}
	if lastErr != "" {
		set["last_error"] = lastErr
	}
	if newStatus == types.EventStatusPublished {
		set["published_at"] = time.Now().UTC()
	}
	update := bson.M{
		"$set": set,
		"$inc": bson.M{"attempts": 1},
	}

	res := db.collection(model.StakeEventsCollection).
		FindOneAndUpdate(ctx, filter, update)
	if res.Err() != nil {
		if errors.Is(res.Err(), mongo.ErrNoDocuments) {
			return &NotFoundError{
				Key:     id,
				Message: "stake event not found or current status is not qualified",
			}
		}
		return res.Err()
	}

	return nil
}
