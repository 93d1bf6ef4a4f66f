package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sequencer hands out monotonically increasing numeric ids per collection,
// keeping ids interchangeable with the relational backend.
type sequencer struct {
	col *mongo.Collection
}

func newSequencer(db *mongo.Database) *sequencer {
	return &sequencer{col: db.Collection(collectionCounters)}
}

func (s *sequencer) next(ctx context.Context, name string) (uint64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out struct {
		Seq int64 `bson:"seq"`
	}
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return uint64(out.Seq), nil
}
