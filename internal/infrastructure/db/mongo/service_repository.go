package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
)

type serviceDoc struct {
	ID          int64     `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	OwnerID     int64     `bson:"owner_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d *serviceDoc) toDomain(owner *domain.Owner) *domain.Service {
	return &domain.Service{
		ID:          uint64(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		OwnerID:     uint64(d.OwnerID),
		Owner:       owner,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// ServiceRepository implements ports.ServiceRepository using MongoDB.
type ServiceRepository struct {
	col   *mongo.Collection
	users *UserRepository
	seq   *sequencer
	now   func() time.Time
}

func NewServiceRepository(db *mongo.Database, users *UserRepository, seq *sequencer) *ServiceRepository {
	return &ServiceRepository{
		col:   db.Collection(collectionServices),
		users: users,
		seq:   seq,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (r *ServiceRepository) Create(ctx context.Context, svc *domain.Service) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx, collectionServices)
	if err != nil {
		return err
	}
	now := r.now()
	created := svc.CreatedAt
	if created.IsZero() {
		created = now
	}

	doc := serviceDoc{
		ID:          int64(id),
		Name:        svc.Name,
		Description: svc.Description,
		Price:       svc.Price,
		OwnerID:     int64(svc.OwnerID),
		CreatedAt:   created,
		UpdatedAt:   now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert service: %w", err)
	}

	svc.ID = id
	svc.CreatedAt = created
	svc.UpdatedAt = now
	return nil
}

// Update rewrites name, description and price. Ownership never changes.
func (r *ServiceRepository) Update(ctx context.Context, svc *domain.Service) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := r.now()
	res, err := r.col.UpdateByID(ctx, int64(svc.ID), bson.M{"$set": bson.M{
		"name":        svc.Name,
		"description": svc.Description,
		"price":       svc.Price,
		"updated_at":  now,
	}})
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrServiceNotFound
	}
	svc.UpdatedAt = now
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id uint64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": int64(id)})
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id uint64) (*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc serviceDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, fmt.Errorf("find service: %w", err)
	}

	owners, err := r.users.owners(ctx, []int64{doc.OwnerID})
	if err != nil {
		return nil, err
	}
	return doc.toDomain(owners[uint64(doc.OwnerID)]), nil
}

func (r *ServiceRepository) List(ctx context.Context, filter ports.ListServicesFilter) ([]*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.OwnerID != 0 {
		q["owner_id"] = int64(filter.OwnerID)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.col.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	var docs []serviceDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}

	owners, err := r.users.owners(ctx, ownerIDs(docs))
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Service, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain(owners[uint64(docs[i].OwnerID)])
	}
	return out, nil
}

func (r *ServiceRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count services: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the owner and listing-order indexes.
func (r *ServiceRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func ownerIDs(docs []serviceDoc) []int64 {
	seen := make(map[int64]struct{}, len(docs))
	ids := make([]int64, 0, len(docs))
	for _, d := range docs {
		if _, ok := seen[d.OwnerID]; ok {
			continue
		}
		seen[d.OwnerID] = struct{}{}
		ids = append(ids, d.OwnerID)
	}
	return ids
}
