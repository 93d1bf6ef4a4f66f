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

type userDoc struct {
	ID        int64     `bson:"_id"`
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	Role      string    `bson:"role"`
	Active    bool      `bson:"active"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           uint64(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         domain.Role(d.Role),
		Active:       d.Active,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col    *mongo.Collection
	hasher ports.PasswordHasher
	seq    *sequencer
	now    func() time.Time
}

func NewUserRepository(db *mongo.Database, hasher ports.PasswordHasher, seq *sequencer) *UserRepository {
	return &UserRepository{
		col:    db.Collection(collectionUsers),
		hasher: hasher,
		seq:    seq,
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// digest returns the hash to store for u, hashing a newly supplied password.
func (r *UserRepository) digest(u *domain.User) (string, error) {
	if u.Password == "" {
		return u.PasswordHash, nil
	}
	return r.hasher.Hash(u.Password)
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	hash, err := r.digest(user)
	if err != nil {
		return err
	}
	id, err := r.seq.next(ctx, collectionUsers)
	if err != nil {
		return err
	}

	now := r.now()
	doc := userDoc{
		ID:        int64(id),
		Name:      user.Name,
		Email:     user.Email,
		Password:  hash,
		Role:      string(user.Role),
		Active:    user.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	user.ID = id
	user.Password = ""
	user.PasswordHash = hash
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	hash, err := r.digest(user)
	if err != nil {
		return err
	}
	now := r.now()
	res, err := r.col.UpdateByID(ctx, int64(user.ID), bson.M{"$set": bson.M{
		"name":       user.Name,
		"email":      user.Email,
		"password":   hash,
		"role":       string(user.Role),
		"active":     user.Active,
		"updated_at": now,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}

	user.Password = ""
	user.PasswordHash = hash
	user.UpdatedAt = now
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": int64(id)})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindFirstByRole(ctx context.Context, role domain.Role) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"role": string(role)}, options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}))
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// owners loads the owner projection for a set of user ids.
func (r *UserRepository) owners(ctx context.Context, ids []int64) (map[uint64]*domain.Owner, error) {
	out := make(map[uint64]*domain.Owner, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	opts := options.Find().SetProjection(bson.M{"name": 1, "role": 1})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find owners: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode owners: %w", err)
	}
	for _, d := range docs {
		out[uint64(d.ID)] = &domain.Owner{ID: uint64(d.ID), Name: d.Name, Role: domain.Role(d.Role)}
	}
	return out, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.col.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

// EnsureIndexes creates the unique email index and the role lookup index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
