package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/adminhub/identity-system/internal/core/domain"
)

const versionsCollection = "user_versions"

// MongoVersionRepository stores the append-only snapshot history.
type MongoVersionRepository struct {
	coll *mongo.Collection
	seq  *sequences
}

func NewVersionRepository(db *mongo.Database) *MongoVersionRepository {
	return &MongoVersionRepository{coll: db.Collection(versionsCollection), seq: newSequences(db)}
}

type mongoVersion struct {
	ID          int64      `bson:"_id"`
	UserID      int64      `bson:"user_id"`
	Email       string     `bson:"email"`
	FirstName   string     `bson:"first_name,omitempty"`
	LastName    string     `bson:"last_name,omitempty"`
	Address     string     `bson:"address,omitempty"`
	DateOfBirth *time.Time `bson:"date_of_birth,omitempty"`
	Role        string     `bson:"role"`
	IsActive    bool       `bson:"is_active"`
	ChangedBy   string     `bson:"changed_by"`
	ChangedAt   time.Time  `bson:"changed_at"`
}

func toVersionDoc(v *domain.UserVersion) mongoVersion {
	return mongoVersion{
		ID:          v.ID,
		UserID:      v.UserID,
		Email:       v.Email,
		FirstName:   v.FirstName,
		LastName:    v.LastName,
		Address:     v.Address,
		DateOfBirth: v.DateOfBirth,
		Role:        string(v.Role),
		IsActive:    v.IsActive,
		ChangedBy:   v.ChangedBy,
		ChangedAt:   v.ChangedAt,
	}
}

func (d mongoVersion) toDomain() domain.UserVersion {
	return domain.UserVersion{
		ID:          d.ID,
		UserID:      d.UserID,
		Email:       d.Email,
		FirstName:   d.FirstName,
		LastName:    d.LastName,
		Address:     d.Address,
		DateOfBirth: d.DateOfBirth,
		Role:        domain.Role(d.Role),
		IsActive:    d.IsActive,
		ChangedBy:   d.ChangedBy,
		ChangedAt:   d.ChangedAt,
	}
}

func (r *MongoVersionRepository) Append(ctx context.Context, version *domain.UserVersion) (int64, error) {
	id, err := r.seq.Next(ctx, versionsCollection)
	if err != nil {
		return 0, err
	}
	version.ID = id

	if _, err := r.coll.InsertOne(ctx, toVersionDoc(version)); err != nil {
		return 0, fmt.Errorf("insert version: %w", err)
	}
	return id, nil
}

func (r *MongoVersionRepository) FindByID(ctx context.Context, userID, versionID int64) (*domain.UserVersion, error) {
	var doc mongoVersion
	err := r.coll.FindOne(ctx, bson.M{"_id": versionID, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVersionNotFound
		}
		return nil, fmt.Errorf("find version: %w", err)
	}
	v := doc.toDomain()
	return &v, nil
}

func (r *MongoVersionRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]domain.UserVersion, int64, error) {
	filter := bson.M{"user_id": userID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count versions: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "changed_at", Value: -1}}).
		SetSkip(int64(page-1) * int64(pageSize)).
		SetLimit(int64(pageSize))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list versions: %w", err)
	}
	defer cur.Close(ctx)

	var items []domain.UserVersion
	for cur.Next(ctx) {
		var doc mongoVersion
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode version: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list versions: %w", err)
	}

	return items, total, nil
}
