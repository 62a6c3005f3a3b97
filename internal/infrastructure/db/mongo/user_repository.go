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

const usersCollection = "users"

// MongoUserRepository persists user records in the users collection. Numeric
// ids come from the shared counters sequence.
type MongoUserRepository struct {
	coll *mongo.Collection
	seq  *sequences
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection), seq: newSequences(db)}
}

type mongoUser struct {
	ID                  int64      `bson:"_id"`
	Email               string     `bson:"email"`
	PasswordSalt        []byte     `bson:"password_salt"`
	PasswordHash        []byte     `bson:"password_hash"`
	Role                string     `bson:"role"`
	IsActive            bool       `bson:"is_active"`
	FailedLoginAttempts int        `bson:"failed_login_attempts"`
	LockoutEnd          *time.Time `bson:"lockout_end,omitempty"`
	FirstName           string     `bson:"first_name,omitempty"`
	LastName            string     `bson:"last_name,omitempty"`
	Address             string     `bson:"address,omitempty"`
	DateOfBirth         *time.Time `bson:"date_of_birth,omitempty"`
	CreatedAt           time.Time  `bson:"created_at"`
	UpdatedAt           time.Time  `bson:"updated_at"`
}

func toUserDoc(u *domain.User) mongoUser {
	return mongoUser{
		ID:                  u.ID,
		Email:               u.Email,
		PasswordSalt:        u.Credential.Salt,
		PasswordHash:        u.Credential.Hash,
		Role:                string(u.Role),
		IsActive:            u.IsActive,
		FailedLoginAttempts: u.FailedLoginAttempts,
		LockoutEnd:          u.LockoutEnd,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Address:             u.Address,
		DateOfBirth:         u.DateOfBirth,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (d mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                  d.ID,
		Email:               d.Email,
		Credential:          domain.Credential{Salt: d.PasswordSalt, Hash: d.PasswordHash},
		Role:                domain.Role(d.Role),
		IsActive:            d.IsActive,
		FailedLoginAttempts: d.FailedLoginAttempts,
		LockoutEnd:          d.LockoutEnd,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		Address:             d.Address,
		DateOfBirth:         d.DateOfBirth,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	id, err := r.seq.Next(ctx, usersCollection)
	if err != nil {
		return nil, err
	}
	user.ID = id

	if _, err := r.coll.InsertOne(ctx, toUserDoc(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *MongoUserRepository) ExistsAny(ctx context.Context) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, toUserDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var doc mongoUser
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) CountByActive(ctx context.Context) (int64, int64, error) {
	active, err := r.coll.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, 0, fmt.Errorf("count active users: %w", err)
	}
	inactive, err := r.coll.CountDocuments(ctx, bson.M{"is_active": false})
	if err != nil {
		return 0, 0, fmt.Errorf("count inactive users: %w", err)
	}
	return active, inactive, nil
}
