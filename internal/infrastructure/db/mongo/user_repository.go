package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/usermgmt/user-management-api/internal/core/domain"
)

const usersCollection = "users"

const queryTimeout = 10 * time.Second

// UserRepository is the MongoDB implementation of ports.UserRepository.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty"`
	Name                   string             `bson:"name"`
	Email                  string             `bson:"email"`
	PasswordHash           string             `bson:"password_hash"`
	Status                 string             `bson:"status"`
	EmailVerificationToken *string            `bson:"email_verification_token,omitempty"`
	RegistrationTime       time.Time          `bson:"registration_time"`
	LastLoginTime          *time.Time         `bson:"last_login_time,omitempty"`
	LastActivityTime       *time.Time         `bson:"last_activity_time,omitempty"`
}

func toDomain(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:                     mu.ID.Hex(),
		Name:                   mu.Name,
		Email:                  mu.Email,
		PasswordHash:           mu.PasswordHash,
		Status:                 domain.Status(mu.Status),
		EmailVerificationToken: mu.EmailVerificationToken,
		RegistrationTime:       mu.RegistrationTime.UTC(),
		LastLoginTime:          mu.LastLoginTime,
		LastActivityTime:       mu.LastActivityTime,
	}
}

// Create inserts a new account. A duplicate email, enforced by the unique
// index, surfaces as domain.ErrEmailExists.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := mongoUser{
		Name:                   user.Name,
		Email:                  user.Email,
		PasswordHash:           user.PasswordHash,
		Status:                 string(user.Status),
		EmailVerificationToken: user.EmailVerificationToken,
		RegistrationTime:       user.RegistrationTime,
		LastLoginTime:          user.LastLoginTime,
		LastActivityTime:       user.LastActivityTime,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomain(&mu), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return toDomain(&mu), nil
}

// ListAll returns every account ordered by last login time descending.
// A descending sort places null and missing values last, so accounts that
// never logged in end up at the bottom.
func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "last_login_time", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, *toDomain(&mu))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	doc := mongoUser{
		ID:                     oid,
		Name:                   user.Name,
		Email:                  user.Email,
		PasswordHash:           user.PasswordHash,
		Status:                 string(user.Status),
		EmailVerificationToken: user.EmailVerificationToken,
		RegistrationTime:       user.RegistrationTime,
		LastLoginTime:          user.LastLoginTime,
		LastActivityTime:       user.LastActivityTime,
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete permanently removes the account. The email becomes available for a
// fresh registration immediately.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// DeleteWhereUnverified removes every unverified account in one operation.
// The filter is on status only, never on token presence.
func (r *UserRepository) DeleteWhereUnverified(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"status": string(domain.StatusUnverified)})
	if err != nil {
		return 0, fmt.Errorf("delete unverified users: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return n > 0, nil
}

// ConsumeVerificationToken atomically clears the matching token and, unless
// the account is blocked, activates it. The single findOneAndUpdate makes
// consumption an irreversible one-shot: concurrent calls with the same token
// cannot both succeed.
func (r *UserRepository) ConsumeVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.A{
		bson.M{"$set": bson.M{
			"status": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", string(domain.StatusBlocked)}},
				"$status",
				string(domain.StatusActive),
			}},
			"email_verification_token": nil,
		}},
	}

	var mu mongoUser
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"email_verification_token": token},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("consume verification token: %w", err)
	}
	return toDomain(&mu), nil
}

// EnsureIndexes creates the indexes the repository relies on: the unique
// email index backs the duplicate-registration guard, the token index backs
// verification lookups.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "email_verification_token", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
