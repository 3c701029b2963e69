package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talenthub/jobboard-api/internal/core/domain"
)

const userCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

// EnsureIndexes creates the unique email index. Call once at startup.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

type mongoUser struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	Email              string             `bson:"email"`
	PasswordHash       string             `bson:"password_hash"`
	Role               string             `bson:"role"`
	IsAdmin            bool               `bson:"is_admin"`
	IsActive           bool               `bson:"is_active"`
	FullName           string             `bson:"full_name,omitempty"`
	Headline           string             `bson:"headline,omitempty"`
	ProfilePicturePath string             `bson:"profile_picture_path,omitempty"`
	ResumePath         string             `bson:"resume_path,omitempty"`
	SavedJobIDs        []string           `bson:"saved_job_ids,omitempty"`
	CreatedAt          int64              `bson:"created_at"`
	UpdatedAt          int64              `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:                 mu.ID.Hex(),
		Email:              mu.Email,
		PasswordHash:       mu.PasswordHash,
		Role:               mu.Role,
		IsAdmin:            mu.IsAdmin,
		IsActive:           mu.IsActive,
		FullName:           mu.FullName,
		Headline:           mu.Headline,
		ProfilePicturePath: mu.ProfilePicturePath,
		ResumePath:         mu.ResumePath,
		SavedJobIDs:        mu.SavedJobIDs,
		CreatedAt:          unixToTime(mu.CreatedAt),
		UpdatedAt:          unixToTime(mu.UpdatedAt),
	}
}

// pathField maps an upload purpose to its bson field name.
func pathField(p domain.Purpose) string {
	if p == domain.PurposeAvatar {
		return "profile_picture_path"
	}
	return "resume_path"
}

func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		Email:              user.Email,
		PasswordHash:       user.PasswordHash,
		Role:               user.Role,
		IsAdmin:            user.IsAdmin,
		IsActive:           user.IsActive,
		FullName:           user.FullName,
		Headline:           user.Headline,
		ProfilePicturePath: user.ProfilePicturePath,
		ResumePath:         user.ResumePath,
		CreatedAt:          user.CreatedAt.Unix(),
		UpdatedAt:          user.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) List(ctx context.Context, limit, offset int64) ([]*domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetSkip(offset)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, mu.toDomain())
	}
	return users, cur.Err()
}

func (r *MongoUserRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) UpdateProfile(ctx context.Context, id, fullName, headline string) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"full_name":  fullName,
		"headline":   headline,
		"updated_at": time.Now().Unix(),
	}})
}

func (r *MongoUserRepository) SetRole(ctx context.Context, id, role string, isAdmin bool) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"role":       role,
		"is_admin":   isAdmin,
		"updated_at": time.Now().Unix(),
	}})
}

func (r *MongoUserRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		"is_active":  active,
		"updated_at": time.Now().Unix(),
	}})
}

func (r *MongoUserRepository) SetUploadPath(ctx context.Context, id string, purpose domain.Purpose, path string) error {
	field := pathField(purpose)
	if path == "" {
		return r.updateByID(ctx, id, bson.M{
			"$unset": bson.M{field: ""},
			"$set":   bson.M{"updated_at": time.Now().Unix()},
		})
	}
	return r.updateByID(ctx, id, bson.M{"$set": bson.M{
		field:        path,
		"updated_at": time.Now().Unix(),
	}})
}

func (r *MongoUserRepository) AddSavedJob(ctx context.Context, id, jobID string) error {
	return r.updateByID(ctx, id, bson.M{"$addToSet": bson.M{"saved_job_ids": jobID}})
}

func (r *MongoUserRepository) RemoveSavedJob(ctx context.Context, id, jobID string) error {
	return r.updateByID(ctx, id, bson.M{"$pull": bson.M{"saved_job_ids": jobID}})
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListUploadPaths projects every non-empty avatar and resume path. The
// sweeper builds its referenced set from this.
func (r *MongoUserRepository) ListUploadPaths(ctx context.Context) ([]string, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"profile_picture_path": bson.M{"$exists": true, "$ne": ""}},
		bson.M{"resume_path": bson.M{"$exists": true, "$ne": ""}},
	}}
	opts := options.Find().SetProjection(bson.M{"profile_picture_path": 1, "resume_path": 1})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list upload paths: %w", err)
	}
	defer cur.Close(ctx)

	var paths []string
	for cur.Next(ctx) {
		var mu mongoUser
		if err := cur.Decode(&mu); err != nil {
			return nil, fmt.Errorf("decode upload paths: %w", err)
		}
		if mu.ProfilePicturePath != "" {
			paths = append(paths, mu.ProfilePicturePath)
		}
		if mu.ResumePath != "" {
			paths = append(paths, mu.ResumePath)
		}
	}
	return paths, cur.Err()
}

func (r *MongoUserRepository) CountByRole(ctx context.Context) (map[string]int64, error) {
	cur, err := r.coll.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$role", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var row struct {
			Role  string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode role count: %w", err)
		}
		counts[row.Role] = row.Count
	}
	return counts, cur.Err()
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
