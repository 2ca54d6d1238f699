package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mvilela/sociable/internal/domain"
)

type PostRepo struct {
	coll *mongo.Collection
}

func NewPostRepo(db *mongo.Database) *PostRepo {
	return &PostRepo{coll: db.Collection("posts")}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, post)
	if err != nil {
		return err
	}

	post.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error) {
	var p domain.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByUser returns all posts owned by userID, newest first, uncapped.
func (r *PostRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Post, error) {
	return r.list(ctx, bson.M{"userId": userID}, 0)
}

// ListByUsers returns posts owned by any of userIDs, newest first, capped
// at limit when limit > 0.
func (r *PostRepo) ListByUsers(ctx context.Context, userIDs []primitive.ObjectID, limit int64) ([]domain.Post, error) {
	return r.list(ctx, bson.M{"userId": bson.M{"$in": userIDs}}, limit)
}

func (r *PostRepo) UpdateLikes(ctx context.Context, id primitive.ObjectID, likes domain.LikeSet) (*domain.Post, error) {
	update := bson.M{"$set": bson.M{
		"likes":     likes,
		"updatedAt": time.Now().UTC(),
	}}

	var p domain.Post
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) list(ctx context.Context, filter bson.M, limit int64) ([]domain.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	posts := []domain.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
