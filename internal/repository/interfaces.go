package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvilela/sociable/internal/domain"
)

// ErrDuplicate is returned by Create/Update when the store rejects a write
// because of a unique-index violation (only the email field is unique).
var ErrDuplicate = errors.New("duplicate unique field")

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateFriends(ctx context.Context, id primitive.ObjectID, friends []primitive.ObjectID) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Post, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Post, error)
	ListByUsers(ctx context.Context, userIDs []primitive.ObjectID, limit int64) ([]domain.Post, error)
	UpdateLikes(ctx context.Context, id primitive.ObjectID, likes domain.LikeSet) (*domain.Post, error)
}
