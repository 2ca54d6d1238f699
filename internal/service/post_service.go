package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvilela/sociable/internal/domain"
	"github.com/mvilela/sociable/internal/repository"
)

var ErrPostNotFound = errors.New("post not found")

// feedLimit caps friends-scoped feed queries.
const feedLimit = 50

// PageProfile is the page hint that narrows the post-create feed to the
// author's own posts.
const PageProfile = "profile"

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// Create stores a new post carrying a snapshot of the author's profile
// fields and returns the recomputed feed: the author's own posts when page
// is "profile", otherwise the author's and their friends' posts.
func (s *PostService) Create(ctx context.Context, callerID primitive.ObjectID, description, pictureFilename, page string) ([]domain.Post, error) {
	user, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	post := &domain.Post{
		UserID:          user.ID,
		FirstName:       user.FirstName,
		LastName:        user.LastName,
		Location:        user.Location,
		UserPicturePath: user.PicturePath,
		Description:     description,
		PicturePath:     pictureFilename,
		Likes:           domain.LikeSet{},
		Comments:        []string{},
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	scope := []primitive.ObjectID{user.ID}
	if page != PageProfile {
		scope = append(scope, user.Friends...)
	}
	return s.postRepo.ListByUsers(ctx, scope, feedLimit)
}

// Feed returns posts for the requested user when userID is a valid store
// identifier, otherwise the caller's own-plus-friends feed capped at 50.
// Both are newest first.
func (s *PostService) Feed(ctx context.Context, userID string, callerID primitive.ObjectID) ([]domain.Post, error) {
	if ownerID, err := primitive.ObjectIDFromHex(userID); err == nil {
		return s.postRepo.ListByUser(ctx, ownerID)
	}

	caller, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if caller == nil {
		return nil, ErrUserNotFound
	}

	scope := append([]primitive.ObjectID{caller.ID}, caller.Friends...)
	return s.postRepo.ListByUsers(ctx, scope, feedLimit)
}

// ToggleLike flips the caller's presence in the post's like set and returns
// the updated post.
func (s *PostService) ToggleLike(ctx context.Context, postID, callerID primitive.ObjectID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if post.Likes == nil {
		post.Likes = domain.LikeSet{}
	}
	post.Likes.Toggle(callerID.Hex())

	updated, err := s.postRepo.UpdateLikes(ctx, post.ID, post.Likes)
	if err != nil {
		return nil, fmt.Errorf("updating likes: %w", err)
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	return updated, nil
}
