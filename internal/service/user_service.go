package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/mvilela/sociable/internal/domain"
	"github.com/mvilela/sociable/internal/repository"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNoFields         = errors.New("no fields provided for update")
	ErrFriendLimit      = errors.New("maximum number of friends reached")
	ErrCannotFriendSelf = errors.New("cannot add yourself as a friend")
)

// friendLookupConcurrency bounds the parallel friend-detail fetches in
// ListFriends.
const friendLookupConcurrency = 8

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Show returns the target user's profile. When the target is not the caller
// the response is annotated with isFriend, computed against the caller's
// friend set; a profile viewed by its owner never carries the field.
func (s *UserService) Show(ctx context.Context, targetID, callerID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if targetID != callerID {
		caller, err := s.userRepo.GetByID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if caller == nil {
			return nil, ErrUserNotFound
		}

		isFriend := caller.HasFriend(targetID)
		user.IsFriend = &isFriend
	}

	user.Sanitize()
	return user, nil
}

type UpdateInput struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Location   string `json:"location"`
	Occupation string `json:"occupation"`
	Twitter    string `json:"twitter"`
	Linkedin   string `json:"linkedin"`
	// Filenames produced by the upload receiver, not raw client input.
	PicturePath string `json:"-"`
	CoverPath   string `json:"-"`
}

// Update applies exactly one update group to the caller's own profile.
// Groups are matched in a fixed order and the first non-empty one wins:
// profile fields, then email, then password, then picture, then cover.
func (s *UserService) Update(ctx context.Context, callerID primitive.ObjectID, input UpdateInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	switch {
	case input.FirstName != "" && input.LastName != "" && input.Location != "" && input.Occupation != "":
		user.FirstName = input.FirstName
		user.LastName = input.LastName
		user.Location = input.Location
		user.Occupation = input.Occupation
		user.Twitter = input.Twitter
		user.Linkedin = input.Linkedin
	case input.Email != "":
		// Stored in the same normalized form Register and Login use, so
		// the user can still log in afterwards.
		user.Email = strings.ToLower(strings.TrimSpace(input.Email))
	case input.Password != "":
		hash, err := hashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.Password = hash
	case input.PicturePath != "":
		user.PicturePath = input.PicturePath
	case input.CoverPath != "":
		user.CoverPath = input.CoverPath
	default:
		return nil, ErrNoFields
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("updating user: %w", err)
	}

	user.Sanitize()
	return user, nil
}

// ListFriends resolves the target user's friends to summaries. Friend
// lookups that fail are dropped from the result instead of failing the
// whole call.
func (s *UserService) ListFriends(ctx context.Context, targetID, callerID primitive.ObjectID) ([]domain.FriendSummary, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if len(user.Friends) == 0 {
		return []domain.FriendSummary{}, nil
	}

	caller := user
	if targetID != callerID {
		caller, err = s.userRepo.GetByID(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if caller == nil {
			return nil, ErrUserNotFound
		}
	}

	results := make([]*domain.FriendSummary, len(user.Friends))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(friendLookupConcurrency)

	for i, friendID := range user.Friends {
		g.Go(func() error {
			friend, err := s.userRepo.GetByID(gctx, friendID)
			if err != nil || friend == nil {
				// Dangling reference or transient failure: drop it.
				return nil
			}

			isFriend := targetID == callerID || caller.HasFriend(friendID)
			results[i] = &domain.FriendSummary{
				ID:          friend.ID,
				FirstName:   friend.FirstName,
				LastName:    friend.LastName,
				PicturePath: friend.PicturePath,
				Location:    friend.Location,
				Occupation:  friend.Occupation,
				IsFriend:    isFriend,
			}
			return nil
		})
	}
	// Closures never return errors; failed lookups are dropped above.
	_ = g.Wait()

	friends := make([]domain.FriendSummary, 0, len(results))
	for _, f := range results {
		if f != nil {
			friends = append(friends, *f)
		}
	}
	return friends, nil
}

// ToggleFriend symmetrically adds or removes the mutual relation between
// the caller and the other user, based on its current presence in the
// caller's list. Both sides are persisted before the call succeeds; the
// two writes are not transactional.
func (s *UserService) ToggleFriend(ctx context.Context, callerID, friendID primitive.ObjectID) error {
	if callerID == friendID {
		return ErrCannotFriendSelf
	}

	user, err := s.userRepo.GetByID(ctx, callerID)
	if err != nil {
		return err
	}
	friend, err := s.userRepo.GetByID(ctx, friendID)
	if err != nil {
		return err
	}
	if user == nil || friend == nil {
		return ErrUserNotFound
	}

	// The cap blocks any toggle, including removals, once either side is
	// full.
	if len(user.Friends) >= domain.MaxFriends || len(friend.Friends) >= domain.MaxFriends {
		return ErrFriendLimit
	}

	if user.HasFriend(friendID) {
		user.Friends = removeID(user.Friends, friendID)
		friend.Friends = removeID(friend.Friends, callerID)
	} else {
		user.Friends = append(user.Friends, friendID)
		friend.Friends = append(friend.Friends, callerID)
	}

	if err := s.userRepo.UpdateFriends(ctx, user.ID, user.Friends); err != nil {
		return fmt.Errorf("updating friends: %w", err)
	}
	if err := s.userRepo.UpdateFriends(ctx, friend.ID, friend.Friends); err != nil {
		return fmt.Errorf("updating friend's friends: %w", err)
	}
	return nil
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
