package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mvilela/sociable/internal/domain"
	"github.com/mvilela/sociable/internal/repository"
)

// memUserRepo is an in-memory UserRepository. It hands out copies so tests
// mirror the real store: mutating a fetched user does not change the stored
// document until an update is persisted.
type memUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	user.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, existing := range m.users {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}

	user.UpdatedAt = time.Now().UTC()
	m.users[user.ID] = cloneUser(user)
	return nil
}

func (m *memUserRepo) UpdateFriends(_ context.Context, id primitive.ObjectID, friends []primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.users[id]; ok {
		user.Friends = append([]primitive.ObjectID{}, friends...)
	}
	return nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Friends = append([]primitive.ObjectID{}, u.Friends...)
	return &c
}

// memPostRepo is an in-memory PostRepository with strictly increasing
// creation timestamps so ordering assertions are deterministic.
type memPostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*domain.Post
	seq   int
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[primitive.ObjectID]*domain.Post)}
}

func (m *memPostRepo) Create(_ context.Context, post *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Unix(int64(m.seq), 0).UTC()
	post.UpdatedAt = post.CreatedAt

	m.posts[post.ID] = clonePost(post)
	return nil
}

func (m *memPostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return clonePost(post), nil
}

func (m *memPostRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.Post, error) {
	return m.list(func(p *domain.Post) bool { return p.UserID == userID }, 0)
}

func (m *memPostRepo) ListByUsers(_ context.Context, userIDs []primitive.ObjectID, limit int64) ([]domain.Post, error) {
	in := make(map[primitive.ObjectID]bool, len(userIDs))
	for _, id := range userIDs {
		in[id] = true
	}
	return m.list(func(p *domain.Post) bool { return in[p.UserID] }, limit)
}

func (m *memPostRepo) UpdateLikes(_ context.Context, id primitive.ObjectID, likes domain.LikeSet) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, nil
	}

	post.Likes = make(domain.LikeSet, len(likes))
	for k, v := range likes {
		post.Likes[k] = v
	}
	post.UpdatedAt = time.Now().UTC()
	return clonePost(post), nil
}

func (m *memPostRepo) list(match func(*domain.Post) bool, limit int64) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.Post{}
	for _, post := range m.posts {
		if match(post) {
			out = append(out, *clonePost(post))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func clonePost(p *domain.Post) *domain.Post {
	c := *p
	c.Likes = make(domain.LikeSet, len(p.Likes))
	for k, v := range p.Likes {
		c.Likes[k] = v
	}
	c.Comments = append([]string{}, p.Comments...)
	return &c
}

// seedUser registers a user directly in the repo and returns it.
func seedUser(t *testing.T, repo *memUserRepo, firstName, email string) *domain.User {
	t.Helper()

	hash, err := hashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}

	user := &domain.User{
		FirstName:  firstName,
		LastName:   "Tester",
		Email:      email,
		Password:   hash,
		Friends:    []primitive.ObjectID{},
		Location:   "Lisbon",
		Occupation: "Engineer",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}
