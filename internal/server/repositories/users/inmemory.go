package users

import (
	"context"
	"sync"

	"github.com/dkovalev/accountd/internal/common"
	"github.com/dkovalev/accountd/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository keeps records in a map. Used in tests and as a
// throwaway backend for local runs without a store.
type InMemoryRepository struct {
	mu    sync.Mutex
	users map[string]models.User // keyed by id
	order []string               // insertion order, the "store-native" order
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]models.User)}
}

func (r *InMemoryRepository) EnsureCollection(ctx context.Context) error {
	return nil
}

func (r *InMemoryRepository) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrAlreadyExists
		}
	}

	user.ID = uuid.NewString()
	r.users[user.ID] = *user
	r.order = append(r.order, user.ID)

	return user, nil
}

func (r *InMemoryRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if u := r.users[id]; u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *InMemoryRepository) ListPage(ctx context.Context, pageSize int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := []models.User{}
	for _, id := range r.order {
		if len(items) == pageSize {
			break
		}
		items = append(items, r.users[id])
	}
	return items, nil
}

var _ Repository = (*InMemoryRepository)(nil)
var _ Repository = (*PostgresRepository)(nil)
var _ Repository = (*MongoRepository)(nil)
