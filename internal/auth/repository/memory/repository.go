// Package memory is a map-backed AccountStore used by tests and as an
// ephemeral backend. Records are copied on the way in and out so callers
// never alias stored state.
package memory

import (
	"context"
	"sync"

	"github.com/VReis17/auth-service/internal/auth/domain"
	autherror "github.com/VReis17/auth-service/internal/errors"
)

type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]domain.Account
	byEmail  map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[string]domain.Account),
		byEmail:  make(map[string]string),
	}
}

func (r *MemoryRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	account := r.accounts[id]
	return &account, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

func (r *MemoryRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return autherror.ErrDuplicateEmail
	}

	r.accounts[account.ID] = *account
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *MemoryRepository) Update(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.accounts[account.ID]
	if !ok {
		return autherror.ErrAccountNotFound
	}

	if stored.Email != account.Email {
		delete(r.byEmail, stored.Email)
		r.byEmail[account.Email] = account.ID
	}
	r.accounts[account.ID] = *account
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return autherror.ErrAccountNotFound
	}

	delete(r.byEmail, account.Email)
	delete(r.accounts, id)
	return nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		a.PasswordHash = ""
		a.ClearResetCode()
		accounts = append(accounts, a)
	}
	return accounts, nil
}
