package domain

import "context"

//go:generate mockgen -destination=../../mocks/mock_account_store.go -package=mocks github.com/VReis17/auth-service/internal/auth/domain AccountStore

// AccountStore is the durable mapping from user identity to account record.
// Email lookups are exact-match: no trimming, no case folding.
// FindByEmail and FindByID return (nil, nil) on a miss; the service layer
// decides whether absence is an error.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByID(ctx context.Context, id string) (*Account, error)
	// Create persists a new account. Fails with ErrDuplicateEmail when an
	// account with the same email already exists; the uniqueness check and
	// the insert happen atomically with respect to concurrent Creates.
	Create(ctx context.Context, account *Account) error
	// Update replaces every stored field of the record with the given id.
	// Fails with ErrAccountNotFound when no such record exists.
	Update(ctx context.Context, account *Account) error
	// Delete removes the record with the given id, failing with
	// ErrAccountNotFound when absent.
	Delete(ctx context.Context, id string) error
	// ListAll returns every account with PasswordHash, ResetCode and
	// ResetCodeExpiry stripped, safe for display.
	ListAll(ctx context.Context) ([]Account, error)
}
