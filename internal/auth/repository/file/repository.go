// Package file persists the account collection as a single JSON document
// that is read and rewritten wholesale on each mutation, matching the
// store's unit of consistency. All access is serialized behind the
// repository mutex and every rewrite goes through a temp-file rename, so
// concurrent mutations cannot lose writes and a crash never leaves a
// truncated store.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/VReis17/auth-service/internal/auth/domain"
	autherror "github.com/VReis17/auth-service/internal/errors"
)

type record struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"passwordHash"`
	LoginAttempts   int        `json:"loginAttempts"`
	IsLocked        bool       `json:"isLocked"`
	ResetCode       string     `json:"resetCode,omitempty"`
	ResetCodeExpiry *time.Time `json:"resetCodeExpiry,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

type FileRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{path: path}
}

func (r *FileRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].Email == email {
			return toAccount(&records[i]), nil
		}
	}
	return nil, nil
}

func (r *FileRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == id {
			return toAccount(&records[i]), nil
		}
	}
	return nil, nil
}

func (r *FileRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].Email == account.Email {
			return autherror.ErrDuplicateEmail
		}
	}

	records = append(records, toRecord(account))
	return r.save(records)
}

func (r *FileRepository) Update(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == account.ID {
			records[i] = toRecord(account)
			return r.save(records)
		}
	}
	return autherror.ErrAccountNotFound
}

func (r *FileRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)
			return r.save(records)
		}
	}
	return autherror.ErrAccountNotFound
}

func (r *FileRepository) ListAll(ctx context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.load()
	if err != nil {
		return nil, err
	}

	accounts := make([]domain.Account, 0, len(records))
	for i := range records {
		a := toAccount(&records[i])
		a.PasswordHash = ""
		a.ClearResetCode()
		accounts = append(accounts, *a)
	}
	return accounts, nil
}

// load reads the whole collection. A missing file is an empty collection.
func (r *FileRepository) load() ([]record, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: reading %s: %v", autherror.ErrStorage, r.path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", autherror.ErrStorage, r.path, err)
	}
	return records, nil
}

// save rewrites the whole collection atomically: marshal, write to a temp
// file in the same directory, then rename over the store.
func (r *FileRepository) save(records []record) error {
	if records == nil {
		records = []record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding accounts: %v", autherror.ErrStorage, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", autherror.ErrStorage, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "users-*.json.tmp")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", autherror.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: writing %s: %v", autherror.ErrStorage, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: closing %s: %v", autherror.ErrStorage, tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: replacing %s: %v", autherror.ErrStorage, r.path, err)
	}
	return nil
}

func toRecord(a *domain.Account) record {
	rec := record{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		PasswordHash:  a.PasswordHash,
		LoginAttempts: a.LoginAttempts,
		IsLocked:      a.IsLocked,
		ResetCode:     a.ResetCode,
		CreatedAt:     a.CreatedAt,
	}
	if a.HasResetCode() {
		expiry := a.ResetCodeExpiry
		rec.ResetCodeExpiry = &expiry
	}
	return rec
}

func toAccount(rec *record) *domain.Account {
	a := &domain.Account{
		ID:            rec.ID,
		Name:          rec.Name,
		Email:         rec.Email,
		PasswordHash:  rec.PasswordHash,
		LoginAttempts: rec.LoginAttempts,
		IsLocked:      rec.IsLocked,
		ResetCode:     rec.ResetCode,
		CreatedAt:     rec.CreatedAt,
	}
	if rec.ResetCodeExpiry != nil {
		a.ResetCodeExpiry = *rec.ResetCodeExpiry
	}
	return a
}
