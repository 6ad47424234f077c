// Package postgres stores one account per row. The unique index on email
// enforces the duplicate-email contract at the database level.
//
// Expected schema:
//
//	CREATE TABLE accounts (
//	    id                UUID PRIMARY KEY,
//	    name              TEXT NOT NULL,
//	    email             TEXT NOT NULL UNIQUE,
//	    password_hash     TEXT NOT NULL,
//	    login_attempts    INT NOT NULL DEFAULT 0,
//	    is_locked         BOOLEAN NOT NULL DEFAULT FALSE,
//	    reset_code        TEXT,
//	    reset_code_expiry TIMESTAMPTZ,
//	    created_at        TIMESTAMPTZ NOT NULL
//	);
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VReis17/auth-service/internal/auth/domain"
	autherror "github.com/VReis17/auth-service/internal/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool the repository uses; pgxmock satisfies
// it in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db DB
}

func NewPostgresRepository(db DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `
		SELECT id, name, email, password_hash, login_attempts, is_locked, reset_code, reset_code_expiry, created_at
		FROM accounts
		WHERE email = $1
		LIMIT 1;
	`
	return r.scanAccount(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `
		SELECT id, name, email, password_hash, login_attempts, is_locked, reset_code, reset_code_expiry, created_at
		FROM accounts
		WHERE id = $1
		LIMIT 1;
	`
	return r.scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) Create(ctx context.Context, account *domain.Account) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO accounts (id, name, email, password_hash, login_attempts, is_locked, reset_code, reset_code_expiry, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `, account.ID, account.Name, account.Email, account.PasswordHash, account.LoginAttempts,
		account.IsLocked, nullableCode(account), nullableExpiry(account), account.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return autherror.ErrDuplicateEmail
	}
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, account *domain.Account) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE accounts
		SET name = $2, email = $3, password_hash = $4, login_attempts = $5, is_locked = $6,
		    reset_code = $7, reset_code_expiry = $8
		WHERE id = $1
	`, account.ID, account.Name, account.Email, account.PasswordHash, account.LoginAttempts,
		account.IsLocked, nullableCode(account), nullableExpiry(account))
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return autherror.ErrAccountNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return autherror.ErrAccountNotFound
	}
	return nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, email, login_attempts, is_locked, created_at
		FROM accounts
		ORDER BY created_at;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.LoginAttempts, &a.IsLocked, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}

	return accounts, nil
}

func (r *PostgresRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account   domain.Account
		resetCode *string
		expiry    *time.Time
	)

	err := row.Scan(&account.ID, &account.Name, &account.Email, &account.PasswordHash,
		&account.LoginAttempts, &account.IsLocked, &resetCode, &expiry, &account.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if resetCode != nil {
		account.ResetCode = *resetCode
	}
	if expiry != nil {
		account.ResetCodeExpiry = *expiry
	}
	return &account, nil
}

func nullableCode(a *domain.Account) *string {
	if !a.HasResetCode() {
		return nil
	}
	code := a.ResetCode
	return &code
}

func nullableExpiry(a *domain.Account) *time.Time {
	if !a.HasResetCode() {
		return nil
	}
	expiry := a.ResetCodeExpiry
	return &expiry
}
