package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/VReis17/auth-service/config"
	"github.com/VReis17/auth-service/internal/auth/domain"
	"github.com/VReis17/auth-service/internal/auth/dto"
	autherror "github.com/VReis17/auth-service/internal/errors"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService orchestrates the credential lifecycle: registration, login
// with account lockout, recovery-code issuance and password reset.
type AuthService struct {
	store  domain.AccountStore
	tokens TokenGenerator
	cfg    *config.Config
	logger *slog.Logger
	locks  *accountLocks
}

func NewAuthService(store domain.AccountStore, tokens TokenGenerator, cfg *config.Config, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		store:  store,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
		locks:  newAccountLocks(),
	}
}

// Register creates a new unlocked account. The password is hashed before
// any store access so the expensive work never runs under a store lock;
// uniqueness under concurrent registration is the store's contract.
func (s *AuthService) Register(ctx context.Context, input dto.RegisterInput) (*domain.Account, error) {
	existing, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
	}

	if err := s.store.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Login verifies the password and issues a session token. Evaluation order
// is fixed: existence, then lock state, then password. A locked account
// rejects the attempt before the password is looked at and without touching
// the attempt counter; the lock is sticky until a successful password reset.
func (s *AuthService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResult, error) {
	unlock := s.locks.Lock(input.Email)
	defer unlock()

	account, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, autherror.ErrAccountNotFound
	}

	if account.IsLocked {
		return nil, autherror.ErrAccountLocked
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(input.Password)) != nil {
		account.LoginAttempts++
		if account.LoginAttempts >= s.cfg.MaxLoginAttempts {
			account.IsLocked = true
			s.logger.Warn("account locked after repeated failed logins",
				slog.String("email", account.Email),
				slog.Int("attempts", account.LoginAttempts))
		}
		if err := s.store.Update(ctx, account); err != nil {
			return nil, err
		}
		return nil, autherror.ErrInvalidCredentials
	}

	account.LoginAttempts = 0
	if err := s.store.Update(ctx, account); err != nil {
		return nil, err
	}

	token, err := s.tokens.Generate(account.ID, account.Email)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResult{
		Token:  token,
		UserID: account.ID,
		Name:   account.Name,
		Email:  account.Email,
	}, nil
}

// ForgotPassword issues a fresh recovery code, overwriting any outstanding
// one, and returns it to the caller for delivery.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	unlock := s.locks.Lock(email)
	defer unlock()

	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if account == nil {
		return "", autherror.ErrAccountNotFound
	}

	code, err := GenerateResetCode()
	if err != nil {
		return "", err
	}

	account.ResetCode = code
	account.ResetCodeExpiry = time.Now().Add(time.Duration(s.cfg.ResetCodeExpiryMin) * time.Minute)

	if err := s.store.Update(ctx, account); err != nil {
		return "", err
	}

	return code, nil
}

// ResetPassword consumes a recovery code and sets a new password. A wrong
// code and an expired code produce the same error so the caller cannot tell
// which check failed. Success always clears the lock and the attempt
// counter, whatever the prior state.
func (s *AuthService) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(input.Email)
	defer unlock()

	account, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if account == nil {
		return autherror.ErrAccountNotFound
	}

	if !account.HasResetCode() || account.ResetCode != input.ResetCode {
		return autherror.ErrInvalidOrExpiredCode
	}
	if time.Now().After(account.ResetCodeExpiry) {
		return autherror.ErrInvalidOrExpiredCode
	}

	account.PasswordHash = string(hashedPassword)
	account.ClearResetCode()
	account.IsLocked = false
	account.LoginAttempts = 0

	return s.store.Update(ctx, account)
}

// ListUsers returns the sanitized projection of every account.
func (s *AuthService) ListUsers(ctx context.Context) ([]dto.UserOutput, error) {
	accounts, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	users := make([]dto.UserOutput, 0, len(accounts))
	for _, a := range accounts {
		users = append(users, dto.UserOutput{
			ID:            a.ID,
			Name:          a.Name,
			Email:         a.Email,
			LoginAttempts: a.LoginAttempts,
			IsLocked:      a.IsLocked,
			CreatedAt:     a.CreatedAt,
		})
	}

	return users, nil
}

// DeleteAccount removes an account by id.
func (s *AuthService) DeleteAccount(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
