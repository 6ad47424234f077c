package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/VReis17/auth-service/internal/auth/dto"
	"github.com/VReis17/auth-service/internal/auth/repository/memory"
	"github.com/VReis17/auth-service/internal/auth/service"
	autherror "github.com/VReis17/auth-service/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end lifecycle tests running the real service against a fresh
// in-memory store, real bcrypt (min cost) and real tokens.

func newFlowService(t *testing.T) (*service.AuthService, *memory.MemoryRepository) {
	t.Helper()
	store := memory.NewMemoryRepository()
	tokens := service.NewTokenService("test-secret", 24)
	return service.NewAuthService(store, tokens, testConfig(), nil), store
}

func TestLockout_AfterThresholdEvenCorrectPasswordIsRejected(t *testing.T) {
	s, store := newFlowService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@x.com", Password: "123456"})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := s.Login(ctx, dto.LoginInput{Email: "a@x.com", Password: "wrong"})
		assert.Equal(t, autherror.ErrInvalidCredentials, err)
	}

	account, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, account.IsLocked)
	assert.Equal(t, 3, account.LoginAttempts)

	_, err = s.Login(ctx, dto.LoginInput{Email: "a@x.com", Password: "123456"})
	assert.Equal(t, autherror.ErrAccountLocked, err)

	// The lock is sticky: the counter does not grow past the threshold.
	account, err = store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, 3, account.LoginAttempts)
}

func TestLogin_SuccessResetsAttempts(t *testing.T) {
	s, store := newFlowService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@x.com", Password: "123456"})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := s.Login(ctx, dto.LoginInput{Email: "a@x.com", Password: "wrong"})
		assert.Equal(t, autherror.ErrInvalidCredentials, err)
	}

	result, err := s.Login(ctx, dto.LoginInput{Email: "a@x.com", Password: "123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	account, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Zero(t, account.LoginAttempts)
	assert.False(t, account.IsLocked)
}

func TestPasswordReset_UnlocksLockedAccount(t *testing.T) {
	s, store := newFlowService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@x.com", Password: "123456"})
	require.NoError(t, err)

	// Lock the account.
	for i := 0; i < 3; i++ {
		_, _ = s.Login(ctx, dto.LoginInput{Email: "a@x.com", Password: "wrong"})
	}
	_, err = s.Login(ctx, dto.LoginInput{Email: "a@x.com", Password: "123456"})
	require.Equal(t, autherror.ErrAccountLocked, err)

	code, err := s.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)
	require.Regexp(t, "^[0-9A-F]{8}$", code)

	err = s.ResetPassword(ctx, dto.ResetPasswordInput{
		Email:       "a@x.com",
		ResetCode:   code,
		NewPassword: "new-secret",
	})
	require.NoError(t, err)

	account, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, account.IsLocked)
	assert.Zero(t, account.LoginAttempts)
	assert.False(t, account.HasResetCode())

	// Old password is gone, new one works.
	_, err = s.Login(ctx, dto.LoginInput{Email: "a@x.com", Password: "123456"})
	assert.Equal(t, autherror.ErrInvalidCredentials, err)

	result, err := s.Login(ctx, dto.LoginInput{Email: "a@x.com", Password: "new-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestPasswordReset_ConsumedCodeCannotBeReused(t *testing.T) {
	s, _ := newFlowService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@x.com", Password: "123456"})
	require.NoError(t, err)

	code, err := s.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)

	require.NoError(t, s.ResetPassword(ctx, dto.ResetPasswordInput{
		Email: "a@x.com", ResetCode: code, NewPassword: "first",
	}))

	err = s.ResetPassword(ctx, dto.ResetPasswordInput{
		Email: "a@x.com", ResetCode: code, NewPassword: "second",
	})
	assert.Equal(t, autherror.ErrInvalidOrExpiredCode, err)
}

func TestForgotPassword_NewRequestOverwritesPriorCode(t *testing.T) {
	s, _ := newFlowService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@x.com", Password: "123456"})
	require.NoError(t, err)

	first, err := s.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)
	second, err := s.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)

	if first != second {
		err = s.ResetPassword(ctx, dto.ResetPasswordInput{
			Email: "a@x.com", ResetCode: first, NewPassword: "x",
		})
		assert.Equal(t, autherror.ErrInvalidOrExpiredCode, err)
	}

	require.NoError(t, s.ResetPassword(ctx, dto.ResetPasswordInput{
		Email: "a@x.com", ResetCode: second, NewPassword: "new-secret",
	}))
}

func TestRegister_ConcurrentSameEmailExactlyOneSucceeds(t *testing.T) {
	s, store := newFlowService(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Register(ctx, dto.RegisterInput{
				Name: "A", Email: "race@x.com", Password: "123456",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, duplicates int
	for err := range results {
		switch err {
		case nil:
			successes++
		case autherror.ErrDuplicateEmail:
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, duplicates)

	users, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLogin_ConcurrentFailuresNeverLoseAnIncrement(t *testing.T) {
	s, store := newFlowService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@x.com", Password: "123456"})
	require.NoError(t, err)

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Login(ctx, dto.LoginInput{Email: "a@x.com", Password: "wrong"})
		}()
	}
	wg.Wait()

	// Attempts past the threshold short-circuit on the lock, so the counter
	// lands exactly on the threshold and never beyond it.
	account, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, account.IsLocked)
	assert.Equal(t, 3, account.LoginAttempts)
}

func TestEmailMatching_IsExact(t *testing.T) {
	s, _ := newFlowService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, dto.RegisterInput{Name: "A", Email: "Case@X.com", Password: "123456"})
	require.NoError(t, err)

	_, err = s.Login(ctx, dto.LoginInput{Email: "case@x.com", Password: "123456"})
	assert.Equal(t, autherror.ErrAccountNotFound, err)

	_, err = s.Login(ctx, dto.LoginInput{Email: "Case@X.com", Password: "123456"})
	assert.NoError(t, err)
}

func TestResetCodeExpiry_IsThirtyMinutesOut(t *testing.T) {
	s, store := newFlowService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, dto.RegisterInput{Name: "A", Email: "a@x.com", Password: "123456"})
	require.NoError(t, err)

	_, err = s.ForgotPassword(ctx, "a@x.com")
	require.NoError(t, err)

	account, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, account.HasResetCode())
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), account.ResetCodeExpiry, 5*time.Second)
}
