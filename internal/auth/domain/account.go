package domain

import "time"

// Account is the stored credential record for a single registered user.
// ResetCode and ResetCodeExpiry are set together by a recovery request and
// cleared together on consumption; an empty ResetCode means no code is
// outstanding and ResetCodeExpiry is the zero time.
type Account struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	LoginAttempts   int
	IsLocked        bool
	ResetCode       string
	ResetCodeExpiry time.Time
	CreatedAt       time.Time
}

// HasResetCode reports whether a recovery code is currently outstanding.
func (a *Account) HasResetCode() bool {
	return a.ResetCode != ""
}

// ClearResetCode removes any outstanding recovery code and its expiry.
func (a *Account) ClearResetCode() {
	a.ResetCode = ""
	a.ResetCodeExpiry = time.Time{}
}
