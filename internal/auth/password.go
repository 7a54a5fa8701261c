package auth

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor for stored author passwords.
//
// Cost 12 takes roughly 250ms on a modern server: negligible for a login,
// expensive for anyone trying passwords offline against a leaked table.
const DefaultCost = 12

// MaxPasswordBytes is bcrypt's input limit. Longer input is silently
// truncated by bcrypt, so Hash rejects it instead.
const MaxPasswordBytes = 72

// ErrPasswordMismatch is returned by Verify when the password is wrong.
var ErrPasswordMismatch = errors.New("auth: password does not match")

// PasswordService hashes and verifies author passwords with bcrypt.
//
// The cost is a field so tests can drop to bcrypt.MinCost (4) and hash in
// microseconds.
type PasswordService struct {
	cost int

	// dummy is a hash of a fixed string at the same cost. Login compares
	// against it when the username does not exist so that a miss takes as
	// long as a wrong password.
	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordService returns a service using DefaultCost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: DefaultCost}
}

// NewPasswordServiceWithCost returns a service using the given cost. Values
// outside bcrypt's range fall back to DefaultCost.
//
// Tests in other packages use bcrypt.MinCost. Never use that in production.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &PasswordService{cost: cost}
}

// Hash returns the bcrypt hash of plaintext, e.g.
//
//	$2a$12$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy
//
// The salt and cost are embedded in the output, so the string is all the
// users table needs.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > MaxPasswordBytes {
		return "", fmt.Errorf("auth: password must be %d bytes or fewer", MaxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify returns nil when plaintext matches hash and ErrPasswordMismatch when
// it does not. Any other error means hash is not a usable bcrypt hash.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
}

// VerifyNothing burns the same time as a real Verify and always fails. It is
// called when a login names an unknown user.
func (p *PasswordService) VerifyNothing(plaintext string) error {
	p.dummyOnce.Do(func() {
		p.dummy, _ = bcrypt.GenerateFromPassword([]byte("blogstack-dummy-password"), p.cost)
	})
	_ = bcrypt.CompareHashAndPassword(p.dummy, []byte(plaintext))
	return ErrPasswordMismatch
}
