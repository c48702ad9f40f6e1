package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLen is the shortest password accepted at sign-up.
const MinPasswordLen = 8

// ErrInvalidCredentials is returned when a password does not match its hash.
var ErrInvalidCredentials = errors.New("invalid email or password")

// HashPassword hashes a password with bcrypt at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if len(password) < MinPasswordLen {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a password with a bcrypt hash.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Decoy holds the hash of a password nobody has. Checking against it costs
// the same bcrypt work as checking a real account, so a sign-in for an
// unknown email takes as long as one with a wrong password.
type Decoy struct {
	cost int
	once sync.Once
	hash []byte
	used atomic.Bool
}

// NewDecoy returns a decoy hashed at cost. The hash is built on first use.
func NewDecoy(cost int) *Decoy {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Decoy{cost: cost}
}

// Check compares password against the decoy and always fails.
func (d *Decoy) Check(password string) error {
	d.once.Do(func() {
		secret := make([]byte, 32)
		_, _ = rand.Read(secret)
		// Hex keeps the decoy within bcrypt's 72 byte limit.
		d.hash, _ = bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(secret)), d.cost)
	})
	_ = bcrypt.CompareHashAndPassword(d.hash, []byte(password))
	d.used.Store(true)
	return ErrInvalidCredentials
}

// Used reports whether Check has run.
func (d *Decoy) Used() bool {
	return d.used.Load()
}
