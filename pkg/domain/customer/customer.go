package customer

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/amirasaad/brokerage/pkg/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrCustomerNotFound is returned when the customer does not exist.
	ErrCustomerNotFound = fmt.Errorf("customer not found: %w", domain.ErrNotFound)
	// ErrInvalidCredentials is returned for a wrong email or password.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	// ErrPasswordMismatch is returned when the current password does not match.
	ErrPasswordMismatch = fmt.Errorf("current password does not match: %w", domain.ErrUnauthorized)
	// ErrWithdrawPasswordNotSet is returned when checking a fund password that was never set.
	ErrWithdrawPasswordNotSet = fmt.Errorf("withdraw password is not set: %w", domain.ErrValidation)
	// ErrWithdrawPasswordAlreadySet is returned when setting a fund password twice.
	ErrWithdrawPasswordAlreadySet = fmt.Errorf("withdraw password already set: %w", domain.ErrConflict)
	// ErrWeakPassword is returned for passwords shorter than MinPasswordLength.
	ErrWeakPassword = fmt.Errorf("password must be at least %d characters: %w", MinPasswordLength, domain.ErrValidation)
	// ErrInvalidPasswordKind is returned by ParsePasswordKind.
	ErrInvalidPasswordKind = fmt.Errorf("password kind must be login or withdraw: %w", domain.ErrValidation)
)

// MinPasswordLength applies to both login and withdraw passwords.
const MinPasswordLength = 6

// Customer is an authenticated account holder.
type Customer struct {
	ID                   uuid.UUID
	Email                string
	Name                 string
	PasswordHash         string
	WithdrawPasswordHash string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// New validates the email and hashes the password.
func New(email, name, password string) (*Customer, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, domain.Validationf("invalid email %q", email)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Customer{
		ID:           uuid.New(),
		Email:        strings.ToLower(addr.Address),
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// HasWithdrawPassword reports whether a fund password was set.
func (c *Customer) HasWithdrawPassword() bool {
	return c.WithdrawPasswordHash != ""
}

// CheckPassword compares plain against the stored hash of the given kind.
func (c *Customer) CheckPassword(kind PasswordKind, plain string) bool {
	return CheckPasswordHash(plain, c.hashFor(kind))
}

func (c *Customer) hashFor(kind PasswordKind) string {
	if kind == WithdrawPassword {
		return c.WithdrawPasswordHash
	}
	return c.PasswordHash
}

// HashPassword bcrypt-hashes a password after checking its length.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrWeakPassword
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPasswordHash reports whether password matches hash. An empty hash never matches.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
