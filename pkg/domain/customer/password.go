package customer

import (
	"strings"
)

// PasswordKind names which secret a password update touches.
type PasswordKind int

const (
	LoginPassword PasswordKind = iota + 1
	WithdrawPassword
)

// ParsePasswordKind maps the wire name to a kind. "fund" is the legacy name
// of the withdraw password.
func ParsePasswordKind(s string) (PasswordKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "login", "password":
		return LoginPassword, nil
	case "withdraw", "fund", "withdraw_password":
		return WithdrawPassword, nil
	default:
		return 0, ErrInvalidPasswordKind
	}
}

func (k PasswordKind) String() string {
	switch k {
	case LoginPassword:
		return "login"
	case WithdrawPassword:
		return "withdraw"
	default:
		return "unknown"
	}
}

// Column is the persisted field holding the hash for this kind.
func (k PasswordKind) Column() string {
	if k == WithdrawPassword {
		return "withdraw_password_hash"
	}
	return "password_hash"
}

// PasswordChange is a request to replace one of the customer's secrets.
// Current is required unless a withdraw password is being set for the first time.
type PasswordChange struct {
	Kind    PasswordKind
	Current string
	New     string
}

// PasswordUpdate is the resolved write: which column and which hash.
type PasswordUpdate struct {
	Kind PasswordKind
	Hash string
}

// Resolve checks the change against the customer and hashes the new secret.
func (c *Customer) Resolve(change PasswordChange) (PasswordUpdate, error) {
	switch change.Kind {
	case LoginPassword, WithdrawPassword:
	default:
		return PasswordUpdate{}, ErrInvalidPasswordKind
	}
	firstWithdraw := change.Kind == WithdrawPassword && !c.HasWithdrawPassword()
	if !firstWithdraw && !c.CheckPassword(change.Kind, change.Current) {
		return PasswordUpdate{}, ErrPasswordMismatch
	}
	hash, err := HashPassword(change.New)
	if err != nil {
		return PasswordUpdate{}, err
	}
	return PasswordUpdate{Kind: change.Kind, Hash: hash}, nil
}
