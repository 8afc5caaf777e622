package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"homekeeper/internal/model"
	"homekeeper/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmptyUsername      = errors.New("username is required")
)

// UserStorage is the user persistence the authenticator needs.
type UserStorage interface {
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
}

// PasswordAuthenticator registers and logs in users, storing bcrypt hashes only.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
	log     *slog.Logger
}

// NewPasswordAuthenticator creates an authenticator hashing with the given bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewPasswordAuthenticator(storage UserStorage, cost int) *PasswordAuthenticator {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordAuthenticator{
		storage: storage,
		cost:    cost,
		log:     slog.Default().With("component", "auth"),
	}
}

// Register creates a new user account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, password string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}

	hashed, err := bcrypt.GenerateFromPassword(passwordKey(password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{Username: username, Password: string(hashed)}
	if err := a.storage.Create(ctx, &user); err != nil {
		if !errors.Is(err, repository.ErrUsernameTaken) {
			a.log.Error("register failed", "username", username, "error", err)
		}
		return nil, fmt.Errorf("register %q: %w", username, err)
	}

	a.log.Info("user registered", "user_id", user.ID)
	return &user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
// An unknown user and a wrong password both yield ErrInvalidCredentials.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := a.storage.FindByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return nil, ErrInvalidCredentials
	case err != nil:
		a.log.Error("login lookup failed", "error", err)
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), passwordKey(password)); err != nil {
		a.log.Debug("login rejected", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// passwordKey digests a password of any length into the 44-byte input handed to bcrypt,
// which rejects passwords over 72 bytes.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
