package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/shared"
)

// Authenticator wraps registration and credential verification.
type Authenticator struct {
	directory Directory
	hasher    *PasswordHasher
	codec     *TokenCodec
	tokenTTL  time.Duration

	// dummyHash is verified against when the username is unknown so both
	// failure paths do comparable hashing work.
	dummyHash string
}

// NewAuthenticator constructs an Authenticator issuing tokens valid for
// tokenTTL.
func NewAuthenticator(directory Directory, hasher *PasswordHasher, codec *TokenCodec, tokenTTL time.Duration) (*Authenticator, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("auth: prepare dummy hash: %w", err)
	}
	return &Authenticator{
		directory: directory,
		hasher:    hasher,
		codec:     codec,
		tokenTTL:  tokenTTL,
		dummyHash: dummy,
	}, nil
}

// Register creates a new ACTIVE user with a hashed password. Duplicate
// username or email fails with shared.ErrConflict. The uniqueness pre-checks
// run before hashing so duplicate requests never pay the hashing cost; the
// database constraints remain the real guarantee and a storage-level
// violation surfaces as the same conflict.
func (a *Authenticator) Register(ctx context.Context, username string, email *string, password string) (*User, error) {
	if _, err := a.directory.FindByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username already registered: %w", shared.ErrConflict)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if email != nil {
		if _, err := a.directory.FindByEmail(ctx, *email); err == nil {
			return nil, fmt.Errorf("email already registered: %w", shared.ErrConflict)
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	}

	hashed, err := a.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &User{
		ID:             uuid.New(),
		Username:       username,
		Email:          email,
		Status:         StatusActive,
		HashedPassword: hashed,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := a.directory.Insert(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies username/password credentials and issues a bearer
// token. Unknown username and wrong password are indistinguishable to the
// caller; a dummy verification runs for unknown usernames so neither path
// returns early. A correct password against a non-ACTIVE account fails with
// shared.ErrUserState naming the actual status.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (AuthToken, error) {
	user, err := a.directory.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return AuthToken{}, err
	}

	hash := a.dummyHash
	if err == nil {
		hash = user.HashedPassword
	}
	ok := a.hasher.Verify(password, hash)

	if err != nil || !ok {
		return AuthToken{}, shared.ErrInvalidCredentials
	}

	if user.Status != StatusActive {
		return AuthToken{}, fmt.Errorf("%s user: %w", user.Status.Label(), shared.ErrUserState)
	}

	token, err := a.codec.Issue(user.ID.String(), a.tokenTTL)
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(a.tokenTTL.Seconds()),
	}, nil
}
