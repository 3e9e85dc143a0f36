package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/platform/httpx"
	"github.com/taskhive/taskhive/internal/shared"
)

// Gate resolves a bearer token into the acting user for protected requests.
// Resolution is side-effect free apart from the directory read and nothing is
// cached across requests.
type Gate struct {
	directory Directory
	codec     *TokenCodec
}

// NewGate constructs a Gate.
func NewGate(directory Directory, codec *TokenCodec) *Gate {
	return &Gate{directory: directory, codec: codec}
}

// Resolve validates token and returns the active user it identifies.
// Failures are terminal: shared.ErrUnauthenticated for anything wrong with
// the token itself, shared.ErrNotFound when the user no longer exists and
// shared.ErrUserState when the account is not ACTIVE.
func (g *Gate) Resolve(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, shared.ErrUnauthenticated
	}

	claims, err := g.codec.Decode(token)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, shared.ErrUnauthenticated
	}

	user, err := g.directory.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("user not found: %w", shared.ErrNotFound)
		}
		return nil, err
	}

	if user.Status != StatusActive {
		return nil, fmt.Errorf("%s user: %w", user.Status.Label(), shared.ErrUserState)
	}
	return user, nil
}

// RequireUser is chi middleware enforcing the gate. On success the resolved
// principal is stored in the request context.
func (g *Gate) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := g.Resolve(r.Context(), BearerToken(r))
		if err != nil {
			httpx.RespondError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// BearerToken extracts the token from the Authorization header. It returns
// the empty string when the header is absent or not a bearer scheme.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
