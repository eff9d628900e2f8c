package httpx

import (
	"net/http"
	"strconv"

	"github.com/shopkit/shop-services/internal/apperr"
)

// Identity is the request-scoped caller, assembled per request and never
// persisted.
type Identity struct {
	Email  string
	Role   string
	UserID int64
}

// IdentityResolver is the single seam for extracting the caller from a
// request. The header implementation trusts gateway-set headers; swapping in
// a token-verifying resolver changes nothing else.
type IdentityResolver interface {
	Resolve(r *http.Request) (Identity, error)
}

const (
	headerUserEmail = "X-USER-EMAIL"
	headerUserRole  = "X-USER-ROLE"
	headerUserID    = "X-USER-ID"
)

// HeaderIdentity reads the identity headers the API gateway injects.
type HeaderIdentity struct{}

func (HeaderIdentity) Resolve(r *http.Request) (Identity, error) {
	raw := r.Header.Get(headerUserID)
	if raw == "" {
		return Identity{}, apperr.Invalidf("user ID is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Identity{}, apperr.Invalidf("invalid user ID %q", raw)
	}
	return Identity{
		Email:  r.Header.Get(headerUserEmail),
		Role:   r.Header.Get(headerUserRole),
		UserID: id,
	}, nil
}
