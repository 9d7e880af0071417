package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v4"
)

// JWTKey signs session tokens. Overridden from config at startup.
var JWTKey = []byte("bookstore-dev-key")

// Principal is the authenticated actor for a single request. It is built once
// from the session claims and passed explicitly; handlers never re-derive it.
type Principal struct {
	ID          int
	Username    string
	Authorities map[string]struct{}
	CSRFToken   string
}

func (p Principal) HasAuthority(name string) bool {
	_, ok := p.Authorities[name]
	return ok
}

type Claims struct {
	UserID      int      `json:"userId"`
	Username    string   `json:"username"`
	Authorities []string `json:"authorities"`
	CSRFToken   string   `json:"csrfToken"`
	jwt.RegisteredClaims
}

func (c *Claims) Principal() Principal {
	authorities := make(map[string]struct{}, len(c.Authorities))
	for _, a := range c.Authorities {
		authorities[a] = struct{}{}
	}
	return Principal{
		ID:          c.UserID,
		Username:    c.Username,
		Authorities: authorities,
		CSRFToken:   c.CSRFToken,
	}
}

type principalKey struct{}

func SetPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
