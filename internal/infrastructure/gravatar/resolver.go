package gravatar

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/url"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// DefaultURL is the generic "mystery person" image, used when an email cannot be resolved.
const DefaultURL = baseURL + "?s=200&r=pg&d=mm"

var ErrEmptyEmail = errors.New("gravatar: empty email")

// Resolver builds Gravatar image URLs. Size, rating and default image follow
// the s/r/d query parameters of the Gravatar image API.
type Resolver struct {
	Size    string
	Rating  string
	Default string
}

func NewResolver() *Resolver {
	return &Resolver{Size: "200", Rating: "pg", Default: "mm"}
}

// Resolve returns a fully-qualified https URL for email.
func (r *Resolver) Resolve(ctx context.Context, email string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", ErrEmptyEmail
	}
	sum := md5.Sum([]byte(normalized))

	q := url.Values{}
	if r.Size != "" {
		q.Set("s", r.Size)
	}
	if r.Rating != "" {
		q.Set("r", r.Rating)
	}
	if r.Default != "" {
		q.Set("d", r.Default)
	}
	u := baseURL + hex.EncodeToString(sum[:])
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u, nil
}
