package context

import (
	"context"
	"sync"
)

type contextKey struct{}

var currentKey = contextKey{}

// Identity is the caller resolved from a verified token.
type Identity struct {
	UserID   int64
	Username string
}

func (i Identity) IsAuthenticated() bool {
	return i.UserID > 0
}

// Current holds request scoped values. It lives on the request context only
// and is never shared between requests.
type Current struct {
	mu       sync.RWMutex
	identity Identity
	data     map[string]string
}

func NewCurrent() *Current {
	return &Current{
		data: make(map[string]string),
	}
}

func (c *Current) Set(key string, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *Current) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

func (c *Current) SetIdentity(identity Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.identity = identity
}

func (c *Current) Identity() Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.identity
}

func (c *Current) RequestID() string {
	return c.Get("request_id")
}

func SetCurrent(ctx context.Context, current *Current) context.Context {
	return context.WithValue(ctx, currentKey, current)
}

func FromContext(ctx context.Context) (*Current, bool) {
	current, ok := ctx.Value(currentKey).(*Current)
	return current, ok
}

// IdentityFrom returns the authenticated caller stored on ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	current, ok := FromContext(ctx)

	if !ok {
		return Identity{}, false
	}

	identity := current.Identity()

	return identity, identity.IsAuthenticated()
}

// WithIdentity returns a context carrying identity, creating a Current when
// ctx has none yet.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	current, ok := FromContext(ctx)

	if !ok {
		current = NewCurrent()
		ctx = SetCurrent(ctx, current)
	}

	current.SetIdentity(identity)

	return ctx
}
