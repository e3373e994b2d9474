package contextkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKey_String(t *testing.T) {
	key := contextKey("testKey")
	assert.Equal(t, "synagogue-manager context key testKey", key.String())
}

func TestContextKeys_Usage(t *testing.T) {
	ctx := context.Background()
	ctx = context.WithValue(ctx, UserIDKey, "user-123")
	ctx = context.WithValue(ctx, UserEmailKey, "gabbai@shul.org")
	ctx = context.WithValue(ctx, SynagogueIDKey, "shul-abc")
	ctx = context.WithValue(ctx, UserRoleKey, "gabbai")
	ctx = context.WithValue(ctx, RequestIDKey, "req-456")
	ctx = context.WithValue(ctx, ComponentKey, "component-logger")
	ctx = context.WithValue(ctx, OperationKey, "operation-read")

	assert.Equal(t, "user-123", ctx.Value(UserIDKey))
	assert.Equal(t, "gabbai@shul.org", ctx.Value(UserEmailKey))
	assert.Equal(t, "shul-abc", ctx.Value(SynagogueIDKey))
	assert.Equal(t, "gabbai", ctx.Value(UserRoleKey))
	assert.Equal(t, "req-456", ctx.Value(RequestIDKey))
	assert.Equal(t, "component-logger", ctx.Value(ComponentKey))
	assert.Equal(t, "operation-read", ctx.Value(OperationKey))
}
