package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, ok := UserIDFromCtx(WithUserID(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = UserIDFromCtx(WithUserID(context.Background(), uuid.Nil))
	assert.False(t, ok)

	_, ok = UserIDFromCtx(context.WithValue(context.Background(), ctxKey("user_id"), "not-a-uuid"))
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "req-123", RequestIDFromCtx(WithRequestID(context.Background(), "req-123")))
	assert.Equal(t, "", RequestIDFromCtx(context.Background()))
	assert.Equal(t, "", RequestIDFromCtx(context.WithValue(context.Background(), ctxKey("request_id"), 12345)))
}

func TestRoleAndAdmin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, "", RoleFromCtx(ctx))
	assert.False(t, IsAdminCtx(ctx))

	ctx = WithAdmin(WithRole(ctx, "admin"), true)
	assert.Equal(t, "admin", RoleFromCtx(ctx))
	assert.True(t, IsAdminCtx(ctx))

	assert.False(t, IsAdminCtx(WithAdmin(ctx, false)))
}
