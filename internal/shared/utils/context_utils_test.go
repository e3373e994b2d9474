package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetSetContextValues(t *testing.T) {
	ctx := context.Background()
	ctx = WithSynagogueID(ctx, "shul-1")
	ctx = WithUserID(ctx, "user1")
	ctx = WithRequestID(ctx, "req1")
	ctx = WithUserEmail(ctx, "gabbai@shul.org")
	ctx = WithComponent(ctx, "componentA")
	ctx = WithOperation(ctx, "opX")

	synagogueID, err := GetSynagogueIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "shul-1", synagogueID)

	userID, err := GetUserIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "user1", userID)

	reqID, err := GetRequestIDFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "req1", reqID)

	email, err := GetUserEmailFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "gabbai@shul.org", email)
}

func TestGettersOnEmptyContext(t *testing.T) {
	ctx := context.Background()

	_, err := GetSynagogueIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrSynagogueIDNotFound)

	_, err = GetUserIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrUserIDNotFound)

	_, err = GetRequestIDFromContext(ctx)
	assert.ErrorIs(t, err, ErrRequestIDNotFound)

	assert.Equal(t, "fallback", GetSynagogueIDOrDefault(ctx, "fallback"))
	assert.Equal(t, "anonymous", GetUserIDOrDefault(ctx, "anonymous"))
	assert.Equal(t, "none", GetUserEmailOrDefault(ctx, "none"))
}
