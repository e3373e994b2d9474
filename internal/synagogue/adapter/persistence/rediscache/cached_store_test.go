package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"synagogue-manager/internal/shared/logger"
	"synagogue-manager/internal/shared/paths"
	"synagogue-manager/internal/synagogue/adapter/persistence/memory"
	"synagogue-manager/internal/synagogue/domain/model"
)

// unreachableClient returns a client with no server behind it, so every
// cache call fails fast and the store must degrade to the inner store.
func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         "localhost:16379",
		DialTimeout:  100 * time.Millisecond,
		ReadTimeout:  100 * time.Millisecond,
		WriteTimeout: 100 * time.Millisecond,
		MaxRetries:   -1,
	})
}

func TestCachedStore_DegradesToInnerStore(t *testing.T) {
	inner, err := memory.NewDocumentStore[model.DonationDto](paths.Scoped("shul-1", "donations"), nil)
	require.NoError(t, err)
	store := NewCachedDocumentStore[model.DonationDto](inner, unreachableClient(), time.Minute, logger.NewLogger())
	ctx := context.Background()

	dto := model.NewDonation("תרומה", "https://example.org", "uid-1", 1).ToDto()
	require.NoError(t, store.InsertWithID(ctx, "don-1", dto))

	doc, err := store.GetByID(ctx, "don-1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "תרומה", doc.Data.Title)

	docs, err := store.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	exists, err := store.Exists(ctx, "don-1")
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, store.DeleteByID(ctx, "don-1"))
	doc, err = store.GetByID(ctx, "don-1")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestCachedStore_KeyLayout(t *testing.T) {
	inner, err := memory.NewDocumentStore[model.DonationDto](paths.Scoped("shul-1", "donations"), nil)
	require.NoError(t, err)
	store := NewCachedDocumentStore[model.DonationDto](inner, unreachableClient(), 0, logger.NewLogger())

	assert.Equal(t, "synagogues/shul-1/donations", store.Path())
	assert.Equal(t, "cache:synagogues/shul-1/donations:all", store.collectionKey())
	assert.Equal(t, "cache:synagogues/shul-1/donations:doc:don-1", store.documentKey("don-1"))
}
