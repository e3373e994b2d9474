package mongodb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"synagogue-manager/internal/synagogue/domain/model"
	"synagogue-manager/internal/synagogue/domain/repository"
)

func TestToEnvelope_AttachesID(t *testing.T) {
	dto := model.DonationDto{Title: "תרומה", Link: "https://example.org", Enabled: true, DisplayOrder: 1}

	doc, err := toEnvelope("don-1", dto)
	require.NoError(t, err)
	assert.Equal(t, "don-1", doc["_id"])
	assert.Equal(t, "תרומה", doc["title"])
	assert.Equal(t, true, doc["enabled"])
}

func TestToFields_DropsEmptyOptionals(t *testing.T) {
	dto := model.DonationDto{Title: "תרומה", Link: "https://example.org"}

	fields, err := toFields(dto)
	require.NoError(t, err)
	assert.Contains(t, fields, "title")
	assert.NotContains(t, fields, "notes", "omitempty fields stay out of $set")
	assert.NotContains(t, fields, "_id")
}

func TestFilterToSelector(t *testing.T) {
	sel, err := filterToSelector(repository.Eq("enabled", true))
	require.NoError(t, err)
	assert.Equal(t, bson.M{"enabled": true}, sel)

	sel, err = filterToSelector(repository.Filter{Field: "displayOrder", Op: repository.OpGreaterEqual, Value: 2})
	require.NoError(t, err)
	assert.Equal(t, bson.M{"displayOrder": bson.M{"$gte": 2}}, sel)

	_, err = filterToSelector(repository.Filter{Op: repository.OpEqual})
	assert.Error(t, err)

	_, err = filterToSelector(repository.Filter{Field: "x", Op: repository.Operator("array-contains")})
	assert.Error(t, err)
}

func TestLiveQuery_RequiresEventBus(t *testing.T) {
	store := &DocumentStore[model.DonationDto]{path: "donations"}

	_, err := store.LiveQuery(context.Background(), func([]repository.Document[model.DonationDto]) {})
	assert.Error(t, err)
}
