package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func requiredFields(t *testing.T, validator bson.M) []string {
	t.Helper()
	schema, ok := validator["$jsonSchema"].(bson.M)
	require.True(t, ok, "validator must be a $jsonSchema")
	required, ok := schema["required"].([]string)
	require.True(t, ok)
	return required
}

func TestCollections(t *testing.T) {
	defs := Collections()
	require.Len(t, defs, 3)

	byName := map[string]CollectionDefinition{}
	for _, def := range defs {
		byName[def.Name] = def
		assert.NotNil(t, def.Validator, def.Name)
	}

	assert.ElementsMatch(t, []string{"active", "name"}, requiredFields(t, byName["Properties"].Validator))
	assert.Contains(t, requiredFields(t, byName["Bookings"].Validator), "property_id")
	assert.Contains(t, requiredFields(t, byName["Season_rules"].Validator), "rules")
	assert.Empty(t, byName["Season_rules"].Indexes)
}

func TestBookingsIndex_LeadsWithProperty(t *testing.T) {
	keys, ok := BookingsIndexes[0].Keys.(bson.D)
	require.True(t, ok)
	assert.Equal(t, "property_id", keys[0].Key)
	assert.Equal(t, "start_date", keys[1].Key)
}
