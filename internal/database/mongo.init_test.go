package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type indexedModel struct {
	TenantID  string `bson:"tenantId" index:"single:1;compound:tenant_status"`
	Status    string `bson:"status" index:"compound:tenant_status"`
	Receipt   string `bson:"receiptNumber" index:"unique"`
	Email     string `bson:"email,omitempty" index:"unique,sparse"`
	ExpiresAt int64  `bson:"expiresAt" index:"ttl:3600"`
	Note      string `bson:"note"`
}

func TestParseIndexTag(t *testing.T) {
	parts := parseIndexTag("single:1;compound:tenant_status,order:-1")
	require.Len(t, parts, 2)
	assert.Equal(t, "1", parts[0]["single"])
	assert.Equal(t, "tenant_status", parts[1]["compound"])
	assert.Equal(t, -1, parseOrder(parts[1]))
	assert.Equal(t, 1, parseOrder(parts[0]))
}

func TestIndexSpecsFromModel(t *testing.T) {
	specs, err := indexSpecsFromModel(&indexedModel{})
	require.NoError(t, err)

	byName := map[string]indexSpec{}
	for _, s := range specs {
		byName[s.Name] = s
	}

	require.Contains(t, byName, "tenantId_single")
	require.Contains(t, byName, "receiptNumber_unique")
	require.Contains(t, byName, "email_unique")
	require.Contains(t, byName, "expiresAt_ttl")
	require.Contains(t, byName, "tenant_status")
	assert.Len(t, specs, 5)

	assert.True(t, *byName["receiptNumber_unique"].Options.Unique)
	assert.True(t, *byName["email_unique"].Options.Sparse)
	assert.Equal(t, int32(3600), *byName["expiresAt_ttl"].Options.ExpireAfterSeconds)
	assert.Equal(t, bson.D{{Key: "tenantId", Value: 1}, {Key: "status", Value: 1}}, byName["tenant_status"].Keys)
}
