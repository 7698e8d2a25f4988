package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"ordering/internal/adapters/in/http/api"
)

func TestLoad(t *testing.T) {
	doc, err := api.Load()
	require.NoError(t, err)

	assert.NotNil(t, doc.Paths.Find("/api/v1/orders"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/orders/{id}/status"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/users/{userId}/orders"))
}

func TestRegisterSwagger(t *testing.T) {
	doc, err := api.Load()
	require.NoError(t, err)

	require.NoError(t, api.RegisterSwagger(doc))
	require.NoError(t, api.RegisterSwagger(doc))

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	assert.Contains(t, raw, `"title":"Ordering API"`)
}
