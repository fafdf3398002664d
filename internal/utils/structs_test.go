package utils

import (
	"testing"

	"adra/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var addressColumns = []string{"street", "city", "state", "zip"}

func TestStructTagValuesFlattensEmbeddedAddress(t *testing.T) {
	columns := StructTagValues(types.Beneficiary{})

	for _, column := range append([]string{"id", "name", "email", "phone", "status"}, addressColumns...) {
		assert.Contains(t, columns, column)
	}

	// the address block is embedded in every addressable entity
	for _, column := range addressColumns {
		assert.Contains(t, StructTagValues(types.Donation{}), column)
		assert.Contains(t, StructTagValues(types.Request{}), column)
	}
}

func TestStructToMapFlattensEmbeddedAddress(t *testing.T) {
	b := types.Beneficiary{
		Name:  "João Silva",
		Email: "joao@example.com",
		Phone: "11999999999",
		Address: types.Address{
			Street: "Rua das Flores 123",
			City:   "São Paulo",
			State:  "SP",
			Zip:    "01000-000",
		},
	}

	m := StructToMap(b)

	require.Equal(t, "Rua das Flores 123", m["street"])
	require.Equal(t, "São Paulo", m["city"])
	require.Equal(t, "SP", m["state"])
	require.Equal(t, "01000-000", m["zip"])
	assert.Equal(t, "João Silva", m["name"])
	assert.Equal(t, "joao@example.com", m["email"])
}
