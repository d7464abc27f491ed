package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCheckYAMLQuantities(t *testing.T) {
	tests := []struct {
		name          string
		document      string
		expectedField string
	}{
		{name: "integers", document: `{"order": {"apple": 2}, "warehouses": [{"name": "owd", "inventory": {"apple": 2}}]}`},
		{name: "yaml integers", document: "order:\n  apple: 0x10\nwarehouses:\n  - name: owd\n    inventory: {apple: 1000}"},
		{name: "empty document", document: ""},
		{name: "fractional order", document: `{"order": {"apple": 2.9}, "warehouses": []}`, expectedField: "order.apple"},
		{name: "float with zero fraction", document: `{"order": {"apple": 2.0}}`, expectedField: "order.apple"},
		{name: "null quantity", document: "order: {apple: ~}", expectedField: "order.apple"},
		{name: "string quantity", document: `order: {apple: "2"}`, expectedField: "order.apple"},
		{
			name:          "fractional stock",
			document:      `{"order": {"apple": 2}, "warehouses": [{"name": "owd", "inventory": {"apple": 1}}, {"name": "dm", "inventory": {"apple": 0.5}}]}`,
			expectedField: "warehouses[1].inventory.apple",
		},
		{name: "bare warehouse list", document: "- {name: owd, inventory: {apple: 1.5}}", expectedField: "warehouses[0].inventory.apple"},
		{name: "upsert inventory", document: `{"inventory": {"apple": 1e3}}`, expectedField: "inventory.apple"},
		{name: "alias to float", document: "base: &q 2.5\norder: {apple: *q}", expectedField: "order.apple"},
		{name: "non-scalar left to the decoder", document: "order: {apple: [1]}"},
		{name: "names are not quantities", document: "- {name: 1.5, inventory: {apple: 1}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.document), &doc))

			err := CheckYAMLQuantities(&doc)
			if tt.expectedField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "got %v", err)
			assert.Equal(t, tt.expectedField, validationErr.Field)
			assert.Equal(t, "must be a non-negative integer", validationErr.Message)
		})
	}
}

func TestCheckYAMLQuantities_NilNode(t *testing.T) {
	assert.NoError(t, CheckYAMLQuantities(nil))
}
