package app

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// extractShipments returns the raw shipments array of an allocation response envelope.
func extractShipments(t *testing.T, body []byte) string {
	t.Helper()
	var envelope struct {
		Data struct {
			Shipments json.RawMessage `json:"shipments"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return string(envelope.Data.Shipments)
}
