package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guttosm/inventory-allocator/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const splitOrder = `
order:
  apple: 10
warehouses:
  - name: owd
    inventory: {apple: 5}
  - name: dm
    inventory: {apple: 5}
`

const twoWarehouseOrder = `{
  "order": {"a": 4, "b": 8, "c": 5},
  "warehouses": [
    {"name": "w1", "inventory": {"a": 5}},
    {"name": "w2", "inventory": {"a": 5, "b": 5}},
    {"name": "w3", "inventory": {"b": 10}},
    {"name": "w4", "inventory": {"b": 5, "c": 5}},
    {"name": "w5", "inventory": {"c": 5}}
  ]
}`

func writeOrder(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(stdin string, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestPlan_Table(t *testing.T) {
	code, stdout, stderr := runCLI("", "plan", "--file", writeOrder(t, "order.yaml", splitOrder))

	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, strings.ToUpper(stdout), "WAREHOUSE")
	assert.Contains(t, stdout, "dm")
	assert.Contains(t, stdout, "owd")
	assert.Contains(t, stdout, "2 warehouses, 10 units")
	assert.Less(t, strings.Index(stdout, "dm"), strings.Index(stdout, "owd"), "rows follow the plan order")
}

func TestPlan_JSON(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    model.ShipmentPlan
		wantErr bool
	}{
		{
			name: "two warehouses beat three",
			want: model.ShipmentPlan{
				{Warehouse: "w2", Items: model.Items{"a": 4, "b": 5}},
				{Warehouse: "w4", Items: model.Items{"b": 3, "c": 5}},
			},
		},
		{
			name: "memoized search returns the same plan",
			args: []string{"--memoize"},
			want: model.ShipmentPlan{
				{Warehouse: "w2", Items: model.Items{"a": 4, "b": 5}},
				{Warehouse: "w4", Items: model.Items{"b": 3, "c": 5}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"plan", "--file", "-", "--format", "json"}, tt.args...)
			code, stdout, stderr := runCLI(twoWarehouseOrder, args...)
			require.Equal(t, exitOK, code, stderr)

			var result model.AllocationResult
			require.NoError(t, json.Unmarshal([]byte(stdout), &result))
			assert.True(t, result.Fulfilled)
			assert.Equal(t, tt.want, result.Shipments)
			assert.Equal(t, 2, result.WarehouseCount)
		})
	}
}

func TestPlan_Unfulfillable(t *testing.T) {
	order := `{"order": {"apple": 1}, "warehouses": [{"name": "owd", "inventory": {"apple": 0}}]}`
	empty := `{"order": {"apple": 0}, "warehouses": [{"name": "owd", "inventory": {"apple": 1}}]}`

	tests := []struct {
		name       string
		input      string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "reported but not an error",
			input:      order,
			wantCode:   exitOK,
			wantStdout: "order cannot be fully shipped from the given warehouses",
		},
		{
			name:       "strict",
			input:      order,
			args:       []string{"--strict"},
			wantCode:   exitUnfulfilled,
			wantStdout: "order cannot be fully shipped from the given warehouses",
			wantStderr: "error: order cannot be fully shipped",
		},
		{
			name:       "empty order",
			input:      empty,
			wantCode:   exitOK,
			wantStdout: "order has no positive quantities",
		},
		{
			name:       "empty order strict",
			input:      empty,
			args:       []string{"--strict"},
			wantCode:   exitUnfulfilled,
			wantStderr: "error: order has no positive quantities",
		},
		{
			name:       "strict json still prints the result",
			input:      order,
			args:       []string{"--strict", "--format", "json"},
			wantCode:   exitUnfulfilled,
			wantStdout: `"shipments": []`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"plan", "-f", "-"}, tt.args...)
			code, stdout, stderr := runCLI(tt.input, args...)

			assert.Equal(t, tt.wantCode, code)
			assert.Contains(t, stdout, tt.wantStdout)
			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
}

func TestPlan_InvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		args       []string
		wantStderr string
	}{
		{name: "negative quantity", input: `{"order": {"apple": -1}, "warehouses": []}`, wantStderr: "order.apple"},
		{name: "fractional quantity", input: `{"order": {"apple": 1.5}, "warehouses": []}`, wantStderr: "order.apple"},
		{
			name:       "fractional stock",
			input:      `{"order": {"apple": 2}, "warehouses": [{"name": "owd", "inventory": {"apple": 2.9}}]}`,
			args:       []string{"--strict"},
			wantStderr: "warehouses[0].inventory.apple",
		},
		{
			name:       "fractional quantity with enough stock",
			input:      `{"order": {"apple": 2.9}, "warehouses": [{"name": "owd", "inventory": {"apple": 2}}]}`,
			args:       []string{"--strict", "--format", "json"},
			wantStderr: "order.apple",
		},
		{name: "malformed document", input: `{"order": `, wantStderr: "decode order document"},
		{name: "unknown field", input: `{"order": {"apple": 1}, "warehouses": [], "priority": 1}`, wantStderr: "priority"},
		{name: "missing warehouses", input: `{"order": {"apple": 1}}`, wantStderr: "warehouses"},
		{
			name:       "duplicate warehouse",
			input:      `{"order": {"apple": 1}, "warehouses": [{"name": "owd", "inventory": {}}, {"name": "owd", "inventory": {}}]}`,
			wantStderr: "warehouses[1].name",
		},
		{name: "missing name", input: `{"order": {"apple": 1}, "warehouses": [{"inventory": {}}]}`, wantStderr: "warehouses[0].name"},
		{name: "empty document", input: "", wantStderr: errEmptyDocument.Error()},
		{
			name:       "limit exceeded",
			input:      `{"order": {"a": 1, "b": 1}, "warehouses": []}`,
			args:       []string{"--max-items", "1"},
			wantStderr: "order",
		},
		{name: "unsupported format", input: splitOrder, args: []string{"--format", "yaml"}, wantStderr: "format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"plan", "--file", "-"}, tt.args...)
			code, stdout, stderr := runCLI(tt.input, args...)

			assert.Equal(t, exitInvalid, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.wantStderr)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		code, stdout, stderr := runCLI("", "validate", "--file", writeOrder(t, "order.yaml", splitOrder))
		require.Equal(t, exitOK, code, stderr)
		assert.Equal(t, "ok: 1 items, 2 warehouses\n", stdout)
	})

	t.Run("invalid document", func(t *testing.T) {
		code, _, stderr := runCLI(`{"order": {"apple": -1}, "warehouses": []}`, "validate", "--file", "-")
		assert.Equal(t, exitInvalid, code)
		assert.Contains(t, stderr, "order.apple")
	})

	t.Run("missing file", func(t *testing.T) {
		code, _, stderr := runCLI("", "validate", "--file", filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Equal(t, exitInvalid, code)
		assert.Contains(t, stderr, "read order document")
	})
}

func TestRun_Usage(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "help", args: []string{"--help"}, wantCode: exitOK},
		{name: "command help", args: []string{"plan", "--help"}, wantCode: exitOK},
		{name: "no command", args: nil, wantCode: exitInvalid},
		{name: "unknown command", args: []string{"ship"}, wantCode: exitInvalid},
		{name: "missing file flag", args: []string{"plan"}, wantCode: exitInvalid},
		{name: "bad log level", args: []string{"--log.level", "trace", "validate", "-f", "-"}, wantCode: exitInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI("", tt.args...)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}
