//go:build integration

package http

import (
	"context"
	"os"
	"testing"

	"github.com/guttosm/inventory-allocator/internal/testutil"
)

func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}
