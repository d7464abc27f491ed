//go:build integration

package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

var (
	shared     *MongoDBContainer
	sharedErr  error
	sharedOnce sync.Once
	sharedMu   sync.RWMutex

	dbSeq atomic.Uint64
)

// maxDBNameLen keeps generated names well under MongoDB's 64 byte limit.
const maxDBNameLen = 48

// GetSharedMongoDB starts the package's MongoDB once and returns it on every call.
func GetSharedMongoDB(ctx context.Context) (*MongoDBContainer, error) {
	sharedOnce.Do(func() {
		db, err := SetupMongoDB(ctx)
		sharedMu.Lock()
		shared, sharedErr = db, err
		sharedMu.Unlock()
	})

	sharedMu.RLock()
	defer sharedMu.RUnlock()
	return shared, sharedErr
}

// CleanupSharedMongoDB stops the shared MongoDB.
func CleanupSharedMongoDB(ctx context.Context) error {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return nil
	}
	err := shared.Cleanup(ctx)
	shared = nil
	return err
}

// SetupTestMainWithMongoDB runs the package's tests against a shared MongoDB:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
//	}
func SetupTestMainWithMongoDB(ctx context.Context, m *testing.M) int {
	if _, err := GetSharedMongoDB(ctx); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "integration tests need MongoDB (set %s or run Docker): %v\n", URIEnv, err)
		return 1
	}

	code := m.Run()

	if err := CleanupSharedMongoDB(ctx); err != nil {
		// Docker reaps the container with the test process anyway.
		_, _ = fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	return code
}

// GetSharedContainerURI returns the connection URI of the shared MongoDB.
// It panics when GetSharedMongoDB has not succeeded.
func GetSharedContainerURI() string {
	sharedMu.RLock()
	defer sharedMu.RUnlock()

	if shared == nil {
		panic("shared MongoDB not initialized: call GetSharedMongoDB or SetupTestMainWithMongoDB first")
	}
	return shared.URI
}

// SanitizeDBName turns a test name into a database name unique to this process. Characters
// MongoDB rejects in database names become underscores.
func SanitizeDBName(testName string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ', '"', '$', '*', '<', '>', ':', '|', '?':
			return '_'
		}
		if r > 0x7f {
			return '_'
		}
		return r
	}, testName)

	if len(name) > maxDBNameLen {
		name = name[:maxDBNameLen]
	}
	return fmt.Sprintf("%s_%d_%d", name, os.Getpid(), dbSeq.Add(1))
}

// IsolatedDatabase returns the shared MongoDB URI and a database name that no
// other test in the process uses.
func IsolatedDatabase(t testing.TB) (uri, name string) {
	t.Helper()
	return GetSharedContainerURI(), SanitizeDBName(t.Name())
}
