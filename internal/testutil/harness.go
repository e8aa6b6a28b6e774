// Package testutil provides shared helpers for integration-style tests:
// a thread-safe log capture buffer and a harness that lays design files
// out on disk and runs the full load → build → check pipeline.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/netgridgo/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunDesignTest writes the given relative path → content file map into a
// temp dir, then runs the application against it with debug logging. A
// startup panic (bad design files) is captured into Err rather than
// crashing the test.
func RunDesignTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunDesignTestWithContext(context.Background(), t, files)
}

// RunDesignTestWithContext is RunDesignTest with a caller-supplied context.
func RunDesignTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", ".tmp-design-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	appConfig, err := app.NewConfig(app.Config{
		DesignPath: tmpDir,
		LogFormat:  "text",
		LogLevel:   "debug",
	})
	require.NoError(t, err)

	var logBuf SafeBuffer
	result := &HarnessResult{}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("startup panic: %v", r)
			}
		}()
		result.App = app.NewApp(&logBuf, appConfig, nil)
		result.Err = result.App.Run(ctx)
	}()

	result.LogOutput = logBuf.String()
	return result
}
