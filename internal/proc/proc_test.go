//go:build !windows

package proc

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecPipesStdin(t *testing.T) {
	requireSh(t)
	out := filepath.Join(t.TempDir(), "out")
	err := Exec{}.Run(context.Background(), []byte("payload"), "sh", "-c", "cat > "+out)
	require.NoError(t, err)
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))
}

func TestExecReportsStderr(t *testing.T) {
	requireSh(t)
	err := Exec{}.Run(context.Background(), nil, "sh", "-c", "echo first >&2; echo 'no display' >&2; exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no display")
	assert.NotContains(t, err.Error(), "first")
}

func TestExecMissingBinary(t *testing.T) {
	err := Exec{}.Run(context.Background(), nil, "snippetkit-definitely-missing")
	require.Error(t, err)
}
