package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetters(t *testing.T) {
	t.Setenv("PDP_TEST_STR", " value ")
	t.Setenv("PDP_TEST_INT", "42")
	t.Setenv("PDP_TEST_BAD_INT", "forty")
	t.Setenv("PDP_TEST_FLOAT", "2.5")
	t.Setenv("PDP_TEST_DUR", "750ms")

	require.Equal(t, "value", Get("PDP_TEST_STR", "x"))
	require.Equal(t, "x", Get("PDP_TEST_UNSET", "x"))
	require.Equal(t, 42, GetInt("PDP_TEST_INT", 1))
	require.Equal(t, 1, GetInt("PDP_TEST_BAD_INT", 1))
	require.Equal(t, 2.5, GetFloat("PDP_TEST_FLOAT", 1))
	require.Equal(t, 750*time.Millisecond, GetDuration("PDP_TEST_DUR", time.Second))
	require.Equal(t, time.Second, GetDuration("PDP_TEST_UNSET", time.Second))
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PDP_TEST_FROM_FILE=yes\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("PDP_TEST_FROM_FILE") })

	Load(path)
	require.Equal(t, "yes", Get("PDP_TEST_FROM_FILE", "no"))
}
