package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedThenSmoke(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DASHBOARD_CONFIG", "")
	path := filepath.Join(t.TempDir(), "synthetic.csv")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"seed", "--out", path, "--count", "40", "--seed", "3"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Wrote 40 launches")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	out.Reset()
	cmd = newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"smoke", "--data", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "All Sites")
	assert.Contains(t, out.String(), "Smoke test passed")
}

func TestSeedRejectsZeroCount(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"seed", "--out", filepath.Join(t.TempDir(), "x.csv"), "--count", "0"})
	assert.Error(t, cmd.Execute())
}
