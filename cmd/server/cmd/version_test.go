package cmd

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = oldVersion, oldCommit, oldDate })

	Version, GitCommit, BuildDate = "1.2.3", "abc123", ""

	output, err := runCommand(t, "version")
	require.NoError(t, err)

	assert.Contains(t, output, "Topic Directory Server")
	assert.Contains(t, output, "Version:    1.2.3")
	assert.Contains(t, output, "Git commit: abc123")
	assert.Contains(t, output, "Build date: unknown")
	assert.Contains(t, output, runtime.Version())
}
