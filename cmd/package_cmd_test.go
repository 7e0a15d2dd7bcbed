package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageCmd_RunsTool(t *testing.T) {
	resetConfig(t)
	tool := writeTool(t, `for arg in "$@"; do echo "$arg"; done`)

	out, _, err := executeRoot(t, "--package-tool", tool, "package", "/projects/Demo", "/out/Demo Build")

	require.NoError(t, err)
	assert.Equal(t, "Package output:\n-projectPath=/projects/Demo\n-outputPath=/out/Demo Build\n-package\n", out)
}

func TestPackageCmd_InsufficientArguments(t *testing.T) {
	resetConfig(t)

	for _, args := range [][]string{{"package"}, {"package", "/projects/Demo"}} {
		out, _, err := executeRoot(t, args...)

		require.NoError(t, err)
		assert.Equal(t, "Insufficient arguments. Expected: package <projectPath> <outputPath>\n", out)
	}
}

func TestPackageCmd_MissingTool(t *testing.T) {
	resetConfig(t)
	tool := filepath.Join(t.TempDir(), "RunUAT.sh")

	out, _, err := executeRoot(t, "--package-tool", tool, "package", "Demo", "Out")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Error during packaging process: "), "output %q", out)
}

func TestPackageCmd_DryRun(t *testing.T) {
	resetConfig(t)

	out, errOut, err := executeRoot(t, "--dry-run", "package", "Demo", "Out")

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "+ RunUAT.sh -projectPath=Demo -outputPath=Out -package\n", errOut)
}
