package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// resetConfig restores viper to its defaults and sends logs to a temp file.
func resetConfig(t *testing.T) {
	t.Helper()

	viper.Reset()
	initConfig()
	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "unrealctl.log"))

	t.Cleanup(func() {
		if logCloser != nil {
			_ = logCloser.Close()
			logCloser = nil
		}

		viper.Reset()
		initConfig()
	})
}

// executeRoot runs a fresh command tree and returns stdout and stderr.
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := newRootCmd()

	var out, errOut bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string, perm os.FileMode) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), perm))

	return path
}

// writeTool writes a shell script standing in for an engine tool.
func writeTool(t *testing.T, body string) string {
	t.Helper()

	return writeFile(t, "tool.sh", "#!/bin/sh\n"+body+"\n", 0o755)
}
