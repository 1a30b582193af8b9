package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return buf.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestInitCommand(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	dataDir := filepath.Join(tmpDir, "data")

	t.Run("Successful initialization", func(t *testing.T) {
		out := runCommand(t, "init", "--config", configPath, "--data-dir", dataDir)
		assert.Contains(t, out, "Initialization completed successfully")
		assert.Contains(t, out, "Client API key:")
		assert.FileExists(t, configPath)
	})

	t.Run("Refuses to overwrite without force", func(t *testing.T) {
		out := runCommand(t, "init", "--config", configPath, "--data-dir", dataDir)
		assert.Contains(t, out, "Use --force to reinitialize")
	})

	t.Run("Force reinitialization", func(t *testing.T) {
		out := runCommand(t, "init", "--config", configPath, "--data-dir", dataDir, "--force")
		assert.Contains(t, out, "Initialization completed successfully")
	})
}

func TestStatsCommand(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "data.fon")
	writeFile(t, path, "a=i:1,b=s:\"x\"\n\nc=d:[1.5,2.5]\n")

	out := runCommand(t, "stats", path, "--config", filepath.Join(tmpDir, "no.yaml"), "--data-dir", tmpDir)
	assert.Contains(t, out, "Records: 2")
	assert.Contains(t, out, "Fields:  3")
	assert.Contains(t, out, "Indices: 0..2")
}

func TestRepackCommand(t *testing.T) {
	tmpDir := t.TempDir()
	in := filepath.Join(tmpDir, "in.fon")
	out := filepath.Join(tmpDir, "out.fon")
	writeFile(t, in, "a=i:1\n\nb=i:2\n")

	output := runCommand(t, "repack", in, out, "--config", filepath.Join(tmpDir, "no.yaml"), "--data-dir", tmpDir)
	assert.Contains(t, output, "Repacked 2 records")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a=i:1\nb=i:2\n", string(data))
}

func TestImportExportCommands(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")
	in := filepath.Join(tmpDir, "in.fon")
	exported := filepath.Join(tmpDir, "backup.fon")
	writeFile(t, in, "a=i:1\nb=s:\"two\"\nc=b:1\n")

	out := runCommand(t, "import", in, "--config", filepath.Join(tmpDir, "no.yaml"), "--data-dir", dataDir)
	assert.Contains(t, out, "Imported 3 records")

	out = runCommand(t, "export", exported, "--config", filepath.Join(tmpDir, "no.yaml"), "--data-dir", dataDir)
	assert.Contains(t, out, "Exported 3 records")

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Equal(t, "a=i:1\nb=s:\"two\"\nc=b:1\n", string(data))
}
