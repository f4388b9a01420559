package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightschool/auditor/internal/config"
)

func TestConfigInit_CreatesThenRefuses(t *testing.T) {
	// Given: no user config
	isolate(t)
	path := config.GetUserConfigPath()

	// When
	stdout, _, err := run(t, "config", "init")

	// Then
	require.NoError(t, err)
	assert.Contains(t, stdout, "Created user configuration")
	assert.FileExists(t, path)

	stdout, _, err = run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, "already exists")
}

func TestConfigInit_ForceBacksUp(t *testing.T) {
	isolate(t)
	path := config.GetUserConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("audit:\n  missing_data: fatal\n"), 0o644))

	stdout, _, err := run(t, "config", "init", "--force")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Backup:")

	stdout, _, err = run(t, "config", "backups")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 1)

	backupName := filepath.Base(lines[0])
	_, _, err = run(t, "config", "restore", backupName)
	require.NoError(t, err)
	data, _ := os.ReadFile(path)
	assert.Contains(t, string(data), "fatal")
}

func TestConfigBackups_None(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "config", "backups")

	require.NoError(t, err)
	assert.Equal(t, "No backups found.\n", stdout)
}

func TestConfigShow_MergesDatasetConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DatasetConfigName),
		[]byte("audit:\n  checks: [weather, maintenance]\n"), 0o644))

	stdout, _, err := run(t, "config", "show", dir)

	require.NoError(t, err)
	assert.Contains(t, stdout, "- maintenance")
	assert.Contains(t, stdout, "missing_data: skip")
}

func TestConfigShow_JSON(t *testing.T) {
	isolate(t)
	t.Setenv("AUDITOR_MISSING_DATA", "fatal")

	stdout, _, err := run(t, "config", "show", "--json")

	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "fatal", cfg.Audit.MissingData)
}

func TestConfigPath(t *testing.T) {
	isolate(t)

	stdout, _, err := run(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, config.GetUserConfigPath()+"\n", stdout)
}
