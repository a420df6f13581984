package configutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	File string `json:"file"`
	Url  string `json:"url"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	err := os.WriteFile(name, []byte(`{
		// comments are allowed
		file: "players.db",
		url: ""
	}`), 0644)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "players.db", config.File)

	err = os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{url: "libsql://somewhere"}`),
		0644,
	)
	require.NoError(t, err)

	config, err = ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "players.db", config.File)
	require.Equal(t, "libsql://somewhere", config.Url)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}
