package cmd

import (
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	fx := setupTestEnv(t)
	cfgFile = filepath.Join(fx.Active, "..", "config", "config.toml")
	defer func() { cfgFile = "" }()

	require.NoError(t, runInit(nil, []string{}))

	data, err := afero.ReadFile(fx.Fs, cfgFile)
	require.NoError(t, err)

	var cfg fileConfig
	_, err = toml.Decode(string(data), &cfg)
	require.NoError(t, err)
	assert.Equal(t, fx.Active, cfg.Paths.Active)
	assert.Equal(t, fx.Backup, cfg.Paths.Backup)
	assert.Equal(t, []string{"SaveProfile.sav", "SaveProfile.susres.sav", "SaveProfile.susresvalid.sav"}, cfg.Snapshot.Files)
	assert.True(t, cfg.Watch.Fsnotify)

	isDir, err := afero.DirExists(fx.Fs, fx.Backup)
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestInitWithExistingConfig(t *testing.T) {
	fx := setupTestEnv(t)
	cfgFile = filepath.Join(fx.Active, "config.toml")
	defer func() { cfgFile = "" }()

	require.NoError(t, afero.WriteFile(fx.Fs, cfgFile, []byte("# mine\n"), 0644))

	initForce = false
	require.NoError(t, runInit(nil, []string{}))

	data, err := afero.ReadFile(fx.Fs, cfgFile)
	require.NoError(t, err)
	assert.Equal(t, "# mine\n", string(data))
}
