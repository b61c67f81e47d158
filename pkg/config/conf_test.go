package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/focusforge/pkg/data"
)

func TestConfig(t *testing.T) {
	dir := t.TempDir()

	c1, err := ReadOrCreate(dir)
	require.NoError(t, err)
	require.NotNil(t, c1)
	assert.Equal(t, data.StoreSQLite, c1.Store.Type)
	assert.Equal(t, filepath.Join(dir, data.DataFileName), c1.Store.Path)

	c1.ClassCount = 6
	c1.Format = "yaml"
	c1.LogLevel = "debug"

	err = Save(dir, c1)
	assert.NoError(t, err)

	c2, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.Equal(t, c1.ClassCount, c2.ClassCount)
	assert.Equal(t, c1.Format, c2.Format)
	assert.Equal(t, c1.LogLevel, c2.LogLevel)
}

func TestReadOrCreate_NestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	c, err := ReadOrCreate(dir)
	require.NoError(t, err)
	assert.NotNil(t, c)
	_, err = os.Stat(filepath.Join(dir, configFileName))
	assert.NoError(t, err)
}

func TestReadOrCreate_EmptyDir(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)
}

func TestReadOrCreate_Invalid(t *testing.T) {
	dir := t.TempDir()
	content := "store:\n  type: mongo\nclass_count: 8\nlog_level: info\nformat: json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), fileMode))

	_, err := ReadOrCreate(dir)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default(t.TempDir())
	assert.NoError(t, c.Validate())

	c.Store = data.StoreConfig{Type: data.StoreRedis}
	assert.Error(t, c.Validate(), "redis requires an address")

	c.Store.Addr = "localhost:6379"
	assert.NoError(t, c.Validate())

	c.Format = "xml"
	assert.Error(t, c.Validate())

	var nilConf *Config
	assert.Error(t, nilConf.Validate())
	assert.Error(t, Save(t.TempDir(), nil))
}
