package settings

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestData(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: "isozombie_settings_test"})
	require.NoError(t, err)
	return m
}

func TestManagerNilData(t *testing.T) {
	m := NewManager(nil)
	assert.Equal(t, Default(), m.Get())

	m.SetZoom(2)
	assert.NoError(t, m.Save())
	assert.Equal(t, 2.0, m.Get().Zoom)

	// nothing was persisted, so a reload goes back to defaults
	assert.NoError(t, m.Load())
	assert.Equal(t, Default(), m.Get())
}

func TestManagerPersists(t *testing.T) {
	data := openTestData(t)

	m := NewManager(data)
	assert.Equal(t, Default(), m.Get())

	m.SetZoom(1.5)
	m.SetPlayerName("alice")
	require.NoError(t, m.Save())

	reloaded := NewManager(data)
	assert.Equal(t, Settings{Zoom: 1.5, PlayerName: "alice"}, reloaded.Get())
}

func TestManagerCorruptData(t *testing.T) {
	data := openTestData(t)
	require.NoError(t, data.SaveObjectProp(settingsObject, settingsProperty, []byte("zoom: [")))

	m := NewManager(data)
	assert.Equal(t, Default(), m.Get())
	assert.Error(t, m.Load())
}
