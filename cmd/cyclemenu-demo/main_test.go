package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/cyclemenu/pkg/cyclemenu"
)

func TestBuildConfigFromFlags(t *testing.T) {
	cfg, err := buildConfig(&flags{corner: "bottom-left", scroll: "infinite", items: "home, star,,heart"})
	require.NoError(t, err)

	assert.Equal(t, "bottom-left", cfg.Corner)
	assert.Equal(t, "infinite", cfg.ScrollMode)
	assert.Equal(t, []cyclemenu.ItemConfig{
		{Icon: "home", Title: "home"},
		{Icon: "star", Title: "star"},
		{Icon: "heart", Title: "heart"},
	}, cfg.Items)
}

func TestBuildConfigRejectsBadCorner(t *testing.T) {
	_, err := buildConfig(&flags{corner: "center"})
	assert.True(t, cyclemenu.IsInvalidArgument(err))
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"config", "corner", "items", "scroll", "log-level", "touch-device", "width", "height"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestHostOptionsApplyConfigPalette(t *testing.T) {
	cfg := cyclemenu.DefaultConfig()
	cfg.Theme.Circle = "#112233"
	cfg.Theme.CornerImage = "/tmp/corner.png"

	opts, err := hostOptions(&flags{width: 640, height: 480}, cfg)
	require.NoError(t, err)

	want, err := cfg.ThemeOver(cyclemenu.DefaultTheme())
	require.NoError(t, err)
	require.NotNil(t, opts.Theme)
	assert.Equal(t, want, *opts.Theme)
	assert.NotEqual(t, cyclemenu.DefaultTheme().CircleColor, opts.Theme.CircleColor)
	assert.Equal(t, cyclemenu.WindowOptions{Resizable: true, Width: 640, Height: 480}, opts.WindowOptions)
	assert.Equal(t, "/tmp/corner.png", opts.CornerImagePath)
}

func TestHostOptionsCannoliKeepsPreset(t *testing.T) {
	opts, err := hostOptions(&flags{cannoli: true}, cyclemenu.DefaultConfig())
	require.NoError(t, err)
	assert.True(t, opts.IsCannoli)
	assert.Nil(t, opts.Theme)
}
