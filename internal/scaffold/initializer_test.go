package scaffold

import (
	"os"
	"testing"

	"github.com/dyluth/goap/internal/behaviour"
	"github.com/dyluth/goap/internal/config"
	"github.com/dyluth/goap/pkg/goap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir switches to a fresh temp directory for the duration of the test.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(original) })
	return dir
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name      string
		force     bool
		setupFunc func(t *testing.T)
	}{
		{
			name:      "fresh initialization",
			setupFunc: func(t *testing.T) {},
		},
		{
			name:  "force initialization replaces existing config",
			force: true,
			setupFunc: func(t *testing.T) {
				require.NoError(t, os.WriteFile(ConfigFile, []byte("old content"), 0644))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t)
			tt.setupFunc(t)

			require.NoError(t, Initialize(tt.force))

			info, err := os.Stat(ConfigFile)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

			content, err := os.ReadFile(ConfigFile)
			require.NoError(t, err)
			assert.NotContains(t, string(content), "old content")
		})
	}
}

func TestSampleConfigIsRunnable(t *testing.T) {
	chdir(t)
	require.NoError(t, Initialize(false))

	cfg, err := config.Load(ConfigFile)
	require.NoError(t, err)

	assert.Contains(t, cfg.Groups, "camper")
	assert.Contains(t, cfg.Groups, "hunter")
	assert.Equal(t, 200, *cfg.Simulation.Ticks)

	// every behaviour named in the sample must exist in the catalog
	groups, err := behaviour.Define(goap.NewRegistry(), cfg)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestGetTemplateFiles(t *testing.T) {
	files, err := getTemplateFiles()
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ConfigFile, files[0].Path)
	assert.Contains(t, string(files[0].Content), `version: "1.0"`)
}
