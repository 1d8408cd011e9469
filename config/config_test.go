package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoptext/descgen/catalog"
	"github.com/shoptext/descgen/config"
	"github.com/shoptext/descgen/prompt"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "anthropic", cfg.API.Provider)
	assert.Equal(t, "short", cfg.Generation.Mode)
	assert.Equal(t, "neutral", cfg.Generation.Tone)
	assert.Equal(t, 1, cfg.Generation.ImageLayout)
	assert.Equal(t, 3, cfg.Pacing.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Pacing.RetryBaseDelay)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "missing provider",
			mutate:  func(c *config.Config) { c.API.Provider = "" },
			wantErr: "api.provider",
		},
		{
			name:    "missing model",
			mutate:  func(c *config.Config) { c.API.Model = "" },
			wantErr: "api.model",
		},
		{
			name:    "bad mode",
			mutate:  func(c *config.Config) { c.Generation.Mode = "medium" },
			wantErr: "generation.mode",
		},
		{
			name:    "bad tone",
			mutate:  func(c *config.Config) { c.Generation.Tone = "sarcastic" },
			wantErr: "generation.tone",
		},
		{
			name:    "image layout out of range",
			mutate:  func(c *config.Config) { c.Generation.ImageLayout = 4 },
			wantErr: "generation.image_layout",
		},
		{
			name:    "bad leftover policy",
			mutate:  func(c *config.Config) { c.Generation.LeftoverImages = "discard" },
			wantErr: "generation.leftover_images",
		},
		{
			name:    "negative retries",
			mutate:  func(c *config.Config) { c.Pacing.MaxRetries = -1 },
			wantErr: "pacing.max_retries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generation.Mode = "long"
	cfg.Generation.Tone = "funny"
	cfg.Generation.AddImages = true
	cfg.Generation.ImageLayout = 3
	cfg.Pacing.RequestDelay = 100 * time.Millisecond

	path := filepath.Join(t.TempDir(), "nested", "descgen.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := config.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMerge(t *testing.T) {
	base := config.DefaultConfig()
	other := &config.Config{}
	other.Generation.Mode = "long"
	other.Generation.JustifyText = true
	other.Pacing.RequestDelay = time.Second

	base.Merge(other)

	assert.Equal(t, "long", base.Generation.Mode)
	assert.True(t, base.Generation.JustifyText)
	assert.Equal(t, time.Second, base.Pacing.RequestDelay)
	// Unset fields keep their defaults.
	assert.Equal(t, "anthropic", base.API.Provider)
	assert.Equal(t, "neutral", base.Generation.Tone)

	base.Merge(nil)
	assert.Equal(t, "long", base.Generation.Mode)
}

func TestLoaderLayeredPrecedence(t *testing.T) {
	dir := t.TempDir()
	project := config.DefaultConfig()
	project.Generation.Tone = "professional"
	project.Generation.Mode = "long"
	require.NoError(t, project.SaveToFile(filepath.Join(dir, config.ProjectConfigFile)))

	// Search starts in a subdirectory and walks up to find the file.
	sub := filepath.Join(dir, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))

	cfg, err := config.NewLoader(nil).WithWorkDir(sub).Load()
	require.NoError(t, err)
	assert.Equal(t, "professional", cfg.Generation.Tone)
	assert.Equal(t, "long", cfg.Generation.Mode)
}

func TestLoaderInvalidProjectConfigRejected(t *testing.T) {
	dir := t.TempDir()
	bad := config.DefaultConfig()
	bad.Generation.Mode = "medium"
	require.NoError(t, bad.SaveToFile(filepath.Join(dir, config.ProjectConfigFile)))

	_, err := config.NewLoader(nil).WithWorkDir(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generation.mode")
}

func TestBatchOptionsMapping(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generation.Mode = "long"
	cfg.Generation.Tone = "custom"
	cfg.Generation.CustomToneExample = "Věcně a stručně."
	cfg.Generation.JustifyText = true
	cfg.Generation.AddImages = true
	cfg.Generation.ImageLayout = 2
	cfg.Generation.LeftoverImages = "spaced"
	cfg.Generation.AutoLink.Enabled = true
	cfg.Generation.AutoLink.LinkManufacturer = true
	cfg.Pacing.RequestDelay = 50 * time.Millisecond

	opts := cfg.BatchOptions(nil, nil)

	assert.Equal(t, catalog.ModeLong, opts.Mode)
	assert.Equal(t, prompt.ToneCustom, opts.Prompt.Tone)
	assert.Equal(t, "Věcně a stručně.", opts.Prompt.CustomToneExample)
	assert.True(t, opts.JustifyText)
	assert.True(t, opts.Prompt.AddImages)
	assert.Equal(t, 2, opts.Prompt.ImageLayout)
	assert.Equal(t, prompt.LeftoverSpaced, opts.Prompt.LeftoverImages)
	assert.True(t, opts.AutoLink.Enabled)
	assert.True(t, opts.AutoLink.Links.Manufacturer)
	assert.False(t, opts.AutoLink.Links.MainCategory)
	assert.Equal(t, 50*time.Millisecond, opts.RequestDelay)
}

func TestLoadSitemaps(t *testing.T) {
	dir := t.TempDir()
	brandsPath := filepath.Join(dir, "brands.csv")
	require.NoError(t, os.WriteFile(brandsPath, []byte("Name;indexName\nFila;fila\n"), 0644))

	cfg := config.DefaultConfig()
	cfg.Generation.AutoLink.BrandsFile = brandsPath

	brands, categories, err := config.NewLoader(nil).LoadSitemaps(cfg)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "/fila/", brands[0].URL)
	assert.Empty(t, categories)
}
