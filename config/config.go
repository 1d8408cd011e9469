// Package config provides configuration loading and management for descgen.
// The API key is deliberately not part of the configuration; it is supplied
// per run and never written to disk.
package config

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/shoptext/descgen/batch"
	"github.com/shoptext/descgen/catalog"
	"github.com/shoptext/descgen/llm"
	"github.com/shoptext/descgen/prompt"
	"github.com/shoptext/descgen/sitemap"
)

// Config represents the complete descgen configuration
type Config struct {
	API        APIConfig        `yaml:"api"`
	Generation GenerationConfig `yaml:"generation"`
	Pacing     PacingConfig     `yaml:"pacing"`
}

// APIConfig configures the model API connection
type APIConfig struct {
	// Provider selects the API dialect ("anthropic", "openai", "ollama")
	Provider string `yaml:"provider"`
	// BaseURL overrides the provider's default endpoint
	BaseURL string `yaml:"base_url"`
	// Model is the model identifier sent with every request
	Model string `yaml:"model"`
	// Timeout is the maximum time to wait for one API response
	Timeout time.Duration `yaml:"timeout"`
}

// GenerationConfig configures what gets generated and how
type GenerationConfig struct {
	// Mode selects the rewritten field ("short" or "long")
	Mode string `yaml:"mode"`
	// Tone is the writing style ("neutral", "professional", "funny", "custom")
	Tone string `yaml:"tone"`
	// CustomToneExample is the sample text used when tone is "custom"
	CustomToneExample string `yaml:"custom_tone_example"`
	// JustifyText aligns generated paragraphs via an inline style
	JustifyText bool `yaml:"justify_text"`
	// AddBulletPoints appends a benefit list (short mode)
	AddBulletPoints bool `yaml:"add_bullet_points"`
	// UseLinkPhrases enables the manual link phrase list
	UseLinkPhrases bool `yaml:"use_link_phrases"`
	// LinkPhrases is a comma separated phrase list
	LinkPhrases string `yaml:"link_phrases"`
	// AddImages embeds product images (long mode)
	AddImages bool `yaml:"add_images"`
	// ImageLayout is how many images the layout places (1-3)
	ImageLayout int `yaml:"image_layout"`
	// LeftoverImages is what happens to extra images ("skip" or "spaced")
	LeftoverImages string `yaml:"leftover_images"`
	// AutoLink derives link phrases from shop navigation exports
	AutoLink AutoLinkConfig `yaml:"auto_link"`
}

// AutoLinkConfig configures sitemap based linking
type AutoLinkConfig struct {
	Enabled bool `yaml:"enabled"`
	// BrandsFile is the path to the brands CSV export
	BrandsFile string `yaml:"brands_file"`
	// CategoriesFile is the path to the categories CSV export
	CategoriesFile string `yaml:"categories_file"`
	// Which attributes produce links
	LinkManufacturer   bool `yaml:"link_manufacturer"`
	LinkMainCategory   bool `yaml:"link_main_category"`
	LinkLowestCategory bool `yaml:"link_lowest_category"`
}

// PacingConfig configures request pacing and retry behaviour
type PacingConfig struct {
	// RequestDelay is the gap between consecutive API calls
	// (zero = per-mode default)
	RequestDelay time.Duration `yaml:"request_delay"`
	// MaxRetries bounds retry attempts after the initial call
	MaxRetries int `yaml:"max_retries"`
	// RetryBaseDelay is the first backoff delay, doubled per attempt
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	retry := llm.DefaultRetryConfig()
	return &Config{
		API: APIConfig{
			Provider: "anthropic",
			Model:    llm.DefaultModel,
			Timeout:  3 * time.Minute,
		},
		Generation: GenerationConfig{
			Mode:           string(catalog.ModeShort),
			Tone:           string(prompt.ToneNeutral),
			ImageLayout:    1,
			LeftoverImages: string(prompt.LeftoverSkip),
		},
		Pacing: PacingConfig{
			MaxRetries:     retry.MaxRetries,
			RetryBaseDelay: retry.BackoffBase,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.API.Provider == "" {
		return fmt.Errorf("api.provider is required")
	}
	if c.API.Model == "" {
		return fmt.Errorf("api.model is required")
	}
	switch catalog.Mode(c.Generation.Mode) {
	case catalog.ModeShort, catalog.ModeLong:
	default:
		return fmt.Errorf("generation.mode must be %q or %q", catalog.ModeShort, catalog.ModeLong)
	}
	switch prompt.Tone(c.Generation.Tone) {
	case prompt.ToneNeutral, prompt.ToneProfessional, prompt.ToneFunny, prompt.ToneCustom:
	default:
		return fmt.Errorf("generation.tone %q is not supported", c.Generation.Tone)
	}
	if c.Generation.ImageLayout < 1 || c.Generation.ImageLayout > 3 {
		return fmt.Errorf("generation.image_layout must be between 1 and 3")
	}
	switch prompt.LeftoverPolicy(c.Generation.LeftoverImages) {
	case prompt.LeftoverSkip, prompt.LeftoverSpaced:
	default:
		return fmt.Errorf("generation.leftover_images must be %q or %q", prompt.LeftoverSkip, prompt.LeftoverSpaced)
	}
	if c.Pacing.MaxRetries < 0 {
		return fmt.Errorf("pacing.max_retries must not be negative")
	}
	if c.Pacing.RetryBaseDelay < 0 {
		return fmt.Errorf("pacing.retry_base_delay must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// API
	if other.API.Provider != "" {
		c.API.Provider = other.API.Provider
	}
	if other.API.BaseURL != "" {
		c.API.BaseURL = other.API.BaseURL
	}
	if other.API.Model != "" {
		c.API.Model = other.API.Model
	}
	if other.API.Timeout != 0 {
		c.API.Timeout = other.API.Timeout
	}

	// Generation
	if other.Generation.Mode != "" {
		c.Generation.Mode = other.Generation.Mode
	}
	if other.Generation.Tone != "" {
		c.Generation.Tone = other.Generation.Tone
	}
	if other.Generation.CustomToneExample != "" {
		c.Generation.CustomToneExample = other.Generation.CustomToneExample
	}
	c.Generation.JustifyText = c.Generation.JustifyText || other.Generation.JustifyText
	c.Generation.AddBulletPoints = c.Generation.AddBulletPoints || other.Generation.AddBulletPoints
	c.Generation.UseLinkPhrases = c.Generation.UseLinkPhrases || other.Generation.UseLinkPhrases
	if other.Generation.LinkPhrases != "" {
		c.Generation.LinkPhrases = other.Generation.LinkPhrases
	}
	c.Generation.AddImages = c.Generation.AddImages || other.Generation.AddImages
	if other.Generation.ImageLayout != 0 {
		c.Generation.ImageLayout = other.Generation.ImageLayout
	}
	if other.Generation.LeftoverImages != "" {
		c.Generation.LeftoverImages = other.Generation.LeftoverImages
	}
	if other.Generation.AutoLink.Enabled {
		c.Generation.AutoLink = other.Generation.AutoLink
	}

	// Pacing
	if other.Pacing.RequestDelay != 0 {
		c.Pacing.RequestDelay = other.Pacing.RequestDelay
	}
	if other.Pacing.MaxRetries != 0 {
		c.Pacing.MaxRetries = other.Pacing.MaxRetries
	}
	if other.Pacing.RetryBaseDelay != 0 {
		c.Pacing.RetryBaseDelay = other.Pacing.RetryBaseDelay
	}
}

// ClientOptions translates the API and pacing sections into client options.
func (c *Config) ClientOptions() []llm.Option {
	retry := llm.DefaultRetryConfig()
	retry.MaxRetries = c.Pacing.MaxRetries
	if c.Pacing.RetryBaseDelay > 0 {
		retry.BackoffBase = c.Pacing.RetryBaseDelay
	}

	opts := []llm.Option{
		llm.WithModel(c.API.Model),
		llm.WithRetryConfig(retry),
	}
	if c.API.BaseURL != "" {
		opts = append(opts, llm.WithBaseURL(c.API.BaseURL))
	}
	if c.API.Timeout > 0 {
		opts = append(opts, llm.WithHTTPClient(&http.Client{Timeout: c.API.Timeout}))
	}
	return opts
}

// BatchOptions translates the generation and pacing sections into run
// options. Sitemap entries are loaded separately and passed in because the
// config only stores their file paths.
func (c *Config) BatchOptions(brands []sitemap.Brand, categories []sitemap.Category) batch.Options {
	return batch.Options{
		Mode: catalog.Mode(c.Generation.Mode),
		Prompt: prompt.Options{
			Tone:              prompt.Tone(c.Generation.Tone),
			CustomToneExample: c.Generation.CustomToneExample,
			UseLinkPhrases:    c.Generation.UseLinkPhrases,
			LinkPhrases:       c.Generation.LinkPhrases,
			AddBulletPoints:   c.Generation.AddBulletPoints,
			AddImages:         c.Generation.AddImages,
			ImageLayout:       c.Generation.ImageLayout,
			LeftoverImages:    prompt.LeftoverPolicy(c.Generation.LeftoverImages),
		},
		JustifyText: c.Generation.JustifyText,
		AutoLink: batch.AutoLink{
			Enabled:    c.Generation.AutoLink.Enabled,
			Brands:     brands,
			Categories: categories,
			Links: sitemap.LinkOptions{
				Manufacturer:   c.Generation.AutoLink.LinkManufacturer,
				MainCategory:   c.Generation.AutoLink.LinkMainCategory,
				LowestCategory: c.Generation.AutoLink.LinkLowestCategory,
			},
		},
		RequestDelay: c.Pacing.RequestDelay,
	}
}
