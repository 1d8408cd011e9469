package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shoptext/descgen/sitemap"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "descgen.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/descgen"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger

	// workDir anchors the project config search; empty means the current
	// directory.
	workDir string
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// WithWorkDir sets the directory the project config search starts from.
func (l *Loader) WithWorkDir(dir string) *Loader {
	l.workDir = dir
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/descgen/config.yaml)
// 3. Project config (descgen.yaml in current or parent directories)
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		config.Merge(userConfig)
	} else if !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadSitemaps reads the brand and category exports referenced by the
// config. Missing paths yield empty slices, not errors, so auto-linking
// simply produces no links for the unconfigured kind.
func (l *Loader) LoadSitemaps(cfg *Config) ([]sitemap.Brand, []sitemap.Category, error) {
	var brands []sitemap.Brand
	var categories []sitemap.Category

	if path := cfg.Generation.AutoLink.BrandsFile; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		brands, err = sitemap.ParseBrands(f)
		f.Close()
		if err != nil {
			return nil, nil, err
		}
		l.logger.Debug("Loaded brands", slog.String("path", path), slog.Int("count", len(brands)))
	}

	if path := cfg.Generation.AutoLink.CategoriesFile; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, err
		}
		categories, err = sitemap.ParseCategories(f)
		f.Close()
		if err != nil {
			return nil, nil, err
		}
		l.logger.Debug("Loaded categories", slog.String("path", path), slog.Int("count", len(categories)))
	}

	return brands, categories, nil
}

func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig walks up from the working directory looking for the
// project config file.
func (l *Loader) findProjectConfig() string {
	dir := l.workDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return ""
		}
		dir = cwd
	}

	for {
		candidate := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
