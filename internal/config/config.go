package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/phanxgames/willowkit/texture"
)

// Config holds texmgr configuration.
type Config struct {
	Assets   AssetsConfig
	Database DatabaseConfig
	Group    GroupConfig
	Defaults DefaultsConfig
	Debug    bool
}

// AssetsConfig locates the texture files.
type AssetsConfig struct {
	Root       string
	Extensions []string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// GroupConfig holds the initial grouping mask as option names.
type GroupConfig struct {
	Options []string
}

// DefaultsConfig holds the import settings given to newly seen textures.
type DefaultsConfig struct {
	Type        string
	Readable    bool
	Filter      string
	MaxSize     int `mapstructure:"max_size"`
	Wrap        string
	AnisoLevel  int `mapstructure:"aniso_level"`
	Compression string
	MipMaps     bool
}

// Path returns the config file location: $WILLOWKIT_CONFIG or
// ~/.config/willowkit/config.toml.
func Path() string {
	if p := os.Getenv("WILLOWKIT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "willowkit", "config.toml")
}

// Load reads configuration from Path and env. Env var overrides use prefix WILLOWKIT_.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads configuration from path and env. A missing file leaves the
// defaults in place.
func LoadFile(path string) (Config, error) {
	v := viper.New()

	d := texture.DefaultSettings()
	v.SetDefault("assets.root", ".")
	v.SetDefault("assets.extensions", []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"})
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "willowkit", "textures.db"))
	v.SetDefault("group.options", []string{"type", "maxsize"})
	v.SetDefault("defaults.type", d.Type.String())
	v.SetDefault("defaults.readable", d.Readable)
	v.SetDefault("defaults.filter", d.Filter.String())
	v.SetDefault("defaults.max_size", d.MaxSize)
	v.SetDefault("defaults.wrap", d.Wrap.String())
	v.SetDefault("defaults.aniso_level", d.AnisoLevel)
	v.SetDefault("defaults.compression", d.Compression.String())
	v.SetDefault("defaults.mipmaps", d.MipMaps)
	v.SetDefault("debug", false)

	v.SetConfigType("toml")
	v.SetConfigFile(path)

	v.SetEnvPrefix("WILLOWKIT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// GroupOptions parses the configured grouping mask.
func (c Config) GroupOptions() (texture.GroupOption, error) {
	return texture.ParseGroupOptions(c.Group.Options)
}

// DefaultSettings parses and validates the configured first-import settings.
func (c Config) DefaultSettings() (texture.ImportSettings, error) {
	d := c.Defaults
	s := texture.ImportSettings{
		Readable:   d.Readable,
		MaxSize:    d.MaxSize,
		AnisoLevel: d.AnisoLevel,
		MipMaps:    d.MipMaps,
	}
	var err error
	if s.Type, err = texture.ParseTextureType(d.Type); err != nil {
		return s, err
	}
	if s.Filter, err = texture.ParseFilterMode(d.Filter); err != nil {
		return s, err
	}
	if s.Wrap, err = texture.ParseWrapMode(d.Wrap); err != nil {
		return s, err
	}
	if s.Compression, err = texture.ParseCompression(d.Compression); err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("defaults: %w", err)
	}
	return s, nil
}

// SaveGroupOptions writes the grouping mask to the config file at path,
// keeping its other keys.
func SaveGroupOptions(path string, opts texture.GroupOption) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}
	names := opts.Names()
	if names == nil {
		names = []string{"none"}
	}
	v.Set("group.options", names)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
