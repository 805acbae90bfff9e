// Package config loads the brandkit generation configuration. Viper handles
// the file formats (yaml, json, toml) and BRANDKIT_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root generation configuration.
type Config struct {
	SourceDir string `mapstructure:"sourceDir"`
	OutputDir string `mapstructure:"outputDir"`
	// Version tags the generated tree and prefixes every manifest path.
	// Empty means "derive from the source git repository".
	Version     string                 `mapstructure:"version"`
	BaseURLs    map[string]string      `mapstructure:"baseUrls"`
	Concurrency int                    `mapstructure:"concurrency"`
	Brands      map[string]BrandConfig `mapstructure:"brands"`
	Defaults    Defaults               `mapstructure:"defaults"`
	SVG         SVGConfig              `mapstructure:"svgo"`
}

// BrandConfig maps asset types (logos, icons, images) to their generation
// settings for one brand.
type BrandConfig map[string]TypeConfig

// TypeConfig describes what to generate for one (brand, assetType). Unset
// fields fall back to Defaults.
type TypeConfig struct {
	Sizes          []SizeSpec `mapstructure:"sizes"`
	Formats        []string   `mapstructure:"formats"`
	GenerateRetina bool       `mapstructure:"generateRetina"`
}

// SizeSpec names one target raster size. Height 0 preserves aspect ratio.
type SizeSpec struct {
	Name   string `mapstructure:"name"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// Defaults apply wherever a brand/type omits its own settings.
type Defaults struct {
	Sizes   []SizeSpec    `mapstructure:"sizes"`
	Formats []string      `mapstructure:"formats"`
	Quality QualityConfig `mapstructure:"quality"`
}

// QualityConfig holds per-format encoder quality settings.
type QualityConfig struct {
	JPG  int `mapstructure:"jpg"`
	PNG  int `mapstructure:"png"`
	WebP int `mapstructure:"webp"`
	AVIF int `mapstructure:"avif"`
}

// SVGConfig controls SVG minification.
type SVGConfig struct {
	RemoveComments bool `mapstructure:"removeComments"`
	RemoveMetadata bool `mapstructure:"removeMetadata"`
	RemoveTitle    bool `mapstructure:"removeTitle"`
	RemoveDesc     bool `mapstructure:"removeDesc"`
}

// Load reads the generation configuration. With an explicit path the file
// must exist and parse; otherwise brandkit.{yaml,yml,json,toml} is searched
// in the working directory and defaults apply when nothing is found.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("sourceDir", "assets")
	v.SetDefault("outputDir", "dist")
	v.SetDefault("concurrency", 4)
	v.SetDefault("defaults.sizes", []map[string]interface{}{
		{"name": "small", "width": 32},
		{"name": "medium", "width": 64},
		{"name": "large", "width": 128},
	})
	v.SetDefault("defaults.formats", []string{"png", "webp"})
	v.SetDefault("defaults.quality.jpg", 85)
	v.SetDefault("defaults.quality.png", 90)
	v.SetDefault("defaults.quality.webp", 80)
	v.SetDefault("defaults.quality.avif", 60)
	v.SetDefault("svgo.removeComments", true)
	v.SetDefault("svgo.removeMetadata", true)
	v.SetDefault("svgo.removeTitle", false)
	v.SetDefault("svgo.removeDesc", false)

	v.SetEnvPrefix("BRANDKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("brandkit")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
			// Hidden variant as a second chance.
			v.SetConfigName(".brandkit")
			if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// TypeSettings resolves the effective settings for one (brand, assetType),
// applying defaults for anything the brand config leaves unset.
func (c *Config) TypeSettings(brandID, assetType string) TypeConfig {
	settings := TypeConfig{
		Sizes:   c.Defaults.Sizes,
		Formats: c.Defaults.Formats,
	}
	brand, ok := c.Brands[brandID]
	if !ok {
		return settings
	}
	tc, ok := brand[assetType]
	if !ok {
		return settings
	}
	if len(tc.Sizes) > 0 {
		settings.Sizes = tc.Sizes
	}
	if len(tc.Formats) > 0 {
		settings.Formats = tc.Formats
	}
	settings.GenerateRetina = tc.GenerateRetina
	return settings
}

// KnownWidths returns the union of every configured target width across all
// brands and defaults, retina doubles included. The grouping engine uses it
// to disambiguate size suffixes from asset ids that happen to end in digits.
func (c *Config) KnownWidths() []int {
	set := make(map[int]bool)
	add := func(sizes []SizeSpec, retina bool) {
		for _, s := range sizes {
			if s.Width <= 0 {
				continue
			}
			set[s.Width] = true
			if retina {
				set[s.Width*2] = true
			}
		}
	}
	add(c.Defaults.Sizes, true)
	for _, brand := range c.Brands {
		for _, tc := range brand {
			add(tc.Sizes, true)
		}
	}
	widths := make([]int, 0, len(set))
	for w := range set {
		widths = append(widths, w)
	}
	sort.Ints(widths)
	return widths
}

// Quality returns the configured encoder quality for a format, or a sane
// default when unset.
func (c *Config) Quality(format string) int {
	var q int
	switch format {
	case "jpg", "jpeg":
		q = c.Defaults.Quality.JPG
	case "png":
		q = c.Defaults.Quality.PNG
	case "webp":
		q = c.Defaults.Quality.WebP
	case "avif":
		q = c.Defaults.Quality.AVIF
	}
	if q <= 0 || q > 100 {
		q = 80
	}
	return q
}
